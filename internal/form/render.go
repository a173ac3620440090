package form

import (
	"html/template"
	"sync"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/microcosm-cc/bluemonday"
)

// ResultsSection is the id of the page region a View scrolls to
const ResultsSection = "results-section"

// View is everything the results region shows after one submission
type View struct {
	// Echo of the submitted form values
	Problem string
	Context string

	// Empty when there is no "analyzed problem" block
	ProblemAnalyzed string
	Techniques      []TechniqueView

	Summary     string
	ShowSummary bool

	// Non-empty when the error panel is shown instead of results
	Error string

	// Region to scroll into view; empty before the first submission
	ScrollTo string
}

type TechniqueView struct {
	Key         entity.Technique
	Label       string
	Explanation string
	Ideas       []string
}

// HasOutput reports whether the results region should be visible
func (v View) HasOutput() bool {
	return v.Error != "" || v.ProblemAnalyzed != "" || len(v.Techniques) > 0 || v.ShowSummary
}

// Renderer maps a decoded payload onto a fresh View
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render builds the results view. A payload without a results array renders
// only the "no valid results" error.
func (r *Renderer) Render(p *Payload) View {
	if p == nil || !p.HasResults {
		return r.RenderError(entity.MsgFormNoValidResults)
	}

	view := View{
		ProblemAnalyzed: p.OriginalProblem,
		Techniques:      make([]TechniqueView, 0, len(p.Results)),
		ScrollTo:        ResultsSection,
	}

	for _, entry := range p.Results {
		view.Techniques = append(view.Techniques, TechniqueView{
			Key:         entry.Technique,
			Label:       entry.Technique.DisplayName(),
			Explanation: entry.Explanation,
			Ideas:       entry.Ideas,
		})
	}

	if p.Summary != "" {
		view.Summary = p.Summary
		view.ShowSummary = true
	}

	return view
}

// RenderError clears any output and shows message in the error panel
func (r *Renderer) RenderError(message string) View {
	return View{
		Error:    message,
		ScrollTo: ResultsSection,
	}
}

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy

	tagStripper = bluemonday.StrictPolicy()
)

// Markup sanitizes text that the results region shows as HTML (labels,
// explanations and ideas) keeping only basic inline formatting.
func Markup(s string) template.HTML {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "br", "code")
		markupPolicy = policy
	})
	return template.HTML(markupPolicy.Sanitize(s))
}
