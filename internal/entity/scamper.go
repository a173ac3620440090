package entity

import (
	"fmt"
	"strings"
)

type Technique string

// SCAMPER techniques in the order the orchestrator runs and reports them
const (
	TechniqueSubstitute     Technique = "substitute"
	TechniqueCombine        Technique = "combine"
	TechniqueAdapt          Technique = "adapt"
	TechniqueModify         Technique = "modify"
	TechniquePutToOtherUses Technique = "put_to_other_uses"
	TechniqueEliminate      Technique = "eliminate"
	TechniqueReverse        Technique = "reverse"
)

// AllTechniques returns every technique in reporting order
func AllTechniques() []Technique {
	return []Technique{
		TechniqueSubstitute,
		TechniqueCombine,
		TechniqueAdapt,
		TechniqueModify,
		TechniquePutToOtherUses,
		TechniqueEliminate,
		TechniqueReverse,
	}
}

var techniqueLabels = map[Technique]string{
	TechniqueSubstitute:     "Sustituir - Reemplazar elementos",
	TechniqueCombine:        "Combinar - Fusionar ideas",
	TechniqueAdapt:          "Adaptar - Aplicar de otros contextos",
	TechniqueModify:         "Modificar - Amplificar o reducir",
	TechniquePutToOtherUses: "Otros Usos - Nuevas aplicaciones",
	TechniqueEliminate:      "Eliminar - Simplificar",
	TechniqueReverse:        "Invertir - Reorganizar o hacer al revés",
}

// ParseTechnique normalizes a raw technique key. Unknown keys are kept as-is
// (lower-cased) so callers can still display them.
func ParseTechnique(raw string) Technique {
	return Technique(strings.ToLower(strings.TrimSpace(raw)))
}

func (t Technique) IsValid() bool {
	_, ok := techniqueLabels[t]
	return ok
}

// DisplayName maps the technique to its UI label, falling back to the upper-cased key
func (t Technique) DisplayName() string {
	if label, ok := techniqueLabels[t]; ok {
		return label
	}
	return strings.ToUpper(string(t))
}

// Title is the key with underscores replaced and words capitalized ("Put To Other Uses")
func (t Technique) Title() string {
	words := strings.Fields(strings.ReplaceAll(string(t), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// UserInput is the problem statement submitted for analysis
type UserInput struct {
	Problem string  `json:"problem"`
	Context *string `json:"context,omitempty"`
}

// ContextOrEmpty returns the optional context as a plain string
func (u *UserInput) ContextOrEmpty() string {
	if u.Context == nil {
		return ""
	}
	return *u.Context
}

// ScamperResult holds the ideas produced by one technique
type ScamperResult struct {
	Technique   Technique `json:"technique"`
	Ideas       []string  `json:"ideas"`
	Explanation string    `json:"explanation"`
}

// IsError reports whether the result carries an agent failure instead of ideas
func (r *ScamperResult) IsError() bool {
	for _, idea := range r.Ideas {
		if strings.Contains(idea, "Error") {
			return true
		}
	}
	return false
}

// ScamperResponse is the body returned by POST /api/scamper
type ScamperResponse struct {
	OriginalProblem string          `json:"original_problem"`
	Results         []ScamperResult `json:"results"`
	Summary         string          `json:"summary"`
}

// TotalIdeas counts ideas across every technique
func (r *ScamperResponse) TotalIdeas() int {
	total := 0
	for _, res := range r.Results {
		total += len(res.Ideas)
	}
	return total
}

// SuccessfulTechniques counts results without agent errors
func (r *ScamperResponse) SuccessfulTechniques() int {
	count := 0
	for i := range r.Results {
		if !r.Results[i].IsError() {
			count++
		}
	}
	return count
}

// AgentCapabilities describes what a technique agent focuses on
type AgentCapabilities struct {
	AgentName      string   `json:"agent_name"`
	Technique      string   `json:"technique"`
	Specialization string   `json:"specialization"`
	FocusAreas     []string `json:"focus_areas"`
}

type AgentStatus struct {
	AgentName      string            `json:"agent_name"`
	Specialization string            `json:"specialization"`
	Capabilities   AgentCapabilities `json:"capabilities"`
}

type ExecutionMode string

const (
	ExecutionModeParallel   ExecutionMode = "Parallel"
	ExecutionModeSequential ExecutionMode = "Sequential"
)

// SystemStatus is returned by GET /api/scamper/status
type SystemStatus struct {
	OrchestratorName  string                 `json:"orchestrator_name"`
	TotalAgents       int                    `json:"total_agents"`
	ExecutionMode     ExecutionMode          `json:"execution_mode"`
	MaxIdeasPerAgent  int                    `json:"max_ideas_per_agent"`
	SpecializedAgents map[string]AgentStatus `json:"specialized_agents"`
}

// AgentHealth is a single entry of GET /api/scamper/agents/health
type AgentHealth struct {
	AgentName string    `json:"agent_name"`
	Technique Technique `json:"technique"`
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

func ParseResultFormat(raw string) (ResultFormat, error) {
	if raw == "" {
		return FormatMarkdown, nil
	}
	f := ResultFormat(strings.ToLower(raw))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: format must be one of: markdown, docx, pdf", ErrInvalidFormat)
	}
	return f, nil
}

type ErrorResponse struct {
	Error string `json:"error"`
}
