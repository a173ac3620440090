// Package cli is the interactive terminal client of the SCAMPER API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/form"
	"github.com/futig/scamper-backend/internal/pkg/formatter"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	DemoProblem = "Quiero aumentar la participación de los empleados en las reuniones de equipo"
	DemoContext = "Empresa de tecnología, equipos remotos, reuniones virtuales semanales"
)

const (
	banner = `
╔══════════════════════════════════════════════════════════╗
║            🎨 SCAMPER - Generador de Ideas 🎨            ║
╚══════════════════════════════════════════════════════════╝`

	welcome = `
¡Bienvenido! Describe un problema o desafío y lo analizaré con las
siete técnicas SCAMPER: Sustituir, Combinar, Adaptar, Modificar,
Otros usos, Eliminar e Invertir.`

	promptProblem  = "📝 Describe tu problema o desafío:"
	promptContext  = "🔍 Contexto:"
	helpContext    = "Industria, restricciones o recursos. Pulsa Enter para omitirlo."
	promptContinue = "¿Quieres analizar otro problema? (s/n)"

	msgApplying     = "\n🚀 Aplicando SCAMPER..."
	msgInvalidYesNo = "⚠️  Por favor, responde 's' para sí o 'n' para no."
	msgFarewell     = "\n👋 ¡Gracias por usar SCAMPER! ¡Que tengas mucho éxito con tus ideas!"
	msgExported     = "\n💾 Resultados guardados en %s\n"
)

var (
	yesAnswers = map[string]bool{"s": true, "si": true, "sí": true, "y": true, "yes": true}
	noAnswers  = map[string]bool{"n": true, "no": true}
)

// FormSubmitter validates, sends and renders one problem statement
type FormSubmitter interface {
	Submit(ctx context.Context, problem, problemContext string) form.View
}

// Session asks for problems through a PromptDriver and prints rendered
// results to out
type Session struct {
	forms      FormSubmitter
	formatters *formatter.Factory
	prompts    PromptDriver
	out        io.Writer

	// Results are also written here when set
	exportPath   string
	exportFormat entity.ResultFormat
}

type Option func(*Session)

// WithExport saves each successful result to path in the given format
func WithExport(path string, format entity.ResultFormat) Option {
	return func(s *Session) {
		s.exportPath = path
		s.exportFormat = format
	}
}

func NewSession(forms FormSubmitter, formatters *formatter.Factory, prompts PromptDriver, out io.Writer, opts ...Option) *Session {
	s := &Session{
		forms:        forms,
		formatters:   formatters,
		prompts:      prompts,
		out:          out,
		exportFormat: entity.FormatMarkdown,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Banner prints the greeting shown once per run
func (s *Session) Banner() {
	fmt.Fprintln(s.out, banner)
	fmt.Fprintln(s.out, welcome)
}

// RunOnce analyzes one problem and prints the result. The returned error is
// non-nil only when output could not be written.
func (s *Session) RunOnce(ctx context.Context, problem, problemContext string) (form.View, error) {
	fmt.Fprintln(s.out, msgApplying)

	view := s.forms.Submit(ctx, problem, problemContext)
	if err := form.WriteText(s.out, view); err != nil {
		return view, fmt.Errorf("write results: %w", err)
	}

	if view.Error == "" && s.exportPath != "" {
		if err := s.export(view); err != nil {
			ctxzap.Error(ctx, "failed to export results", zap.Error(err))
			fmt.Fprintf(s.out, "\n❌ No se pudieron guardar los resultados: %v\n", err)
		}
	}

	return view, nil
}

// Run asks for problems until the user declines to continue, interrupts a
// prompt or input ends. An invalid problem is asked for again before the
// context question.
func (s *Session) Run(ctx context.Context) error {
	s.Banner()

	for {
		problem, err := s.prompts.Input(ctx, InputConfig{
			Message:   promptProblem,
			Validator: validateProblem,
		})
		if err != nil {
			return s.done(err)
		}

		problemContext, err := s.prompts.Input(ctx, InputConfig{
			Message: promptContext,
			Help:    helpContext,
		})
		if err != nil {
			return s.done(err)
		}

		if _, err := s.RunOnce(ctx, problem, problemContext); err != nil {
			return err
		}

		answer, err := s.prompts.Input(ctx, InputConfig{
			Message:   promptContinue,
			Validator: validateYesNo,
		})
		if err != nil {
			return s.done(err)
		}
		if !yesAnswers[normalizeAnswer(answer)] {
			return s.done(nil)
		}
	}
}

// validateProblem applies the form rules so the prompt repeats instead of
// submitting a problem the form would reject
func validateProblem(answer string) error {
	if _, err := form.ValidateProblem(answer); err != nil {
		var formErr *form.Error
		if errors.As(err, &formErr) {
			return errors.New(formErr.Message)
		}
		return err
	}
	return nil
}

func validateYesNo(answer string) error {
	a := normalizeAnswer(answer)
	if yesAnswers[a] || noAnswers[a] {
		return nil
	}
	return errors.New(msgInvalidYesNo)
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// done prints the farewell. Interrupts and the end of input are a normal exit.
func (s *Session) done(err error) error {
	fmt.Fprintln(s.out, msgFarewell)
	if errors.Is(err, io.EOF) || errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}

func (s *Session) export(v form.View) error {
	f, err := s.formatters.Create(s.exportFormat)
	if err != nil {
		return err
	}

	data, err := f.Format(ResponseFromView(v))
	if err != nil {
		return fmt.Errorf("format results: %w", err)
	}

	if err := os.WriteFile(s.exportPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.exportPath, err)
	}

	fmt.Fprintf(s.out, msgExported, s.exportPath)
	return nil
}

// ResponseFromView rebuilds the API response a results view was rendered from
func ResponseFromView(v form.View) *entity.ScamperResponse {
	resp := &entity.ScamperResponse{
		OriginalProblem: v.ProblemAnalyzed,
		Results:         make([]entity.ScamperResult, 0, len(v.Techniques)),
	}
	for _, t := range v.Techniques {
		resp.Results = append(resp.Results, entity.ScamperResult{
			Technique:   t.Key,
			Ideas:       t.Ideas,
			Explanation: t.Explanation,
		})
	}
	if v.ShowSummary {
		resp.Summary = v.Summary
	}
	return resp
}
