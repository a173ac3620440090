package cli

import (
	"context"
	"errors"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned by a PromptDriver when the user interrupts a prompt
var ErrAborted = errors.New("prompt aborted")

// InputConfig configures a single-line text prompt
type InputConfig struct {
	Message string
	Help    string
	// Validator rejects an answer with the message to show; the prompt is
	// asked again until it passes
	Validator func(string) error
}

// PromptDriver asks the user for input. The survey driver talks to the
// terminal; tests script the answers.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
}

type surveyDriver struct {
	stdio terminal.Stdio
}

// NewSurveyDriver prompts on the given terminal streams
func NewSurveyDriver(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) PromptDriver {
	return &surveyDriver{stdio: terminal.Stdio{In: in, Out: out, Err: errOut}}
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
	}
	opts := []survey.AskOpt{survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err)}
	if cfg.Validator != nil {
		validate := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}

	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
