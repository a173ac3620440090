package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/scamper-backend/internal/entity"
)

// Error is a rejected request together with the message returned to the client
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalid(err error, message string) *Error {
	return &Error{Message: message, Err: err}
}

// Validator checks incoming API requests
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateScamperRequest decodes a POST /api/scamper body. Fields are checked
// on the raw JSON so that wrong types get their own message instead of a
// decoding error. Problem and context come back trimmed; an empty context is
// dropped.
func (v *Validator) ValidateScamperRequest(body []byte) (*entity.UserInput, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, invalid(fmt.Errorf("%w: %w", entity.ErrInvalidFormat, err), entity.MsgInvalidRequestBody)
	}

	data, ok := raw.(map[string]any)
	if !ok || len(data) == 0 {
		return nil, invalid(fmt.Errorf("%w: problem", entity.ErrMissingField), entity.MsgProblemRequired)
	}

	rawProblem, ok := data["problem"]
	if !ok {
		return nil, invalid(fmt.Errorf("%w: problem", entity.ErrMissingField), entity.MsgProblemRequired)
	}

	problem, ok := rawProblem.(string)
	if !ok {
		return nil, invalid(fmt.Errorf("%w: problem must be a string", entity.ErrInvalidParameter), entity.MsgProblemInvalid)
	}
	problem = strings.TrimSpace(problem)
	if utf8.RuneCountInString(problem) < entity.MinProblemLength {
		return nil, invalid(entity.ErrProblemTooShort, entity.MsgProblemInvalid)
	}

	input := &entity.UserInput{Problem: problem}

	switch ctx := data["context"].(type) {
	case nil:
	case string:
		if trimmed := strings.TrimSpace(ctx); trimmed != "" {
			input.Context = &trimmed
		}
	default:
		return nil, invalid(fmt.Errorf("%w: context must be a string", entity.ErrInvalidParameter), entity.MsgContextInvalid)
	}

	return input, nil
}
