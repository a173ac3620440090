package form

import (
	"strings"
	"unicode/utf8"

	"github.com/futig/scamper-backend/internal/entity"
)

// ValidateProblem trims the problem text and checks it is long enough to send.
// It returns the trimmed text.
func ValidateProblem(problem string) (string, error) {
	trimmed := strings.TrimSpace(problem)
	if trimmed == "" {
		return "", validationError(entity.MsgFormProblemEmpty)
	}
	if utf8.RuneCountInString(trimmed) < entity.MinProblemLength {
		return "", validationError(entity.MsgFormProblemTooShort)
	}
	return trimmed, nil
}
