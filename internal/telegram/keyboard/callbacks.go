package keyboard

import (
	"fmt"
	"strings"
)

// Callback actions
const (
	ActionFlow     = "action"
	ActionDownload = "dl"
	ActionConfirm  = "confirm"
)

// Values of ActionFlow and ActionConfirm
const (
	FlowStart       = "start"
	FlowSkipContext = "skip_context"
	FlowAgain       = "again"
	FlowFinish      = "finish"

	ConfirmCancel   = "cancel"
	ConfirmContinue = "continue"
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string // one of the Action* constants
	Value  string // The parameter
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}
