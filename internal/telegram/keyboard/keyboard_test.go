package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	data, err := ParseCallback(EncodeCallback(ActionDownload, "pdf"))
	require.NoError(t, err)
	assert.Equal(t, &CallbackData{Action: ActionDownload, Value: "pdf"}, data)

	// only the first colon separates
	data, err = ParseCallback("action:a:b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", data.Value)

	for _, bad := range []string{"", "start", ":x"} {
		_, err := ParseCallback(bad)
		assert.Error(t, err, bad)
	}
}

func TestResultKeyboard_CallbacksParse(t *testing.T) {
	kb := NewBuilder().ResultKeyboard()
	require.Len(t, kb.InlineKeyboard, 2)

	var actions []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			require.NotNil(t, btn.CallbackData)
			data, err := ParseCallback(*btn.CallbackData)
			require.NoError(t, err)
			actions = append(actions, data.Action+"="+data.Value)
		}
	}

	assert.Equal(t, []string{
		"dl=markdown", "dl=pdf", "dl=docx",
		"action=again", "action=finish",
	}, actions)
}
