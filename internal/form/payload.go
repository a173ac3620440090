package form

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/futig/scamper-backend/internal/entity"
)

// Payload is a /api/scamper answer after lenient decoding. Only well-formed
// result entries survive; HasResults is false when "results" was missing or
// not an array.
type Payload struct {
	OriginalProblem string
	Results         []Entry
	HasResults      bool
	Summary         string
	Skipped         int
}

// Entry is one well-formed technique block
type Entry struct {
	Technique   entity.Technique
	Explanation string
	Ideas       []string
}

// DecodePayload reads a response body. A body that is valid JSON but not an
// object yields an empty payload; invalid JSON is an error.
func DecodePayload(body []byte) (*Payload, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	p := &Payload{}
	obj, ok := raw.(map[string]any)
	if !ok {
		return p, nil
	}

	p.OriginalProblem = stringField(obj, "original_problem")
	p.Summary = stringField(obj, "summary")

	results, ok := obj["results"].([]any)
	if !ok {
		return p, nil
	}
	p.HasResults = true

	for _, item := range results {
		entry, ok := decodeEntry(item)
		if !ok {
			p.Skipped++
			continue
		}
		p.Results = append(p.Results, entry)
	}

	return p, nil
}

// PayloadFromResponse adapts an in-process response to the same shape the
// form handler gets over HTTP, so both paths render identically.
func PayloadFromResponse(resp *entity.ScamperResponse) (*Payload, error) {
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return DecodePayload(body)
}

func decodeEntry(item any) (Entry, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return Entry{}, false
	}

	technique := techniqueKey(obj["technique"])
	explanation := stringField(obj, "explanation")
	ideas, ok := obj["ideas"].([]any)
	if technique == "" || explanation == "" || !ok {
		return Entry{}, false
	}

	entry := Entry{
		Technique:   entity.ParseTechnique(technique),
		Explanation: explanation,
		Ideas:       make([]string, 0, len(ideas)),
	}
	for _, idea := range ideas {
		entry.Ideas = append(entry.Ideas, ideaText(idea))
	}
	return entry, true
}

// techniqueKey accepts either "substitute" or {"value": "substitute"}
func techniqueKey(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		s, _ := t["value"].(string)
		return strings.TrimSpace(s)
	default:
		return ""
	}
}

func stringField(obj map[string]any, name string) string {
	s, _ := obj[name].(string)
	return s
}

func ideaText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(bytes.TrimSpace(b))
}
