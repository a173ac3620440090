package entity

// GenerationParams tunes a single completion request
type GenerationParams struct {
	Temperature float32
	MaxTokens   int
}

// ScamperRequest is the payload the form handler posts to /api/scamper
type ScamperRequest struct {
	Problem string `json:"problem"`
	Context string `json:"context"`
}
