package main

// SummarizeRequest is the request payload for the /api/summarize endpoint.
// APIKey optionally carries a caller-supplied Gemini key for ad-hoc testing;
// it overrides the server-side key for that request only.
type SummarizeRequest struct {
	Text   string `json:"text"`
	APIKey string `json:"apiKey,omitempty"`
}

// SummarizeResponse is the response payload for the /api/summarize endpoint.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}
