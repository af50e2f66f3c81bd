package constants

// DummyAPIKey is sent to OpenAI-compatible servers (e.g. local gateways
// fronting a self-hosted model) that expect an Authorization header but do
// not validate the token.
const DummyAPIKey = "not-needed"
