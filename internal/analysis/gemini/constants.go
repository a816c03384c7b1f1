package gemini

import "time"

const (
	providerName       = "gemini"
	defaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel       = "gemini-3-flash-preview"
	defaultHTTPTimeout = 20 * time.Second
	apiKeyHeader       = "x-goog-api-key"
	maxErrorBody       = 512
)
