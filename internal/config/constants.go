package config

import "time"

const (
	envPort          = "PORT"
	envRulesFile     = "RULES_FILE"
	envOperatorToken = "OPERATOR_TOKEN"
	envCORSOrigins   = "CORS_ALLOWED_ORIGINS"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"

	envAnalysisProvider    = "ANALYSIS_PROVIDER"
	envAnalysisTemperature = "ANALYSIS_TEMPERATURE"
	envAnalysisTimeout     = "ANALYSIS_TIMEOUT"
	envAnalysisInterval    = "ANALYSIS_MIN_INTERVAL"
	envGeminiAPIKey        = "GEMINI_API_KEY"
	envLegacyAPIKey        = "API_KEY"
	envGeminiBaseURL       = "GEMINI_BASE_URL"
	envGeminiModel         = "GEMINI_MODEL"

	defaultPort        = "4000"
	defaultMetricsPort = "9090"
	defaultServiceName = "hoopsboard-service"
	defaultCORSOrigins = "*"

	ProviderGemini  = "gemini"
	ProviderFixture = "fixture"

	defaultGeminiBaseURL       = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel         = "gemini-3-flash-preview"
	defaultAnalysisTemperature = 0.8
	defaultAnalysisTimeout     = 15 * time.Second
	// Spacing between upstream calls; keeps a stuck button from burning quota.
	defaultAnalysisInterval = 5 * time.Second
)
