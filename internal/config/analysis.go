package config

import "time"

// AnalysisConfig controls the commentary generator.
type AnalysisConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
	MinInterval time.Duration
}

func loadAnalysis() AnalysisConfig {
	apiKey := envOrDefault(envGeminiAPIKey, envOrDefault(envLegacyAPIKey, ""))

	provider := envOrDefault(envAnalysisProvider, "")
	if provider == "" {
		provider = ProviderFixture
		if apiKey != "" {
			provider = ProviderGemini
		}
	}

	return AnalysisConfig{
		Provider:    provider,
		APIKey:      apiKey,
		BaseURL:     envOrDefault(envGeminiBaseURL, defaultGeminiBaseURL),
		Model:       envOrDefault(envGeminiModel, defaultGeminiModel),
		Temperature: floatEnvOrDefault(envAnalysisTemperature, defaultAnalysisTemperature),
		Timeout:     durationEnvOrDefault(envAnalysisTimeout, defaultAnalysisTimeout),
		MinInterval: durationEnvOrDefault(envAnalysisInterval, defaultAnalysisInterval),
	}
}
