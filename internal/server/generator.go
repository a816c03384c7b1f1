package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/hoopsboard-service/internal/analysis"
	"github.com/preston-bernstein/hoopsboard-service/internal/analysis/fixture"
	"github.com/preston-bernstein/hoopsboard-service/internal/analysis/gemini"
	"github.com/preston-bernstein/hoopsboard-service/internal/config"
	"github.com/preston-bernstein/hoopsboard-service/internal/logging"
)

// generatorFactory assembles the commentary generator with the shared pacing wrapper.
type generatorFactory struct {
	logger     *slog.Logger
	httpClient *http.Client
}

func newGeneratorFactory(logger *slog.Logger, httpClient *http.Client) generatorFactory {
	return generatorFactory{logger: logger, httpClient: httpClient}
}

// build returns the paced generator and the provider name used in logs and metrics.
func (f generatorFactory) build(cfg config.AnalysisConfig) (analysis.Generator, string) {
	base, name := selectGenerator(cfg, f.logger, f.httpClient)
	return analysis.NewRateLimited(base, name, cfg.MinInterval, f.logger), name
}

func selectGenerator(cfg config.AnalysisConfig, logger *slog.Logger, httpClient *http.Client) (analysis.Generator, string) {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderFixture, "":
		return fixture.New(), config.ProviderFixture
	case config.ProviderGemini:
		if cfg.APIKey == "" {
			logging.Warn(logger, "gemini selected without an api key; analysis will use the fallback text")
		}
		return gemini.NewClient(gemini.Config{
			BaseURL:     cfg.BaseURL,
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			HTTPClient:  httpClient,
		}), config.ProviderGemini
	default:
		logging.Warn(logger, "unknown analysis provider, falling back to fixture",
			slog.String(logging.FieldProvider, cfg.Provider),
		)
		return fixture.New(), config.ProviderFixture
	}
}

// normalizeProviderName returns a lower-cased provider name, deriving it from
// the generator when not configured.
func normalizeProviderName(raw string, gen analysis.Generator) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if gen != nil {
		return strings.ToLower(fmt.Sprintf("%T", gen))
	}
	return "provider"
}
