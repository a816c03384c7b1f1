package config

import (
	"strings"

	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port          string
	OperatorToken string
	CORSOrigins   []string
	RulesFile     string
	Rules         scoreboard.Rules
	Analysis      AnalysisConfig
	Metrics       MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
// A rules file that cannot be read or parsed is returned as an error alongside
// a config that uses the default rules.
func Load() (Config, error) {
	rulesFile := envOrDefault(envRulesFile, "")
	rules, err := loadRules(rulesFile)

	return Config{
		Port:          envOrDefault(envPort, defaultPort),
		OperatorToken: envOrDefault(envOperatorToken, ""),
		CORSOrigins:   splitList(envOrDefault(envCORSOrigins, defaultCORSOrigins)),
		RulesFile:     rulesFile,
		Rules:         rules,
		Analysis:      loadAnalysis(),
		Metrics:       loadMetrics(),
	}, err
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
