package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/hoopsboard-service/internal/domain/scoreboard"
	"github.com/preston-bernstein/hoopsboard-service/internal/timeutil"
)

// rulesFile is the on-disk shape of RULES_FILE. Missing keys keep their defaults.
type rulesFile struct {
	PeriodLengthSeconds   float64 `yaml:"period_length_seconds"`
	ShotClockSeconds      float64 `yaml:"shot_clock_seconds"`
	ShortShotClockSeconds float64 `yaml:"short_shot_clock_seconds"`
	BonusFouls            int     `yaml:"bonus_fouls"`
	DoubleBonusFouls      int     `yaml:"double_bonus_fouls"`
	InitialTimeouts       int     `yaml:"initial_timeouts"`
}

func loadRules(path string) (scoreboard.Rules, error) {
	if path == "" {
		return scoreboard.DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return scoreboard.DefaultRules(), fmt.Errorf("failed to read rules file: %w", err)
	}
	return parseRules(data)
}

func parseRules(data []byte) (scoreboard.Rules, error) {
	var raw rulesFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return scoreboard.DefaultRules(), fmt.Errorf("failed to parse rules file: %w", err)
	}

	rules := scoreboard.Rules{
		PeriodLength:     timeutil.FromSeconds(raw.PeriodLengthSeconds),
		ShotClock:        timeutil.FromSeconds(raw.ShotClockSeconds),
		ShortShotClock:   timeutil.FromSeconds(raw.ShortShotClockSeconds),
		BonusFouls:       raw.BonusFouls,
		DoubleBonusFouls: raw.DoubleBonusFouls,
		InitialTimeouts:  raw.InitialTimeouts,
	}.Normalize()
	if err := rules.Validate(); err != nil {
		return scoreboard.DefaultRules(), fmt.Errorf("invalid rules file: %w", err)
	}
	return rules, nil
}
