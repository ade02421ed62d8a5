package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"wager-sim/internal/model"
	"wager-sim/internal/sequence"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load simulation parameters from a preset (e.g. examples/profiles/*.yaml).
	// Fields set in Simulation override the preset.
	ProfileFile string `yaml:"profile_file"`
	// Seed fixes the random source; a fresh seed is drawn when absent.
	Seed *uint64 `yaml:"seed"`
	// Outcomes replays a fixed W/L sequence instead of generating one.
	Outcomes   string           `yaml:"outcomes"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// SimulationConfig mirrors model.Params with every field optional, so that
// an absent field can be told apart from an explicit zero.
type SimulationConfig struct {
	InitialBalance  *int     `yaml:"initial_balance" json:"initial_balance,omitempty"`
	WinRate         *int     `yaml:"win_rate" json:"win_rate,omitempty"`
	RiskRewardRatio *float64 `yaml:"risk_reward_ratio" json:"risk_reward_ratio,omitempty"`
	TotalTrades     *int     `yaml:"total_trades" json:"total_trades,omitempty"`
	Compounding     *bool    `yaml:"compounding" json:"compounding,omitempty"`
	PlatformFeeRate *float64 `yaml:"platform_fee_rate" json:"platform_fee_rate,omitempty"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for applying command-line overrides before validation.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.ProfileFile != "" {
		profilePath := c.ProfileFile
		if !filepath.IsAbs(profilePath) {
			// Prefer paths relative to the config file directory, but fall back
			// to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), profilePath)
			if _, err := os.Stat(cand); err == nil {
				profilePath = cand
			}
		}
		p, err := LoadProfile(profilePath)
		if err != nil {
			return nil, err
		}
		c.Simulation = MergeSimulation(p.Simulation, c.Simulation)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	params, err := c.Params()
	if err != nil {
		return err
	}
	outcomes, err := c.FixedOutcomes()
	if err != nil {
		return err
	}
	if outcomes != nil && len(outcomes) != params.TotalTrades {
		return fmt.Errorf("outcomes has %d entries but total_trades is %d", len(outcomes), params.TotalTrades)
	}
	return nil
}

// Params builds validated model params from the simulation block.
func (c *Config) Params() (model.Params, error) {
	return c.Simulation.Builder().Build()
}

// FixedOutcomes parses Outcomes, returning nil when none were configured.
func (c *Config) FixedOutcomes() ([]bool, error) {
	if c.Outcomes == "" {
		return nil, nil
	}
	return sequence.Parse(c.Outcomes)
}

// Builder feeds the fields that are set into a model.Builder. Unset required
// fields surface as "is required" from Build.
func (s SimulationConfig) Builder() *model.Builder {
	b := model.NewBuilder()
	if s.InitialBalance != nil {
		b.InitialBalance(*s.InitialBalance)
	}
	if s.WinRate != nil {
		b.WinRate(*s.WinRate)
	}
	if s.RiskRewardRatio != nil {
		b.RiskRewardRatio(*s.RiskRewardRatio)
	}
	if s.TotalTrades != nil {
		b.TotalTrades(*s.TotalTrades)
	}
	if s.Compounding != nil {
		b.Compounding(*s.Compounding)
	}
	if s.PlatformFeeRate != nil {
		b.PlatformFeeRate(*s.PlatformFeeRate)
	}
	return b
}

// MergeSimulation overlays set fields from override onto base.
// This is used when loading a profile and then applying explicit overrides.
func MergeSimulation(base, override SimulationConfig) SimulationConfig {
	out := base
	if override.InitialBalance != nil {
		out.InitialBalance = override.InitialBalance
	}
	if override.WinRate != nil {
		out.WinRate = override.WinRate
	}
	if override.RiskRewardRatio != nil {
		out.RiskRewardRatio = override.RiskRewardRatio
	}
	if override.TotalTrades != nil {
		out.TotalTrades = override.TotalTrades
	}
	if override.Compounding != nil {
		out.Compounding = override.Compounding
	}
	if override.PlatformFeeRate != nil {
		out.PlatformFeeRate = override.PlatformFeeRate
	}
	return out
}

// FromParams is the inverse of Builder for fully specified params.
func FromParams(p model.Params) SimulationConfig {
	return SimulationConfig{
		InitialBalance:  &p.InitialBalance,
		WinRate:         &p.WinRate,
		RiskRewardRatio: &p.RiskRewardRatio,
		TotalTrades:     &p.TotalTrades,
		Compounding:     &p.Compounding,
		PlatformFeeRate: &p.PlatformFeeRate,
	}
}
