package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wager-sim/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const baselineProfile = `
profile:
  name: Baseline
  description: test preset
simulation:
  initial_balance: 1000
  win_rate: 50
  risk_reward_ratio: 2.5
  total_trades: 100
  compounding: true
  platform_fee_rate: 0.1
`

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sim.yaml", `
seed: 7
simulation:
  initial_balance: 2000
  win_rate: 40
  risk_reward_ratio: 3
  total_trades: 50
  compounding: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(7), *cfg.Seed)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, model.Params{
		InitialBalance:  2000,
		WinRate:         40,
		RiskRewardRatio: 3,
		TotalTrades:     50,
		Compounding:     false,
		PlatformFeeRate: 0,
	}, p)
}

func TestLoad_DefaultsCompounding(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sim.yaml", `
simulation:
  initial_balance: 100
  win_rate: 10
  risk_reward_ratio: 1
  total_trades: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	p, err := cfg.Params()
	require.NoError(t, err)
	assert.True(t, p.Compounding)
	assert.Nil(t, cfg.Seed)
}

func TestLoad_ProfileMergedUnderOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "profiles/base.yaml", baselineProfile)
	path := writeFile(t, dir, "sim.yaml", `
profile_file: profiles/base.yaml
simulation:
  total_trades: 20
  compounding: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	p, err := cfg.Params()
	require.NoError(t, err)

	assert.Equal(t, 1000, p.InitialBalance)
	assert.Equal(t, 50, p.WinRate)
	assert.Equal(t, 2.5, p.RiskRewardRatio)
	assert.Equal(t, 20, p.TotalTrades, "explicit field overrides the profile")
	assert.False(t, p.Compounding, "explicit false overrides the profile's true")
	assert.Equal(t, 0.1, p.PlatformFeeRate)
}

func TestLoad_MissingProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sim.yaml", "profile_file: nope.yaml\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestLoad_ReportsMissingAndInvalidFields(t *testing.T) {
	dir := t.TempDir()
	missing := writeFile(t, dir, "missing.yaml", "simulation:\n  initial_balance: 1000\n")

	_, err := Load(missing)
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)

	invalid := writeFile(t, dir, "invalid.yaml", `
simulation:
  initial_balance: 1000
  win_rate: 150
  risk_reward_ratio: 1
  total_trades: 10
`)
	_, err = Load(invalid)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "win_rate=150")
}

func TestLoad_FixedOutcomes(t *testing.T) {
	dir := t.TempDir()
	ok := writeFile(t, dir, "ok.yaml", `
outcomes: "WLWL"
simulation: {initial_balance: 1000, win_rate: 50, risk_reward_ratio: 2, total_trades: 4}
`)
	cfg, err := Load(ok)
	require.NoError(t, err)
	outcomes, err := cfg.FixedOutcomes()
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false}, outcomes)

	short := writeFile(t, dir, "short.yaml", `
outcomes: "WL"
simulation: {initial_balance: 1000, win_rate: 50, risk_reward_ratio: 2, total_trades: 4}
`)
	_, err = Load(short)
	assert.ErrorContains(t, err, "outcomes has 2 entries but total_trades is 4")
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "simulation: [1, 2\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse")
}

func TestMergeSimulation(t *testing.T) {
	one, two := 1, 2
	yes, no := true, false

	base := SimulationConfig{InitialBalance: &one, Compounding: &yes}
	override := SimulationConfig{InitialBalance: &two, Compounding: &no}

	out := MergeSimulation(base, override)
	assert.Equal(t, 2, *out.InitialBalance)
	assert.False(t, *out.Compounding)
	assert.Nil(t, out.WinRate)

	kept := MergeSimulation(base, SimulationConfig{})
	assert.Equal(t, 1, *kept.InitialBalance)
}

func TestFromParams_RoundTrips(t *testing.T) {
	p := model.Params{InitialBalance: 10, WinRate: 20, RiskRewardRatio: 1.5, TotalTrades: 5, Compounding: false, PlatformFeeRate: 0.2}

	got, err := FromParams(p).Builder().Build()
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestServerEnv(t *testing.T) {
	vars := map[string]string{
		"API_PORT":              "9090",
		"API_ENV":               "production",
		"PROFILE_DIR":           "/srv/profiles",
		"RUN_CACHE_TTL":         "15m",
		"CORS_ALLOWED_ORIGINS":  "https://a.example, https://b.example,",
		"MAX_TOTAL_TRADES":      "5000",
		"RUN_CACHE_MAX_ENTRIES": "20",
	}
	env := serverEnv(func(k string) string { return vars[k] })

	assert.Equal(t, "9090", env.Port)
	assert.True(t, env.Production)
	assert.Equal(t, "/srv/profiles", env.ProfileDir)
	assert.Equal(t, 15*time.Minute, env.RunCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, env.AllowedOrigins)
	assert.Equal(t, 5000, env.MaxTotalTrades)
	assert.Equal(t, 20, env.RunCacheMaxEntries)

	defaults := serverEnv(func(string) string { return "" })
	assert.Equal(t, DefaultPort, defaults.Port)
	assert.False(t, defaults.Production)
	assert.Equal(t, DefaultRunCacheTTL, defaults.RunCacheTTL)
	assert.Equal(t, []string{"*"}, defaults.AllowedOrigins)
	assert.Equal(t, DefaultMaxTotalTrades, defaults.MaxTotalTrades)
	assert.Equal(t, DefaultRunCacheMaxEntries, defaults.RunCacheMaxEntries)

	bad := serverEnv(func(k string) string {
		switch k {
		case "RUN_CACHE_TTL":
			return "soon"
		case "MAX_TOTAL_TRADES":
			return "-3"
		}
		return ""
	})
	assert.Equal(t, DefaultRunCacheTTL, bad.RunCacheTTL)
	assert.Equal(t, DefaultMaxTotalTrades, bad.MaxTotalTrades)
}
