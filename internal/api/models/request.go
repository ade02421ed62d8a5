package models

import "wager-sim/internal/config"

// SimulationRequest represents the request body for running a simulation
type SimulationRequest struct {
	// Profile is a preset ID from the profile directory (e.g. "1_baseline").
	// Fields set in Simulation override it.
	Profile    string                  `json:"profile,omitempty"`
	Seed       *uint64                 `json:"seed,omitempty"`
	Outcomes   string                  `json:"outcomes,omitempty"` // fixed W/L sequence, bypasses randomness
	Simulation config.SimulationConfig `json:"simulation"`
	Options    SimulationOptions       `json:"options,omitempty"`
}

// SimulationOptions contains optional response shaping
type SimulationOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// LedgerQuery is bound from GET /simulations/:id/ledger query parameters
type LedgerQuery struct {
	Format string `form:"format,omitempty"` // "json" (default) or "csv"
	From   int    `form:"from,omitempty"`
	Limit  int    `form:"limit,omitempty"` // 0 = all
}
