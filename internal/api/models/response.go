package models

import (
	"time"

	"wager-sim/internal/analysis"
	"wager-sim/internal/backtest"
	"wager-sim/internal/model"
)

// SimulationResponse represents the response from a simulation run
type SimulationResponse struct {
	ID         string                 `json:"id"`
	Status     string                 `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
	Seed       *uint64                `json:"seed,omitempty"` // absent when outcomes were fixed
	Outcomes   string                 `json:"outcomes"`
	Params     model.Params           `json:"params"`
	Summary    backtest.Summary       `json:"summary"`
	Projection analysis.Projection    `json:"projection"`
	Ledger     []backtest.TradeRecord `json:"ledger,omitempty"`
}

// LedgerResponse represents a page of a cached run's ledger
type LedgerResponse struct {
	ID     string                 `json:"id"`
	Total  int                    `json:"total"`
	From   int                    `json:"from"`
	Ledger []backtest.TradeRecord `json:"ledger"`
}

// ProfileInfo represents a parameter preset with its projection
type ProfileInfo struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Rank        int                 `json:"rank"`
	Params      model.Params        `json:"params"`
	Projection  analysis.Projection `json:"projection"`
}

// ParameterInfo describes a simulation parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "int", "float", "bool"
	Required    bool        `json:"required"`
	Description string      `json:"description"`
	Range       string      `json:"range"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
