package handlers

import (
	"net/http"

	"wager-sim/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ParameterHandler describes the accepted simulation parameters
type ParameterHandler struct{}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler() *ParameterHandler {
	return &ParameterHandler{}
}

// ListParameters handles GET /api/v1/parameters
func (h *ParameterHandler) ListParameters(c *gin.Context) {
	parameters := []models.ParameterInfo{
		{
			Name:        "initial_balance",
			Type:        "int",
			Required:    true,
			Description: "Starting balance in currency units",
			Range:       "> 0",
		},
		{
			Name:        "win_rate",
			Type:        "int",
			Required:    true,
			Description: "Percentage of trades that win; the win count is floor(total_trades * win_rate / 100)",
			Range:       "[0, 100]",
		},
		{
			Name:        "risk_reward_ratio",
			Type:        "float",
			Required:    true,
			Description: "Gain on a win as a multiple of the 1% loss on a loss",
			Range:       ">= 0",
		},
		{
			Name:        "total_trades",
			Type:        "int",
			Required:    true,
			Description: "Number of trades to simulate",
			Range:       ">= 1",
		},
		{
			Name:        "compounding",
			Type:        "bool",
			Description: "Size each position from the current balance instead of the initial balance",
			Range:       "true | false",
			Default:     true,
		},
		{
			Name:        "platform_fee_rate",
			Type:        "float",
			Description: "Fee charged on every trade as a percent of position size",
			Range:       ">= 0",
			Default:     0.0,
		},
	}

	c.JSON(http.StatusOK, gin.H{"parameters": parameters})
}
