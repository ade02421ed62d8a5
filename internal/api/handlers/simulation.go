package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"wager-sim/internal/analysis"
	"wager-sim/internal/api/models"
	"wager-sim/internal/backtest"
	"wager-sim/internal/config"
	"wager-sim/internal/logging"
	"wager-sim/internal/model"
	"wager-sim/internal/sequence"
	"wager-sim/internal/store"

	"github.com/gin-gonic/gin"
)

var log = logging.New("api")

// maxRequestBytes bounds the JSON body, which mostly means the outcomes string.
const maxRequestBytes = 8 << 20

// SimulationHandler handles simulation requests
type SimulationHandler struct {
	runs           *store.RunCache
	profileDir     string
	maxTotalTrades int
	engine         *backtest.Engine
}

// NewSimulationHandler creates a new simulation handler.
// maxTotalTrades <= 0 disables the per-request trade limit.
func NewSimulationHandler(runs *store.RunCache, profileDir string, maxTotalTrades int) *SimulationHandler {
	return &SimulationHandler{
		runs:           runs,
		profileDir:     profileDir,
		maxTotalTrades: maxTotalTrades,
		engine:         backtest.New(),
	}
}

// RunSimulation handles POST /api/v1/simulations
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	sim := req.Simulation
	if req.Profile != "" {
		profile, err := h.loadProfile(req.Profile)
		if err != nil {
			if errors.Is(err, config.ErrProfileNotFound) {
				respondError(c, http.StatusNotFound, "PROFILE_NOT_FOUND", err.Error(), nil)
				return
			}
			respondError(c, http.StatusInternalServerError, "PROFILE_ERROR", err.Error(), nil)
			return
		}
		sim = config.MergeSimulation(profile.Simulation, sim)
	}

	params, err := sim.Builder().Build()
	if err != nil {
		respondConfigError(c, err)
		return
	}
	if h.maxTotalTrades > 0 && params.TotalTrades > h.maxTotalTrades {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG",
			fmt.Sprintf("total_trades %d exceeds the server limit of %d", params.TotalTrades, h.maxTotalTrades),
			map[string]interface{}{
				"fields": []model.FieldError{{
					Field:    "total_trades",
					Value:    params.TotalTrades,
					Expected: fmt.Sprintf("must be <= %d", h.maxTotalTrades),
				}},
			})
		return
	}

	var (
		result *backtest.Result
		seed   *uint64
	)
	if req.Outcomes != "" {
		outcomes, err := sequence.Parse(req.Outcomes)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_OUTCOMES", err.Error(), nil)
			return
		}
		result, err = h.engine.Run(params, outcomes)
		if err != nil {
			if errors.Is(err, backtest.ErrSequenceLength) {
				respondError(c, http.StatusBadRequest, "INVALID_OUTCOMES", err.Error(), nil)
				return
			}
			respondConfigError(c, err)
			return
		}
	} else {
		s := sequence.RandomSeed()
		if req.Seed != nil {
			s = *req.Seed
		}
		seed = &s
		result, err = h.engine.Simulate(params, sequence.NewSource(s))
		if err != nil {
			respondConfigError(c, err)
			return
		}
	}

	projection, err := analysis.Project(params)
	if err != nil {
		respondConfigError(c, err)
		return
	}
	// JSON cannot carry ±Inf or NaN, so an overflowing run is reported
	// instead of cached.
	if !result.Summary.Finite() || !projection.Finite() {
		respondError(c, http.StatusUnprocessableEntity, "NON_FINITE_RESULT",
			"balance overflowed float64; lower total_trades or risk_reward_ratio", nil)
		return
	}

	run := &store.Run{
		Seed:       seed,
		Outcomes:   sequence.Format(result.Outcomes()),
		Result:     result,
		Projection: projection,
	}
	id := h.runs.Put(run)
	log.Info("Simulation finished", "id", id, "total_trades", params.TotalTrades, "final_balance", result.Summary.FinalBalance)

	c.JSON(http.StatusOK, buildResponse(run, req.Options.IncludeLedger))
}

// GetSimulation handles GET /api/v1/simulations/:id
func (h *SimulationHandler) GetSimulation(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, buildResponse(run, false))
}

// GetLedger handles GET /api/v1/simulations/:id/ledger
func (h *SimulationHandler) GetLedger(c *gin.Context) {
	run, ok := h.lookup(c)
	if !ok {
		return
	}

	var q models.LedgerQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	if q.From < 0 || q.Limit < 0 {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "from and limit must be >= 0", nil)
		return
	}

	ledger := run.Result.Ledger
	from := min(q.From, len(ledger))
	to := len(ledger)
	if q.Limit > 0 {
		to = min(from+q.Limit, len(ledger))
	}
	page := ledger[from:to]

	switch q.Format {
	case "", "json":
		c.JSON(http.StatusOK, models.LedgerResponse{
			ID:     run.ID,
			Total:  len(ledger),
			From:   from,
			Ledger: page,
		})
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="`+run.ID+`.csv"`)
		c.Status(http.StatusOK)
		if err := backtest.WriteLedger(c.Writer, page); err != nil {
			_ = c.Error(err)
		}
	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be json or csv", nil)
	}
}

// Helper methods

func (h *SimulationHandler) lookup(c *gin.Context) (*store.Run, bool) {
	id := c.Param("id")
	run, err := h.runs.Get(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "simulation "+id+" not found or expired", nil)
		return nil, false
	}
	return run, true
}

func (h *SimulationHandler) loadProfile(id string) (*config.Profile, error) {
	path, err := config.ProfilePath(h.profileDir, id)
	if err != nil {
		return nil, err
	}
	return config.LoadProfile(path)
}

func buildResponse(run *store.Run, includeLedger bool) models.SimulationResponse {
	resp := models.SimulationResponse{
		ID:         run.ID,
		Status:     "completed",
		CreatedAt:  run.CreatedAt,
		Seed:       run.Seed,
		Outcomes:   run.Outcomes,
		Params:     run.Result.Params,
		Summary:    run.Result.Summary,
		Projection: run.Projection,
	}
	if includeLedger {
		resp.Ledger = run.Result.Ledger
	}
	return resp
}

func respondConfigError(c *gin.Context, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error(), map[string]interface{}{
			"fields": verr.Fields,
		})
		return
	}
	respondError(c, http.StatusInternalServerError, "SIMULATION_ERROR", err.Error(), nil)
}

func respondError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}
