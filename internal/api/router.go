package api

import (
	"net/http"

	"wager-sim/internal/api/handlers"
	"wager-sim/internal/api/middleware"
	"wager-sim/internal/api/models"
	"wager-sim/internal/store"

	"github.com/gin-gonic/gin"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	ProfileDir     string
	AllowedOrigins []string
	Runs           *store.RunCache
	// MaxTotalTrades bounds total_trades per simulation request; <= 0 is unlimited.
	MaxTotalTrades int
}

// NewRouter wires middleware and every /api/v1 route.
func NewRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()

	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(opts.AllowedOrigins))

	simulationHandler := handlers.NewSimulationHandler(opts.Runs, opts.ProfileDir, opts.MaxTotalTrades)
	profileHandler := handlers.NewProfileHandler(opts.ProfileDir)
	parameterHandler := handlers.NewParameterHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cached_runs": opts.Runs.Len()})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulations", simulationHandler.RunSimulation)
		api.GET("/simulations/:id", simulationHandler.GetSimulation)
		api.GET("/simulations/:id/ledger", simulationHandler.GetLedger)

		api.GET("/profiles", profileHandler.ListProfiles)
		api.GET("/parameters", parameterHandler.ListParameters)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: "no route for " + c.Request.Method + " " + c.Request.URL.Path,
			},
		})
	})

	return router
}
