package handlers

import (
	"net/http"

	"wager-sim/internal/analysis"
	"wager-sim/internal/api/models"
	"wager-sim/internal/config"
	"wager-sim/internal/model"

	"github.com/gin-gonic/gin"
)

// ProfileHandler handles parameter preset requests
type ProfileHandler struct {
	dir string
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(dir string) *ProfileHandler {
	return &ProfileHandler{dir: dir}
}

// ListProfiles handles GET /api/v1/profiles
// Presets are ranked by projected return; unparseable or invalid files are skipped.
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, skipped, err := config.ListProfiles(h.dir)
	if err != nil {
		log.Warn("Failed to read profile directory", "dir", h.dir, "error", err)
		c.JSON(http.StatusOK, gin.H{"profiles": []models.ProfileInfo{}})
		return
	}
	for path, err := range skipped {
		log.Warn("Skipping profile", "path", path, "error", err)
	}

	byID := make(map[string]model.Params, len(profiles))
	meta := make(map[string]config.Profile, len(profiles))
	for _, p := range profiles {
		params, err := p.Simulation.Builder().Build()
		if err != nil {
			log.Warn("Skipping profile", "id", p.ID, "error", err)
			continue
		}
		byID[p.ID] = params
		meta[p.ID] = p
	}

	ranked, rejected := analysis.RankByProjectedReturn(byID)
	for id, err := range rejected {
		log.Warn("Skipping profile", "id", id, "error", err)
	}

	infos := make([]models.ProfileInfo, 0, len(ranked))
	for i, r := range ranked {
		infos = append(infos, models.ProfileInfo{
			ID:          r.ID,
			Name:        meta[r.ID].Name,
			Description: meta[r.ID].Description,
			Rank:        i + 1,
			Params:      r.Params,
			Projection:  r.Projection,
		})
	}

	log.Debug("Listing profiles", "count", len(infos))
	c.JSON(http.StatusOK, gin.H{"profiles": infos})
}
