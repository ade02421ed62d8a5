package analysis

import (
	"errors"
	"sort"

	"wager-sim/internal/model"
)

var ErrNonFinite = errors.New("projection overflows float64")

type RankedProfile struct {
	ID     string
	Params model.Params
	Projection
}

// RankByProjectedReturn projects every entry and sorts descending by
// ProjectedReturnPct (ties by ID). Entries with invalid params or an
// overflowing projection are returned in rejected instead.
func RankByProjectedReturn(byID map[string]model.Params) (ranked []RankedProfile, rejected map[string]error) {
	ranked = make([]RankedProfile, 0, len(byID))
	rejected = map[string]error{}
	for id, p := range byID {
		proj, err := Project(p)
		if err != nil {
			rejected[id] = err
			continue
		}
		if !proj.Finite() {
			rejected[id] = ErrNonFinite
			continue
		}
		ranked = append(ranked, RankedProfile{ID: id, Params: p, Projection: proj})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].ProjectedReturnPct != ranked[j].ProjectedReturnPct {
			return ranked[i].ProjectedReturnPct > ranked[j].ProjectedReturnPct
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked, rejected
}
