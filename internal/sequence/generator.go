// Package sequence produces the ordered win/loss outcomes a simulation replays.
package sequence

import (
	"math/rand/v2"

	"wager-sim/internal/logging"
	"wager-sim/internal/model"
)

var log = logging.New("sequence")

// Source is the randomness a generator draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a deterministic source for seed. Each run must own its
// own source; *rand.Rand is not safe for concurrent use.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed draws a seed from the runtime-seeded global generator.
func RandomSeed() uint64 {
	return rand.Uint64()
}

// WinCount is the exact number of wins in a sequence: floor(n * winRate / 100).
func WinCount(totalTrades, winRate int) int {
	return totalTrades * winRate / 100
}

// Generate returns totalTrades outcomes (true = win) with exactly
// WinCount(totalTrades, winRate) wins in random order.
//
// Wins are placed by rejection sampling on random indices, then the whole
// sequence is shuffled once more.
func Generate(src Source, totalTrades, winRate int) ([]bool, error) {
	if err := model.ValidateSequence(totalTrades, winRate); err != nil {
		return nil, err
	}

	wins := WinCount(totalTrades, winRate)
	out := make([]bool, totalTrades)

	draws := 0
	for placed := 0; placed < wins; {
		idx := src.IntN(totalTrades)
		draws++
		if out[idx] {
			continue
		}
		out[idx] = true
		placed++
	}

	src.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	log.Debug("Generated outcome sequence", "total_trades", totalTrades, "wins", wins, "draws", draws)
	return out, nil
}

// Count returns the number of wins in outcomes.
func Count(outcomes []bool) int {
	n := 0
	for _, win := range outcomes {
		if win {
			n++
		}
	}
	return n
}
