package model

// Outcome is a human-friendly label for one trade result.
// Keep these values stable; they are intended for CSV output.
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
)

func OutcomeFromWin(win bool) Outcome {
	if win {
		return OutcomeWin
	}
	return OutcomeLoss
}

func (o Outcome) IsWin() bool { return o == OutcomeWin }
