package sequence

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidOutcomes = errors.New("invalid outcome sequence")

// Parse reads a fixed outcome sequence such as "WLWL" or "1,0,1,0".
// W/1 is a win, L/0 a loss; case, whitespace and commas are ignored.
func Parse(s string) ([]bool, error) {
	out := make([]bool, 0, len(s))
	for i, r := range s {
		switch r {
		case 'W', 'w', '1':
			out = append(out, true)
		case 'L', 'l', '0':
			out = append(out, false)
		case ' ', '\t', '\n', '\r', ',':
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidOutcomes, r, i)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidOutcomes)
	}
	return out, nil
}

// Format renders outcomes as a W/L string.
func Format(outcomes []bool) string {
	var sb strings.Builder
	sb.Grow(len(outcomes))
	for _, win := range outcomes {
		if win {
			sb.WriteByte('W')
		} else {
			sb.WriteByte('L')
		}
	}
	return sb.String()
}
