package balance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Status classifies how much of a commitment's nominal value has been paid.
type Status int

const (
	StatusFull Status = iota
	StatusPartial
	StatusExhausted
	StatusOverdrawn
)

var statusNames = map[Status]string{
	StatusFull:      "FULL",
	StatusPartial:   "PARTIAL",
	StatusExhausted: "EXHAUSTED",
	StatusOverdrawn: "OVERDRAWN",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus resolves a status name as used in API filters and stored rows.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", name)
}

// Classify derives the status from total paid against the nominal value.
// A commitment with no payments is FULL even when its nominal value is zero.
func Classify(totalPaid, nominal decimal.Decimal) Status {
	switch {
	case totalPaid.IsZero():
		return StatusFull
	case totalPaid.LessThan(nominal):
		return StatusPartial
	case totalPaid.Equal(nominal):
		return StatusExhausted
	default:
		return StatusOverdrawn
	}
}
