package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		paid    string
		nominal string
		want    Status
	}{
		{"0", "1000", StatusFull},
		{"0", "0", StatusFull},
		{"500", "1000", StatusPartial},
		{"1000", "1000", StatusExhausted},
		{"1000.00", "1000", StatusExhausted}, // scale-insensitive equality
		{"1250", "1000", StatusOverdrawn},
	}

	for _, tc := range cases {
		got := Classify(decimal.RequireFromString(tc.paid), decimal.RequireFromString(tc.nominal))
		assert.Equal(t, tc.want, got, "paid=%s nominal=%s", tc.paid, tc.nominal)
	}
}

func TestParseStatus(t *testing.T) {
	for _, name := range []string{"FULL", "PARTIAL", "EXHAUSTED", "OVERDRAWN"} {
		s, err := ParseStatus(name)
		assert.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	_, err := ParseStatus("DRAINED")
	assert.Error(t, err)
}
