package balance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

/*
ParseMoney converts a monetary string from the portal into an exact decimal.
The portal exports use the Brazilian format (thousands separator ".", decimal
separator ","), optionally prefixed with "R$"; API responses use plain
"1234.56". Both are accepted. Sums over these values must never go through
floating point, so the result is a decimal.Decimal.
*/
func ParseMoney(raw string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.ReplaceAll(raw, "R$", ""))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty monetary value")
	}

	// "- 75,88" style negatives appear in portal exports
	if strings.HasPrefix(clean, "-") {
		clean = "-" + strings.TrimSpace(strings.TrimPrefix(clean, "-"))
	}

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	val, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable monetary value %q", raw)
	}
	return val, nil
}
