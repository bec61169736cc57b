// Package common converts between token amounts written by people and
// their integer on-chain form.
package common

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// FloatToBigInt converts a float to a big int with specific decimal
// Example:
// - FloatToBigInt(1, 4) = 10000
// - FloatToBigInt(1.234, 4) = 12340
func FloatToBigInt(amount float64, decimal uint64) *big.Int {
	// 9 is our smallest precision, if amount is < 0.000000001 there will be
	// precision loss
	if decimal < 9 {
		return big.NewInt(int64(math.Round(amount * math.Pow10(int(decimal)))))
	}
	result := big.NewInt(int64(math.Round(amount * math.Pow10(9))))
	return result.Mul(result, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimal-9)), nil))
}

// GweiToWei converts Gwei as a float to Wei as a big int
func GweiToWei(n float64) *big.Int {
	return FloatToBigInt(n, 9)
}

// FloatStringToBig parses a decimal amount such as "0.1" into its integer
// form with decimal digits. Digits past decimal are dropped.
func FloatStringToBig(value string, decimal uint64) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(value, "-") {
		return nil, fmt.Errorf("%q is negative", value)
	}
	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	if uint64(len(frac)) > decimal {
		frac = frac[:decimal]
	}
	digits := whole + frac + strings.Repeat("0", int(decimal)-len(frac))
	result, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("couldn't parse %q as an amount", value)
	}
	return result, nil
}

// BigToFloatString is the reverse of FloatStringToBig, without trailing
// zeros:
// - BigToFloatString(1100, 3) = "1.1"
// - BigToFloatString(1100, 2) = "11"
func BigToFloatString(value *big.Int, decimal uint64) string {
	f := new(big.Float).SetPrec(256).SetInt(value)
	power := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(decimal)), nil,
	))
	res := new(big.Float).SetPrec(256).Quo(f, power)
	text := res.Text('f', int(decimal))
	if strings.Contains(text, ".") {
		text = strings.TrimRight(strings.TrimRight(text, "0"), ".")
	}
	return text
}
