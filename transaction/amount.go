package transaction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Amounts travel the wire as exact decimal strings; locally they are
// compared in fixed point at AmountDecimals fractional digits. The
// original string is what gets hashed and signed, never a reformatted
// value.
const AmountDecimals = 6

var scaleFactor = uint256.NewInt(1_000_000)

var (
	ErrMalformedAmount = errors.New("amount: not a decimal string")
	ErrAmountPrecision = fmt.Errorf("amount: more than %d fractional digits", AmountDecimals)
)

// ParseAmount converts a decimal string into scaled fixed point. Negative
// values and excess precision are rejected outright; "12.50" parses to
// 12500000. The empty string and lone separators are malformed.
func ParseAmount(s string) (*uint256.Int, error) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return nil, ErrMalformedAmount
	}
	if whole == "" {
		whole = "0"
	}
	if hasFrac && frac == "" {
		return nil, ErrMalformedAmount
	}
	if len(frac) > AmountDecimals {
		return nil, ErrAmountPrecision
	}
	for _, part := range []string{whole, frac} {
		for _, c := range part {
			if c < '0' || c > '9' {
				return nil, ErrMalformedAmount
			}
		}
	}

	wholeVal, err := uint256.FromDecimal(whole)
	if err != nil {
		return nil, ErrMalformedAmount
	}

	scaled := new(uint256.Int)
	if _, overflow := scaled.MulOverflow(wholeVal, scaleFactor); overflow {
		return nil, ErrMalformedAmount
	}

	if frac != "" {
		padded := frac + strings.Repeat("0", AmountDecimals-len(frac))
		fracVal, err := uint256.FromDecimal(padded)
		if err != nil {
			return nil, ErrMalformedAmount
		}
		if _, overflow := scaled.AddOverflow(scaled, fracVal); overflow {
			return nil, ErrMalformedAmount
		}
	}
	return scaled, nil
}

// AmountWithinBalance reports whether amount (decimal string) is positive
// and no larger than balance (decimal string). A malformed balance is
// treated as zero: the backend remains the authority and will reject the
// submission anyway.
func AmountWithinBalance(amount, balance string) (bool, error) {
	amt, err := ParseAmount(amount)
	if err != nil {
		return false, err
	}
	if amt.IsZero() {
		return false, nil
	}
	bal, err := ParseAmount(balance)
	if err != nil {
		bal = uint256.NewInt(0)
	}
	return amt.Cmp(bal) <= 0, nil
}
