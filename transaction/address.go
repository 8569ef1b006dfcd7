package transaction

import (
	"errors"
	"fmt"
)

// Wallet addresses are "0x" followed by 40 hex characters.
const (
	addressPrefix         = "0x"
	addressExpectedLength = 42
)

var ErrInvalidAddress = errors.New("address: invalid format")

// ValidateAddress checks the address shape used by the ledger.
func ValidateAddress(addr string) error {
	if len(addr) != addressExpectedLength {
		return fmt.Errorf("%w: expected length %d, got %d", ErrInvalidAddress, addressExpectedLength, len(addr))
	}
	if addr[:2] != addressPrefix {
		return fmt.Errorf("%w: missing %s prefix", ErrInvalidAddress, addressPrefix)
	}
	for i, c := range addr[2:] {
		if !((c >= '0' && c <= '9') ||
			(c >= 'a' && c <= 'f') ||
			(c >= 'A' && c <= 'F')) {
			return fmt.Errorf("%w: invalid character '%c' at position %d", ErrInvalidAddress, c, i+2)
		}
	}
	return nil
}
