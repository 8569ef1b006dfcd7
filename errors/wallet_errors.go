package errors

import (
	"errors"

	"github.com/sifranet/sifra-wallet/jsonx"
)

// WalletErrorCode classifies every failure the wallet core can surface.
// The set is closed: backend error codes are folded into it through
// MapLedgerCode, never inspected ad hoc at call sites.
type WalletErrorCode string

const (
	// Local validation failures. These never reach the network.
	ErrCodeValidation WalletErrorCode = "validation_error"

	// Hashing/signing failures. Messages must never echo key material.
	ErrCodeCrypto WalletErrorCode = "crypto_error"

	// Transport failures and timeouts contacting the gateway.
	ErrCodeNetwork WalletErrorCode = "network_error"
	ErrCodeTimeout WalletErrorCode = "timeout"

	// HTTP 401 from any endpoint. Handled globally, not per operation.
	ErrCodeUnauthorized WalletErrorCode = "authorization_error"

	// Backend-reported rejection of a submitted transaction.
	ErrCodeLedgerRejected WalletErrorCode = "ledger_rejected"
)

// ErrUnauthorized is the sentinel for 401 responses; callers match it with
// errors.Is to hand control to the global session-teardown path.
var ErrUnauthorized = &WalletError{Code: ErrCodeUnauthorized, Message: ErrMsgUnauthorized}

// WalletError is the typed error carried across the signing and session
// layers.
type WalletError struct {
	Code    WalletErrorCode `json:"code"`
	Message string          `json:"message"`
	// Field names the offending input for validation errors ("receiver",
	// "amount", "pin", "private_key"). Empty otherwise.
	Field string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *WalletError) Error() string {
	out, _ := jsonx.Marshal(e)
	return string(out)
}

// Is lets errors.Is match on the code so that sentinel comparisons work
// across the gateway boundary.
func (e *WalletError) Is(target error) bool {
	var we *WalletError
	if !errors.As(target, &we) {
		return false
	}
	return e.Code == we.Code
}

// Error message constants - user-friendly and concise
const (
	ErrMsgInvalidReceiver    = "Receiver address is invalid"
	ErrMsgInvalidAmount      = "Amount must be a positive decimal"
	ErrMsgAmountExceeds      = "Amount exceeds your available balance"
	ErrMsgInvalidPin         = "PIN must be exactly 4 digits"
	ErrMsgInvalidKeyMaterial = "Private key is malformed"
	ErrMsgSigningFailed      = "Could not sign the transaction"
	ErrMsgNetwork            = "Could not reach the ledger, please try again"
	ErrMsgTimeout            = "The ledger did not respond in time"
	ErrMsgUnauthorized       = "Your session has expired, please log in again"
	ErrMsgInsufficientFunds  = "Not enough balance in your wallet"
	ErrMsgBadSignature       = "Transaction signature was rejected"
	ErrMsgBadPin             = "Transaction PIN was rejected"
	ErrMsgDuplicateTx        = "This transaction was already submitted"
	ErrMsgLedgerRejected     = "The ledger rejected the transaction"
)

// NewError creates a new WalletError and returns it as error interface
func NewError(code WalletErrorCode, message string) error {
	return &WalletError{Code: code, Message: message}
}

// NewFieldError creates a validation error bound to a form field.
func NewFieldError(field, message string) error {
	return &WalletError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Backend rejection codes as emitted by the ledger service error payload.
const (
	LedgerCodeInsufficientFunds = "insufficient_funds"
	LedgerCodeInvalidSignature  = "invalid_signature"
	LedgerCodeInvalidPin        = "invalid_pin"
	LedgerCodeDuplicate         = "duplicate_transaction"
)

// MapLedgerCode deterministically folds a backend error code into the
// wallet taxonomy. Unknown codes keep the server-supplied message so the
// user sees the authoritative reason verbatim.
func MapLedgerCode(code, message string) *WalletError {
	switch code {
	case LedgerCodeInsufficientFunds:
		return &WalletError{Code: ErrCodeLedgerRejected, Message: ErrMsgInsufficientFunds}
	case LedgerCodeInvalidSignature:
		return &WalletError{Code: ErrCodeLedgerRejected, Message: ErrMsgBadSignature}
	case LedgerCodeInvalidPin:
		return &WalletError{Code: ErrCodeLedgerRejected, Message: ErrMsgBadPin}
	case LedgerCodeDuplicate:
		return &WalletError{Code: ErrCodeLedgerRejected, Message: ErrMsgDuplicateTx}
	}
	if message == "" {
		message = ErrMsgLedgerRejected
	}
	return &WalletError{Code: ErrCodeLedgerRejected, Message: message}
}

// Reason extracts the user-facing message from any error, falling back to
// the raw error text for untyped failures.
func Reason(err error) string {
	var we *WalletError
	if errors.As(err, &we) {
		return we.Message
	}
	return err.Error()
}

// CodeOf reports the taxonomy code of err, or ErrCodeNetwork for untyped
// transport-level failures.
func CodeOf(err error) WalletErrorCode {
	var we *WalletError
	if errors.As(err, &we) {
		return we.Code
	}
	return ErrCodeNetwork
}
