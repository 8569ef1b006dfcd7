// Package sendflow implements the user-facing send confirmation protocol:
// a linear state machine gating the signing pipeline behind an explicit
// PIN confirmation step.
package sendflow

import (
	"context"
	"errors"
	"sync"

	"github.com/sifranet/sifra-wallet/crypto"
	walleterrors "github.com/sifranet/sifra-wallet/errors"
	"github.com/sifranet/sifra-wallet/exception"
	"github.com/sifranet/sifra-wallet/keyholder"
	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/monitoring"
	"github.com/sifranet/sifra-wallet/transaction"
	"github.com/sifranet/sifra-wallet/types"
)

type State string

const (
	StateIdle       State = "idle"
	StateConfirming State = "confirming"
	StateSigning    State = "signing"
	StateSending    State = "sending"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// ErrBusy rejects a second submit while an attempt is in flight. At most
// one intent exists per session.
var ErrBusy = walleterrors.NewError(walleterrors.ErrCodeValidation, "A transfer is already in progress")

// Machine drives one send attempt at a time through
// idle → confirming → signing → sending → success|error. Once signing has
// started the attempt runs to completion; cancellation is only honored
// from confirming.
type Machine struct {
	mu       sync.Mutex
	state    State
	intent   types.TransactionIntent
	txHash   string
	errText  string
	balance  string
	keys     *keyholder.Holder
	pipeline *transaction.Pipeline

	// refreshBalance runs in the background after a successful send.
	refreshBalance func()
}

func NewMachine(gw transaction.LedgerGateway, keys *keyholder.Holder) *Machine {
	m := &Machine{state: StateIdle, keys: keys}
	m.pipeline = transaction.NewPipeline(gw, keys, transaction.WithSubmitObserver(m.enterSending))
	return m
}

// SetBalanceRefresher registers the callback run (panic-isolated, off the
// caller's goroutine) after each successful send.
func (m *Machine) SetBalanceRefresher(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshBalance = fn
}

// SetKnownBalance records the balance used for the local submit gate. It
// may be stale; the backend remains the authority.
func (m *Machine) SetKnownBalance(balance string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balance = balance
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// TxHash returns the ledger identifier of the last successful send.
func (m *Machine) TxHash() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txHash
}

// ErrorReason returns the user-facing reason for the error state.
func (m *Machine) ErrorReason() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errText
}

// Submit validates the send form and, on success, parks the intent and
// private key and moves to confirming. Validation failures surface as
// field-level errors with NO state transition. A submit while any attempt
// is in flight returns ErrBusy.
func (m *Machine) Submit(intent types.TransactionIntent, privKeyHex string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateIdle {
		return ErrBusy
	}

	if intent.Receiver == "" {
		return walleterrors.NewFieldError("receiver", walleterrors.ErrMsgInvalidReceiver)
	}
	if err := transaction.ValidateAddress(intent.Receiver); err != nil {
		return walleterrors.NewFieldError("receiver", walleterrors.ErrMsgInvalidReceiver)
	}
	amt, err := transaction.ParseAmount(intent.Amount)
	if err != nil || amt.IsZero() {
		return walleterrors.NewFieldError("amount", walleterrors.ErrMsgInvalidAmount)
	}
	if ok, _ := transaction.AmountWithinBalance(intent.Amount, m.balance); !ok {
		return walleterrors.NewFieldError("amount", walleterrors.ErrMsgAmountExceeds)
	}
	if err := crypto.ValidateKeyHex(privKeyHex); err != nil {
		return walleterrors.NewFieldError("private_key", walleterrors.ErrMsgInvalidKeyMaterial)
	}

	m.keys.Set(privKeyHex)
	m.intent = intent
	m.state = StateConfirming
	return nil
}

// Confirm is the authorization gate: exactly a 4-digit PIN lets the
// attempt proceed to signing and submission. A bad PIN is a field error,
// the machine stays in confirming.
func (m *Machine) Confirm(ctx context.Context, pin string) error {
	m.mu.Lock()
	if m.state != StateConfirming {
		m.mu.Unlock()
		return walleterrors.NewError(walleterrors.ErrCodeValidation, "Nothing to confirm")
	}
	if !validPIN(pin) {
		m.mu.Unlock()
		return walleterrors.NewFieldError("pin", walleterrors.ErrMsgInvalidPin)
	}

	m.intent.PIN = pin
	intent := m.intent
	m.state = StateSigning
	m.mu.Unlock()

	key, held := m.keys.Get()
	if !held {
		// Teardown raced with this attempt; the key is gone, nothing
		// was signed.
		m.fail(walleterrors.NewError(walleterrors.ErrCodeCrypto, walleterrors.ErrMsgSigningFailed))
		return walleterrors.NewError(walleterrors.ErrCodeCrypto, walleterrors.ErrMsgSigningFailed)
	}

	res, err := m.pipeline.SignAndSubmit(ctx, intent, key)
	if err != nil {
		if errors.Is(err, walleterrors.ErrUnauthorized) {
			// Global 401 handling wins over the transaction-local error
			// path: the session is already torn down, the attempt is
			// discarded rather than reported as retryable.
			logx.Warn("SENDFLOW", "Session expired mid-send, discarding attempt")
			monitoring.RecordFailedTx(monitoring.TxFailedUnauthorized)
			m.resetToIdle()
			return err
		}
		m.fail(err)
		return err
	}

	m.mu.Lock()
	m.state = StateSuccess
	m.txHash = res.TxHash
	refresh := m.refreshBalance
	m.mu.Unlock()

	if refresh != nil {
		exception.SafeGo("balance-refresh", refresh)
	}
	return nil
}

// Cancel discards the in-progress intent and key from confirming. It is a
// no-op in any other state: once signing has begun the attempt runs to
// completion.
func (m *Machine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateConfirming {
		return
	}
	m.clearAttemptLocked()
	m.state = StateIdle
}

// Reset dismisses a terminal state back to idle, clearing every transient
// field.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateSuccess && m.state != StateError {
		return
	}
	m.clearAttemptLocked()
	m.state = StateIdle
}

func (m *Machine) enterSending() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSigning {
		m.state = StateSending
	}
}

func (m *Machine) fail(err error) {
	monitoring.RecordFailedTx(failureReason(err))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateError
	m.errText = walleterrors.Reason(err)
}

func (m *Machine) resetToIdle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearAttemptLocked()
	m.state = StateIdle
}

func (m *Machine) clearAttemptLocked() {
	m.intent = types.TransactionIntent{}
	m.txHash = ""
	m.errText = ""
	m.keys.Clear()
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func failureReason(err error) monitoring.TxFailedReason {
	switch walleterrors.CodeOf(err) {
	case walleterrors.ErrCodeValidation:
		return monitoring.TxFailedValidation
	case walleterrors.ErrCodeCrypto:
		return monitoring.TxFailedCrypto
	case walleterrors.ErrCodeTimeout:
		return monitoring.TxFailedTimeout
	case walleterrors.ErrCodeNetwork:
		return monitoring.TxFailedNetwork
	case walleterrors.ErrCodeUnauthorized:
		return monitoring.TxFailedUnauthorized
	case walleterrors.ErrCodeLedgerRejected:
		return monitoring.TxFailedLedger
	}
	return monitoring.TxFailedUnknown
}
