package sendflow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	walleterrors "github.com/sifranet/sifra-wallet/errors"
	"github.com/sifranet/sifra-wallet/keyholder"
	"github.com/sifranet/sifra-wallet/types"
)

const (
	testKeyHex   = "1e99423a4ed27608a15a2616a2b0e9e52ced330ac530edcc32c8ffc6a526aedd"
	testSender   = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testReceiver = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

type fakeGateway struct {
	balance    string
	submitErr  error
	submitted  []types.SignedTransaction
	onSubmit   func()
	balanceErr error
}

func (f *fakeGateway) Balance(ctx context.Context, address string) (*types.BalanceResponse, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return &types.BalanceResponse{Address: address, Balance: f.balance}, nil
}

func (f *fakeGateway) SubmitTransaction(ctx context.Context, tx types.SignedTransaction) (*types.TransactionResponse, error) {
	if f.onSubmit != nil {
		f.onSubmit()
	}
	f.submitted = append(f.submitted, tx)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &types.TransactionResponse{TxHash: "0xhash", Status: "pending"}, nil
}

func testIntent() types.TransactionIntent {
	return types.TransactionIntent{
		Sender:   testSender,
		Receiver: testReceiver,
		Amount:   "12.50",
	}
}

func newTestMachine(gw *fakeGateway) (*Machine, *keyholder.Holder) {
	keys := keyholder.New()
	m := NewMachine(gw, keys)
	m.SetKnownBalance("100")
	return m, keys
}

func TestSubmitMovesToConfirming(t *testing.T) {
	m, keys := newTestMachine(&fakeGateway{balance: "100"})

	require.NoError(t, m.Submit(testIntent(), testKeyHex))
	assert.Equal(t, StateConfirming, m.State())

	key, held := keys.Get()
	assert.True(t, held)
	assert.Equal(t, testKeyHex, key)
}

func TestSubmitValidationFailuresStayIdle(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*types.TransactionIntent, *string)
		field  string
	}{
		{"empty receiver", func(i *types.TransactionIntent, _ *string) { i.Receiver = "" }, "receiver"},
		{"bad address", func(i *types.TransactionIntent, _ *string) { i.Receiver = "0x123" }, "receiver"},
		{"zero amount", func(i *types.TransactionIntent, _ *string) { i.Amount = "0" }, "amount"},
		{"malformed amount", func(i *types.TransactionIntent, _ *string) { i.Amount = "1,5" }, "amount"},
		{"over balance", func(i *types.TransactionIntent, _ *string) { i.Amount = "100.01" }, "amount"},
		{"bad key", func(_ *types.TransactionIntent, k *string) { *k = "zz" }, "private_key"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{balance: "100"}
			m, keys := newTestMachine(gw)

			intent := testIntent()
			key := testKeyHex
			tc.mutate(&intent, &key)

			err := m.Submit(intent, key)
			require.Error(t, err)

			var we *walleterrors.WalletError
			require.ErrorAs(t, err, &we)
			assert.Equal(t, walleterrors.ErrCodeValidation, we.Code)
			assert.Equal(t, tc.field, we.Field)

			assert.Equal(t, StateIdle, m.State(), "invalid submission is not a state transition")
			assert.Empty(t, gw.submitted, "no network call on local validation failure")
			_, held := keys.Get()
			assert.False(t, held)
		})
	}
}

func TestSecondSubmitRejected(t *testing.T) {
	m, _ := newTestMachine(&fakeGateway{balance: "100"})

	require.NoError(t, m.Submit(testIntent(), testKeyHex))
	err := m.Submit(testIntent(), testKeyHex)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, StateConfirming, m.State())
}

func TestConfirmHappyPath(t *testing.T) {
	gw := &fakeGateway{balance: "100"}
	m, keys := newTestMachine(gw)

	// The machine must be in sending, not signing, while the gateway call
	// is in flight.
	gw.onSubmit = func() {
		assert.Equal(t, StateSending, m.State())
	}

	require.NoError(t, m.Submit(testIntent(), testKeyHex))
	require.NoError(t, m.Confirm(context.Background(), "1234"))

	assert.Equal(t, StateSuccess, m.State())
	assert.Equal(t, "0xhash", m.TxHash())

	require.Len(t, gw.submitted, 1)
	assert.Equal(t, "1234", gw.submitted[0].PIN)
	assert.Equal(t, "12.50", gw.submitted[0].Amount)

	_, held := keys.Get()
	assert.False(t, held, "key must be cleared after the attempt")

	m.Reset()
	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, m.TxHash())
}

func TestConfirmRequiresFourDigitPIN(t *testing.T) {
	gw := &fakeGateway{balance: "100"}
	m, _ := newTestMachine(gw)
	require.NoError(t, m.Submit(testIntent(), testKeyHex))

	for _, pin := range []string{"", "123", "12345", "12a4", "12.4"} {
		err := m.Confirm(context.Background(), pin)
		require.Error(t, err, "pin %q", pin)
		assert.Equal(t, StateConfirming, m.State(), "bad PIN must not leave confirming")
	}
	assert.Empty(t, gw.submitted, "no signing without a valid PIN")
}

func TestConfirmWithoutSubmit(t *testing.T) {
	m, _ := newTestMachine(&fakeGateway{balance: "100"})
	err := m.Confirm(context.Background(), "1234")
	assert.Error(t, err)
	assert.Equal(t, StateIdle, m.State())
}

func TestCancelFromConfirming(t *testing.T) {
	m, keys := newTestMachine(&fakeGateway{balance: "100"})
	require.NoError(t, m.Submit(testIntent(), testKeyHex))

	m.Cancel()
	assert.Equal(t, StateIdle, m.State())
	_, held := keys.Get()
	assert.False(t, held, "cancel must discard the parked key")

	// Cancel outside confirming is a no-op.
	m.Cancel()
	assert.Equal(t, StateIdle, m.State())
}

func TestLedgerRejectionEntersErrorState(t *testing.T) {
	gw := &fakeGateway{
		balance:   "100",
		submitErr: walleterrors.MapLedgerCode(walleterrors.LedgerCodeInvalidPin, ""),
	}
	m, keys := newTestMachine(gw)

	require.NoError(t, m.Submit(testIntent(), testKeyHex))
	err := m.Confirm(context.Background(), "1234")
	require.Error(t, err)

	assert.Equal(t, StateError, m.State())
	assert.True(t, strings.Contains(m.ErrorReason(), "PIN"))
	_, held := keys.Get()
	assert.False(t, held)

	m.Reset()
	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, m.ErrorReason())
}

func TestNetworkFailureEntersErrorState(t *testing.T) {
	gw := &fakeGateway{
		balance:   "100",
		submitErr: walleterrors.NewError(walleterrors.ErrCodeTimeout, walleterrors.ErrMsgTimeout),
	}
	m, keys := newTestMachine(gw)

	require.NoError(t, m.Submit(testIntent(), testKeyHex))
	require.Error(t, m.Confirm(context.Background(), "1234"))

	assert.Equal(t, StateError, m.State())
	_, held := keys.Get()
	assert.False(t, held, "key is cleared even on network failure")
}

func TestUnauthorizedDuringSendingDiscardsAttempt(t *testing.T) {
	gw := &fakeGateway{balance: "100", submitErr: walleterrors.ErrUnauthorized}
	m, keys := newTestMachine(gw)

	require.NoError(t, m.Submit(testIntent(), testKeyHex))
	err := m.Confirm(context.Background(), "1234")
	require.ErrorIs(t, err, walleterrors.ErrUnauthorized)

	// Global teardown precedence: back to idle, not error.
	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, m.ErrorReason())
	assert.Empty(t, m.TxHash())
	_, held := keys.Get()
	assert.False(t, held)
}

func TestBalanceRefresherRunsAfterSuccess(t *testing.T) {
	gw := &fakeGateway{balance: "100"}
	m, _ := newTestMachine(gw)

	refreshed := make(chan struct{})
	m.SetBalanceRefresher(func() { close(refreshed) })

	require.NoError(t, m.Submit(testIntent(), testKeyHex))
	require.NoError(t, m.Confirm(context.Background(), "1234"))

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for balance refresh")
	}
}
