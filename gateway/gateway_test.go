package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sifranet/sifra-wallet/config"
	walleterrors "github.com/sifranet/sifra-wallet/errors"
	"github.com/sifranet/sifra-wallet/jsonx"
	"github.com/sifranet/sifra-wallet/types"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(config.GatewayConfig{BaseURL: srv.URL}, config.DefaultTunables())
	require.NoError(t, err)
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body, _ := jsonx.Marshal(v)
	w.Write(body)
}

func TestLoginCarriesSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		require.NoError(t, jsonx.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "s3cr3t"})
		writeJSON(w, http.StatusOK, types.LoginResponse{
			User:   types.User{ID: 1, Username: "alice", Email: "a@x.com"},
			Wallet: types.LoginWallet{Address: "0xabc", Balance: "10"},
		})
	})
	mux.HandleFunc("/wallet/0xabc/balance/", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("sessionid")
		require.NoError(t, err, "balance call must reuse the session cookie")
		assert.Equal(t, "s3cr3t", cookie.Value)
		writeJSON(w, http.StatusOK, types.BalanceResponse{Address: "0xabc", Balance: "10"})
	})

	c, _ := newTestClient(t, mux)

	login, err := c.Login(context.Background(), types.LoginRequest{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "0xabc", login.Wallet.Address)

	balance, err := c.Balance(context.Background(), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "10", balance.Balance)
}

func TestUnauthorizedFiresHookAndReturnsSentinel(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	hookHits := 0
	c.SetUnauthorizedHook(func() { hookHits++ })

	_, err := c.Balance(context.Background(), "0xabc")
	assert.ErrorIs(t, err, walleterrors.ErrUnauthorized)
	assert.Equal(t, 1, hookHits)

	_, err = c.PendingTransactions(context.Background())
	assert.ErrorIs(t, err, walleterrors.ErrUnauthorized)
	assert.Equal(t, 2, hookHits, "hook fires once per 401 response")
}

func TestSubmitTransactionMapsRejection(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var tx types.SignedTransaction
		require.NoError(t, jsonx.NewDecoder(r.Body).Decode(&tx))
		assert.Equal(t, "12.50", tx.Amount)
		assert.NotEmpty(t, tx.Signature)

		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{
			Code:    walleterrors.LedgerCodeInsufficientFunds,
			Message: "balance too low",
		})
	}))

	_, err := c.SubmitTransaction(context.Background(), types.SignedTransaction{
		Sender: "0xA", Receiver: "0xB", Amount: "12.50", Signature: "3045deadbeef", PIN: "1234",
	})
	require.Error(t, err)
	assert.Equal(t, walleterrors.ErrCodeLedgerRejected, walleterrors.CodeOf(err))
	assert.Equal(t, walleterrors.ErrMsgInsufficientFunds, walleterrors.Reason(err))
}

func TestSubmitTransactionUnknownCodeKeepsServerMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, types.ErrorResponse{
			Code:    "chain_halted",
			Message: "ledger is paused for maintenance",
		})
	}))

	_, err := c.SubmitTransaction(context.Background(), types.SignedTransaction{})
	require.Error(t, err)
	assert.Equal(t, walleterrors.ErrCodeLedgerRejected, walleterrors.CodeOf(err))
	assert.Equal(t, "ledger is paused for maintenance", walleterrors.Reason(err))
}

func TestSubmitTransactionSuccess(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, types.TransactionResponse{TxHash: "0xdead", Status: "pending"})
	}))

	resp, err := c.SubmitTransaction(context.Background(), types.SignedTransaction{})
	require.NoError(t, err)
	assert.Equal(t, "0xdead", resp.TxHash)
}

func TestTimeoutClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(config.GatewayConfig{BaseURL: srv.URL}, &config.ClientTunables{HTTPTimeoutMs: 50})
	require.NoError(t, err)

	_, err = c.Balance(context.Background(), "0xabc")
	require.Error(t, err)
	assert.Equal(t, walleterrors.ErrCodeTimeout, walleterrors.CodeOf(err))
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	c, err := NewClient(config.GatewayConfig{BaseURL: "http://127.0.0.1:1"}, config.DefaultTunables())
	require.NoError(t, err)

	_, err = c.Balance(context.Background(), "0xabc")
	require.Error(t, err)
	assert.Equal(t, walleterrors.ErrCodeNetwork, walleterrors.CodeOf(err))
}

func TestRecoverDecodesResponse(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.RecoverRequest
		require.NoError(t, jsonx.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "w1 w2 w3", req.Mnemonic)
		writeJSON(w, http.StatusOK, types.RecoverResponse{
			PrivateKey: "priv", PublicKey: "pub", WalletExists: true, Balance: "7",
		})
	}))

	resp, err := c.Recover(context.Background(), "w1 w2 w3")
	require.NoError(t, err)
	assert.True(t, resp.WalletExists)
	assert.Equal(t, "7", resp.Balance)
}
