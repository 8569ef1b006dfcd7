package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/sifranet/sifra-wallet/config"
	walleterrors "github.com/sifranet/sifra-wallet/errors"
	"github.com/sifranet/sifra-wallet/jsonx"
	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/types"
)

// Client talks JSON over HTTP(S) to the ledger service. Authentication is
// a session cookie held in the jar; every response with status 401 fires
// the registered unauthorized hook before the call returns.
type Client struct {
	baseURL        string
	http           *http.Client
	onUnauthorized func()
}

func NewClient(cfg config.GatewayConfig, tunables *config.ClientTunables) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	if tunables == nil {
		tunables = config.DefaultTunables()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: time.Duration(tunables.HTTPTimeoutMs) * time.Millisecond,
		},
	}, nil
}

// SetUnauthorizedHook registers the global 401 handler (session teardown +
// redirect). It runs once per 401 response, whatever the endpoint.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// RejectionError is a non-2xx, non-401 response decoded from the typed
// error payload. Callers that need taxonomy mapping unwrap it with
// errors.As.
type RejectionError struct {
	Status  int
	Code    string
	Message string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("gateway: %d %s: %s", e.Status, e.Code, e.Message)
}

// --- Generic HTTP methods ---

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, endpoint string, in, out interface{}) error {
	body, err := jsonx.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(req.Context(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		logx.Warn("GATEWAY", "401 from ", req.URL.Path, ", tearing down session")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return walleterrors.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody types.ErrorResponse
		if decodeErr := jsonx.NewDecoder(resp.Body).Decode(&errBody); decodeErr != nil {
			errBody.Message = resp.Status
		}
		return &RejectionError{Status: resp.StatusCode, Code: errBody.Code, Message: errBody.Message}
	}
	if out == nil {
		return nil
	}
	if err := jsonx.NewDecoder(resp.Body).Decode(out); err != nil {
		return walleterrors.NewError(walleterrors.ErrCodeNetwork, walleterrors.ErrMsgNetwork)
	}
	return nil
}

func classifyTransportError(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return walleterrors.NewError(walleterrors.ErrCodeTimeout, walleterrors.ErrMsgTimeout)
	}
	logx.Warn("GATEWAY", "Transport failure: ", err)
	return walleterrors.NewError(walleterrors.ErrCodeNetwork, walleterrors.ErrMsgNetwork)
}

// --- Auth endpoints ---

func (c *Client) Signup(ctx context.Context, req types.SignupRequest) (*types.SignupResponse, error) {
	var resp types.SignupResponse
	if err := c.post(ctx, "/auth/signup/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error) {
	var resp types.LoginResponse
	if err := c.post(ctx, "/auth/login/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	var resp types.MessageResponse
	return c.post(ctx, "/auth/logout/", struct{}{}, &resp)
}

func (c *Client) Recover(ctx context.Context, mnemonic string) (*types.RecoverResponse, error) {
	var resp types.RecoverResponse
	if err := c.post(ctx, "/auth/recover/", types.RecoverRequest{Mnemonic: mnemonic}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Wallet endpoints ---

func (c *Client) Balance(ctx context.Context, address string) (*types.BalanceResponse, error) {
	var resp types.BalanceResponse
	if err := c.get(ctx, "/wallet/"+url.PathEscape(address)+"/balance/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) WalletTransactions(ctx context.Context, address string) (*types.WalletTransactionsResponse, error) {
	var resp types.WalletTransactionsResponse
	if err := c.get(ctx, "/wallet/"+url.PathEscape(address)+"/transactions/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Transaction endpoints ---

// SubmitTransaction posts a signed transaction. Backend rejections come
// back mapped into the wallet taxonomy with the server-supplied reason.
func (c *Client) SubmitTransaction(ctx context.Context, tx types.SignedTransaction) (*types.TransactionResponse, error) {
	var resp types.TransactionResponse
	if err := c.post(ctx, "/transaction/", tx, &resp); err != nil {
		var rej *RejectionError
		if errors.As(err, &rej) {
			return nil, walleterrors.MapLedgerCode(rej.Code, rej.Message)
		}
		return nil, err
	}
	return &resp, nil
}

func (c *Client) PendingTransactions(ctx context.Context) (*types.PendingTransactionsResponse, error) {
	var resp types.PendingTransactionsResponse
	if err := c.get(ctx, "/transactions/pending/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Market & deposit endpoints ---

func (c *Client) Deposit(ctx context.Context, req types.DepositRequest) (*types.DepositResponse, error) {
	var resp types.DepositResponse
	if err := c.post(ctx, "/deposit/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) MarketPrice(ctx context.Context) (*types.MarketPriceResponse, error) {
	var resp types.MarketPriceResponse
	if err := c.get(ctx, "/market/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
