// Package auth owns the session lifecycle: signup, login, logout and
// mnemonic recovery against the ledger service, plus the global 401
// teardown path.
package auth

import (
	"context"

	"github.com/sifranet/sifra-wallet/keyholder"
	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/session"
	"github.com/sifranet/sifra-wallet/types"
)

// Gateway is the slice of the backend the auth flows need.
type Gateway interface {
	Signup(ctx context.Context, req types.SignupRequest) (*types.SignupResponse, error)
	Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error)
	Logout(ctx context.Context) error
	Recover(ctx context.Context, mnemonic string) (*types.RecoverResponse, error)
}

type Service struct {
	gw       Gateway
	sessions *session.Store
	keys     *keyholder.Holder

	// onRedirect sends the user to the unauthenticated entry point after
	// a forced teardown. Optional.
	onRedirect func()
}

func NewService(gw Gateway, sessions *session.Store, keys *keyholder.Holder) *Service {
	return &Service{gw: gw, sessions: sessions, keys: keys}
}

// SetRedirectHook registers the navigation callback invoked after every
// session teardown (logout or 401).
func (s *Service) SetRedirectHook(fn func()) {
	s.onRedirect = fn
}

// Signup registers a new user. The response carries the private key and
// mnemonic exactly once; the caller must display them. Only {user,
// address} are persisted here.
func (s *Service) Signup(ctx context.Context, req types.SignupRequest) (*types.SignupResponse, error) {
	resp, err := s.gw.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	s.sessions.Save(resp.User, resp.Wallet.Address)
	logx.Info("AUTH", "Signed up ", resp.User.Username)
	return resp, nil
}

// Login authenticates an existing user and persists {user, address}.
func (s *Service) Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error) {
	resp, err := s.gw.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	s.sessions.Save(resp.User, resp.Wallet.Address)
	logx.Info("AUTH", "Logged in ", resp.User.Username)
	return resp, nil
}

// Logout is best-effort against the backend; the local session is cleared
// regardless of the response.
func (s *Service) Logout(ctx context.Context) {
	if err := s.gw.Logout(ctx); err != nil {
		logx.Warn("AUTH", "Logout request failed, clearing session anyway: ", err)
	}
	s.sessions.Clear()
	if s.onRedirect != nil {
		s.onRedirect()
	}
}

// Recover exchanges a mnemonic for the wallet's key material. The result
// is returned for display only and never persisted.
func (s *Service) Recover(ctx context.Context, mnemonic string) (*types.RecoverResponse, error) {
	return s.gw.Recover(ctx, mnemonic)
}

// HandleUnauthorized is registered as the gateway's 401 hook: tear down
// the session (which wipes the transient key) and send the user to the
// unauthenticated entry point, whatever operation triggered it.
func (s *Service) HandleUnauthorized() {
	s.sessions.Clear()
	s.keys.Clear()
	if s.onRedirect != nil {
		s.onRedirect()
	}
}
