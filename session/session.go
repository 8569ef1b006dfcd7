package session

import (
	"sync"

	"github.com/sifranet/sifra-wallet/jsonx"
	"github.com/sifranet/sifra-wallet/keyholder"
	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/monitoring"
	"github.com/sifranet/sifra-wallet/storage"
	"github.com/sifranet/sifra-wallet/types"
)

// Durable storage keys. The names predate this client and are shared with
// other frontends of the same backend, so they must not change.
const (
	userKey   = "sifra_user"
	walletKey = "sifra_wallet_credentials"
)

// Listener is notified after every authentication state change with the
// new state. Replaces implicit whole-program reactivity: the store calls
// listeners explicitly on Save and Clear.
type Listener func(authenticated bool)

// Store owns the Session: the authenticated user plus wallet address.
// It persists exactly two keys and never any secret. All mutation goes
// through Save and Clear.
type Store struct {
	mu        sync.RWMutex
	provider  storage.Provider
	keys      *keyholder.Holder
	user      *types.User
	wallet    *types.WalletCredentials
	listeners []Listener
}

func NewStore(provider storage.Provider, keys *keyholder.Holder) *Store {
	return &Store{provider: provider, keys: keys}
}

// Restore loads a previously persisted session. Missing or malformed data
// means "no session": it logs a diagnostic and returns normally, never an
// error, so a corrupt store can not lock the user out of the login flow.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	rawUser, err := s.provider.Get([]byte(userKey))
	if err != nil {
		logx.Warn("SESSION", "Failed to read stored user: ", err)
		return
	}
	rawWallet, err := s.provider.Get([]byte(walletKey))
	if err != nil {
		logx.Warn("SESSION", "Failed to read stored wallet: ", err)
		return
	}
	if rawUser == nil || rawWallet == nil {
		return
	}

	var user types.User
	if err := jsonx.Unmarshal(rawUser, &user); err != nil {
		logx.Warn("SESSION", "Stored user is malformed, treating as no session: ", err)
		return
	}
	var wallet types.WalletCredentials
	if err := jsonx.Unmarshal(rawWallet, &wallet); err != nil {
		logx.Warn("SESSION", "Stored wallet is malformed, treating as no session: ", err)
		return
	}

	s.user = &user
	s.wallet = &wallet
	monitoring.IncreaseSessionRestoreCount()
	logx.Info("SESSION", "Restored session for ", user.Username)
}

// Save updates the in-memory session and both durable keys together.
// Storage write failures degrade to an ephemeral session for this run;
// they are logged, never surfaced.
func (s *Store) Save(user types.User, walletAddress string) {
	s.mu.Lock()
	s.user = &user
	s.wallet = &types.WalletCredentials{Address: walletAddress}

	if rawUser, err := jsonx.Marshal(s.user); err != nil {
		logx.Warn("SESSION", "Failed to encode user: ", err)
	} else if err := s.provider.Put([]byte(userKey), rawUser); err != nil {
		logx.Warn("SESSION", "Failed to persist user, session is ephemeral: ", err)
	}
	if rawWallet, err := jsonx.Marshal(s.wallet); err != nil {
		logx.Warn("SESSION", "Failed to encode wallet: ", err)
	} else if err := s.provider.Put([]byte(walletKey), rawWallet); err != nil {
		logx.Warn("SESSION", "Failed to persist wallet, session is ephemeral: ", err)
	}
	s.mu.Unlock()

	s.notify(true)
}

// Clear removes both durable keys, resets the in-memory session and wipes
// the transient key holder. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	wasAuthenticated := s.user != nil
	s.user = nil
	s.wallet = nil
	if err := s.provider.Delete([]byte(userKey)); err != nil {
		logx.Warn("SESSION", "Failed to delete stored user: ", err)
	}
	if err := s.provider.Delete([]byte(walletKey)); err != nil {
		logx.Warn("SESSION", "Failed to delete stored wallet: ", err)
	}
	s.mu.Unlock()

	s.keys.Clear()
	if wasAuthenticated {
		monitoring.IncreaseSessionClearCount()
		s.notify(false)
	}
}

// IsAuthenticated reports whether a session is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// CurrentUser returns the authenticated user, or nil.
func (s *Store) CurrentUser() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// WalletAddress returns the session wallet address, or "" when absent.
func (s *Store) WalletAddress() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wallet == nil {
		return ""
	}
	return s.wallet.Address
}

// Subscribe registers a listener for authentication state changes.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(authenticated bool) {
	s.mu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, l := range listeners {
		l(authenticated)
	}
}
