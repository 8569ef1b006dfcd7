package cmd

import (
	"fmt"
	"net/http"

	"github.com/sifranet/sifra-wallet/auth"
	"github.com/sifranet/sifra-wallet/config"
	walleterrors "github.com/sifranet/sifra-wallet/errors"
	"github.com/sifranet/sifra-wallet/exception"
	"github.com/sifranet/sifra-wallet/gateway"
	"github.com/sifranet/sifra-wallet/keyholder"
	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/monitoring"
	"github.com/sifranet/sifra-wallet/session"
	"github.com/sifranet/sifra-wallet/storage"
)

// walletApp wires the full client stack for one CLI invocation: durable
// session store, transient key holder, gateway with the global 401 hook,
// and the auth service on top.
type walletApp struct {
	cfg      *config.WalletConfig
	provider storage.Provider
	keys     *keyholder.Holder
	sessions *session.Store
	gw       *gateway.Client
	auth     *auth.Service
}

func newWalletApp() (*walletApp, error) {
	cfg, err := config.LoadWalletConfig(configPath)
	if err != nil {
		return nil, err
	}
	tunables := config.DefaultTunables()
	if tunablesPath != "" {
		tunables, err = config.LoadClientTunables(tunablesPath)
		if err != nil {
			return nil, err
		}
	}

	provider, err := storage.NewBoltProvider(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	keys := keyholder.New()
	sessions := session.NewStore(provider, keys)
	sessions.Restore()

	gw, err := gateway.NewClient(cfg.Gateway, tunables)
	if err != nil {
		provider.Close()
		return nil, err
	}

	authSvc := auth.NewService(gw, sessions, keys)
	authSvc.SetRedirectHook(func() {
		fmt.Println("Session ended, run \"sifra-wallet login\" to sign in again.")
	})
	gw.SetUnauthorizedHook(authSvc.HandleUnauthorized)

	if cfg.Metrics.Enabled {
		monitoring.InitMetrics()
		mux := http.NewServeMux()
		monitoring.RegisterMetrics(mux)
		addr := cfg.Metrics.ListenAddr
		exception.SafeGo("metrics-listener", func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				logx.Error("METRICS", "Listener stopped: ", err)
			}
		})
	}

	return &walletApp{
		cfg:      cfg,
		provider: provider,
		keys:     keys,
		sessions: sessions,
		gw:       gw,
		auth:     authSvc,
	}, nil
}

func (a *walletApp) Close() {
	a.keys.Clear()
	if err := a.provider.Close(); err != nil {
		logx.Error("CMD", "Failed to close session store: ", err)
	}
}

func (a *walletApp) requireAuth() error {
	if !a.sessions.IsAuthenticated() {
		return walleterrors.NewError(walleterrors.ErrCodeUnauthorized, "Not logged in, run \"sifra-wallet login\" first")
	}
	return nil
}
