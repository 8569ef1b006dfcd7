package config

import (
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/sifranet/sifra-wallet/logx"
)

const (
	DefaultGatewayURL  = "http://localhost:8000"
	DefaultChainID     = "1"
	DefaultStoragePath = "./data/sifra-wallet.db"
	DefaultMetricsAddr = "localhost:9102"
)

// DefaultWalletConfig returns a config that works against a local ledger
// service with no file present.
func DefaultWalletConfig() *WalletConfig {
	return &WalletConfig{
		Gateway: GatewayConfig{BaseURL: DefaultGatewayURL, ChainID: DefaultChainID},
		Storage: StorageConfig{Path: DefaultStoragePath},
		Metrics: MetricsConfig{Enabled: false, ListenAddr: DefaultMetricsAddr},
	}
}

// LoadWalletConfig reads and parses the wallet.yml file. An empty path
// yields the defaults; a missing or unreadable file is an error so a
// misspelled --config does not silently fall back.
func LoadWalletConfig(path string) (*WalletConfig, error) {
	if path == "" {
		return DefaultWalletConfig(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		logx.Error("CONFIG", "Failed to open config file: ", err)
		return nil, err
	}
	defer file.Close()

	cfgFile := ConfigFile{Config: *DefaultWalletConfig()}
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		logx.Error("CONFIG", "Failed to decode YAML: ", err)
		return nil, err
	}
	logx.Info("CONFIG", "Loaded wallet config, gateway=", cfgFile.Config.Gateway.BaseURL)
	return &cfgFile.Config, nil
}

// ClientTunables are the low-level knobs read from client.ini.
type ClientTunables struct {
	HTTPTimeoutMs int `ini:"http_timeout_ms"`
}

// DefaultTunables mirrors the gateway timeout the backend operators run
// with (10s).
func DefaultTunables() *ClientTunables {
	return &ClientTunables{HTTPTimeoutMs: 10000}
}

// LoadClientTunables reads client tunables from an .ini file.
func LoadClientTunables(path string) (*ClientTunables, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	clientSection := cfg.Section("client")
	tunables := DefaultTunables()
	err = clientSection.MapTo(tunables)
	if err != nil {
		return nil, err
	}
	return tunables, nil
}
