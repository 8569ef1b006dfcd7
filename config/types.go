package config

// GatewayConfig points the client at the remote ledger service.
type GatewayConfig struct {
	BaseURL string `yaml:"base_url"`
	ChainID string `yaml:"chain_id"`
}

// StorageConfig locates the durable key-value store holding session data.
// Only session identity is ever written there, never key material.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig controls the optional prometheus listener.
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// WalletConfig holds the configuration from wallet.yml
type WalletConfig struct {
	Gateway GatewayConfig `yaml:"gateway"`
	Storage StorageConfig `yaml:"storage"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ConfigFile is the top-level structure for wallet.yml
type ConfigFile struct {
	Config WalletConfig `yaml:"config"`
}
