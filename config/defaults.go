package config

// DefaultRPCPort is the default JSON-RPC listen port.
const DefaultRPCPort = 8745

// Default returns the default daemon configuration.
func Default() *Config {
	return &Config{
		DataDir: DefaultDataDir(),
		RPC: RPCConfig{
			Enabled:    true,
			Addr:       "127.0.0.1",
			Port:       DefaultRPCPort,
			AllowedIPs: []string{"127.0.0.1"},
		},
		History: HistoryConfig{
			Enabled: true,
			Size:    100,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}
