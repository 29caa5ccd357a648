package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/Klingon-tech/seedphrase/internal/log"
)

// Validate checks runtime config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.RPC.Port < 0 || cfg.RPC.Port > 65535 {
		return fmt.Errorf("rpc.port must be in range [0, 65535]")
	}
	for i, entry := range cfg.RPC.AllowedIPs {
		if _, _, err := net.ParseCIDR(entry); err == nil {
			continue
		}
		if net.ParseIP(entry) == nil {
			return fmt.Errorf("rpc.allowed[%d] %q is not an IP or CIDR", i, entry)
		}
	}

	if cfg.History.Enabled && (cfg.History.Size <= 0 || cfg.History.Size > MaxHistorySize) {
		return fmt.Errorf("history.size must be in range [1, %d]", MaxHistorySize)
	}

	if cfg.Metrics.Enabled {
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			return fmt.Errorf("metrics.path must start with /")
		}
		if cfg.Metrics.Path == "/" {
			return fmt.Errorf("metrics.path must not be / (reserved for JSON-RPC)")
		}
		if !cfg.RPC.Enabled {
			return fmt.Errorf("metrics.enabled requires rpc.enabled")
		}
	}

	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}
