// Package config handles seedphrased runtime configuration.
//
// Settings come, in increasing precedence, from built-in defaults, the
// key = value file in the data directory, and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/seedphrase/internal/history"
)

// Config holds daemon settings.
type Config struct {
	DataDir string `conf:"datadir"`

	// RPC server
	RPC RPCConfig

	// Attempt log
	History HistoryConfig

	// Prometheus endpoint
	Metrics MetricsConfig

	// Logging
	Log LogConfig
}

// RPCConfig holds RPC server settings.
type RPCConfig struct {
	Enabled     bool     `conf:"rpc.enabled"`
	Addr        string   `conf:"rpc.addr"`
	Port        int      `conf:"rpc.port"`
	AllowedIPs  []string `conf:"rpc.allowed"`
	CORSOrigins []string `conf:"rpc.cors"` // Allowed CORS origins ("*" = all).
}

// HistoryConfig holds attempt log settings.
type HistoryConfig struct {
	Enabled bool `conf:"history.enabled"`
	Size    int  `conf:"history.size"` // Attempts kept in memory.
}

// MaxHistorySize is the largest accepted history.size.
const MaxHistorySize = history.MaxSize

// MetricsConfig holds Prometheus exposition settings. Metrics are served on
// the RPC listener.
type MetricsConfig struct {
	Enabled bool   `conf:"metrics.enabled"`
	Path    string `conf:"metrics.path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.seedphrase
//	macOS:   ~/Library/Application Support/Seedphrase
//	Windows: %APPDATA%\Seedphrase
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".seedphrase"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Seedphrase")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Seedphrase")
		}
		return filepath.Join(home, "AppData", "Roaming", "Seedphrase")
	default:
		return filepath.Join(home, ".seedphrase")
	}
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "seedphrase.conf")
}
