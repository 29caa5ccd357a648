// Package node wires the seedphrase service together: logging, the
// attempt log, metrics and the JSON-RPC server. It is shared by the daemon
// and by tests that need a running service.
package node

import (
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/Klingon-tech/seedphrase/config"
	"github.com/Klingon-tech/seedphrase/internal/history"
	klog "github.com/Klingon-tech/seedphrase/internal/log"
	"github.com/Klingon-tech/seedphrase/internal/metrics"
	"github.com/Klingon-tech/seedphrase/internal/rpc"
	"github.com/Klingon-tech/seedphrase/internal/storage"
	"github.com/Klingon-tech/seedphrase/internal/wallet"
	"github.com/Klingon-tech/seedphrase/pkg/crypto"
	"github.com/rs/zerolog"
)

// Node is a fully-initialized seedphrase service.
type Node struct {
	cfg    *config.Config
	logger zerolog.Logger
	logOut io.Closer

	// Attempt log
	db      storage.DB
	history *history.Log

	metrics   *metrics.Metrics
	rpcServer *rpc.Server
}

// New creates and initializes a Node. Nothing listens until Start.
func New(cfg *config.Config) (*Node, error) {
	// ── 1. Logger ───────────────────────────────────────────────────
	logOut, err := klog.Init(cfg.Log.Level, cfg.Log.JSON, expandHome(cfg.Log.File))
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	n := &Node{
		cfg:    cfg,
		logger: klog.Daemon,
		logOut: logOut,
	}

	n.logger.Info().
		Str("version", config.Version).
		Str("path", wallet.DefaultPath.String()).
		Msg("Starting seedphrase service")

	// ── 2. Attempt log ──────────────────────────────────────────────
	if cfg.History.Enabled {
		fp, err := crypto.NewFingerprinter()
		if err != nil {
			n.close()
			return nil, fmt.Errorf("create fingerprinter: %w", err)
		}
		n.db = storage.NewMemory()
		n.history, err = history.New(n.db, fp, cfg.History.Size)
		if err != nil {
			n.close()
			return nil, fmt.Errorf("create history: %w", err)
		}
		n.logger.Info().Int("size", cfg.History.Size).Msg("Attempt log enabled")
	}

	// ── 3. Metrics ──────────────────────────────────────────────────
	if cfg.Metrics.Enabled {
		n.metrics = metrics.New()
	}

	// ── 4. RPC ──────────────────────────────────────────────────────
	if cfg.RPC.Enabled {
		addr := net.JoinHostPort(cfg.RPC.Addr, strconv.Itoa(cfg.RPC.Port))
		n.rpcServer = rpc.New(addr, cfg.RPC)
		if n.history != nil {
			n.rpcServer.SetHistory(n.history)
		}
		if n.metrics != nil {
			n.rpcServer.SetMetrics(n.metrics, cfg.Metrics.Path)
		}
	}

	return n, nil
}

// Start begins serving RPC requests.
func (n *Node) Start() error {
	if n.rpcServer == nil {
		n.logger.Warn().Msg("RPC disabled, nothing to serve")
		return nil
	}
	if err := n.rpcServer.Start(); err != nil {
		return fmt.Errorf("start rpc: %w", err)
	}
	if n.metrics != nil {
		klog.Metrics.Info().
			Str("addr", n.rpcServer.Addr()).
			Str("path", n.cfg.Metrics.Path).
			Msg("Metrics endpoint enabled")
	}
	return nil
}

// Stop shuts the service down and drops the attempt log.
func (n *Node) Stop() {
	if n.rpcServer != nil {
		if err := n.rpcServer.Stop(); err != nil {
			n.logger.Warn().Err(err).Msg("RPC shutdown")
		}
	}
	n.logger.Info().Msg("Stopped")
	n.close()
}

func (n *Node) close() {
	if n.db != nil {
		n.db.Close()
	}
	if n.logOut != nil {
		n.logOut.Close()
	}
}

// RPCAddr returns the RPC listen address, or "" when RPC is disabled.
func (n *Node) RPCAddr() string {
	if n.rpcServer == nil {
		return ""
	}
	return n.rpcServer.Addr()
}

// History returns the attempt log, or nil when it is disabled.
func (n *Node) History() *history.Log {
	return n.history
}
