package rpc

import (
	"github.com/Klingon-tech/seedphrase/internal/history"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeNotFound       = -32000
)

// Derivation failure codes. Internal derivation failures use
// CodeInternalError.
const (
	CodeInvalidWordCount = -32010
	CodeInvalidWord      = -32011
	CodeInvalidPhrase    = -32012
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PhraseErrorData is the data member of a derivation error.
type PhraseErrorData struct {
	Kind  string `json:"kind"`
	Count *int   `json:"count,omitempty"` // invalid_word_count only
	Word  string `json:"word,omitempty"`  // invalid_word only
}

// ── Param types ─────────────────────────────────────────────────────────

// MnemonicParam is used by seedphrase_deriveAddress and seedphrase_validate.
type MnemonicParam struct {
	Mnemonic   string `json:"mnemonic"`
	Passphrase string `json:"passphrase,omitempty"`
}

// HistoryParam is used by seedphrase_getHistory.
type HistoryParam struct {
	Limit int `json:"limit,omitempty"`
}

// ── Result types ────────────────────────────────────────────────────────

// DeriveResult is returned by seedphrase_deriveAddress.
type DeriveResult struct {
	Address string `json:"address"`
	Path    string `json:"path"`
}

// ValidateResult is returned by seedphrase_validate.
type ValidateResult struct {
	Valid     bool   `json:"valid"`
	WordCount int    `json:"word_count"`
	Error     string `json:"error,omitempty"`
	Kind      string `json:"kind,omitempty"`
}

// HistoryResult is returned by seedphrase_getHistory.
type HistoryResult struct {
	Attempts []history.Attempt `json:"attempts"`
}

// InfoResult is returned by service_getInfo.
type InfoResult struct {
	Version        string `json:"version"`
	Path           string `json:"path"`
	HistoryEnabled bool   `json:"history_enabled"`
	HistorySize    int    `json:"history_size"`
	MetricsEnabled bool   `json:"metrics_enabled"`
	Uptime         int64  `json:"uptime_seconds"`
}
