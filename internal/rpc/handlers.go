package rpc

import (
	"errors"
	"strings"
	"time"

	"github.com/Klingon-tech/seedphrase/config"
	"github.com/Klingon-tech/seedphrase/internal/history"
	"github.com/Klingon-tech/seedphrase/internal/wallet"
)

// ── Derivation endpoints ────────────────────────────────────────────────

func (s *Server) handleDeriveAddress(req *Request) (interface{}, *Error) {
	var params MnemonicParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}

	start := time.Now()
	addr, err := wallet.DeriveAddress(params.Mnemonic, params.Passphrase)
	took := time.Since(start)

	var addrStr string
	if err == nil {
		addrStr = addr.String()
	}
	s.observe(params.Mnemonic, addrStr, err, took)

	if err != nil {
		return nil, phraseError(err)
	}
	return &DeriveResult{
		Address: addrStr,
		Path:    wallet.DefaultPath.String(),
	}, nil
}

func (s *Server) handleValidate(req *Request) (interface{}, *Error) {
	var params MnemonicParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}

	err := wallet.ValidateMnemonic(params.Mnemonic)
	if s.metrics != nil {
		s.metrics.ObserveValidation(err)
	}

	result := &ValidateResult{
		Valid:     err == nil,
		WordCount: len(strings.Fields(wallet.NormalizePhrase(params.Mnemonic))),
	}
	if err != nil {
		result.Error = err.Error()
		result.Kind = wallet.KindOf(err)
	}
	return result, nil
}

// observe feeds one derivation outcome to metrics, history and the log.
// The phrase only ever reaches the history fingerprinter.
func (s *Server) observe(phrase, addr string, err error, took time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveDerivation(err, took)
	}

	ev := s.logger.Info()
	if errors.Is(err, wallet.ErrInternal) {
		ev = s.logger.Error()
	}

	if s.history != nil {
		a, hErr := s.history.Record(phrase, addr, err, took)
		if hErr != nil {
			s.logger.Warn().Err(hErr).Msg("Failed to record attempt")
		} else {
			ev = ev.Uint64("seq", a.Seq).Str("fingerprint", a.Fingerprint.String()[:16])
		}
	}

	ev.Str("result", wallet.KindOf(err)).
		Int("words", len(strings.Fields(phrase))).
		Dur("took", took).
		Msg("Derivation")
}

// phraseError maps a derivation failure to its JSON-RPC error.
func phraseError(err error) *Error {
	var pe *wallet.PhraseError
	if !errors.As(err, &pe) {
		return &Error{Code: CodeInternalError, Message: err.Error(),
			Data: &PhraseErrorData{Kind: wallet.KindInternal}}
	}

	data := &PhraseErrorData{Kind: wallet.KindOf(err)}
	code := CodeInternalError
	switch pe.Kind {
	case wallet.ErrInvalidWordCount:
		code = CodeInvalidWordCount
		count := pe.Count
		data.Count = &count
	case wallet.ErrInvalidWord:
		code = CodeInvalidWord
		data.Word = pe.Word
	case wallet.ErrInvalidPhrase:
		code = CodeInvalidPhrase
	}
	return &Error{Code: code, Message: pe.Error(), Data: data}
}

// ── History endpoints ───────────────────────────────────────────────────

func (s *Server) handleGetHistory(req *Request) (interface{}, *Error) {
	if s.history == nil {
		return nil, &Error{Code: CodeNotFound, Message: "history not enabled"}
	}

	var params HistoryParam
	if req.Params != nil {
		if err := parseParams(req, &params); err != nil {
			return nil, err
		}
	}
	if params.Limit < 0 {
		return nil, &Error{Code: CodeInvalidParams, Message: "limit must not be negative"}
	}

	attempts, err := s.history.Recent(params.Limit)
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}
	if attempts == nil {
		attempts = []history.Attempt{}
	}
	return &HistoryResult{Attempts: attempts}, nil
}

// ── Service endpoints ───────────────────────────────────────────────────

func (s *Server) handleGetInfo(_ *Request) (interface{}, *Error) {
	info := &InfoResult{
		Version:        config.Version,
		Path:           wallet.DefaultPath.String(),
		HistoryEnabled: s.history != nil,
		MetricsEnabled: s.metrics != nil,
		Uptime:         int64(time.Since(s.started).Seconds()),
	}
	if s.history != nil {
		info.HistorySize = s.history.Size()
	}
	return info, nil
}
