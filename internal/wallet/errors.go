package wallet

import (
	"errors"
	"fmt"
)

// Derivation failure classes. Every error returned by this package is a
// *PhraseError that unwraps to exactly one of these.
var (
	ErrInvalidWordCount = errors.New("invalid word count")
	ErrInvalidWord      = errors.New("word not in wordlist")
	ErrInvalidPhrase    = errors.New("mnemonic checksum mismatch")
	ErrInternal         = errors.New("internal derivation error")
)

// PhraseError describes why a phrase could not be turned into an address.
type PhraseError struct {
	// Kind is one of ErrInvalidWordCount, ErrInvalidWord, ErrInvalidPhrase
	// or ErrInternal.
	Kind error

	Count int    // word count, for ErrInvalidWordCount
	Word  string // first offending token as typed, for ErrInvalidWord
	Msg   string // failing step, for ErrInternal

	// Err is the primitive-level cause of an ErrInternal, if any.
	Err error
}

func (e *PhraseError) Error() string {
	switch e.Kind {
	case ErrInvalidWordCount:
		return fmt.Sprintf("invalid word count %d: want 12, 15, 18, 21 or 24", e.Count)
	case ErrInvalidWord:
		return fmt.Sprintf("invalid word %q: not in the BIP-39 English wordlist", e.Word)
	case ErrInvalidPhrase:
		return "invalid mnemonic: checksum mismatch"
	}
	if e.Err != nil {
		return fmt.Sprintf("internal error: %s: %v", e.Msg, e.Err)
	}
	return "internal error: " + e.Msg
}

// Unwrap returns the failure class so callers can use errors.Is.
func (e *PhraseError) Unwrap() error {
	return e.Kind
}

func invalidWordCount(n int) error {
	return &PhraseError{Kind: ErrInvalidWordCount, Count: n}
}

func invalidWord(word string) error {
	return &PhraseError{Kind: ErrInvalidWord, Word: word}
}

func invalidPhrase() error {
	return &PhraseError{Kind: ErrInvalidPhrase}
}

func internalError(msg string, cause error) error {
	return &PhraseError{Kind: ErrInternal, Msg: msg, Err: cause}
}

// Kind names used in logs, metrics and RPC error data.
const (
	KindOK               = "ok"
	KindInvalidWordCount = "invalid_word_count"
	KindInvalidWord      = "invalid_word"
	KindInvalidPhrase    = "invalid_phrase"
	KindInternal         = "internal"
)

// KindOf classifies err. A nil error is KindOK; anything outside the
// taxonomy counts as KindInternal.
func KindOf(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrInvalidWordCount):
		return KindInvalidWordCount
	case errors.Is(err, ErrInvalidWord):
		return KindInvalidWord
	case errors.Is(err, ErrInvalidPhrase):
		return KindInvalidPhrase
	default:
		return KindInternal
	}
}
