// Package history keeps a bounded, in-memory log of derivation attempts.
//
// Phrases are never stored. Each attempt carries a keyed BLAKE3 fingerprint
// of the normalized phrase, so repeated attempts with the same phrase can be
// recognised within one process lifetime and nowhere else.
package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Klingon-tech/seedphrase/internal/log"
	"github.com/Klingon-tech/seedphrase/internal/storage"
	"github.com/Klingon-tech/seedphrase/internal/wallet"
	"github.com/Klingon-tech/seedphrase/pkg/crypto"
	"github.com/Klingon-tech/seedphrase/pkg/types"
)

// MaxSize bounds the configurable number of retained attempts.
const MaxSize = 10000

var keyPrefix = []byte("attempt/")

// Attempt is one recorded derivation.
type Attempt struct {
	Seq         uint64        `json:"seq"`
	Time        time.Time     `json:"time"`
	Fingerprint types.Hash    `json:"fingerprint"`
	WordCount   int           `json:"word_count"`
	Address     string        `json:"address,omitempty"`
	ErrorKind   string        `json:"error_kind,omitempty"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
}

// OK reports whether the attempt produced an address.
func (a Attempt) OK() bool {
	return a.ErrorKind == ""
}

// Log is a newest-first ring of attempts on top of a storage.DB.
// Safe for concurrent use.
type Log struct {
	mu     sync.Mutex
	db     *storage.PrefixDB
	fp     *crypto.Fingerprinter
	size   int
	next   uint64 // seq of the next attempt
	oldest uint64 // seq of the oldest retained attempt
	now    func() time.Time
}

// New creates a log that keeps the most recent size attempts in db.
func New(db storage.DB, fp *crypto.Fingerprinter, size int) (*Log, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("history size %d out of range 1..%d", size, MaxSize)
	}
	if fp == nil {
		return nil, errors.New("history: nil fingerprinter")
	}
	return &Log{
		db:     storage.NewPrefixDB(db, keyPrefix),
		fp:     fp,
		size:   size,
		next:   1,
		oldest: 1,
		now:    time.Now,
	}, nil
}

func seqKey(seq uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], seq)
	return k[:]
}

// Record stores the outcome of deriving phrase. On success addr is the
// derived address and err is nil.
func (l *Log) Record(phrase, addr string, err error, took time.Duration) (Attempt, error) {
	normalized := wallet.NormalizePhrase(phrase)
	a := Attempt{
		Fingerprint: l.fp.Sum([]byte(normalized)),
		WordCount:   len(strings.Fields(normalized)),
		Duration:    took,
	}
	if err != nil {
		a.ErrorKind = wallet.KindOf(err)
		a.Error = redact(err)
	} else {
		a.Address = addr
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	a.Seq = l.next
	a.Time = l.now().UTC()
	data, mErr := json.Marshal(a)
	if mErr != nil {
		return Attempt{}, fmt.Errorf("encode attempt: %w", mErr)
	}
	if pErr := l.db.Put(seqKey(a.Seq), data); pErr != nil {
		return Attempt{}, fmt.Errorf("store attempt: %w", pErr)
	}
	l.next++

	for l.next-l.oldest > uint64(l.size) {
		if dErr := l.db.Delete(seqKey(l.oldest)); dErr != nil {
			return a, fmt.Errorf("evict attempt %d: %w", l.oldest, dErr)
		}
		log.History.Debug().Uint64("seq", l.oldest).Msg("evicted attempt")
		l.oldest++
	}

	log.History.Debug().
		Uint64("seq", a.Seq).
		Str("fingerprint", a.Fingerprint.String()[:16]).
		Int("words", a.WordCount).
		Str("kind", wallet.KindOf(err)).
		Msg("recorded attempt")
	return a, nil
}

// redact drops the offending token from invalid-word errors; it is part of
// the phrase.
func redact(err error) string {
	var pe *wallet.PhraseError
	if errors.As(err, &pe) && pe.Kind == wallet.ErrInvalidWord {
		return "invalid word: not in the BIP-39 English wordlist"
	}
	return err.Error()
}

// Recent returns up to limit attempts, newest first. A limit <= 0 returns
// every retained attempt.
func (l *Log) Recent(limit int) ([]Attempt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := int(l.next - l.oldest)
	if limit <= 0 || limit > count {
		limit = count
	}
	out := make([]Attempt, 0, limit)
	for seq := l.next - 1; seq >= l.oldest && len(out) < limit; seq-- {
		data, err := l.db.Get(seqKey(seq))
		if err != nil {
			return nil, fmt.Errorf("load attempt %d: %w", seq, err)
		}
		var a Attempt
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("decode attempt %d: %w", seq, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Len returns the number of retained attempts.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int(l.next - l.oldest)
}

// Size returns the retention bound.
func (l *Log) Size() int {
	return l.size
}

// Clear drops every retained attempt. Sequence numbers keep increasing.
func (l *Log) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.db.DeleteAll(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	l.oldest = l.next
	return nil
}
