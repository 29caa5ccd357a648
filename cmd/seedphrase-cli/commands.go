package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/Klingon-tech/seedphrase/internal/history"
	klog "github.com/Klingon-tech/seedphrase/internal/log"
	"github.com/Klingon-tech/seedphrase/internal/rpcclient"
	"github.com/Klingon-tech/seedphrase/internal/wallet"
	"golang.org/x/sync/errgroup"
)

// deriver runs derivations either in-process or against a daemon.
type deriver interface {
	Derive(ctx context.Context, mnemonic, passphrase string) (string, error)
	Validate(ctx context.Context, mnemonic string) error
}

type localDeriver struct{}

func (localDeriver) Derive(_ context.Context, mnemonic, passphrase string) (string, error) {
	addr, err := wallet.DeriveAddress(mnemonic, passphrase)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

func (localDeriver) Validate(_ context.Context, mnemonic string) error {
	return wallet.ValidateMnemonic(mnemonic)
}

type remoteDeriver struct {
	client *rpcclient.Client
}

func (r remoteDeriver) Derive(ctx context.Context, mnemonic, passphrase string) (string, error) {
	res, err := r.client.DeriveAddress(ctx, mnemonic, passphrase)
	if err != nil {
		return "", err
	}
	return res.Address, nil
}

func (r remoteDeriver) Validate(ctx context.Context, mnemonic string) error {
	res, err := r.client.Validate(ctx, mnemonic)
	if err != nil {
		return err
	}
	if !res.Valid {
		return &remoteInvalid{kind: res.Kind, msg: res.Error}
	}
	return nil
}

// remoteInvalid is a validation failure reported by the daemon.
type remoteInvalid struct {
	kind string
	msg  string
}

func (e *remoteInvalid) Error() string { return e.msg }

// errorKind classifies local, remote and transport errors alike.
func errorKind(err error) string {
	var rpcErr *rpcclient.RPCError
	if errors.As(err, &rpcErr) {
		if data, ok := rpcErr.PhraseData(); ok {
			return data.Kind
		}
		return wallet.KindInternal
	}
	var inv *remoteInvalid
	if errors.As(err, &inv) {
		return inv.kind
	}
	return wallet.KindOf(err)
}

// wordsToBits maps a word count to its entropy size.
func wordsToBits(words int) (int, error) {
	if !wallet.IsValidWordCount(words) {
		return 0, fmt.Errorf("invalid word count %d (want 12, 15, 18, 21 or 24)", words)
	}
	return words * 32 / 3, nil
}

// generate creates a new mnemonic and derives its address through d.
func generate(ctx context.Context, d deriver, words int) (phrase, addr string, err error) {
	bits, err := wordsToBits(words)
	if err != nil {
		return "", "", err
	}
	phrase, err = wallet.GenerateMnemonic(bits)
	if err != nil {
		return "", "", fmt.Errorf("generate mnemonic: %w", err)
	}
	addr, err = d.Derive(ctx, phrase, "")
	if err != nil {
		return "", "", fmt.Errorf("derive address: %w", err)
	}
	return phrase, addr, nil
}

// batchLine is one mnemonic from a batch file with its 1-based line number.
type batchLine struct {
	Num    int
	Phrase string
}

// readBatch reads one mnemonic per line. Blank lines and lines starting
// with '#' are skipped.
func readBatch(r io.Reader) ([]batchLine, error) {
	var lines []batchLine
	sc := bufio.NewScanner(r)
	num := 0
	for sc.Scan() {
		num++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, batchLine{Num: num, Phrase: text})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// batchResult is the outcome for one batch line.
type batchResult struct {
	Line    int
	Address string
	Err     error
}

// runBatch derives every line in parallel and returns results in input
// order. Classified phrase errors are reported per line; anything else
// (an unreachable daemon, an internal failure) aborts the batch.
func runBatch(ctx context.Context, d deriver, lines []batchLine, workers int) ([]batchResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	defer klog.Benchmark(fmt.Sprintf("batch of %d", len(lines)))()

	results := make([]batchResult, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, l := range lines {
		i, l := i, l
		g.Go(func() error {
			addr, err := d.Derive(gctx, l.Phrase, "")
			if err != nil && errorKind(err) == wallet.KindInternal {
				return fmt.Errorf("line %d: %w", l.Num, err)
			}
			results[i] = batchResult{Line: l.Num, Address: addr, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// printBatch writes one line per result and returns the failure count.
// Phrases are never echoed.
func printBatch(w io.Writer, results []batchResult) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%d\terror\t%s: %v\n", r.Line, errorKind(r.Err), r.Err)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\n", r.Line, r.Address)
	}
	return failed
}

// printHistory renders attempts as a table, newest first.
func printHistory(w io.Writer, attempts []history.Attempt) {
	if len(attempts) == 0 {
		fmt.Fprintln(w, "No attempts recorded.")
		return
	}
	fmt.Fprintf(w, "%-6s  %-19s  %-16s  %5s  %-10s  %s\n",
		"SEQ", "TIME", "FINGERPRINT", "WORDS", "TOOK", "RESULT")
	for _, a := range attempts {
		result := a.Address
		if !a.OK() {
			result = a.ErrorKind
		}
		fmt.Fprintf(w, "%-6d  %-19s  %-16s  %5d  %-10s  %s\n",
			a.Seq,
			a.Time.Local().Format("2006-01-02 15:04:05"),
			a.Fingerprint.String()[:16],
			a.WordCount,
			a.Duration.Round(time.Microsecond),
			result)
	}
}
