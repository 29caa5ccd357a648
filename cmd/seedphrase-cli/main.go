// seedphrase-cli derives Ethereum addresses from BIP-39 mnemonics, either
// locally or through a running seedphrased.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	klog "github.com/Klingon-tech/seedphrase/internal/log"
	"github.com/Klingon-tech/seedphrase/internal/rpcclient"
	"golang.org/x/term"
)

// globalOpts are the flags accepted before the subcommand.
type globalOpts struct {
	rpcURL   string
	logLevel string
}

// parseGlobal consumes global flags and returns the remaining arguments.
func parseGlobal(args []string) (globalOpts, []string) {
	opts := globalOpts{logLevel: "warn"}
	for len(args) > 0 {
		switch {
		case args[0] == "--rpc" && len(args) > 1:
			opts.rpcURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--rpc="):
			opts.rpcURL = args[0][len("--rpc="):]
			args = args[1:]
		case args[0] == "--log-level" && len(args) > 1:
			opts.logLevel = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--log-level="):
			opts.logLevel = args[0][len("--log-level="):]
			args = args[1:]
		default:
			return opts, args
		}
	}
	return opts, args
}

func main() {
	opts, args := parseGlobal(os.Args[1:])
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	if !klog.ValidLevel(opts.logLevel) {
		fatal("invalid log level %q", opts.logLevel)
	}
	klog.SetOutput(os.Stderr, opts.logLevel, false)

	var d deriver = localDeriver{}
	var client *rpcclient.Client
	if opts.rpcURL != "" {
		client = rpcclient.New(opts.rpcURL)
		d = remoteDeriver{client: client}
		klog.CLI.Debug().Str("rpc", opts.rpcURL).Msg("Using remote daemon")
	}

	ctx := context.Background()
	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "derive":
		cmdDerive(ctx, d, cmdArgs)
	case "validate":
		cmdValidate(ctx, d, cmdArgs)
	case "generate":
		cmdGenerate(ctx, d, cmdArgs)
	case "batch":
		cmdBatch(ctx, d, cmdArgs)
	case "history":
		if client == nil {
			fatal("history requires --rpc <url>")
		}
		cmdHistory(ctx, client, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: seedphrase-cli [global flags] <command> [flags]

Global flags:
  --rpc <url>          Delegate to a running seedphrased (e.g. http://127.0.0.1:8745)
  --log-level <lvl>    debug, info, warn (default) or error

Commands:
  derive [--passphrase] [words...]
                       Print the address for a mnemonic. Prompts for the
                       mnemonic when no words are given.
  validate [words...]  Check a mnemonic without deriving
  generate [--words N] Create a new mnemonic (12, 15, 18, 21 or 24 words)
  batch --file <path>  Derive one mnemonic per line, in parallel
  history [--limit N]  Show the daemon's attempt log (requires --rpc)

Derivation path: m/44'/60'/0'/0/0
`)
}

// phraseFromArgs joins positional words, or prompts without echo.
func phraseFromArgs(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	phrase, err := readPassword("Mnemonic: ")
	if err != nil {
		fatal("read mnemonic: %v", err)
	}
	return string(phrase)
}

// ── derive ──────────────────────────────────────────────────────────────

func cmdDerive(ctx context.Context, d deriver, args []string) {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	withPass := fs.Bool("passphrase", false, "Prompt for a BIP-39 passphrase")
	fs.Parse(args)

	phrase := phraseFromArgs(fs.Args())
	var passphrase string
	if *withPass {
		p, err := readPassword("Passphrase: ")
		if err != nil {
			fatal("read passphrase: %v", err)
		}
		passphrase = string(p)
	}

	addr, err := d.Derive(ctx, phrase, passphrase)
	if err != nil {
		fatal("%v (%s)", err, errorKind(err))
	}
	fmt.Println(addr)
}

// ── validate ────────────────────────────────────────────────────────────

func cmdValidate(ctx context.Context, d deriver, args []string) {
	phrase := phraseFromArgs(args)
	if err := d.Validate(ctx, phrase); err != nil {
		fatal("%v (%s)", err, errorKind(err))
	}
	fmt.Println("OK")
}

// ── generate ────────────────────────────────────────────────────────────

func cmdGenerate(ctx context.Context, d deriver, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	words := fs.Int("words", 12, "Number of words (12, 15, 18, 21 or 24)")
	fs.Parse(args)

	phrase, addr, err := generate(ctx, d, *words)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Println("Mnemonic:")
	fmt.Printf("  %s\n", phrase)
	fmt.Printf("Address: %s\n", addr)
	fmt.Println()
	fmt.Println("WARNING: Write down the mnemonic and store it offline.")
}

// ── batch ───────────────────────────────────────────────────────────────

func cmdBatch(ctx context.Context, d deriver, args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	file := fs.String("file", "", "File with one mnemonic per line")
	workers := fs.Int("workers", 0, "Parallel derivations (default: number of CPUs)")
	fs.Parse(args)

	if *file == "" {
		fatal("Usage: seedphrase-cli batch --file <path>")
	}
	f, err := os.Open(*file)
	if err != nil {
		fatal("open batch file: %v", err)
	}
	lines, err := readBatch(f)
	f.Close()
	if err != nil {
		fatal("read batch file: %v", err)
	}

	results, err := runBatch(ctx, d, lines, *workers)
	if err != nil {
		fatal("batch: %v", err)
	}
	if failed := printBatch(os.Stdout, results); failed > 0 {
		os.Exit(1)
	}
}

// ── history ─────────────────────────────────────────────────────────────

func cmdHistory(ctx context.Context, client *rpcclient.Client, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Number of attempts to show (0 = all)")
	fs.Parse(args)

	attempts, err := client.History(ctx, *limit)
	if err != nil {
		fatal("seedphrase_getHistory: %v", err)
	}
	printHistory(os.Stdout, attempts)
}

// ── Terminal helpers ────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
