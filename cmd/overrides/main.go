package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"gallery-sorter/internal/logging"
	"gallery-sorter/internal/media"
	"gallery-sorter/internal/mediatypes"
	"gallery-sorter/internal/overrides"
	"gallery-sorter/internal/startup"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"golang.org/x/term"
)

// Default timeout for store operations
const defaultTimeout = 30 * time.Second

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	command := os.Args[1]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage(os.Stdout)
		return
	}

	// Create a context that cancels on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Keep diagnostics quiet and off stdout.
	logging.Init(logging.Config{Level: "warn", Output: os.Stderr})

	config, err := startup.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Make sure %s points at the gallery-sorter config\n", startup.ConfigPathEnvVar)
		os.Exit(1)
	}

	store, err := startup.OpenOverrideStore(ctx, config.Overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to open override store: %v\n", err)
		os.Exit(1)
	}

	c := &cli{
		store:  store,
		out:    os.Stdout,
		in:     os.Stdin,
		prompt: term.IsTerminal(int(os.Stdin.Fd())),
	}
	code := c.run(ctx, command, os.Args[2:])

	if err := store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close override store: %v\n", err)
	}
	os.Exit(code)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Gallery Sorter Override Management")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: overrides <command> [flags] [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list [-json]           - List stored sorting overrides")
	fmt.Fprintln(w, "  get <dir>              - Show the override for a directory")
	fmt.Fprintln(w, "  set <dir> <method>     - Store an override for a directory")
	fmt.Fprintln(w, "  remove <dir>           - Remove the override for a directory")
	fmt.Fprintln(w, "  clear [-yes]           - Remove all overrides")
	fmt.Fprintln(w, "  status                 - Show the store backend and override count")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "A <dir> is a path relative to media_dir, or a full key (dir:..., search:...).")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %s - Path to the gallery-sorter config file\n", startup.ConfigPathEnvVar)
	fmt.Fprintf(w, "  %sOVERRIDES_BACKEND, %sOVERRIDES_PATH - Store selection\n", startup.EnvPrefix, startup.EnvPrefix)
}

// cli runs one command against an open store.
type cli struct {
	store overrides.Store
	out   io.Writer
	in    io.Reader
	// prompt is set when in is an interactive terminal.
	prompt bool
}

// fileStore is implemented by stores backed by a single database file.
type fileStore interface {
	Path() string
	SchemaVersion(ctx context.Context) (string, error)
	Vacuum(ctx context.Context) error
}

// run executes command and returns the process exit code.
func (c *cli) run(ctx context.Context, command string, args []string) int {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var err error
	switch command {
	case "list":
		err = c.list(ctx, args)
	case "get":
		err = c.get(ctx, args)
	case "set":
		err = c.set(ctx, args)
	case "remove":
		err = c.remove(ctx, args)
	case "clear":
		err = c.clear(ctx, args)
	case "status":
		err = c.status(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", sanitizeCommand(command))
		printUsage(c.out)
		return 1
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// sanitizeCommand returns a safe representation of a command string for display.
// Anything other than letters, digits, '-' and '_' is replaced with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// normalizeKey turns a directory path into its override key. Full keys are
// returned unchanged.
func normalizeKey(arg string) string {
	if strings.HasPrefix(arg, "dir:") || strings.HasPrefix(arg, "search:") {
		return arg
	}
	arg = strings.Trim(strings.TrimSpace(arg), "/")
	if arg == "." {
		arg = ""
	}
	return media.DirectoryKey(arg)
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list overrides: %w", err)
	}

	if *asJSON {
		if items == nil {
			items = []overrides.Override{}
		}
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(c.out, "No sorting overrides stored.")
		return nil
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tMETHOD\tUPDATED")
	for _, o := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.Key, o.Method, humanize.Time(o.UpdatedAt))
	}
	return tw.Flush()
}

func (c *cli) get(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: overrides get <dir>")
	}
	key := normalizeKey(args[0])

	method, err := c.store.GetSorting(ctx, key)
	if errors.Is(err, overrides.ErrNotFound) {
		fmt.Fprintf(c.out, "%s: no override (default sorting applies)\n", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read override for %s: %w", key, err)
	}
	fmt.Fprintf(c.out, "%s: %s\n", key, method)
	return nil
}

func (c *cli) set(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: overrides set <dir> <method>")
	}
	key := normalizeKey(args[0])
	method, err := mediatypes.ParseSortingMethod(args[1])
	if err != nil {
		return err
	}

	if err := c.store.SetSorting(ctx, key, method); err != nil {
		return fmt.Errorf("failed to store override for %s: %w", key, err)
	}
	fmt.Fprintf(c.out, "%s: sorting set to %s\n", key, method)
	return nil
}

func (c *cli) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: overrides remove <dir>")
	}
	key := normalizeKey(args[0])

	if err := c.store.RemoveSorting(ctx, key); err != nil {
		return fmt.Errorf("failed to remove override for %s: %w", key, err)
	}
	fmt.Fprintf(c.out, "%s: override removed\n", key)
	return nil
}

func (c *cli) clear(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	count, err := c.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count overrides: %w", err)
	}
	if count == 0 {
		fmt.Fprintln(c.out, "No sorting overrides stored.")
		return nil
	}

	if !*yes {
		if !c.prompt {
			return errors.New("refusing to clear without -yes when stdin is not a terminal")
		}
		fmt.Fprintf(c.out, "Remove %s sorting overrides? [y/N]: ", humanize.Comma(int64(count)))
		answer, _ := bufio.NewReader(c.in).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(c.out, "Aborted.")
			return nil
		}
	}

	removed, err := c.store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear overrides: %w", err)
	}
	fmt.Fprintf(c.out, "Removed %s sorting overrides.\n", humanize.Comma(int64(removed)))

	if file, ok := c.store.(fileStore); ok {
		if err := file.Vacuum(ctx); err != nil {
			return fmt.Errorf("failed to compact %s: %w", file.Path(), err)
		}
		fmt.Fprintf(c.out, "Compacted %s.\n", file.Path())
	}
	return nil
}

func (c *cli) status(ctx context.Context) error {
	count, err := c.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count overrides: %w", err)
	}
	fmt.Fprintf(c.out, "Backend: %s\n", c.store.Backend())
	if file, ok := c.store.(fileStore); ok {
		version, err := file.SchemaVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		fmt.Fprintf(c.out, "Database: %s\n", file.Path())
		fmt.Fprintf(c.out, "Schema version: %s\n", version)
	}
	fmt.Fprintf(c.out, "Overrides: %s\n", humanize.Comma(int64(count)))
	return nil
}
