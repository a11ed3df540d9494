// Package cli implements the non-interactive subcommands: filter, check, time and info.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/boolean-maybe/mapfilter/config"
)

// Exit codes
const (
	ExitOK    = 0
	ExitFail  = 1 // command ran and reported a negative result or error
	ExitUsage = 2
)

// errUsage marks argument errors, reported with ExitUsage
var errUsage = errors.New("usage")

type command struct {
	name  string
	usage string
	run   func(env *Env, args []string) error
}

// Env is what a command writes to
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
}

var commands = []command{
	{"filter", "filter -e EXPR [FILE | --layer NAME] [--ids]", runFilter},
	{"check", "check -e EXPR", runCheck},
	{"time", "time SPEC [--steps N]", runTime},
	{"info", "info", runInfo},
}

// IsCommand reports whether args start with a subcommand name
func IsCommand(args []string) bool {
	return len(args) > 0 && findCommand(args[0]) != nil
}

func findCommand(name string) *command {
	for i := range commands {
		if commands[i].name == name {
			return &commands[i]
		}
	}
	return nil
}

// Run executes the subcommand in args[0] and returns the process exit code.
// Logs go to stderr at the level of --log-level (error when unset).
func Run(args []string, stdout, stderr io.Writer) int {
	env := &Env{Stdout: stdout, Stderr: stderr}
	if len(args) == 0 {
		printUsage(stderr)
		return ExitUsage
	}
	cmd := findCommand(args[0])
	if cmd == nil {
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	err := cmd.run(env, args[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage):
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprintln(stderr, "usage: mapfilter", cmd.usage)
		return ExitUsage
	case errors.Is(err, errCheckFailed):
		return ExitFail
	default:
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return ExitFail
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage:")
	_, _ = fmt.Fprintln(w, "  mapfilter                 open the terminal explorer")
	for _, c := range commands {
		_, _ = fmt.Fprintln(w, "  mapfilter", c.usage)
	}
}

// newFlagSet creates a subcommand flag set with the shared --log-level flag
func newFlagSet(env *Env, name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	level := fs.String("log-level", "error", "Log level (debug, info, warn, error)")
	return fs, level
}

// parseFlags parses args and installs the stderr logger
func parseFlags(env *Env, fs *pflag.FlagSet, level *string, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(*level),
	})))
	return nil
}
