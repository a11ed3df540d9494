package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/boolean-maybe/mapfilter/config"
	"github.com/boolean-maybe/mapfilter/internal/app"
	"github.com/boolean-maybe/mapfilter/internal/bootstrap"
	"github.com/boolean-maybe/mapfilter/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to a CLI subcommand or the terminal explorer and returns the
// process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && (args[0] == "--version" || args[0] == "-v") {
		_, _ = fmt.Fprintf(stdout, "mapfilter version %s\ncommit: %s\nbuilt: %s\n",
			config.Version, config.GitCommit, config.BuildDate)
		return 0
	}

	if err := config.InitPaths(); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	if cli.IsCommand(args) {
		return cli.Run(args, stdout, stderr)
	}

	result, err := bootstrap.Bootstrap()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	if result == nil {
		// project initialization declined
		return 0
	}
	defer result.App.Stop()
	defer result.RootLayout.Cleanup()
	defer result.CancelFunc()

	if err := app.Run(result.App, result.RootLayout); err != nil {
		slog.Error("explorer stopped", "error", err)
		return 1
	}
	return 0
}
