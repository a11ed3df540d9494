package cli

import (
	"errors"
	"fmt"

	"github.com/boolean-maybe/mapfilter/filter"
)

// errCheckFailed is a reported negative check result; the message is already printed
var errCheckFailed = errors.New("check failed")

func runCheck(env *Env, args []string) error {
	fs, level := newFlagSet(env, "check")
	expr := fs.StringP("expr", "e", "", "filter expression to validate")
	if err := parseFlags(env, fs, level, args); err != nil {
		return err
	}
	if !fs.Changed("expr") && fs.NArg() == 1 {
		*expr = fs.Arg(0)
	}
	if !fs.Changed("expr") && fs.NArg() != 1 {
		return fmt.Errorf("%w: -e EXPR is required", errUsage)
	}

	f, err := filter.Compile(*expr)
	if err != nil {
		_, _ = fmt.Fprintln(env.Stderr, err)
		return errCheckFailed
	}
	_, _ = fmt.Fprintln(env.Stdout, f.String())
	return nil
}
