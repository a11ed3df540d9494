package cli

import (
	"fmt"

	"github.com/boolean-maybe/mapfilter/timespec"
)

func runTime(env *Env, args []string) error {
	fs, level := newFlagSet(env, "time")
	steps := fs.IntP("steps", "n", 0, "print up to N expanded instants")
	if err := parseFlags(env, fs, level, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: expected one time spec", errUsage)
	}

	spec, err := timespec.Parse(fs.Arg(0))
	if err != nil {
		return err
	}

	switch s := spec.(type) {
	case timespec.Range:
		_, _ = fmt.Fprintf(env.Stdout, "range  %s\n", s.String())
		_, _ = fmt.Fprintf(env.Stdout, "start  %s\n", timespec.FormatInstant(s.Start))
		_, _ = fmt.Fprintf(env.Stdout, "end    %s\n", timespec.FormatInstant(s.End))
		_, _ = fmt.Fprintf(env.Stdout, "step   %s (%d ms)\n", timespec.FormatDuration(s.Duration), s.Duration)
	case timespec.List:
		_, _ = fmt.Fprintf(env.Stdout, "list   %d instants\n", len(s))
	}
	_, _ = fmt.Fprintf(env.Stdout, "steps  %d\n", spec.Len())

	if *steps > 0 {
		for i, ms := range spec.Instants(*steps) {
			_, _ = fmt.Fprintf(env.Stdout, "%5d  %s\n", i+1, timespec.FormatInstant(ms))
		}
	}
	return nil
}
