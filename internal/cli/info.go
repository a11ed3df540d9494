package cli

import (
	"fmt"

	"github.com/boolean-maybe/mapfilter/util/sysinfo"
)

func runInfo(env *Env, args []string) error {
	fs, level := newFlagSet(env, "info")
	if err := parseFlags(env, fs, level, args); err != nil {
		return err
	}
	_, _ = fmt.Fprint(env.Stdout, sysinfo.NewSystemInfo().String())
	return nil
}
