package kitty

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Reloader tells running kitty processes to re-read their
// configuration. Kitty reloads its config on SIGUSR1.
type Reloader struct {
	// ProcessName is matched exactly against process names (pgrep -x).
	ProcessName string

	Signal syscall.Signal
	Log    zerolog.Logger
}

// Reload signals every process whose name matches. Best effort: no
// running kitty is a no-op, and delivery failures are only logged.
func (r Reloader) Reload(ctx context.Context) {
	out, err := exec.CommandContext(ctx, "pgrep", "-x", r.ProcessName).Output()
	if err != nil {
		// pgrep exits 1 when nothing matched.
		r.Log.Debug().Str("process", r.ProcessName).Msg("no running terminal to reload")
		return
	}

	for _, field := range strings.Fields(string(out)) {
		pid, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		proc, err := os.FindProcess(pid)
		if err != nil {
			continue
		}
		if err := proc.Signal(r.Signal); err != nil {
			r.Log.Warn().Err(err).Int("pid", pid).Msg("reload signal not delivered")
			continue
		}
		r.Log.Debug().Int("pid", pid).Str("signal", unix.SignalName(r.Signal)).Msg("reload signal sent")
	}
}
