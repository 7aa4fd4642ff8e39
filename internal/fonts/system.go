package fonts

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds each external font-listing command. A tool that
// takes longer counts as unavailable rather than hanging the caller.
const DefaultTimeout = 10 * time.Second

// SystemSource lists font families installed on the host via
// fontconfig's fc-list.
type SystemSource struct {
	Timeout time.Duration
}

// List runs `fc-list : family` and returns one family per output line.
// fc-list emits comma-separated aliases per font; the first entry is
// the canonical family name and the rest are dropped.
func (s SystemSource) List(ctx context.Context) ([]string, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "fc-list", ":", "family").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: fc-list: %v", ErrUnavailable, err)
	}

	var families []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i := strings.Index(line, ","); i >= 0 {
			line = line[:i]
		}
		families = append(families, line)
	}
	return families, nil
}
