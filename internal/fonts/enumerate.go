package fonts

import (
	"context"

	"github.com/rs/zerolog"
)

// Enumerator pairs the host and terminal font catalogues. A source that
// cannot run yields an empty list, never an error; the failure is
// logged so "tool missing" stays distinguishable from "no fonts
// installed".
type Enumerator struct {
	installed Source
	supported Source
	log       zerolog.Logger
}

// NewEnumerator builds an Enumerator over the two catalogues.
func NewEnumerator(installed, supported Source, log zerolog.Logger) *Enumerator {
	return &Enumerator{
		installed: installed,
		supported: supported,
		log:       log,
	}
}

// ListInstalled returns the host's font families, deduplicated in
// first-seen order. The second return is false when the source failed.
func (e *Enumerator) ListInstalled(ctx context.Context) ([]string, bool) {
	return e.drain(ctx, e.installed, "installed")
}

// ListSupported returns the families the terminal can render,
// deduplicated in first-seen order. The second return is false when the
// source failed.
func (e *Enumerator) ListSupported(ctx context.Context) ([]string, bool) {
	return e.drain(ctx, e.supported, "supported")
}

func (e *Enumerator) drain(ctx context.Context, src Source, catalogue string) ([]string, bool) {
	names, err := src.List(ctx)
	if err != nil {
		e.log.Warn().Err(err).Str("catalogue", catalogue).Msg("font enumeration failed, treating as empty")
		return nil, false
	}
	e.log.Debug().Str("catalogue", catalogue).Int("count", len(names)).Msg("fonts enumerated")
	return Dedupe(names), true
}

// Dedupe drops repeated names, preserving first-seen order.
func Dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
