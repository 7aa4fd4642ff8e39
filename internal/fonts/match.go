// Package fonts enumerates font catalogues and computes which installed
// fonts a kitty terminal can render.
package fonts

import (
	"fmt"
	"sort"
	"strings"
)

// Strategy selects how installed font names are matched against the
// terminal's supported list.
type Strategy int

const (
	// MatchNormalized compares names with all whitespace removed, and
	// also accepts an exact raw match. This is the default policy.
	MatchNormalized Strategy = iota

	// MatchExact compares raw names byte for byte.
	MatchExact

	// MatchSubstring accepts an installed font when any supported name
	// contains it. Prone to false positives ("Mono" matches
	// "JetBrains Mono"); kept for setups that relied on the old behavior.
	MatchSubstring
)

func (s Strategy) String() string {
	switch s {
	case MatchNormalized:
		return "normalized"
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	}
	return "unknown"
}

// ParseStrategy maps a config string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normalized":
		return MatchNormalized, nil
	case "exact":
		return MatchExact, nil
	case "substring":
		return MatchSubstring, nil
	}
	return MatchNormalized, fmt.Errorf("unknown match strategy %q (want normalized, exact or substring)", s)
}

// Normalize strips all whitespace from a font name. The result is used
// as a case-sensitive join key across font sources.
func Normalize(name string) string {
	return strings.Join(strings.Fields(name), "")
}

// Index is the set of fonts both installed on the host and renderable
// by the terminal. Keys are normalized names, values are the raw names
// as the terminal reports them.
type Index struct {
	byKey map[string]string
	keys  []string
}

// Resolve looks up a font by name. The name is normalized first, so
// "JetBrains Mono" and "JetBrainsMono" resolve to the same entry.
func (ix *Index) Resolve(name string) (string, bool) {
	raw, ok := ix.byKey[Normalize(name)]
	return raw, ok
}

// Keys returns the normalized names in lexicographic order.
func (ix *Index) Keys() []string {
	out := make([]string, len(ix.keys))
	copy(out, ix.keys)
	return out
}

// Raw returns the terminal-reported names in lexicographic order.
func (ix *Index) Raw() []string {
	out := make([]string, 0, len(ix.byKey))
	for _, raw := range ix.byKey {
		out = append(out, raw)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of compatible fonts.
func (ix *Index) Len() int {
	return len(ix.byKey)
}

// Intersect computes the compatible-font index for the given matching
// strategy. The result does not depend on the order of either input.
func Intersect(installed, supported []string, strategy Strategy) *Index {
	byNorm := make(map[string]string, len(supported))
	rawSet := make(map[string]string, len(supported))
	for _, s := range supported {
		rawSet[s] = s
		if _, seen := byNorm[Normalize(s)]; !seen {
			byNorm[Normalize(s)] = s
		}
	}

	ix := &Index{byKey: make(map[string]string)}
	for _, font := range installed {
		raw, ok := match(font, strategy, byNorm, rawSet, supported)
		if !ok {
			continue
		}
		key := Normalize(font)
		if _, seen := ix.byKey[key]; !seen {
			ix.byKey[key] = raw
			ix.keys = append(ix.keys, key)
		}
	}
	sort.Strings(ix.keys)
	return ix
}

func match(font string, strategy Strategy, byNorm, rawSet map[string]string, supported []string) (string, bool) {
	switch strategy {
	case MatchExact:
		raw, ok := rawSet[font]
		return raw, ok
	case MatchSubstring:
		for _, s := range supported {
			if strings.Contains(s, font) {
				return s, true
			}
		}
		return "", false
	default:
		if raw, ok := rawSet[font]; ok {
			return raw, ok
		}
		raw, ok := byNorm[Normalize(font)]
		return raw, ok
	}
}
