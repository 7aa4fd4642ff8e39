package kitty

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ihatemodels/kittyfont/internal/fonts"
)

// fontMapScript dumps kitty's font map as JSON on stdout.
const fontMapScript = `from kitty.fonts.common import all_fonts_map; import json; print(json.dumps(all_fonts_map(True)))`

// FontSource lists the font families kitty itself can render, by
// asking the kitty binary for its font map.
type FontSource struct {
	// Binary is the kitty executable. Empty means "kitty" from PATH.
	Binary string

	Timeout time.Duration
}

// List runs `kitty +runpy` and extracts every family name from the JSON
// font map. Kitties too old to ship the font map module print plain
// names, one per line; that form is accepted as a fallback.
func (s FontSource) List(ctx context.Context) ([]string, error) {
	bin := s.Binary
	if bin == "" {
		bin = "kitty"
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = fonts.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin, "+runpy", fontMapScript).Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s +runpy: %v", fonts.ErrUnavailable, bin, err)
	}

	if names := familiesFromMap(out); len(names) > 0 {
		return names, nil
	}
	return plainLines(out), nil
}

// familiesFromMap pulls every "family" value out of the JSON font map,
// whatever shape the map has in this kitty version.
func familiesFromMap(out []byte) []string {
	if !gjson.ValidBytes(out) {
		return nil
	}
	var names []string
	collectFamilies(gjson.ParseBytes(out), &names)
	return names
}

func collectFamilies(v gjson.Result, names *[]string) {
	switch {
	case v.IsObject():
		v.ForEach(func(k, cv gjson.Result) bool {
			if k.Str == "family" && cv.Type == gjson.String {
				*names = append(*names, cv.Str)
			} else {
				collectFamilies(cv, names)
			}
			return true
		})
	case v.IsArray():
		v.ForEach(func(_, cv gjson.Result) bool {
			collectFamilies(cv, names)
			return true
		})
	}
}

func plainLines(out []byte) []string {
	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}
