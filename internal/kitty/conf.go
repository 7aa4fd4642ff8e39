// Package kitty talks to a kitty installation: its configuration file,
// its font catalogue and its running processes.
package kitty

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotConfigured is returned when kitty.conf has no font_family line.
var ErrNotConfigured = errors.New("font_family is not set in kitty.conf")

// Settings are the font-related values read from kitty.conf. A missing
// key is an empty string.
type Settings struct {
	Family string
	Size   string
}

// Conf reads and patches the font lines of a kitty.conf file. Every
// read and write goes to disk; nothing is cached between calls. Calls
// are not safe for concurrent use; the command dispatch upstream is
// single threaded.
type Conf struct {
	path string
}

// NewConf returns a Conf for the given kitty.conf path.
func NewConf(path string) *Conf {
	return &Conf{path: path}
}

// Path returns the config file path.
func (c *Conf) Path() string {
	return c.path
}

// Read scans the file top to bottom and returns the first font_family
// and font_size values found. Later duplicates are ignored on read,
// though writes rewrite all of them.
func (c *Conf) Read() (Settings, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return Settings{}, fmt.Errorf("read kitty config: %w", err)
	}

	var s Settings
	for _, line := range strings.Split(string(data), "\n") {
		if s.Family == "" {
			if v, ok := familyValue(line); ok {
				s.Family = v
			}
		}
		if s.Size == "" {
			if v, ok := sizeValue(line); ok {
				s.Size = v
			}
		}
		if s.Family != "" && s.Size != "" {
			break
		}
	}
	return s, nil
}

// SetFamily rewrites every font_family line to the given value. When no
// such line exists one is appended.
func (c *Conf) SetFamily(family string) error {
	return c.setValue("font_family", family)
}

// SetSize rewrites every font_size line to the given value. When no
// such line exists one is appended. Validation of the value is up to
// the caller; kitty itself accepts fractional sizes.
func (c *Conf) SetSize(size string) error {
	return c.setValue("font_size", size)
}

func (c *Conf) setValue(key, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("%s value must be a single line", key)
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("read kitty config: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	replaced := false
	for i, line := range lines {
		if keyLine(line, key) {
			lines[i] = key + " " + value
			replaced = true
		}
	}
	if !replaced {
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines[n-1] = key + " " + value
			lines = append(lines, "")
		} else {
			lines = append(lines, key+" "+value)
		}
	}

	return c.writeAtomic([]byte(strings.Join(lines, "\n")))
}

// writeAtomic replaces the config through a same-directory temp file
// and rename, so a crash mid-write never leaves the file truncated.
func (c *Conf) writeAtomic(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".kittyfont-*")
	if err != nil {
		return fmt.Errorf("write kitty config: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write kitty config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write kitty config: %w", err)
	}
	if fi, err := os.Stat(c.path); err == nil {
		os.Chmod(tmpName, fi.Mode())
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write kitty config: %w", err)
	}
	return nil
}

// keyLine reports whether line is an occurrence of the given key: the
// literal key at the start of the line, followed by whitespace or
// nothing at all.
func keyLine(line, key string) bool {
	if !strings.HasPrefix(line, key) {
		return false
	}
	rest := line[len(key):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// familyValue extracts the value of a font_family line. Lines whose
// value starts with a bare number are skipped; a family name never
// leads with one and kitty treats such lines as broken anyway.
func familyValue(line string) (string, bool) {
	v, ok := keyValue(line, "font_family")
	if !ok || v == "" {
		return "", false
	}
	if numeric(strings.Fields(v)[0]) {
		return "", false
	}
	return v, true
}

// sizeValue extracts the value of a font_size line. Only values that
// lead with a digit count.
func sizeValue(line string) (string, bool) {
	v, ok := keyValue(line, "font_size")
	if !ok || v == "" {
		return "", false
	}
	if v[0] < '0' || v[0] > '9' {
		return "", false
	}
	return v, true
}

func keyValue(line, key string) (string, bool) {
	rest, ok := strings.CutPrefix(line, key)
	if !ok || rest == "" {
		return "", false
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// numeric reports whether s consists solely of digits and dots.
func numeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
