package kitty

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConf(t *testing.T, content string) *Conf {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kitty.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return NewConf(path)
}

func readBack(t *testing.T, c *Conf) string {
	t.Helper()
	data, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	return string(data)
}

func TestRead(t *testing.T) {
	c := writeConf(t, "font_family JetBrains Mono\nfont_size 12\n")

	set, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, "JetBrains Mono", set.Family)
	assert.Equal(t, "12", set.Size)
}

func TestRead_FirstMatchWins(t *testing.T) {
	c := writeConf(t, "font_family Fira Code\nfont_family Iosevka\nfont_size 10\nfont_size 14\n")

	set, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, "Fira Code", set.Family)
	assert.Equal(t, "10", set.Size)
}

func TestRead_MissingKeys(t *testing.T) {
	c := writeConf(t, "# kitty config\nenable_audio_bell no\n")

	set, err := c.Read()
	require.NoError(t, err)
	assert.Empty(t, set.Family)
	assert.Empty(t, set.Size)
}

func TestRead_MissingFile(t *testing.T) {
	c := NewConf(filepath.Join(t.TempDir(), "nope.conf"))

	_, err := c.Read()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_RejectsNumericFamily(t *testing.T) {
	// A font_family line whose value is a bare number is not a family.
	c := writeConf(t, "font_family 12\nfont_family Hack\n")

	set, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, "Hack", set.Family)
}

func TestRead_RejectsNonNumericSize(t *testing.T) {
	c := writeConf(t, "font_size big\nfont_size 11.5\n")

	set, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, "11.5", set.Size)
}

func TestRead_IgnoresSimilarKeys(t *testing.T) {
	c := writeConf(t, "font_family_list X\nfont_sizes 9\nfont_family Hack\nfont_size 9\n")

	set, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, "Hack", set.Family)
	assert.Equal(t, "9", set.Size)
}

func TestSetFamily_RoundTrip(t *testing.T) {
	c := writeConf(t, "font_family Hack\nfont_size 12\n")

	require.NoError(t, c.SetFamily("Fira Code"))

	set, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, "Fira Code", set.Family)
	assert.Equal(t, "12", set.Size)
}

func TestSetSize_RoundTrip(t *testing.T) {
	c := writeConf(t, "font_family Hack\nfont_size 12\n")

	require.NoError(t, c.SetSize("14"))

	set, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, "Hack", set.Family)
	assert.Equal(t, "14", set.Size)
}

func TestSetFamily_PreservesUnrelatedLines(t *testing.T) {
	c := writeConf(t, "# my kitty config\nenable_audio_bell no\nfont_family Hack\nfont_size 12\nscrollback_lines 4000\n")

	require.NoError(t, c.SetFamily("Fira Code"))

	assert.Equal(t,
		"# my kitty config\nenable_audio_bell no\nfont_family Fira Code\nfont_size 12\nscrollback_lines 4000\n",
		readBack(t, c))
}

func TestSetFamily_ReplacesEveryOccurrence(t *testing.T) {
	c := writeConf(t, "font_family Hack\nfont_family Iosevka\n")

	require.NoError(t, c.SetFamily("Fira Code"))

	assert.Equal(t, "font_family Fira Code\nfont_family Fira Code\n", readBack(t, c))
}

func TestSetFamily_AppendsWhenMissing(t *testing.T) {
	c := writeConf(t, "enable_audio_bell no\n")

	require.NoError(t, c.SetFamily("Fira Code"))

	assert.Equal(t, "enable_audio_bell no\nfont_family Fira Code\n", readBack(t, c))
}

func TestSetFamily_AppendsWithoutTrailingNewline(t *testing.T) {
	c := writeConf(t, "enable_audio_bell no")

	require.NoError(t, c.SetFamily("Fira Code"))

	assert.Equal(t, "enable_audio_bell no\nfont_family Fira Code", readBack(t, c))
}

func TestSetValue_RejectsNewline(t *testing.T) {
	c := writeConf(t, "font_family Hack\n")

	require.Error(t, c.SetFamily("Fira\nCode"))
	assert.Equal(t, "font_family Hack\n", readBack(t, c), "file must be untouched")
}

func TestSetValue_MissingFile(t *testing.T) {
	c := NewConf(filepath.Join(t.TempDir(), "nope.conf"))

	err := c.SetFamily("Fira Code")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestKeyLine(t *testing.T) {
	tests := []struct {
		line string
		key  string
		want bool
	}{
		{"font_family Hack", "font_family", true},
		{"font_family\tHack", "font_family", true},
		{"font_family", "font_family", true},
		{"font_family_list Hack", "font_family", false},
		{"  font_family Hack", "font_family", false},
		{"# font_family Hack", "font_family", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyLine(tt.line, tt.key), "line %q", tt.line)
	}
}
