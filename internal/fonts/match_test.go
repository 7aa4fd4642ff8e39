package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "JetBrainsMono", Normalize("JetBrains Mono"))
	assert.Equal(t, "JetBrainsMono", Normalize("  JetBrains\tMono "))
	assert.Equal(t, "Iosevka", Normalize("Iosevka"))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, name := range []string{"JetBrains Mono", "Fira Code", "Iosevka", ""} {
		once := Normalize(name)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestParseStrategy(t *testing.T) {
	for in, want := range map[string]Strategy{
		"":           MatchNormalized,
		"normalized": MatchNormalized,
		"Exact":      MatchExact,
		"SUBSTRING":  MatchSubstring,
	} {
		got, err := ParseStrategy(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}

	_, err := ParseStrategy("fuzzy")
	assert.Error(t, err)
}

func TestIntersect_NormalizedPolicy(t *testing.T) {
	// "Arial" is not a substring nor normalized match of "ArialMT", so
	// only "Mono" survives.
	ix := Intersect([]string{"Arial", "Mono"}, []string{"ArialMT", "Mono"}, MatchNormalized)

	assert.Equal(t, []string{"Mono"}, ix.Keys())
	assert.Equal(t, []string{"Mono"}, ix.Raw())
}

func TestIntersect_NormalizedJoinsSpellings(t *testing.T) {
	ix := Intersect([]string{"JetBrains Mono"}, []string{"JetBrainsMono"}, MatchNormalized)

	require.Equal(t, 1, ix.Len())
	raw, ok := ix.Resolve("JetBrains Mono")
	require.True(t, ok)
	assert.Equal(t, "JetBrainsMono", raw, "raw value is the terminal's spelling")
}

func TestIntersect_ExactPolicy(t *testing.T) {
	ix := Intersect([]string{"JetBrains Mono", "Iosevka"}, []string{"JetBrainsMono", "Iosevka"}, MatchExact)

	assert.Equal(t, []string{"Iosevka"}, ix.Keys())
}

func TestIntersect_SubstringPolicy(t *testing.T) {
	ix := Intersect([]string{"Mono"}, []string{"JetBrains Mono"}, MatchSubstring)

	raw, ok := ix.Resolve("Mono")
	require.True(t, ok)
	assert.Equal(t, "JetBrains Mono", raw)

	// The default policy does not accept containment.
	ix = Intersect([]string{"Mono"}, []string{"JetBrains Mono"}, MatchNormalized)
	assert.Equal(t, 0, ix.Len())
}

func TestIntersect_OrderIndependent(t *testing.T) {
	installed := []string{"Fira Code", "Iosevka", "Hack"}
	supported := []string{"Hack", "FiraCode", "Comic Sans MS"}

	a := Intersect(installed, supported, MatchNormalized)
	b := Intersect(
		[]string{"Hack", "Fira Code", "Iosevka"},
		[]string{"Comic Sans MS", "Hack", "FiraCode"},
		MatchNormalized,
	)

	assert.Equal(t, a.Keys(), b.Keys())
	assert.Equal(t, a.Raw(), b.Raw())
}

func TestIntersect_Reflexive(t *testing.T) {
	names := []string{"Fira Code", "Iosevka", "JetBrains Mono"}

	ix := Intersect(names, names, MatchNormalized)

	assert.Equal(t, []string{"FiraCode", "Iosevka", "JetBrainsMono"}, ix.Keys())
}

func TestIndex_ResolveRawAndNormalized(t *testing.T) {
	ix := Intersect([]string{"JetBrains Mono"}, []string{"JetBrains Mono"}, MatchNormalized)

	for _, name := range []string{"JetBrains Mono", "JetBrainsMono"} {
		raw, ok := ix.Resolve(name)
		require.True(t, ok, "resolving %q", name)
		assert.Equal(t, "JetBrains Mono", raw)
	}

	_, ok := ix.Resolve("Hack")
	assert.False(t, ok)
}

func TestIndex_KeysReturnsCopy(t *testing.T) {
	ix := Intersect([]string{"Hack", "Iosevka"}, []string{"Hack", "Iosevka"}, MatchNormalized)

	keys := ix.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"Hack", "Iosevka"}, ix.Keys())
}
