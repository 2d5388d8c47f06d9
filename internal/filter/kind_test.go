package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsClosedSet(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 8)

	seen := make(map[Kind]bool)
	for _, kind := range kinds {
		assert.True(t, kind.IsPreset(), "kind %s should be a preset", kind)
		assert.False(t, seen[kind], "kind %s listed twice", kind)
		seen[kind] = true
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := Parse(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
}

func TestParseNone(t *testing.T) {
	for _, name := range []string{"", "none"} {
		parsed, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, None, parsed)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("sepia")
	assert.Error(t, err)
}

func TestKindNames(t *testing.T) {
	cases := []struct {
		kind    Kind
		name    string
		display string
	}{
		{None, "none", "Original"},
		{Chrome, "chrome", "Chrome"},
		{Fade, "fade", "Fade"},
		{Instant, "instant", "Instant"},
		{Mono, "mono", "Mono"},
		{Noir, "noir", "Noir"},
		{Process, "process", "Process"},
		{Tonal, "tonal", "Tonal"},
		{Transfer, "transfer", "Transfer"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.name, tc.kind.String())
		assert.Equal(t, tc.display, tc.kind.DisplayName())
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	assert.Equal(t, "Kind(42)", Kind(42).String())
	assert.False(t, Kind(42).IsPreset())
	assert.False(t, None.IsPreset())
}

func TestEveryPresetRegistered(t *testing.T) {
	for _, kind := range Kinds() {
		_, ok := presets[kind]
		assert.True(t, ok, "preset missing for kind %s", kind)
	}
}
