package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name string
		want Mode
	}{
		{"mean", Mean},
		{"sum", Sum},
		{"max", Max},
		{"min", Min},
		{"gmean", GMean},
		{"tsharpen", TSharpen},
		{" TSharpen ", TSharpen},
		{"MEAN", Mean},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestParseModeUnknown(t *testing.T) {
	for _, name := range []string{"", "avg", "median"} {
		_, err := ParseMode(name)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, name)
	}
}

func TestModeStringRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, "Mode(9)", Mode(9).String())
	assert.False(t, Mode(-1).Valid())
}

func TestModeText(t *testing.T) {
	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("gmean")))
	assert.Equal(t, GMean, m)

	text, err := TSharpen.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "tsharpen", string(text))

	_, err = Mode(99).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
