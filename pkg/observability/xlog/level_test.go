package xlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{" INFO ", LevelInfo},
		{"Information", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := ParseLevel("trace")
	assert.ErrorIs(t, err, ErrUnknownLevel)
	assert.Equal(t, LevelInfo, got)
}

func TestLevel_TextRoundTrip(t *testing.T) {
	for _, l := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		data, err := l.MarshalText()
		require.NoError(t, err)

		var got Level
		require.NoError(t, got.UnmarshalText(data))
		assert.Equal(t, l, got)
	}

	assert.Equal(t, "INFO+2", Level(2).String())

	var l Level
	assert.Error(t, l.UnmarshalText([]byte("nope")))
}
