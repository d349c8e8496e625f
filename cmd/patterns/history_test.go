package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHistory(t *testing.T) {
	input := `start,end
2026-01-06T09:00:00Z,2026-01-06T17:00:00Z
# комментарий
2026-01-05T09:00:00+03:00, 2026-01-05T18:00:00+03:00
2026-01-07 10:00,
2026-01-08T09:00:00Z
`
	history, err := readHistory(strings.NewReader(input), time.UTC)
	require.NoError(t, err)
	require.Len(t, history, 4)

	// упорядочено по началу
	assert.True(t, history[0].Start.Equal(time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)))
	require.NotNil(t, history[0].End)
	assert.Equal(t, 9*time.Hour, history[0].Duration())

	assert.True(t, history[1].Closed())
	assert.True(t, history[2].Start.Equal(time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC)))
	assert.Nil(t, history[2].End)
	assert.Nil(t, history[3].End)
}

func TestReadHistoryLocalLayoutUsesLocation(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*3600)
	history, err := readHistory(strings.NewReader("2026-01-05 09:00,2026-01-05 17:00\n"), moscow)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Start.Equal(time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)))
}

func TestReadHistoryErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "bad start after header", input: "start,end\nyesterday,2026-01-05T17:00:00Z\n"},
		{name: "bad end", input: "2026-01-05T09:00:00Z,later\n"},
		{name: "too many fields", input: "2026-01-05T09:00:00Z,2026-01-05T17:00:00Z,extra\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readHistory(strings.NewReader(tt.input), time.UTC)
			assert.Error(t, err)
		})
	}
}

func TestReadHistoryEmpty(t *testing.T) {
	history, err := readHistory(strings.NewReader("start,end\n"), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, history)
}
