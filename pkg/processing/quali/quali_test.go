//nolint:funlen // ok for tests
package quali

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1replay-engine-go/pkg/provider"
)

func lap(code, segment string, lapTime float64) provider.RawQualiLap {
	return provider.RawQualiLap{Code: code, Segment: segment, LapTime: lapTime}
}

func TestSummarize_BestPerSegment(t *testing.T) {
	laps := []provider.RawQualiLap{
		lap("VER", "Q1", 92.5),
		lap("VER", "Q1", 91.8),
		lap("VER", "Q2", 90.9),
		lap("VER", "Q3", 90.1),
		lap("VER", "Q3", 90.4),
	}
	got := Summarize(laps)
	require.Len(t, got.Entries, 1)
	entry := got.Entries[0]
	require.NotNil(t, entry.Q1)
	require.NotNil(t, entry.Q2)
	require.NotNil(t, entry.Q3)
	assert.InDelta(t, 91.8, *entry.Q1, 1e-9)
	assert.InDelta(t, 90.9, *entry.Q2, 1e-9)
	assert.InDelta(t, 90.1, *entry.Q3, 1e-9)
	require.NotNil(t, entry.Best)
	assert.InDelta(t, 90.1, *entry.Best, 1e-9)
	assert.Equal(t, 1, entry.Position)
}

func TestSummarize_Positions(t *testing.T) {
	laps := []provider.RawQualiLap{
		lap("VER", "Q1", 91.0),
		lap("LEC", "Q1", 90.0),
		lap("NOR", "Q1", 92.0),
	}
	got := Summarize(laps)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, "LEC", got.Entries[0].Code)
	assert.Equal(t, "VER", got.Entries[1].Code)
	assert.Equal(t, "NOR", got.Entries[2].Code)
	for i, entry := range got.Entries {
		assert.Equal(t, i+1, entry.Position)
	}
}

func TestSummarize_InvalidLapsSkipped(t *testing.T) {
	laps := []provider.RawQualiLap{
		lap("VER", "Q1", 0),
		lap("VER", "Q1", -1),
		lap("VER", "Q2", 90.5),
	}
	got := Summarize(laps)
	require.Len(t, got.Entries, 1)
	entry := got.Entries[0]
	assert.Nil(t, entry.Q1)
	require.NotNil(t, entry.Q2)
	assert.InDelta(t, 90.5, *entry.Q2, 1e-9)
}

func TestSummarize_NoValidLapSortsLast(t *testing.T) {
	laps := []provider.RawQualiLap{
		lap("VER", "Q1", 0),
		lap("LEC", "Q1", 95.0),
	}
	got := Summarize(laps)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "LEC", got.Entries[0].Code)
	assert.Equal(t, "VER", got.Entries[1].Code)
	assert.Nil(t, got.Entries[1].Best)
	assert.Equal(t, 2, got.Entries[1].Position)
}

func TestSummarize_TieBreaksByCode(t *testing.T) {
	laps := []provider.RawQualiLap{
		lap("VER", "Q1", 90.0),
		lap("ALB", "Q1", 90.0),
		lap("NOR", "Q2", 0),
		lap("HAM", "Q2", 0),
	}
	got := Summarize(laps)
	require.Len(t, got.Entries, 4)
	// equal times and the no-time group both order by code
	assert.Equal(t, "ALB", got.Entries[0].Code)
	assert.Equal(t, "VER", got.Entries[1].Code)
	assert.Equal(t, "HAM", got.Entries[2].Code)
	assert.Equal(t, "NOR", got.Entries[3].Code)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	require.NotNil(t, got)
	assert.Empty(t, got.Entries)
}
