package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func episode(i int) Episode {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute)
	return Episode{
		Mode:      "chase",
		Score:     (i % 7) * 10,
		Ticks:     100 + i,
		Won:       i%50 == 0,
		StartTime: start,
		EndTime:   start.Add(10 * time.Second),
	}
}

func TestGroupingPreservesTotals(t *testing.T) {
	s, err := NewGameStats("")
	require.NoError(t, err)

	const n = 250
	var total, best, wins int
	for i := 0; i < n; i++ {
		e := episode(i)
		s.AddGame(e)
		total += e.Score
		best = max(best, e.Score)
		if e.Won {
			wins++
		}
	}

	records := s.GetStats()
	assert.Len(t, records, 2+50, "two groups of 100 and 50 single games")

	grouped := 0
	for _, r := range records {
		if r.CompressionIndex == 1 {
			grouped++
			assert.Equal(t, GroupSize, r.GamesCount)
		}
	}
	assert.Equal(t, 2, grouped)

	assert.Equal(t, n, s.GetGamesPlayed())
	assert.Equal(t, wins, s.GetWins())
	assert.Equal(t, best, s.GetMaxScore())
	assert.InDelta(t, float64(total)/n, s.GetAverageScore(), 1e-9)
	assert.InDelta(t, 10.0, s.GetAverageDuration(), 1e-9)
	assert.InDelta(t, 100+float64(n-1)/2, s.GetAverageTicks(), 1e-9)
}

func TestSecondLevelGrouping(t *testing.T) {
	s, err := NewGameStats("")
	require.NoError(t, err)

	for i := 0; i < GroupSize*GroupSize; i++ {
		s.AddGame(episode(i))
	}
	records := s.GetStats()
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].CompressionIndex)
	assert.Equal(t, GroupSize*GroupSize, records[0].GamesCount)
}

func TestMedianScore(t *testing.T) {
	s, err := NewGameStats("")
	require.NoError(t, err)
	assert.Zero(t, s.GetMedianScore())

	for _, score := range []int{10, 50, 20, 40} {
		s.AddGame(Episode{Score: score})
	}
	assert.Equal(t, 30.0, s.GetMedianScore())
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := NewGameStats(dir)
	require.NoError(t, err)

	for i := 0; i < 120; i++ {
		s.AddGame(episode(i))
	}
	require.NoError(t, s.SaveToFile())

	loaded, err := NewGameStats(dir)
	require.NoError(t, err)
	assert.Equal(t, s.GetGamesPlayed(), loaded.GetGamesPlayed())
	assert.InDelta(t, s.GetAverageScore(), loaded.GetAverageScore(), 1e-9)
	assert.Equal(t, s.GetWins(), loaded.GetWins())
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, StatsFile), []byte("[{"), 0644))

	_, err := NewGameStats(dir)
	assert.Error(t, err)
}
