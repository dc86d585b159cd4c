package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	StatsFile = "stats.json"
	GroupSize = 100 // records merged into one at the next compression level
)

// GameStats keeps every finished episode, merging old ones into groups so the history
// stays small. Totals (games, wins, ticks, average score) survive grouping exactly.
type GameStats struct {
	Games []GameRecord
	path  string
	mutex sync.RWMutex
}

// GameRecord is a single episode (CompressionIndex 0) or a group of them.
type GameRecord struct {
	ID               string    `json:"id"`
	Mode             string    `json:"mode"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Score            int       `json:"score"`
	CompressionIndex int       `json:"compressionIndex"`
	GamesCount       int       `json:"gamesCount"`
	Wins             int       `json:"wins"`
	AverageScore     float64   `json:"averageScore"`
	MedianScore      float64   `json:"medianScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageTicks     float64   `json:"averageTicks"`
	MaxTicks         int       `json:"maxTicks"`
	AverageDuration  float64   `json:"averageDuration"`
	MaxDuration      float64   `json:"maxDuration"`
	MinDuration      float64   `json:"minDuration"`
}

// Episode is what a finished game contributes.
type Episode struct {
	Mode      string
	Score     int
	Ticks     int
	Won       bool
	StartTime time.Time
	EndTime   time.Time
}

// NewGameStats returns statistics backed by dir/stats.json, loading what is there. An
// empty dir keeps everything in memory.
func NewGameStats(dir string) (*GameStats, error) {
	stats := &GameStats{
		Games: make([]GameRecord, 0),
	}
	if dir == "" {
		return stats, nil
	}
	stats.path = filepath.Join(dir, StatsFile)
	if err := stats.loadFromFile(); err != nil {
		return stats, err
	}
	return stats, nil
}

// AddGame records one episode.
func (s *GameStats) AddGame(e Episode) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	duration := e.EndTime.Sub(e.StartTime).Seconds()
	wins := 0
	if e.Won {
		wins = 1
	}
	s.Games = append(s.Games, GameRecord{
		ID:              uuid.New().String(),
		Mode:            e.Mode,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		Score:           e.Score,
		GamesCount:      1,
		Wins:            wins,
		AverageScore:    float64(e.Score),
		MedianScore:     float64(e.Score),
		MaxScore:        e.Score,
		MinScore:        e.Score,
		AverageTicks:    float64(e.Ticks),
		MaxTicks:        e.Ticks,
		AverageDuration: duration,
		MaxDuration:     duration,
		MinDuration:     duration,
	})

	s.groupGames()
}

// groupGames merges every full run of GroupSize records at one compression level into
// a single record at the next level, repeating up the levels.
func (s *GameStats) groupGames() {
	sort.SliceStable(s.Games, func(i, j int) bool {
		if s.Games[i].CompressionIndex != s.Games[j].CompressionIndex {
			return s.Games[i].CompressionIndex < s.Games[j].CompressionIndex
		}
		return s.Games[i].StartTime.Before(s.Games[j].StartTime)
	})

	for level := 0; ; level++ {
		var records, rest []GameRecord
		for _, g := range s.Games {
			if g.CompressionIndex == level {
				records = append(records, g)
			} else {
				rest = append(rest, g)
			}
		}
		if len(records) < GroupSize {
			break
		}

		var merged []GameRecord
		for i := 0; i < len(records); i += GroupSize {
			end := i + GroupSize
			if end > len(records) {
				merged = append(merged, records[i:]...)
				break
			}
			merged = append(merged, mergeGroup(records[i:end], level+1))
		}
		s.Games = append(rest, merged...)
	}
}

func mergeGroup(group []GameRecord, level int) GameRecord {
	out := GameRecord{
		ID:               uuid.New().String(),
		Mode:             group[0].Mode,
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
		MaxTicks:         group[0].MaxTicks,
		MaxDuration:      group[0].MaxDuration,
		MinDuration:      group[0].MinDuration,
	}

	var totalScore, totalTicks, totalDuration float64
	medians := make([]float64, 0)
	for _, g := range group {
		if g.Mode != out.Mode {
			out.Mode = "mixed"
		}
		out.MaxScore = max(out.MaxScore, g.MaxScore)
		out.MinScore = min(out.MinScore, g.MinScore)
		out.MaxTicks = max(out.MaxTicks, g.MaxTicks)
		out.MaxDuration = max(out.MaxDuration, g.MaxDuration)
		out.MinDuration = min(out.MinDuration, g.MinDuration)
		if g.StartTime.Before(out.StartTime) {
			out.StartTime = g.StartTime
		}
		if g.EndTime.After(out.EndTime) {
			out.EndTime = g.EndTime
		}
		n := float64(g.GamesCount)
		totalScore += g.AverageScore * n
		totalTicks += g.AverageTicks * n
		totalDuration += g.AverageDuration * n
		out.GamesCount += g.GamesCount
		out.Wins += g.Wins
		for i := 0; i < g.GamesCount; i++ {
			medians = append(medians, g.MedianScore)
		}
	}

	n := float64(out.GamesCount)
	out.AverageScore = totalScore / n
	out.AverageTicks = totalTicks / n
	out.AverageDuration = totalDuration / n
	out.MedianScore = median(medians)
	out.Score = out.MaxScore
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

// GetStats returns a copy of the records.
func (s *GameStats) GetStats() []GameRecord {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]GameRecord, len(s.Games))
	copy(out, s.Games)
	return out
}

// GetAverageScore is the mean score over every game ever recorded.
func (s *GameStats) GetAverageScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var total float64
	var games int
	for _, g := range s.Games {
		total += g.AverageScore * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// GetMedianScore weighs each record's median by its game count.
func (s *GameStats) GetMedianScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	values := make([]float64, 0)
	for _, g := range s.Games {
		for i := 0; i < g.GamesCount; i++ {
			values = append(values, g.MedianScore)
		}
	}
	return median(values)
}

func (s *GameStats) GetMaxScore() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	best := 0
	for _, g := range s.Games {
		best = max(best, g.MaxScore)
	}
	return best
}

func (s *GameStats) GetGamesPlayed() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := 0
	for _, g := range s.Games {
		total += g.GamesCount
	}
	return total
}

func (s *GameStats) GetWins() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	total := 0
	for _, g := range s.Games {
		total += g.Wins
	}
	return total
}

// GetAverageDuration is the mean game length in seconds.
func (s *GameStats) GetAverageDuration() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var total float64
	var games int
	for _, g := range s.Games {
		total += g.AverageDuration * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// GetAverageTicks is the mean number of moves per game.
func (s *GameStats) GetAverageTicks() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var total float64
	var games int
	for _, g := range s.Games {
		total += g.AverageTicks * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}

// SaveToFile writes the records as JSON. It is a no-op for in-memory statistics.
func (s *GameStats) SaveToFile() error {
	if s.path == "" {
		return nil
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, "create data directory")
	}

	data, err := json.Marshal(s.Games)
	if err != nil {
		return errors.Wrap(err, "marshal stats")
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrap(err, "write stats file")
	}
	return nil
}

func (s *GameStats) loadFromFile() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "read %s", s.path)
	}

	var games []GameRecord
	if err := json.Unmarshal(data, &games); err != nil {
		return errors.Wrapf(err, "decode %s", s.path)
	}
	if games != nil {
		s.Games = games
	}
	return nil
}
