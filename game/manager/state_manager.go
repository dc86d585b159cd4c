package manager

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// GameStatsFile is the high score file name inside the data directory.
const GameStatsFile = "gamestats.json"

type GameStats struct {
	HighScore    int   `json:"highScore"`
	ScoreHistory []int `json:"scoreHistory"`
	Wins         int   `json:"wins"`
}

// StateManager keeps the high score and the score history across games. With an empty
// data directory nothing is written to disk.
type StateManager struct {
	mu           sync.RWMutex
	path         string
	highScore    int
	scoreHistory []int
	wins         int
	logger       log.Logger
}

func NewStateManager(dataDir string, logger log.Logger) *StateManager {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	sm := &StateManager{
		scoreHistory: make([]int, 0),
		logger:       logger,
	}
	if dataDir == "" {
		return sm
	}
	sm.path = filepath.Join(dataDir, GameStatsFile)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		_ = level.Warn(logger).Log("msg", "could not create data directory", "dir", dataDir, "err", err)
	}
	if err := sm.LoadStats(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		_ = level.Warn(logger).Log("msg", "could not load game stats", "path", sm.path, "err", err)
	}
	return sm
}

func (sm *StateManager) SaveStats() error {
	if sm.path == "" {
		return nil
	}
	sm.mu.RLock()
	stats := GameStats{
		HighScore:    sm.highScore,
		ScoreHistory: sm.scoreHistory,
		Wins:         sm.wins,
	}
	data, err := json.MarshalIndent(stats, "", "  ")
	sm.mu.RUnlock()
	if err != nil {
		return errors.Wrap(err, "marshal game stats")
	}

	return errors.Wrapf(os.WriteFile(sm.path, data, 0644), "write %s", sm.path)
}

func (sm *StateManager) LoadStats() error {
	if sm.path == "" {
		return nil
	}
	data, err := os.ReadFile(sm.path)
	if err != nil {
		return errors.WithStack(err)
	}

	var stats GameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return errors.Wrapf(err, "decode %s", sm.path)
	}

	sm.mu.Lock()
	sm.highScore = stats.HighScore
	sm.scoreHistory = stats.ScoreHistory
	if sm.scoreHistory == nil {
		sm.scoreHistory = make([]int, 0)
	}
	sm.wins = stats.Wins
	sm.mu.Unlock()
	return nil
}

// RecordGame adds a finished game and persists the result.
func (sm *StateManager) RecordGame(score int, won bool) error {
	sm.mu.Lock()
	if score > sm.highScore {
		sm.highScore = score
	}
	sm.scoreHistory = append(sm.scoreHistory, score)
	if won {
		sm.wins++
	}
	sm.mu.Unlock()

	if err := sm.SaveStats(); err != nil {
		_ = level.Error(sm.logger).Log("msg", "saving game stats failed", "err", err)
		return err
	}
	return nil
}

func (sm *StateManager) GetHighScore() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.highScore
}

func (sm *StateManager) GetWins() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.wins
}

func (sm *StateManager) GetScoreHistory() []int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]int, len(sm.scoreHistory))
	copy(out, sm.scoreHistory)
	return out
}
