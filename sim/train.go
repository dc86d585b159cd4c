package sim

import (
	"context"
	"time"

	"snake-autopilot/config"
	"snake-autopilot/game"
	"snake-autopilot/stats"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Summary aggregates a headless run.
type Summary struct {
	Episodes     int
	Wins         int
	BestScore    int
	AverageScore float64
	AverageTicks float64
	Reasons      map[string]int
	Elapsed      time.Duration
}

// Summarize folds episode results into a Summary.
func Summarize(results []game.EpisodeResult) Summary {
	sum := Summary{Reasons: map[string]int{}}
	var score, ticks int
	for _, r := range results {
		sum.Episodes++
		if r.Won {
			sum.Wins++
		}
		if r.Score > sum.BestScore {
			sum.BestScore = r.Score
		}
		score += r.Score
		ticks += r.Ticks
		sum.Reasons[r.Reason]++
	}
	if sum.Episodes > 0 {
		sum.AverageScore = float64(score) / float64(sum.Episodes)
		sum.AverageTicks = float64(ticks) / float64(sum.Episodes)
	}
	return sum
}

// Train plays cfg.Episodes games on each of cfg.Agents concurrent sessions with the
// configured autopilot, records them in the statistics file and returns a summary.
func Train(ctx context.Context, cfg config.Config, logger log.Logger) (Summary, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return Summary{}, errors.Wrap(err, "invalid configuration")
	}

	gameStats, err := stats.NewGameStats(cfg.DataDir)
	if err != nil {
		// Start from empty statistics rather than refusing to run.
		_ = level.Warn(logger).Log("msg", "could not load statistics", "err", err)
	}

	pool := NewAgentPool(cfg, gameStats, logger)
	_ = level.Info(logger).Log("msg", "simulation started", "agents", cfg.Agents, "episodes", cfg.Episodes,
		"mode", cfg.AutopilotMode(), "grid", cfg.Size, "wrap", cfg.Wrap)

	start := time.Now()
	results, runErr := pool.Run(ctx, cfg.Episodes)
	summary := Summarize(results)
	summary.Elapsed = time.Since(start)

	if err := gameStats.SaveToFile(); err != nil {
		_ = level.Error(logger).Log("msg", "saving statistics failed", "err", err)
		if runErr == nil {
			runErr = err
		}
	}

	_ = level.Info(logger).Log("msg", "simulation finished", "episodes", summary.Episodes, "wins", summary.Wins,
		"best", summary.BestScore, "avg", summary.AverageScore, "elapsed", summary.Elapsed)
	return summary, runErr
}
