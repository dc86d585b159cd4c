package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"snake-autopilot/config"
	"snake-autopilot/game"
	"snake-autopilot/game/types"
	"snake-autopilot/logging"
	"snake-autopilot/sim"
	"snake-autopilot/stats"
	"snake-autopilot/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.SetGlobalLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Headless {
		if _, err := sim.Train(ctx, cfg, logger); err != nil {
			_ = level.Error(logger).Log("msg", "simulation failed", "err", err)
			os.Exit(1)
		}
		return
	}

	// The window game ends on collision or win only.
	cfg.MaxTicks = 0
	runWindow(ctx, cfg, logger)
}

func runWindow(ctx context.Context, cfg config.Config, logger log.Logger) {
	rl.InitWindow(1100, 760, "Snake Autopilot")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	gameStats, err := stats.NewGameStats(cfg.DataDir)
	if err != nil {
		_ = level.Warn(logger).Log("msg", "could not load statistics", "err", err)
	}

	session := game.NewSession(cfg, logger)
	session.OnEnd(func(r game.EpisodeResult) {
		gameStats.AddGame(stats.Episode{
			Mode:      r.Mode.String(),
			Score:     r.Score,
			Ticks:     r.Ticks,
			Won:       r.Won,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	})

	runner := sim.NewSessionRunner(session, logger)
	runner.Start(ctx)
	defer runner.Stop()

	renderer := ui.NewRenderer()
	mode := cfg.AutopilotMode()

	start := func() {
		session.Start()
		if mode != types.Off {
			session.SetMode(mode)
		}
	}

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		handleKeys(session, start)

		renderer.Draw(session.Snapshot(), session.Stats().GetScoreHistory())
	}

	session.End(false)
	if err := gameStats.SaveToFile(); err != nil {
		_ = level.Error(logger).Log("msg", "saving statistics failed", "err", err)
	}
}

func handleKeys(session *game.Session, start func()) {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		if session.Running() {
			session.TogglePause()
		} else {
			start()
		}
	case rl.IsKeyPressed(rl.KeyR):
		start()
	case rl.IsKeyPressed(rl.KeyA):
		session.ToggleChase()
	case rl.IsKeyPressed(rl.KeyP):
		session.ToggleCoverage()
	case rl.IsKeyPressed(rl.KeyComma):
		session.DecreaseSpeed()
	case rl.IsKeyPressed(rl.KeyPeriod):
		session.IncreaseSpeed()
	}

	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		session.Steer(types.Up)
	case rl.IsKeyPressed(rl.KeyDown):
		session.Steer(types.Down)
	case rl.IsKeyPressed(rl.KeyLeft):
		session.Steer(types.Left)
	case rl.IsKeyPressed(rl.KeyRight):
		session.Steer(types.Right)
	}
}
