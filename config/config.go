package config

import (
	"flag"
	"runtime"

	"snake-autopilot/ai"
	"snake-autopilot/game/types"

	"github.com/pkg/errors"
)

// Config holds every setting of the game host and the headless simulator.
type Config struct {
	Size       int
	Wrap       bool
	Mode       string
	SpeedIndex int

	Headless bool
	Episodes int
	Agents   int
	MaxTicks int
	Seed     uint64

	DataDir  string
	LogLevel string

	MaxIterations int
	FloodFillCap  int
}

func Default() Config {
	return Config{
		Size:          types.DefaultGridSize,
		Mode:          types.Off.String(),
		SpeedIndex:    types.DefaultSpeedIndex,
		Episodes:      100,
		Agents:        runtime.NumCPU(),
		MaxTicks:      20000,
		Seed:          1,
		DataDir:       "data",
		LogLevel:      "info",
		MaxIterations: ai.DefaultMaxIterations,
		FloodFillCap:  ai.DefaultFloodFillCap,
	}
}

// RegisterFlags binds every field to fs, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Size, "size", c.Size, "Grid size in cells (the grid is square)")
	fs.BoolVar(&c.Wrap, "wrap", c.Wrap, "Borderless grid: the snake wraps around the edges")
	fs.StringVar(&c.Mode, "mode", c.Mode, "Autopilot at start: off, chase or coverage")
	fs.IntVar(&c.SpeedIndex, "speed", c.SpeedIndex, "Initial speed level, 0 (300ms) to 8 (1ms)")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "Run simulated episodes without a window")
	fs.IntVar(&c.Episodes, "episodes", c.Episodes, "Episodes per agent in headless mode")
	fs.IntVar(&c.Agents, "agents", c.Agents, "Concurrent sessions in headless mode")
	fs.IntVar(&c.MaxTicks, "max-ticks", c.MaxTicks, "Ticks before a headless episode is cut short (0 = no limit)")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Seed for food placement")
	fs.StringVar(&c.DataDir, "data", c.DataDir, "Directory for statistics files (empty = keep in memory)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.IntVar(&c.MaxIterations, "max-iterations", c.MaxIterations, "A* node budget per decision")
	fs.IntVar(&c.FloodFillCap, "flood-cap", c.FloodFillCap, "Cells counted by the survival flood fill")
}

// Parse reads args (without the program name) on top of Default.
func Parse(name string, args []string) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, errors.Wrap(err, "parse flags")
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Size < 2 {
		return errors.Errorf("grid size must be at least 2, got %d", c.Size)
	}
	if c.SpeedIndex < 0 || c.SpeedIndex >= len(types.SpeedLevels) {
		return errors.Errorf("speed level must be between 0 and %d, got %d", len(types.SpeedLevels)-1, c.SpeedIndex)
	}
	if _, err := types.ParseMode(c.Mode); err != nil {
		return errors.Wrap(err, "invalid -mode")
	}
	if c.Headless {
		if c.Episodes < 1 {
			return errors.Errorf("episodes must be positive, got %d", c.Episodes)
		}
		if c.Agents < 1 {
			return errors.Errorf("agents must be positive, got %d", c.Agents)
		}
	}
	if c.MaxTicks < 0 {
		return errors.Errorf("max ticks must not be negative, got %d", c.MaxTicks)
	}
	if c.MaxIterations < 1 || c.FloodFillCap < 1 {
		return errors.New("search budgets must be positive")
	}
	return nil
}

func (c Config) Grid() types.Grid {
	return types.Grid{Size: c.Size, Wrap: c.Wrap}
}

// AutopilotMode returns the parsed -mode value, Off when it does not parse.
func (c Config) AutopilotMode() types.Mode {
	m, err := types.ParseMode(c.Mode)
	if err != nil {
		return types.Off
	}
	return m
}

// AutopilotOptions carries the search settings into ai.Options.
func (c Config) AutopilotOptions() ai.Options {
	return ai.Options{
		Grid:          c.Grid(),
		MaxIterations: c.MaxIterations,
		FloodFillCap:  c.FloodFillCap,
	}
}
