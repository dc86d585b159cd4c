package game

import (
	"sync"
	"time"

	"snake-autopilot/ai"
	"snake-autopilot/config"
	"snake-autopilot/game/entity"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// End reasons reported in EpisodeResult.
const (
	ReasonCollision = "collision"
	ReasonWin       = "win"
	ReasonTimeout   = "timeout"
	ReasonStopped   = "stopped"
)

// State is a read-only copy of a session, safe to hand to the renderer.
type State struct {
	ID         string
	Grid       types.Grid
	Snake      []types.Point
	Food       types.Point
	Direction  types.Direction
	Score      int
	HighScore  int
	Mode       types.Mode
	Status     string
	SpeedIndex int
	Speed      time.Duration
	Ticks      int
	Running    bool
	Paused     bool
	Over       bool
	Won        bool
	Cursor     ai.Cursor
}

// TickResult describes what one tick did.
type TickResult struct {
	Moved     bool
	Ate       bool
	Over      bool
	Won       bool
	Collision manager.Collision
	Direction types.Direction
	Score     int
}

// EpisodeResult is reported once per finished game.
type EpisodeResult struct {
	SessionID string
	Mode      types.Mode
	Score     int
	Length    int
	Ticks     int
	Won       bool
	Reason    string
	StartTime time.Time
	EndTime   time.Time
}

// Session is one game: the snake, the food, the score and the autopilot driving it.
// All methods are safe for concurrent use.
type Session struct {
	mu sync.RWMutex

	id   string
	cfg  config.Config
	grid types.Grid

	snake         *entity.Snake
	nextDirection types.Direction
	collisionMgr  *manager.CollisionManager
	foodMgr       *manager.FoodManager
	stateMgr      *manager.StateManager
	pilot         *ai.Autopilot
	status        string

	speedIndex int
	ticks      int
	running    bool
	paused     bool
	over       bool
	won        bool
	startTime  time.Time

	lastResult EpisodeResult
	onEnd      []func(EpisodeResult)
	logger     log.Logger
}

// NewSession builds a stopped session for cfg. Call Start to play.
func NewSession(cfg config.Config, logger log.Logger) *Session {
	return newSession(cfg, logger, manager.NewStateManager(cfg.DataDir, logger))
}

// NewSessionWithState shares a state manager between sessions, e.g. the agent pool.
func NewSessionWithState(cfg config.Config, logger log.Logger, state *manager.StateManager) *Session {
	return newSession(cfg, logger, state)
}

func newSession(cfg config.Config, logger log.Logger, state *manager.StateManager) *Session {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	id := uuid.New().String()
	logger = log.With(logger, "session", id)

	grid := cfg.Grid()
	collisionMgr := manager.NewCollisionManager(grid)

	opts := cfg.AutopilotOptions()
	opts.Logger = logger

	s := &Session{
		id:           id,
		cfg:          cfg,
		grid:         grid,
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(grid, collisionMgr, cfg.Seed),
		stateMgr:     state,
		pilot:        ai.New(opts),
		speedIndex:   cfg.SpeedIndex,
		logger:       logger,
	}
	s.snake = entity.NewSnake(s.startPosition(), types.Right, entity.Color{R: 0, G: 228, B: 48})
	// The callback runs with s.mu held by whoever changed the mode.
	s.pilot.OnStatus(func(status string) { s.status = status })
	s.status = s.pilot.Status()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// OnEnd registers fn to receive the result of every finished game. fn runs with the
// session locked and must not call back into it.
func (s *Session) OnEnd(fn func(EpisodeResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnd = append(s.onEnd, fn)
}

func (s *Session) startPosition() types.Point {
	if s.grid.Size == types.DefaultGridSize {
		return types.StartPosition
	}
	return types.Point{X: s.grid.Size / 2, Y: s.grid.Size / 2}
}

// Start begins a new game, abandoning the one in progress if any.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snake = entity.NewSnake(s.startPosition(), types.Right, s.snake.Color)
	s.nextDirection = types.Right
	s.speedIndex = s.cfg.SpeedIndex
	s.ticks = 0
	s.running = true
	s.paused = false
	s.over = false
	s.won = false
	s.startTime = time.Now()
	s.foodMgr.GenerateFood(s.snake)
	s.pilot.Reset()

	_ = level.Info(s.logger).Log("msg", "game started", "grid", s.grid.Size, "wrap", s.grid.Wrap, "speed", s.speedLocked())
}

// Tick advances the game by one step: ask the autopilot, turn, move, eat or shed the
// tail, then check for collisions and the win.
func (s *Session) Tick() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.paused {
		return TickResult{Score: s.snake.Score, Direction: s.snake.Direction}
	}

	if s.pilot.Enabled() {
		d, err := s.pilot.NextDirection(s.snake.Body, s.foodMgr.GetFood(), s.snake.Direction)
		if err != nil {
			_ = level.Error(s.logger).Log("msg", "autopilot rejected the game state", "err", err)
		} else if d != types.None {
			s.nextDirection = d
		}
	}

	s.snake.SetDirection(s.nextDirection)
	newHead := s.collisionMgr.NextHead(s.snake.GetHead(), s.snake.Direction)
	s.snake.Move(newHead)
	s.ticks++

	res := TickResult{Moved: true, Direction: s.snake.Direction}

	if s.collisionMgr.IsFoodCollision(newHead, s.foodMgr.GetFood()) {
		s.snake.Score += types.FoodScore
		res.Ate = true

		if s.snake.Len() >= s.grid.Cells()-1 {
			s.foodMgr.PlaceOnLastEmptyCell(s.snake)
			s.endLocked(true, ReasonWin)
			res.Over, res.Won, res.Score = true, true, s.snake.Score
			return res
		}
		if _, ok := s.foodMgr.GenerateFood(s.snake); !ok {
			s.endLocked(true, ReasonWin)
			res.Over, res.Won, res.Score = true, true, s.snake.Score
			return res
		}
	} else {
		s.snake.RemoveTail()
	}

	if c := s.collisionMgr.CheckCollision(s.snake); c != manager.NoCollision {
		s.snake.Dead = true
		res.Collision = c
		_ = level.Debug(s.logger).Log("msg", "collision", "kind", c, "head", newHead)
		s.endLocked(false, ReasonCollision)
		res.Over, res.Score = true, s.snake.Score
		return res
	}

	if s.cfg.MaxTicks > 0 && s.ticks >= s.cfg.MaxTicks {
		s.endLocked(false, ReasonTimeout)
		res.Over = true
	}

	res.Score = s.snake.Score
	return res
}

// Steer queues a manual turn for the next tick. A reversal is ignored.
func (s *Session) Steer(d types.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.paused || d == types.None || d == s.snake.Direction.Opposite() {
		return
	}
	s.nextDirection = d
}

// End stops the game in progress and records it.
func (s *Session) End(won bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	reason := ReasonStopped
	if won {
		reason = ReasonWin
	}
	s.endLocked(won, reason)
}

func (s *Session) endLocked(won bool, reason string) {
	s.running = false
	s.paused = false
	s.over = true
	s.won = won
	s.snake.Won = won
	mode := s.pilot.Mode()
	s.pilot.Reset()

	result := EpisodeResult{
		SessionID: s.id,
		Mode:      mode,
		Score:     s.snake.Score,
		Length:    s.snake.Len(),
		Ticks:     s.ticks,
		Won:       won,
		Reason:    reason,
		StartTime: s.startTime,
		EndTime:   time.Now(),
	}

	s.lastResult = result

	_ = level.Info(s.logger).Log("msg", "game over", "reason", reason, "score", result.Score,
		"length", result.Length, "ticks", result.Ticks, "mode", mode)

	if err := s.stateMgr.RecordGame(result.Score, won); err != nil {
		_ = level.Error(s.logger).Log("msg", "recording game failed", "err", err)
	}
	for _, fn := range s.onEnd {
		fn(result)
	}
}

// Pause freezes a running game.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.paused = true
	}
}

// Resume continues a paused game.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.paused = false
	}
}

func (s *Session) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.paused = !s.paused
	}
}

// ToggleChase flips the food-chasing autopilot, turning the sweep off. It only works
// while a game is running and returns whether the autopilot is now on.
func (s *Session) ToggleChase() bool {
	return s.toggle(types.Chase)
}

// ToggleCoverage flips the lawnmower sweep, turning the chaser off.
func (s *Session) ToggleCoverage() bool {
	return s.toggle(types.Coverage)
}

func (s *Session) toggle(m types.Mode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return false
	}
	return s.pilot.Toggle(m)
}

// SetMode switches the autopilot of a running game directly.
func (s *Session) SetMode(m types.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.pilot.SetMode(m)
	}
}

// IncreaseSpeed moves one level faster and returns false at the fastest level.
func (s *Session) IncreaseSpeed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.speedIndex >= len(types.SpeedLevels)-1 {
		return false
	}
	s.speedIndex++
	_ = level.Debug(s.logger).Log("msg", "speed increased", "speed", s.speedLocked())
	return true
}

// DecreaseSpeed moves one level slower and returns false at the slowest level.
func (s *Session) DecreaseSpeed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.speedIndex <= 0 {
		return false
	}
	s.speedIndex--
	_ = level.Debug(s.logger).Log("msg", "speed decreased", "speed", s.speedLocked())
	return true
}

// Speed is the current tick interval.
func (s *Session) Speed() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speedLocked()
}

func (s *Session) speedLocked() time.Duration {
	return time.Duration(types.SpeedLevels[s.speedIndex]) * time.Millisecond
}

func (s *Session) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Snapshot copies the session state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		ID:         s.id,
		Grid:       s.grid,
		Snake:      s.snake.BodyCopy(),
		Food:       s.foodMgr.GetFood(),
		Direction:  s.snake.Direction,
		Score:      s.snake.Score,
		HighScore:  s.stateMgr.GetHighScore(),
		Mode:       s.pilot.Mode(),
		Status:     s.status,
		SpeedIndex: s.speedIndex,
		Speed:      s.speedLocked(),
		Ticks:      s.ticks,
		Running:    s.running,
		Paused:     s.paused,
		Over:       s.over,
		Won:        s.won,
		Cursor:     s.pilot.Coverage().Cursor(),
	}
}

// LastResult is the result of the most recently finished game.
func (s *Session) LastResult() EpisodeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult
}

// Stats exposes the persisted high score and history.
func (s *Session) Stats() *manager.StateManager {
	return s.stateMgr
}
