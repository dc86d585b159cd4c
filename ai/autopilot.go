package ai

import (
	"snake-autopilot/game/types"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// ErrInvalidSnapshot is returned when the game state handed to the autopilot breaks one
// of its preconditions. Such states are a bug in the caller.
var ErrInvalidSnapshot = errors.New("invalid autopilot snapshot")

// Options configures an Autopilot. Zero values select the defaults.
type Options struct {
	Grid          types.Grid
	MaxIterations int // A* pop budget
	FloodFillCap  int // cells counted by the survival probe
	FoodBonus     int // survival food-proximity bonus, by grid type when zero
	Logger        log.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.FloodFillCap <= 0 {
		o.FloodFillCap = DefaultFloodFillCap
	}
	if o.FoodBonus <= 0 {
		o.FoodBonus = DefaultFoodBonusBounded
		if o.Grid.Wrap {
			o.FoodBonus = DefaultFoodBonusWrap
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewNopLogger()
	}
	return o
}

// Autopilot is the decision core owned by one game session. It dispatches each tick to
// the chase strategy (A* with fallbacks) or to the coverage sweep.
type Autopilot struct {
	opts     Options
	geo      Geometry
	mode     types.Mode
	chaser   *Chaser
	coverage *Coverage
	onStatus func(status string)
	logger   log.Logger
}

// New builds an autopilot for one grid. It starts Off.
func New(opts Options) *Autopilot {
	opts = opts.withDefaults()
	geo := NewGeometry(opts.Grid)
	return &Autopilot{
		opts:     opts,
		geo:      geo,
		mode:     types.Off,
		chaser:   NewChaser(geo, opts),
		coverage: NewCoverage(geo, opts.FloodFillCap, opts.FoodBonus),
		logger:   opts.Logger,
	}
}

// OnStatus registers a callback that receives the display string after every state
// change, e.g. "AUTOPILOT: ON".
func (a *Autopilot) OnStatus(fn func(status string)) {
	a.onStatus = fn
	a.notify()
}

// Geometry returns the grid rules the autopilot plays by.
func (a *Autopilot) Geometry() Geometry {
	return a.geo
}

// Mode returns the active strategy.
func (a *Autopilot) Mode() types.Mode {
	return a.mode
}

// Enabled reports whether any strategy is active.
func (a *Autopilot) Enabled() bool {
	return a.mode != types.Off
}

// Coverage exposes the sweep strategist, mostly for its cursor.
func (a *Autopilot) Coverage() *Coverage {
	return a.coverage
}

// SetMode switches to m. Leaving coverage clears the sweep position.
func (a *Autopilot) SetMode(m types.Mode) {
	if m == a.mode {
		return
	}
	if a.mode == types.Coverage {
		a.coverage.Reset()
	}
	a.mode = m
	_ = level.Info(a.logger).Log("msg", "autopilot mode changed", "mode", m, "wrap", a.geo.Wrap)
	a.notify()
}

// Toggle flips strategy m on or off and returns whether it is now active. Turning one
// strategy on turns the other off.
func (a *Autopilot) Toggle(m types.Mode) bool {
	if m == types.Off {
		return a.Enabled()
	}
	if a.mode == m {
		a.SetMode(types.Off)
		return false
	}
	a.SetMode(m)
	return true
}

// Reset turns the autopilot off and clears any sweep state. Called on game start and end.
func (a *Autopilot) Reset() {
	a.mode = types.Off
	a.coverage.Reset()
	a.notify()
}

// Status is the text the host shows for the current mode.
func (a *Autopilot) Status() string {
	switch a.mode {
	case types.Chase:
		if a.geo.Wrap {
			return "BORDERLESS AUTOPILOT: ON"
		}
		return "AUTOPILOT: ON"
	case types.Coverage:
		return "LAWNMOWER: ON"
	default:
		return "AUTOPILOT: OFF"
	}
}

func (a *Autopilot) notify() {
	if a.onStatus != nil {
		a.onStatus(a.Status())
	}
}

// Validate checks the preconditions of a decision.
func (a *Autopilot) Validate(snake []types.Point, food types.Point) error {
	if a.geo.Size <= 0 {
		return errors.Wrapf(ErrInvalidSnapshot, "grid size %d", a.geo.Size)
	}
	if len(snake) == 0 {
		return errors.Wrap(ErrInvalidSnapshot, "empty snake")
	}
	for _, p := range snake {
		if !a.geo.InBounds(p) {
			return errors.Wrapf(ErrInvalidSnapshot, "segment %v outside %dx%d grid", p, a.geo.Size, a.geo.Size)
		}
		if a.geo.Normalize(p) == a.geo.Normalize(food) {
			return errors.Wrapf(ErrInvalidSnapshot, "food %v on the snake", food)
		}
	}
	if !a.geo.InBounds(food) {
		return errors.Wrapf(ErrInvalidSnapshot, "food %v outside the grid", food)
	}
	return nil
}

// NextDirection decides the heading for the coming tick. None means "keep the current
// heading": the autopilot is off, or nothing at all is safe.
func (a *Autopilot) NextDirection(snake []types.Point, food types.Point, current types.Direction) (types.Direction, error) {
	if a.mode == types.Off {
		return types.None, nil
	}
	if err := a.Validate(snake, food); err != nil {
		return types.None, err
	}

	return a.strategist().NextDirection(snake, food, current), nil
}

func (a *Autopilot) strategist() Strategist {
	if a.mode == types.Coverage {
		return a.coverage
	}
	return a.chaser
}

// Strategist is the per-tick decision contract shared by every strategy.
type Strategist interface {
	NextDirection(snake []types.Point, food types.Point, current types.Direction) types.Direction
	Reset()
}

var (
	_ Strategist = (*Chaser)(nil)
	_ Strategist = (*Coverage)(nil)
)
