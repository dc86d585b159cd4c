package sim

import (
	"context"
	"sync"

	"snake-autopilot/config"
	"snake-autopilot/game"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"
	"snake-autopilot/stats"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

// AgentPool holds independent sessions that play concurrently. Each session owns its
// autopilot; they share the high score and the statistics.
type AgentPool struct {
	agents []*game.Session
	state  *manager.StateManager
	stats  *stats.GameStats
	mode   types.Mode
	mutex  sync.RWMutex
	logger log.Logger
}

// NewAgentPool builds cfg.Agents sessions. Agent i places food with seed cfg.Seed+i.
func NewAgentPool(cfg config.Config, gameStats *stats.GameStats, logger log.Logger) *AgentPool {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	pool := &AgentPool{
		agents: make([]*game.Session, cfg.Agents),
		state:  manager.NewStateManager(cfg.DataDir, logger),
		stats:  gameStats,
		mode:   cfg.AutopilotMode(),
		logger: logger,
	}

	for i := 0; i < cfg.Agents; i++ {
		agentCfg := cfg
		agentCfg.Seed = cfg.Seed + uint64(i)
		s := game.NewSessionWithState(agentCfg, log.With(logger, "agent", i), pool.state)
		s.OnEnd(pool.record)
		pool.agents[i] = s
	}

	return pool
}

func (p *AgentPool) record(r game.EpisodeResult) {
	if p.stats == nil {
		return
	}
	p.stats.AddGame(stats.Episode{
		Mode:      r.Mode.String(),
		Score:     r.Score,
		Ticks:     r.Ticks,
		Won:       r.Won,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	})
}

// GetAgent returns session index, nil when out of range.
func (p *AgentPool) GetAgent(index int) *game.Session {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if index >= 0 && index < len(p.agents) {
		return p.agents[index]
	}
	return nil
}

func (p *AgentPool) GetAllAgents() []*game.Session {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	out := make([]*game.Session, len(p.agents))
	copy(out, p.agents)
	return out
}

// State is the high score store shared by the agents.
func (p *AgentPool) State() *manager.StateManager {
	return p.state
}

// Run plays episodes games on every agent at once and returns every result. It stops
// early, with the context error, when ctx is done.
func (p *AgentPool) Run(ctx context.Context, episodes int) ([]game.EpisodeResult, error) {
	agents := p.GetAllAgents()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []game.EpisodeResult
	)
	for _, agent := range agents {
		wg.Add(1)
		go func(s *game.Session) {
			defer wg.Done()
			for e := 0; e < episodes; e++ {
				r, ok := PlayEpisode(ctx, s, p.mode)
				if !ok {
					return
				}
				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			}
		}(agent)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, errors.Wrap(err, "simulation interrupted")
	}
	return results, nil
}

// PlayEpisode runs one game on s to the end as fast as possible. It returns false when
// ctx is cancelled first, in which case the game is stopped and recorded as such.
func PlayEpisode(ctx context.Context, s *game.Session, mode types.Mode) (game.EpisodeResult, bool) {
	s.Start()
	s.SetMode(mode)
	for {
		if ctx.Err() != nil {
			s.End(false)
			return s.LastResult(), false
		}
		if s.Tick().Over {
			return s.LastResult(), true
		}
	}
}
