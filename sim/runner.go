package sim

import (
	"context"
	"sync"
	"time"

	"snake-autopilot/game"
	"snake-autopilot/game/types"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// SessionRunner ticks a session on its own goroutine at the session's current speed,
// so a renderer can keep reading snapshots from another one.
type SessionRunner struct {
	session     *game.Session
	controlChan chan struct{}
	wg          sync.WaitGroup
	mutex       sync.RWMutex
	isRunning   bool

	// AutoRestart starts a new game in Mode after every game over.
	AutoRestart bool
	Mode        types.Mode

	logger log.Logger
}

func NewSessionRunner(session *game.Session, logger log.Logger) *SessionRunner {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &SessionRunner{
		session:     session,
		controlChan: make(chan struct{}, 1),
		logger:      log.With(logger, "session", session.ID()),
	}
}

// Start launches the tick loop. It stops on Stop or when ctx is done.
func (r *SessionRunner) Start(ctx context.Context) {
	r.mutex.Lock()
	if r.isRunning {
		r.mutex.Unlock()
		return
	}
	r.isRunning = true
	r.mutex.Unlock()

	r.wg.Add(1)
	go r.loop(ctx)
}

// Stop ends the tick loop and waits for it to return.
func (r *SessionRunner) Stop() {
	r.mutex.Lock()
	if !r.isRunning {
		r.mutex.Unlock()
		return
	}
	r.isRunning = false
	r.mutex.Unlock()

	select {
	case r.controlChan <- struct{}{}:
	default:
	}
	r.wg.Wait()
}

func (r *SessionRunner) Running() bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.isRunning
}

func (r *SessionRunner) loop(ctx context.Context) {
	defer r.wg.Done()
	defer func() {
		r.mutex.Lock()
		r.isRunning = false
		r.mutex.Unlock()
	}()

	timer := time.NewTimer(r.session.Speed())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = level.Debug(r.logger).Log("msg", "runner cancelled", "err", ctx.Err())
			return
		case <-r.controlChan:
			return
		case <-timer.C:
			res := r.session.Tick()
			if res.Over && r.AutoRestart {
				r.session.Start()
				r.session.SetMode(r.Mode)
			}
			// Speed changes apply from the next tick on.
			timer.Reset(r.session.Speed())
		}
	}
}
