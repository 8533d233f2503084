package simulation

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/oomph-ac/parkour/assert"
	"github.com/oomph-ac/parkour/movement"
	"github.com/oomph-ac/parkour/oerror"
	"github.com/oomph-ac/parkour/settings"
	"github.com/oomph-ac/parkour/worker"
	"github.com/sasha-s/go-deadlock"
)

const (
	defaultPhysicsStep = 0.02
	defaultLogicRate   = 60.0
)

// Runner drives a controller on two cadences: one logic frame per call to Frame with a variable delta, and
// as many fixed physics steps as the accumulated time allows.
type Runner struct {
	log *slog.Logger
	c   *movement.Controller

	step     float64
	rate     float64
	maxSteps int

	accumulator float64

	mu        deadlock.RWMutex
	snapshot  movement.Snapshot
	history   *history
	lastSteps int
	frames    uint64
}

// NewRunner returns a runner for c. Out of range simulation settings are logged and replaced by defaults.
func NewRunner(c *movement.Controller, s settings.SimulationSettings, log *slog.Logger) *Runner {
	assert.IsTrue(c != nil, "simulation runner created without a controller")
	if log == nil {
		log = slog.Default()
	}
	r := &Runner{
		log:      log,
		c:        c,
		step:     s.PhysicsStep,
		rate:     s.LogicRate,
		maxSteps: s.MaxPhysicsSteps,
		history:  newHistory(s.HistoryFrames),
	}
	if r.step <= 0 || math.IsNaN(r.step) {
		log.Error("invalid simulation settings", "err", oerror.Newf(oerror.KindConfigurationOutOfRange, "physics step %v, using %v", r.step, defaultPhysicsStep))
		r.step = defaultPhysicsStep
	}
	if r.rate <= 0 || math.IsNaN(r.rate) {
		log.Error("invalid simulation settings", "err", oerror.Newf(oerror.KindConfigurationOutOfRange, "logic rate %v, using %v", r.rate, defaultLogicRate))
		r.rate = defaultLogicRate
	}
	if r.maxSteps <= 0 {
		r.maxSteps = 1
	}
	r.snapshot = c.Snapshot()
	return r
}

// Frame runs one logic frame of dt seconds with the given input and returns the resulting snapshot.
func (r *Runner) Frame(dt float64, in movement.Input) movement.Snapshot {
	dt = math.Max(0, dt)
	r.c.Update(dt, in)

	r.accumulator += dt
	steps := 0
	for r.accumulator >= r.step && steps < r.maxSteps {
		r.c.FixedUpdate(r.step)
		r.accumulator -= r.step
		steps++
	}
	if r.accumulator >= r.step {
		// Time beyond the catch-up limit is dropped, the simulation runs slower instead.
		r.log.Debug("physics steps dropped", "steps", int(r.accumulator/r.step), "max", r.maxSteps)
		r.accumulator = math.Mod(r.accumulator, r.step)
	}
	r.c.LateUpdate()

	snap := r.c.Snapshot()
	r.mu.Lock()
	r.snapshot = snap
	r.history.push(snap)
	r.lastSteps = steps
	r.frames++
	r.mu.Unlock()
	return snap
}

// Run runs logic frames at the logic rate until ctx is cancelled, polling src once per frame. The delta of
// each frame is the measured time since the previous one.
func (r *Runner) Run(ctx context.Context, src movement.Source) error {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / r.rate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.Frame(dt, src.Poll())
		}
	}
}

// Start calls Run on a new goroutine. The returned channel receives the error Run returns.
func (r *Runner) Start(ctx context.Context, src movement.Source) <-chan error {
	errs := make(chan error, 1)
	worker.Go(func() {
		errs <- r.Run(ctx, src)
	})
	return errs
}

// Snapshot returns the snapshot of the last frame. It is safe to call from any goroutine.
func (r *Runner) Snapshot() movement.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// History returns the snapshots of the most recent frames, oldest first.
func (r *Runner) History() []movement.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]movement.Snapshot, 0, r.history.len())
	for s := range r.history.all() {
		out = append(out, s)
	}
	return out
}

// LastSteps returns the amount of physics steps run during the last frame.
func (r *Runner) LastSteps() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastSteps
}

// Frames returns the amount of logic frames run so far.
func (r *Runner) Frames() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frames
}

// PhysicsStep returns the fixed physics step in seconds.
func (r *Runner) PhysicsStep() float64 {
	return r.step
}

// Controller returns the controller driven by the runner.
func (r *Runner) Controller() *movement.Controller {
	return r.c
}
