package stopwatch

// RunState indicates whether the clock is accumulating time.
type RunState int

const (
	Stopped RunState = iota
	Running
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "stopped"
	}
}

// Clearer is notified when the engine is reset.
type Clearer interface {
	Clear()
}

// Engine owns the elapsed duration and the run state.
//
// Elapsed time is counted in milliseconds and only grows through Advance while
// running. Engine does not read a clock: the driver supplies the deltas.
type Engine struct {
	// elapsed is the accumulated running time in milliseconds.
	elapsed int64

	// state is the current run state.
	state RunState

	// laps is cleared on every reset. May be nil.
	laps Clearer
}

// NewEngine creates a stopped engine with zero elapsed time.
func NewEngine(laps Clearer) *Engine {
	return &Engine{laps: laps}
}

// Start starts the engine.
// If the engine is already running, it does nothing.
func (e *Engine) Start() {
	if e.state == Stopped {
		e.state = Running
	}
}

// Pause stops accumulating time without discarding it.
// If the engine is not running, it does nothing.
func (e *Engine) Pause() {
	if e.state == Running {
		e.state = Stopped
	}
}

// Toggle starts a stopped engine and pauses a running one.
func (e *Engine) Toggle() {
	if e.state == Running {
		e.Pause()
	} else {
		e.Start()
	}
}

// Reset stops the engine, zeroes the elapsed time and clears the laps.
func (e *Engine) Reset() {
	e.state = Stopped
	e.elapsed = 0
	if e.laps != nil {
		e.laps.Clear()
	}
}

// Advance adds delta milliseconds while running.
//
// Calls while stopped, and non-positive deltas, are ignored.
func (e *Engine) Advance(delta int64) {
	if e.state != Running || delta <= 0 {
		return
	}
	e.elapsed += delta
}

// Elapsed returns the accumulated running time in milliseconds.
func (e *Engine) Elapsed() int64 {
	return e.elapsed
}

// State returns the current run state.
func (e *Engine) State() RunState {
	return e.state
}
