// Package stopwatch implements the elapsed-time engine, the lap log and the
// duration formatting used by lapwatch.
//
// Nothing in this package is safe for concurrent use: every call is expected
// to come from a single driver loop.
package stopwatch

// Observer is told about every change the Stopwatch applies.
type Observer interface {
	OnStateChange(state RunState)
	OnAdvance(delta, elapsed int64)
	OnLap(lap Lap)
	OnReset()
}

// Report is a summary of a timing session.
type Report struct {
	State       string    `json:"state" yaml:"state"`
	Elapsed     int64     `json:"elapsed_ms" yaml:"elapsed_ms"`
	ElapsedText string    `json:"elapsed" yaml:"elapsed"`
	Laps        []LapView `json:"laps" yaml:"laps"`
}

// Stopwatch combines an Engine with its LapLog and exposes the operations a
// user interface needs.
type Stopwatch struct {
	engine   *Engine
	laps     *LapLog
	observer Observer
}

// New creates a stopped Stopwatch. observer may be nil.
func New(observer Observer) *Stopwatch {
	laps := NewLapLog()
	return &Stopwatch{
		engine:   NewEngine(laps),
		laps:     laps,
		observer: observer,
	}
}

// ToggleRun starts a stopped stopwatch or pauses a running one.
func (s *Stopwatch) ToggleRun() {
	s.engine.Toggle()
	if s.observer != nil {
		s.observer.OnStateChange(s.engine.State())
	}
}

// Start starts the stopwatch if it is stopped.
func (s *Stopwatch) Start() {
	if s.engine.State() == Running {
		return
	}
	s.ToggleRun()
}

// Pause pauses the stopwatch if it is running.
func (s *Stopwatch) Pause() {
	if s.engine.State() == Stopped {
		return
	}
	s.ToggleRun()
}

// Reset stops the stopwatch, zeroes it and clears the laps.
func (s *Stopwatch) Reset() {
	prev := s.engine.State()
	s.engine.Reset()
	if s.observer == nil {
		return
	}
	if prev == Running {
		s.observer.OnStateChange(Stopped)
	}
	s.observer.OnReset()
}

// RecordLap records the current elapsed time as a lap.
//
// Returns false when nothing was recorded, i.e. while stopped or before any
// time has accumulated.
func (s *Stopwatch) RecordLap() bool {
	lap, ok := s.laps.Record(s.engine.Elapsed(), s.engine.State() == Running)
	if ok && s.observer != nil {
		s.observer.OnLap(lap)
	}
	return ok
}

// Advance credits delta milliseconds if the stopwatch is running.
func (s *Stopwatch) Advance(delta int64) {
	if s.engine.State() != Running || delta <= 0 {
		return
	}
	s.engine.Advance(delta)
	if s.observer != nil {
		s.observer.OnAdvance(delta, s.engine.Elapsed())
	}
}

func (s *Stopwatch) Elapsed() int64 {
	return s.engine.Elapsed()
}

func (s *Stopwatch) ElapsedText() string {
	return Format(s.engine.Elapsed())
}

func (s *Stopwatch) State() RunState {
	return s.engine.State()
}

// CanLap reports whether a lap can be recorded right now.
func (s *Stopwatch) CanLap() bool {
	return s.engine.State() == Running
}

// Laps returns the recorded laps, newest first.
func (s *Stopwatch) Laps() []LapView {
	return s.laps.MostRecentFirst()
}

// LapCount returns the number of recorded laps.
func (s *Stopwatch) LapCount() int {
	return s.laps.Len()
}

// Report summarizes the current session.
func (s *Stopwatch) Report() Report {
	return Report{
		State:       s.engine.State().String(),
		Elapsed:     s.engine.Elapsed(),
		ElapsedText: s.ElapsedText(),
		Laps:        s.laps.MostRecentFirst(),
	}
}
