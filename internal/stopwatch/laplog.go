package stopwatch

import (
	"slices"

	"github.com/samber/lo"
)

// Lap is an elapsed-time snapshot tagged with its capture order.
type Lap struct {
	// Number is 1 for the first lap recorded since the last clear.
	Number int

	// Elapsed is the engine's elapsed time when the lap was recorded.
	Elapsed int64
}

// LapView is a lap prepared for display.
type LapView struct {
	Number    int    `json:"number" yaml:"number"`
	Elapsed   int64  `json:"elapsed_ms" yaml:"elapsed_ms"`
	Time      string `json:"time" yaml:"time"`
	Split     int64  `json:"split_ms" yaml:"split_ms"`
	SplitTime string `json:"split" yaml:"split"`
	IsLatest  bool   `json:"latest" yaml:"latest"`
}

// LapLog keeps the laps in the order they were recorded.
type LapLog struct {
	laps []Lap
}

func NewLapLog() *LapLog {
	return &LapLog{}
}

// Record appends a lap captured at elapsed.
//
// Nothing is recorded while the clock is not running or before any time has
// accumulated; in that case the returned bool is false.
func (l *LapLog) Record(elapsed int64, running bool) (Lap, bool) {
	if !running || elapsed == 0 {
		return Lap{}, false
	}
	lap := Lap{Number: len(l.laps) + 1, Elapsed: elapsed}
	l.laps = append(l.laps, lap)
	return lap, true
}

// Clear removes all laps. Numbering restarts at 1.
func (l *LapLog) Clear() {
	l.laps = nil
}

// Len returns the number of recorded laps.
func (l *LapLog) Len() int {
	return len(l.laps)
}

// Laps returns a copy of the laps, oldest first.
func (l *LapLog) Laps() []Lap {
	return slices.Clone(l.laps)
}

// MostRecentFirst returns the laps newest first. Only the first entry is
// marked as latest.
func (l *LapLog) MostRecentFirst() []LapView {
	views := lo.Map(l.laps, func(lap Lap, i int) LapView {
		var prev int64
		if i > 0 {
			prev = l.laps[i-1].Elapsed
		}
		split := lap.Elapsed - prev
		return LapView{
			Number:    lap.Number,
			Elapsed:   lap.Elapsed,
			Time:      Format(lap.Elapsed),
			Split:     split,
			SplitTime: Format(split),
		}
	})

	slices.Reverse(views)
	if len(views) > 0 {
		views[0].IsLatest = true
	}
	return views
}
