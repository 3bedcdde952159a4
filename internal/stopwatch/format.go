package stopwatch

import "fmt"

const (
	msPerMinute = 60_000
	msPerSecond = 1_000
	msPerCenti  = 10
)

// Format renders elapsed milliseconds as MM:SS.CC.
//
// Fields are truncated, never rounded. Minutes are not capped, so a duration
// of 100 minutes or more renders with three or more minute digits.
func Format(ms int64) string {
	minutes := ms / msPerMinute
	seconds := (ms % msPerMinute) / msPerSecond
	centis := (ms % msPerSecond) / msPerCenti
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}
