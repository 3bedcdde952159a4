package tui

import "github.com/wandb/lapwatch/internal/ticker"

// TickMsg credits elapsed time to the stopwatch.
type TickMsg ticker.Tick

// tickerClosedMsg is returned by the tick reader once the model is closed.
type tickerClosedMsg struct{}
