package run

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/wandb/lapwatch/cmd/lapwatch/root/version"
	"github.com/wandb/lapwatch/internal/cliutil"
	"github.com/wandb/lapwatch/internal/config"
	"github.com/wandb/lapwatch/internal/metrics"
	"github.com/wandb/lapwatch/internal/observability"
	"github.com/wandb/lapwatch/internal/stopwatch"
	"github.com/wandb/lapwatch/internal/tui"
)

const debugLogName = "lapwatch.debug.log"

func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive stopwatch",
		Long: heredoc.Doc(`
			Start the interactive stopwatch.

			Press space to start or pause, l to record a lap, r to reset and q to quit.
		`),
		Example: heredoc.Doc(`
			# Start with the default settings
			$ lapwatch run

			# Expose Prometheus metrics while the stopwatch runs
			$ lapwatch run --metrics-addr 127.0.0.1:9100
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			return Run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Duration(config.KeyTickInterval, 0, "How often elapsed time is credited (1ms to 1s)")
	cmd.Flags().Int(config.KeyLapRows, 0, "Number of laps shown before scrolling")
	cmd.Flags().String(config.KeySummaryFormat, "", "Print a session summary on exit. Accepts 'json' or 'yaml'")
	cmd.Flags().String(config.KeyMetricsAddr, "", "Serve Prometheus metrics on this address")
	cmd.Flags().Bool(config.KeyDebug, false, "Write a debug log to "+debugLogName)

	for _, key := range []string{
		config.KeyTickInterval,
		config.KeyLapRows,
		config.KeySummaryFormat,
		config.KeyMetricsAddr,
		config.KeyDebug,
	} {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(key))
	}

	return cmd
}

// Run shows the stopwatch until the user quits, then prints the summary
// if one was requested. opts are applied after the default program options.
func Run(
	ctx context.Context,
	cfg *config.Config,
	out io.Writer,
	opts ...tea.ProgramOption,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	collector := metrics.NewCollector()
	sw := stopwatch.New(collector)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return collector.Serve(gctx, cfg.MetricsAddr, logger)
		})
	}

	model := tui.NewModel(tui.Params{
		Stopwatch:    sw,
		TickInterval: cfg.TickInterval,
		LapRows:      cfg.LapRows,
		Logger:       logger,
	})
	defer model.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(gctx)}, opts...)
	p := tea.NewProgram(model, opts...)
	_, runErr := p.Run()
	model.Close()

	cancel()
	// A failed metrics server cancels the program; report its error.
	if err := g.Wait(); err != nil {
		runErr = err
	}
	if runErr != nil {
		logger.CaptureError(fmt.Errorf("run: %v", runErr))
		return fmt.Errorf("run: %w", runErr)
	}

	logger.Info("run: session finished",
		"elapsed_ms", sw.Elapsed(),
		"laps", sw.LapCount())

	if cfg.SummaryFormat == config.SummaryFormatNone {
		return nil
	}
	return cliutil.Render(out, sw.Report(), cfg.SummaryFormat, "")
}

// newLogger builds the session logger. Output is discarded unless debug
// logging is enabled, since the terminal belongs to the UI.
func newLogger(cfg *config.Config) (*observability.CoreLogger, func(), error) {
	writer := io.Discard
	closeLog := func() {}

	if cfg.Debug {
		f, err := os.OpenFile(debugLogName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("run: open debug log: %w", err)
		}
		writer = f
		closeLog = func() { _ = f.Close() }
	}

	var reporter *observability.Reporter
	if cfg.SentryDSN != "" {
		reporter = observability.NewReporter(observability.ReporterParams{
			DSN:         cfg.SentryDSN,
			Release:     version.Version,
			Environment: "production",
		})
		flush := closeLog
		closeLog = func() {
			if reporter != nil {
				reporter.Flush(2 * time.Second)
			}
			flush()
		}
	}

	logger := observability.NewCoreLogger(
		slog.New(observability.NewHandler(writer, slog.LevelDebug)),
		&observability.CoreLoggerParams{
			Reporter: reporter,
			Tags:     observability.Tags{"session_id": uuid.NewString()},
		},
	)
	return logger, closeLog, nil
}
