package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/wandb/lapwatch/cmd/lapwatch/root/config"
	"github.com/wandb/lapwatch/cmd/lapwatch/root/run"
	"github.com/wandb/lapwatch/cmd/lapwatch/root/version"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lapwatch <command>",
		Short: "Terminal stopwatch with lap times",
		Long:  `lapwatch is an interactive stopwatch for the terminal that records lap times.`,
		Example: heredoc.Doc(`
			# Start the stopwatch
			$ lapwatch run

			# Print the laps as YAML when the stopwatch exits
			$ lapwatch run --summary-format yaml
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(run.NewRunCmd())
	cmd.AddCommand(version.NewVersionCmd())
	cmd.AddCommand(config.NewConfigCmd())

	return cmd
}
