package set

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wandb/lapwatch/internal/config"
)

func NewSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  `Set a configuration value that will be persisted in the config file.`,
		Example: heredoc.Doc(`
			# Credit elapsed time every 50 milliseconds
			$ lapwatch config set tick-interval 50ms

			# Show twelve laps before scrolling
			$ lapwatch config set lap-rows 12
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			if err := config.ValidateValue(key, value); err != nil {
				return err
			}

			viper.Set(key, value)

			if err := viper.WriteConfig(); err != nil {
				log.Error("Failed to write config", "key", key, "error", err)
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully set %s = %s\n", key, value)
			return nil
		},
	}

	return cmd
}
