package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "exampack.dev/pkg/exampack/internal/model"
)

// themesCmd represents the themes command.
var themesCmd = newThemesCmd()

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long:  "List the themes under the data tree's themes directory together with their resolved inheritance chains.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Themes(cmd.Context(), m.Path(viper.GetString(pathFlagName)))
		},
	}
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
