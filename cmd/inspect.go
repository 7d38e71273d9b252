package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"exampack.dev/pkg/exampack/internal/controller"
	"exampack.dev/pkg/exampack/internal/domain"
)

var inspectInteractiveFlag bool

// inspectCmd represents the inspect command.
var inspectCmd = newInspectCmd()

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [source.exam]",
		Short: "List the files a build would package",
		Long: `Resolve the full virtual file table for the given source document
without writing any output: every destination path and the overlay file
(or generated entry) that ends up there after theme, extension and
resource overrides.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buildArgs, err := resolveBuildArgs(cmd, args)
			if err != nil {
				return err
			}

			interactive := inspectInteractiveFlag && controller.IsTTY(os.Stdout)

			return workflow.Inspect(cmd.Context(), domain.InspectArgs{
				BuildArgs:   buildArgs,
				Interactive: interactive,
			})
		},
	}

	cmd.Flags().BoolVarP(&inspectInteractiveFlag, interactiveFlagName, "i", false, "browse the file table interactively")

	return cmd
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
