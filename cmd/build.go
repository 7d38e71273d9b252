package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"exampack.dev/pkg/exampack/internal/domain"
	m "exampack.dev/pkg/exampack/internal/model"
)

const buildLongDescription = `Build a deployable exam bundle from the given source document.

The source document is compiled, overlaid with the runtime files, the
resolved theme chain, declared extensions and resources, and written to
the output path as a directory tree (default) or a zip archive (--zip).`

// buildCmd represents the build command.
var buildCmd = newBuildCmd()

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [source.exam]",
		Short: "Build an exam bundle",
		Long:  buildLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buildArgs, err := resolveBuildArgs(cmd, args)
			if err != nil {
				return err
			}

			return workflow.Build(cmd.Context(), buildArgs)
		},
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

// resolveBuildArgs turns flags, config and the positional source argument
// into domain build arguments, deriving the default output path from the
// source name.
func resolveBuildArgs(cmd *cobra.Command, args []string) (domain.BuildArgs, error) {
	dataRoot := viper.GetString(pathFlagName)
	zip := viper.GetBool(zipConfigKey)
	output := outputFlag

	var (
		source    []byte
		sourceDir string
	)

	if stdinFlag {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return domain.BuildArgs{}, fmt.Errorf("reading source from stdin: %w", err)
		}

		source = data

		sourceDir, err = os.Getwd()
		if err != nil {
			return domain.BuildArgs{}, err
		}

		if output == "" {
			output = filepath.Join(dataRoot, "output", "exam")
		}
	} else {
		if len(args) == 0 {
			return domain.BuildArgs{}, fmt.Errorf("a source document is required (or pass --%s)", stdinFlagName)
		}

		sourcePath := args[0]

		if _, err := os.Stat(sourcePath); err != nil {
			// Retry relative to the data tree before giving up.
			alt := filepath.Join(dataRoot, sourcePath)
			if _, altErr := os.Stat(alt); altErr != nil {
				return domain.BuildArgs{}, fmt.Errorf("couldn't find source file %s", sourcePath)
			}

			sourcePath = alt
		}

		data, err := os.ReadFile(sourcePath)
		if err != nil {
			return domain.BuildArgs{}, fmt.Errorf("reading source file %s: %w", sourcePath, err)
		}

		source = data
		sourceDir = filepath.Dir(sourcePath)

		if output == "" {
			base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
			if zip {
				base += ".zip"
			}

			output = filepath.Join(dataRoot, "output", base)
		}
	}

	return domain.BuildArgs{
		Source:        source,
		SourceDir:     m.Path(sourceDir),
		DataRoot:      m.Path(dataRoot),
		Theme:         viper.GetString(themeConfigKey),
		Output:        m.Path(output),
		Zip:           zip,
		Scorm:         viper.GetBool(scormConfigKey),
		Clean:         viper.GetBool(cleanConfigKey),
		FollowLinks:   viper.GetBool(followLinksConfigKey),
		Locale:        viper.GetString(localeConfigKey),
		MinifyCommand: viper.GetString(minifyConfigKey),
	}, nil
}
