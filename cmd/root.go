// Package cmd provides the root command and CLI setup for exampack.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"exampack.dev/pkg/exampack/internal/adapter"
	"exampack.dev/pkg/exampack/internal/controller"
	"exampack.dev/pkg/exampack/internal/domain"
)

var fsAdapter adapter.BundleFS
var examCompiler adapter.ExamCompiler
var minifier adapter.Minifier
var ui controller.UI
var workflow domain.Workflow

// Root-level flags shared by the commands that resolve a bundle.
var (
	dataRootFlag    string
	themeFlag       string
	localeFlag      string
	outputFlag      string
	minifyFlag      string
	zipFlag         bool
	scormFlag       bool
	cleanFlag       bool
	followLinksFlag bool
	stdinFlag       bool
	verboseFlag     bool
)

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	fsAdapter = adapter.NewLocalBundleFS()
	examCompiler = adapter.NewLocalExamCompiler()
	minifier = adapter.NewCommandMinifier()
	workflow = domain.NewWorkflow(fsAdapter, examCompiler, minifier, ui)
}

const rootLongDescription = `Exampack packages a declarative assessment description and a themeable
runtime into a deployable bundle: a directory tree or a zip archive,
optionally wrapped as a SCORM package, with stylesheet and script assets
merged into single bundles.

The runtime data tree (runtime/, themes/, extensions/, locales/) is found
via --path or the EXAMPACK_PATH environment variable.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exampack",
		Short: "Exam bundle packaging tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&dataRootFlag, pathFlagName, "p", viper.GetString(pathFlagName), "path to the runtime data tree (or set EXAMPACK_PATH)")
	bindFlagToConfig(flags.Lookup(pathFlagName), pathFlagName)

	flags.StringVarP(&themeFlag, themeFlagName, "t", viper.GetString(themeConfigKey), "theme name or path to use")
	bindFlagToConfig(flags.Lookup(themeFlagName), themeConfigKey)

	flags.StringVarP(&localeFlag, localeFlagName, "l", viper.GetString(localeConfigKey), "preferred locale (ISO language code)")
	bindFlagToConfig(flags.Lookup(localeFlagName), localeConfigKey)

	flags.BoolVarP(&zipFlag, zipFlagName, "z", viper.GetBool(zipConfigKey), "create a zip archive instead of a directory")
	bindFlagToConfig(flags.Lookup(zipFlagName), zipConfigKey)

	flags.BoolVarP(&scormFlag, scormFlagName, "s", viper.GetBool(scormConfigKey), "include the files necessary to make a SCORM package")
	bindFlagToConfig(flags.Lookup(scormFlagName), scormConfigKey)

	flags.BoolVarP(&cleanFlag, cleanFlagName, "c", viper.GetBool(cleanConfigKey), "start afresh, deleting any existing bundle in the target path")
	bindFlagToConfig(flags.Lookup(cleanFlagName), cleanConfigKey)

	flags.BoolVarP(&followLinksFlag, followLinksFlagName, "f", viper.GetBool(followLinksConfigKey), "follow symbolic links in the overlay directories")
	bindFlagToConfig(flags.Lookup(followLinksFlagName), followLinksConfigKey)

	flags.StringVar(&minifyFlag, minifyFlagName, viper.GetString(minifyConfigKey), "path to an external script minifier (empty disables minification)")
	bindFlagToConfig(flags.Lookup(minifyFlagName), minifyConfigKey)

	flags.StringVarP(&outputFlag, outputFlagName, "o", "", "the target path (default: output/<source name> under the data tree)")

	flags.BoolVar(&stdinFlag, stdinFlagName, false, "read the source document from stdin")

	flags.BoolVar(&verboseFlag, "verbose", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup("verbose"), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
