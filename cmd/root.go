package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/testforge/cmd/analyse"
	"github.com/scan-io-git/testforge/cmd/ask"
	"github.com/scan-io-git/testforge/cmd/run"
	"github.com/scan-io-git/testforge/cmd/scan"
	"github.com/scan-io-git/testforge/cmd/stubs"
	"github.com/scan-io-git/testforge/cmd/symbols"
	"github.com/scan-io-git/testforge/cmd/version"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "testforge [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "testforge inspects source text and produces inventories, findings and test reports.",
		Long: `testforge reads a block of source text and produces a structural inventory of
declared functions and classes, a line-by-line security pattern report, placeholder
test scaffolding and a synthetic test execution report with coverage figures.

Findings are pattern matches, not confirmed vulnerabilities, and the execution report
is illustrative: nothing is compiled or run.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is $TESTFORGE_CONFIG or config.yml)")

	rootCmd.AddCommand(symbols.SymbolsCmd)
	rootCmd.AddCommand(scan.ScanCmd)
	rootCmd.AddCommand(stubs.StubsCmd)
	rootCmd.AddCommand(run.RunCmd)
	rootCmd.AddCommand(analyse.AnalyseCmd)
	rootCmd.AddCommand(ask.AskCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)

		var cmdErr *errors.CommandError
		if stderrors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return 1
	}
	return 0
}

func initConfig() error {
	// .env is optional.
	_ = godotenv.Load()

	path, explicit := config.ResolveConfigPath(cfgFile)
	cfg, err := config.LoadConfig(path, explicit)
	if err != nil {
		return errors.NewCommandError(fmt.Errorf("initializing config: %w", err), 1)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return errors.NewCommandError(err, 1)
	}
	AppConfig = cfg

	symbols.Init(AppConfig)
	scan.Init(AppConfig)
	stubs.Init(AppConfig)
	run.Init(AppConfig)
	analyse.Init(AppConfig)
	ask.Init(AppConfig)
	version.Init(AppConfig)
	return nil
}
