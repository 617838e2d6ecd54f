package stubs

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/testforge/internal/input"
	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/stubgen"
	"github.com/scan-io-git/testforge/internal/symbols"
	"github.com/scan-io-git/testforge/pkg/shared"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
	"github.com/scan-io-git/testforge/pkg/shared/logger"
)

// RunOptions holds flags for the stubs command.
type RunOptions struct {
	Dialect  string
	Coverage string
	Revision string
	Format   string
	Output   string
	Stats    bool
}

var (
	AppConfig *config.Config
	opts      RunOptions

	exampleStubsUsage = `  # Generate Jest scaffolding for a file
  testforge stubs app.js

  # Generate comprehensive Mocha scaffolding into a test folder
  testforge stubs --dialect mocha --coverage comprehensive --output test/ app.js

  # Print the suites as JSON together with scaffold statistics
  testforge stubs --format json app.js`

	// StubsCmd represents the stubs command.
	StubsCmd = &cobra.Command{
		Use:                   "stubs [--dialect jest|mocha|jasmine] [--coverage TIER] [--rev REVISION] [--format code|json] [--output PATH] [--stats] {PATH | -}",
		Short:                 "Generate placeholder test scaffolding for declared functions and classes",
		Example:               exampleStubsUsage,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runStubsCommand,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

type stubsOutput struct {
	Dialect  stubgen.Dialect `json:"dialect"`
	Coverage stubgen.Tier    `json:"coverage"`
	Suites   []stubgen.Suite `json:"suites"`
	Code     string          `json:"code"`
	Stats    stubgen.Stats   `json:"stats"`
}

func runStubsCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	lg := logger.NewLogger(AppConfig, "stubs")

	dialect, tier, err := validate(&opts, args)
	if err != nil {
		lg.Error("invalid arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid arguments: %w", err), 1)
	}

	doc, err := input.Load(input.Request{Path: args[0], Revision: opts.Revision}, cmd.InOrStdin(), lg)
	if err != nil {
		lg.Error("failed to load input", "error", err)
		return errors.NewCommandError(err, 2)
	}

	syms := symbols.Extract(doc.Text())
	code, err := stubgen.Generate(syms, dialect, tier)
	if err != nil {
		return errors.NewCommandError(err, 2)
	}
	stats := stubgen.Measure(code)

	var buf bytes.Buffer
	name := "testforge.test.js"
	if opts.Format == render.FormatJSON {
		suites, err := stubgen.Build(syms, dialect, tier)
		if err != nil {
			return errors.NewCommandError(err, 2)
		}
		if err := render.JSON(&buf, stubsOutput{Dialect: dialect, Coverage: tier, Suites: suites, Code: code, Stats: stats}); err != nil {
			return errors.NewCommandError(err, 2)
		}
		name = "testforge-stubs.json"
	} else {
		buf.WriteString(code)
	}

	path, err := shared.WriteOutput(cmd.OutOrStdout(), opts.Output, name, buf.Bytes())
	if err != nil {
		lg.Error("failed to write output", "error", err)
		return errors.NewCommandError(err, 2)
	}
	if path != "" {
		lg.Info("scaffolding written", "path", path)
	}

	if opts.Stats {
		if err := render.Stats(cmd.ErrOrStderr(), stats); err != nil {
			return errors.NewCommandError(err, 2)
		}
	}

	lg.Debug("scaffolding generated", "dialect", dialect, "coverage", tier, "suites", stats.TestSuites, "cases", stats.TestCases)
	return nil
}

func init() {
	StubsCmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "Test dialect: jest, mocha or jasmine. Defaults to stubs.dialect from the config.")
	StubsCmd.Flags().StringVarP(&opts.Coverage, "coverage", "c", "", "Coverage tier: basic, medium, high or comprehensive. Defaults to stubs.coverage from the config.")
	StubsCmd.Flags().StringVar(&opts.Revision, "rev", "", "Read the file as committed at this git revision.")
	StubsCmd.Flags().StringVarP(&opts.Format, "format", "f", formatCode, "Output format: code or json.")
	StubsCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Path to the output file or directory. Defaults to stdout.")
	StubsCmd.Flags().BoolVar(&opts.Stats, "stats", false, "Print scaffold statistics to stderr.")
	StubsCmd.Flags().BoolP("help", "h", false, "Show help for the stubs command.")
}
