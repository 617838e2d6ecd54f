package run

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/testforge/internal/input"
	"github.com/scan-io-git/testforge/internal/randsrc"
	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/stubgen"
	"github.com/scan-io-git/testforge/internal/testreport"
	"github.com/scan-io-git/testforge/pkg/shared"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
	"github.com/scan-io-git/testforge/pkg/shared/files"
	"github.com/scan-io-git/testforge/pkg/shared/logger"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	StubsFile   string
	Environment string
	Revision    string
	Format      string
	Output      string
	Seed        int64
}

var (
	AppConfig *config.Config
	opts      RunOptions

	exampleRunUsage = `  # Produce a synthetic execution report for a file
  testforge run app.js

  # Reproducible report with scaffold statistics taken from an existing test file
  testforge run --seed 42 --stubs app.test.js --format json app.js`

	// RunCmd represents the run command.
	RunCmd = &cobra.Command{
		Use:                   "run [--stubs PATH] [--environment ENV] [--rev REVISION] [--seed N] [--format text|json] [--output PATH] {PATH | -}",
		Short:                 "Produce a synthetic test execution report with coverage figures",
		Example:               exampleRunUsage,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runRunCommand,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runRunCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	lg := logger.NewLogger(AppConfig, "run")

	if err := validate(&opts, args); err != nil {
		lg.Error("invalid arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid arguments: %w", err), 1)
	}

	req := input.Request{Path: args[0], Revision: opts.Revision}
	doc, err := input.Load(req, cmd.InOrStdin(), lg)
	if err != nil {
		lg.Error("failed to load input", "error", err)
		return errors.NewCommandError(err, 2)
	}

	stubText, err := loadStubs(doc.Text())
	if err != nil {
		lg.Error("failed to prepare scaffolding", "error", err)
		return errors.NewCommandError(err, 2)
	}

	var rng randsrc.Source
	if cmd.Flags().Changed("seed") {
		rng = randsrc.NewSeeded(opts.Seed)
	} else if AppConfig != nil {
		rng = randsrc.FromSeed(AppConfig.Report.Seed)
	}

	report := testreport.BuildFromSource(doc.Text(), stubText, opts.Environment, testreport.Options{Rand: rng})

	var buf bytes.Buffer
	if opts.Format == render.FormatJSON {
		err = render.JSON(&buf, report)
	} else {
		err = render.Report(&buf, report)
	}
	if err != nil {
		lg.Error("failed to render report", "error", err)
		return errors.NewCommandError(err, 2)
	}

	name := fmt.Sprintf("testforge-report-%s.%s", report.ID, extension(opts.Format))
	path, err := shared.WriteOutput(cmd.OutOrStdout(), opts.Output, name, buf.Bytes())
	if err != nil {
		lg.Error("failed to write output", "error", err)
		return errors.NewCommandError(err, 2)
	}
	if path != "" {
		lg.Info("report written", "path", path)
	}

	lg.Info("report generated", "id", report.ID, "input", req.Describe(), "total", report.TotalTests, "failed", report.FailedTests)
	return nil
}

// loadStubs reads the scaffold from --stubs, or generates one with the configured dialect and tier.
func loadStubs(text string) (string, error) {
	if opts.StubsFile != "" {
		data, err := files.ReadSource(opts.StubsFile, nil)
		if err != nil {
			return "", fmt.Errorf("failed to read stubs: %w", err)
		}
		return string(data), nil
	}

	dialect, tier := stubgen.Jest, stubgen.TierHigh
	if AppConfig != nil {
		var err error
		if AppConfig.Stubs.Dialect != "" {
			if dialect, err = stubgen.ParseDialect(AppConfig.Stubs.Dialect); err != nil {
				return "", err
			}
		}
		if AppConfig.Stubs.Coverage != "" {
			if tier, err = stubgen.ParseTier(AppConfig.Stubs.Coverage); err != nil {
				return "", err
			}
		}
	}
	return stubgen.GenerateFromSource(text, dialect, tier)
}

func extension(format string) string {
	if format == render.FormatJSON {
		return "json"
	}
	return "txt"
}

func init() {
	RunCmd.Flags().StringVarP(&opts.StubsFile, "stubs", "s", "", "Existing test file to measure. By default scaffolding is generated with the configured dialect and coverage.")
	RunCmd.Flags().StringVarP(&opts.Environment, "environment", "e", "", "Environment label for the report. Defaults to report.environment from the config.")
	RunCmd.Flags().StringVar(&opts.Revision, "rev", "", "Read the file as committed at this git revision.")
	RunCmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Seed for case outcomes and timings.")
	RunCmd.Flags().StringVarP(&opts.Format, "format", "f", render.FormatText, "Output format: text or json.")
	RunCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Path to the output file or directory. Defaults to stdout.")
	RunCmd.Flags().BoolP("help", "h", false, "Show help for the run command.")
}
