package analyse

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/scan-io-git/testforge/internal/findings"
	"github.com/scan-io-git/testforge/internal/input"
	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/rules"
	"github.com/scan-io-git/testforge/internal/scanner"
	"github.com/scan-io-git/testforge/internal/source"
	"github.com/scan-io-git/testforge/internal/stubgen"
	"github.com/scan-io-git/testforge/internal/symbols"
	"github.com/scan-io-git/testforge/internal/testreport"
	"github.com/scan-io-git/testforge/pkg/shared"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
	"github.com/scan-io-git/testforge/pkg/shared/logger"
)

// RunOptionsAnalyse holds the arguments for the analyse command.
type RunOptionsAnalyse struct {
	InputFile   string
	Level       string
	RulesFile   string
	Dialect     string
	Coverage    string
	Environment string
	Format      string
	Output      string
	Seed        int64
	Threads     int
}

// settings is the validated form of RunOptionsAnalyse shared by every target.
type settings struct {
	level       scanner.Level
	dialect     stubgen.Dialect
	tier        stubgen.Tier
	environment string
	catalog     *rules.Catalog
	seed        *int64
}

// Global variables for configuration and command arguments
var (
	AppConfig           *config.Config
	analyseOptions      RunOptionsAnalyse
	exampleAnalyseUsage = `  # Run every stage on one file
  testforge analyse app.js

  # Run every stage on a list of files with four workers and write JSON
  testforge analyse --input-file targets.txt -j 4 --format json --output results/

  # Deep scan and Mocha scaffolding with a fixed seed
  testforge analyse --level deep --dialect mocha --seed 7 app.js`
)

// AnalyseCmd represents the analyse command.
var AnalyseCmd = &cobra.Command{
	Use:                   "analyse [--input-file/-i PATH] [--level LEVEL] [--rules PATH] [--dialect DIALECT] [--coverage TIER] [--environment ENV] [--seed N] [--format text|json] [--output PATH] [-j THREADS_NUMBER, default=1] {PATH | -}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAnalyseUsage,
	Short:                 "Run symbol extraction, scanning, scaffolding and the synthetic report in one pass",
	RunE:                  runAnalyseCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// Result is everything the pipeline derives from one source document.
type Result struct {
	Input    string                     `json:"input"`
	Symbols  []symbols.Symbol           `json:"symbols"`
	Findings []findings.Finding         `json:"findings"`
	Summary  findings.Summary           `json:"summary"`
	Stubs    string                     `json:"stubs"`
	Report   testreport.ExecutionReport `json:"report"`
}

// runAnalyseCommand executes the analyse command.
func runAnalyseCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	lg := logger.NewLogger(AppConfig, "analyse")

	s, err := validateAnalyseArgs(&analyseOptions, args)
	if err != nil {
		lg.Error("invalid analyse arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid arguments: %w", err), 1)
	}
	if cmd.Flags().Changed("seed") {
		s.seed = &analyseOptions.Seed
	}

	targets, err := prepareTargets(&analyseOptions, args, determineMode(args))
	if err != nil {
		lg.Error("failed to prepare targets", "error", err)
		return errors.NewCommandError(err, 1)
	}

	results, err := analyseTargets(cmd.Context(), targets, s, analyseOptions.Threads, cmd.InOrStdin(), lg)
	if err != nil {
		lg.Error("analyse command failed", "error", err)
		return errors.NewCommandError(err, 2)
	}

	var buf bytes.Buffer
	if analyseOptions.Format == render.FormatJSON {
		err = render.JSON(&buf, results)
	} else {
		err = writeText(&buf, results)
	}
	if err != nil {
		lg.Error("failed to render results", "error", err)
		return errors.NewCommandError(err, 2)
	}

	path, err := shared.WriteOutput(cmd.OutOrStdout(), analyseOptions.Output, "testforge-analyse."+extension(analyseOptions.Format), buf.Bytes())
	if err != nil {
		lg.Error("failed to write result", "error", err)
		return errors.NewCommandError(err, 2)
	}
	if path != "" {
		lg.Info("results written", "path", path)
	}

	lg.Info("analyse command completed successfully", "targets", len(results))
	return nil
}

// analyseTargets runs the pipeline on every target with at most threads
// targets in flight. Results keep the order of targets.
func analyseTargets(ctx context.Context, targets []input.Request, s settings, threads int, stdin io.Reader, lg hclog.Logger) ([]Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if threads < 1 {
		threads = 1
	}

	results := make([]Result, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, req := range targets {
		i, req := i, req
		g.Go(func() error {
			doc, err := input.Load(req, stdin, lg.Named(req.Describe()))
			if err != nil {
				return err
			}
			res, err := analyseDocument(ctx, doc, s, lg)
			if err != nil {
				return fmt.Errorf("%s: %w", req.Describe(), err)
			}
			res.Input = req.Describe()
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// analyseDocument runs the scan and the symbol-driven branches concurrently over doc.
func analyseDocument(ctx context.Context, doc source.Document, s settings, lg hclog.Logger) (Result, error) {
	scanRand, reportRand := sources(s.seed)

	var res Result
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res.Findings = scanner.New(s.catalog, scanRand, lg).Scan(doc, s.level)
		res.Summary = findings.Summarize(res.Findings)
		return nil
	})

	g.Go(func() error {
		syms := symbols.Extract(doc.Text())
		stubs, err := stubgen.Generate(syms, s.dialect, s.tier)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		report := testreport.Build(syms, doc.LineCount(), s.environment, testreport.Options{Rand: reportRand})
		stats := stubgen.Measure(stubs)
		report.Scaffold = &stats

		res.Symbols = syms
		res.Stubs = stubs
		res.Report = report
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if res.Symbols == nil {
		res.Symbols = []symbols.Symbol{}
	}
	if res.Findings == nil {
		res.Findings = []findings.Finding{}
	}
	return res, nil
}

// Initialize flags for the analyse command.
func init() {
	AnalyseCmd.Flags().StringVarP(&analyseOptions.InputFile, "input-file", "i", "", "Path to a file listing one source path per line. Blank lines and lines starting with '#' are skipped.")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.Level, "level", "l", "", "Scan level: basic, comprehensive or deep. Defaults to scan.level from the config.")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.RulesFile, "rules", "r", "", "Path to a YAML file with additional rule sets. Defaults to scan.rules_file from the config.")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.Dialect, "dialect", "d", "", "Test dialect: jest, mocha or jasmine. Defaults to stubs.dialect from the config.")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.Coverage, "coverage", "c", "", "Coverage tier: basic, medium, high or comprehensive. Defaults to stubs.coverage from the config.")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.Environment, "environment", "e", "", "Environment label for the report. Defaults to report.environment from the config.")
	AnalyseCmd.Flags().Int64Var(&analyseOptions.Seed, "seed", 0, "Seed for illustrative findings and report outcomes.")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.Format, "format", "f", render.FormatText, "Output format: text or json.")
	AnalyseCmd.Flags().StringVarP(&analyseOptions.Output, "output", "o", "", "Path to the output file or directory. Defaults to stdout.")
	AnalyseCmd.Flags().IntVarP(&analyseOptions.Threads, "threads", "j", 1, "Number of targets analysed concurrently.")
	AnalyseCmd.Flags().BoolP("help", "h", false, "Show help for the analyse command.")
}
