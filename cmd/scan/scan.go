package scan

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/testforge/cmd/version"
	"github.com/scan-io-git/testforge/internal/baseline"
	"github.com/scan-io-git/testforge/internal/findings"
	"github.com/scan-io-git/testforge/internal/input"
	"github.com/scan-io-git/testforge/internal/randsrc"
	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/rules"
	internalsarif "github.com/scan-io-git/testforge/internal/sarif"
	"github.com/scan-io-git/testforge/internal/scanner"
	"github.com/scan-io-git/testforge/pkg/shared"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
	"github.com/scan-io-git/testforge/pkg/shared/logger"
)

// ExitCodeFindings is returned when --fail-on is reached.
const ExitCodeFindings = 3

// RunOptions holds flags for the scan command.
type RunOptions struct {
	Level     string
	RulesFile string
	Revision  string
	Format    string
	Output    string
	FailOn    string
	Baseline  string
	Seed      int64
	Sort      bool
}

var (
	AppConfig *config.Config
	opts      RunOptions

	exampleScanUsage = `  # Scan a file with the configured level
  testforge scan app.js

  # Scan stdin without the illustrative findings
  cat app.js | testforge scan --level basic -

  # Scan the committed version of a file and write SARIF
  testforge scan --rev HEAD~1 --format sarif --output results/ src/app.js

  # Add custom rules and fail the build on high or critical findings
  testforge scan --rules rules.yml --fail-on high app.js

  # Only fail on findings that an earlier JSON scan did not report
  testforge scan --baseline previous.json --fail-on medium app.js`

	// ScanCmd represents the scan command.
	ScanCmd = &cobra.Command{
		Use:                   "scan [--level LEVEL] [--rules PATH] [--rev REVISION] [--format text|json|sarif] [--output PATH] [--fail-on SEVERITY] [--baseline PATH] {PATH | -}",
		Short:                 "Scan source text for risky patterns line by line",
		Example:               exampleScanUsage,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runScanCommand,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

type scanOutput struct {
	Input    string             `json:"input"`
	Level    scanner.Level      `json:"level"`
	Findings []findings.Finding `json:"findings"`
	Summary  findings.Summary   `json:"summary"`
	Baseline *baseline.Summary  `json:"baseline,omitempty"`
}

func runScanCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	lg := logger.NewLogger(AppConfig, "scan")

	level, failOn, err := validate(&opts, args)
	if err != nil {
		lg.Error("invalid arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid arguments: %w", err), 1)
	}

	catalog := rules.Default()
	if opts.RulesFile != "" {
		catalog, err = rules.LoadFile(catalog, opts.RulesFile)
		if err != nil {
			lg.Error("failed to load rules", "error", err)
			return errors.NewCommandError(err, 1)
		}
		lg.Debug("custom rules loaded", "path", opts.RulesFile, "rules", catalog.Len())
	}

	req := input.Request{Path: args[0], Revision: opts.Revision}
	doc, err := input.Load(req, cmd.InOrStdin(), lg)
	if err != nil {
		lg.Error("failed to load input", "error", err)
		return errors.NewCommandError(err, 2)
	}

	var rng randsrc.Source
	if cmd.Flags().Changed("seed") {
		rng = randsrc.NewSeeded(opts.Seed)
	} else if AppConfig != nil {
		rng = randsrc.FromSeed(AppConfig.Report.Seed)
	}

	sc := scanner.New(catalog, rng, lg)
	lg.Debug("scanning", "input", req.Describe(), "level", level, "rules", sc.Catalog().Len())
	list := sc.Scan(doc, level)
	if list == nil {
		list = []findings.Finding{}
	}
	if opts.Sort {
		list = findings.SortBySeverity(list)
	}
	summary := findings.Summarize(list)

	// Without a baseline every finding counts towards --fail-on.
	gated := list
	var comparison *baseline.Summary
	if opts.Baseline != "" {
		known, err := baseline.Load(opts.Baseline)
		if err != nil {
			lg.Error("failed to load baseline", "error", err)
			return errors.NewCommandError(err, 1)
		}
		c := baseline.NewCorrelator(list, known)
		s := c.Summarize()
		comparison = &s
		gated = c.New()
		lg.Info("compared with baseline", "path", opts.Baseline, "new", s.New, "existing", s.Existing, "fixed", s.Fixed)
	}

	var buf bytes.Buffer
	switch opts.Format {
	case render.FormatJSON:
		err = render.JSON(&buf, scanOutput{Input: req.Describe(), Level: level, Findings: list, Summary: summary, Baseline: comparison})
	case render.FormatSARIF:
		err = writeSarif(&buf, list, req, opts.Sort, lg)
	default:
		err = render.Findings(&buf, list)
		if err == nil && comparison != nil {
			_, err = fmt.Fprintf(&buf, "Baseline: %d new, %d existing, %d fixed\n", comparison.New, comparison.Existing, comparison.Fixed)
		}
	}
	if err != nil {
		lg.Error("failed to render findings", "error", err)
		return errors.NewCommandError(err, 2)
	}

	path, err := shared.WriteOutput(cmd.OutOrStdout(), opts.Output, "testforge-scan."+extension(opts.Format), buf.Bytes())
	if err != nil {
		lg.Error("failed to write output", "error", err)
		return errors.NewCommandError(err, 2)
	}
	if path != "" {
		lg.Info("scan results written", "path", path)
	}

	lg.Info("scan completed", "input", req.Describe(), "level", level, "findings", summary.Total, "highest", summary.Highest())

	if failOn != 0 {
		if n := len(findings.AtLeast(gated, failOn)); n > 0 {
			return errors.NewCommandError(fmt.Errorf("found %d findings at or above %s", n, failOn), ExitCodeFindings)
		}
	}
	return nil
}

func writeSarif(buf *bytes.Buffer, list []findings.Finding, req input.Request, sortByLevel bool, lg hclog.Logger) error {
	v := version.CoreVersion
	report, err := internalsarif.FromFindings(list, internalsarif.ToolMetadata{Name: "testforge", Version: &v}, artifactURI(req), lg)
	if err != nil {
		return err
	}
	if sortByLevel {
		report.SortResultsByLevel()
	}
	if err := report.Write(buf); err != nil {
		return err
	}

	info := report.CollectSeverityInfo()
	lg.Info("SARIF report prepared", "total", info["total"], "error", info["error"], "warning", info["warning"], "note", info["note"])
	return nil
}

func artifactURI(req input.Request) string {
	if req.Path == input.StdinPath {
		return "stdin"
	}
	return req.Path
}

func extension(format string) string {
	switch format {
	case render.FormatJSON:
		return "json"
	case render.FormatSARIF:
		return "sarif"
	default:
		return "txt"
	}
}

func init() {
	ScanCmd.Flags().StringVarP(&opts.Level, "level", "l", "", "Scan level: basic, comprehensive or deep. Defaults to scan.level from the config.")
	ScanCmd.Flags().StringVarP(&opts.RulesFile, "rules", "r", "", "Path to a YAML file with additional rule sets. Defaults to scan.rules_file from the config.")
	ScanCmd.Flags().StringVar(&opts.Revision, "rev", "", "Read the file as committed at this git revision.")
	ScanCmd.Flags().StringVarP(&opts.Format, "format", "f", render.FormatText, "Output format: text, json or sarif.")
	ScanCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Path to the output file or directory. Defaults to stdout.")
	ScanCmd.Flags().StringVar(&opts.FailOn, "fail-on", "", "Exit with code 3 when a finding of this severity or higher is reported.")
	ScanCmd.Flags().StringVar(&opts.Baseline, "baseline", "", "JSON result of an earlier scan. Findings it already reports do not count towards --fail-on.")
	ScanCmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Seed for the illustrative finding line numbers.")
	ScanCmd.Flags().BoolVar(&opts.Sort, "sort", false, "Order findings by severity instead of by line.")
	ScanCmd.Flags().BoolP("help", "h", false, "Show help for the scan command.")
}
