package symbols

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/testforge/internal/input"
	"github.com/scan-io-git/testforge/internal/render"
	internalsymbols "github.com/scan-io-git/testforge/internal/symbols"
	"github.com/scan-io-git/testforge/pkg/shared"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
	"github.com/scan-io-git/testforge/pkg/shared/logger"
)

// RunOptions holds flags for the symbols command.
type RunOptions struct {
	Revision string
	Format   string
	Output   string
}

var (
	AppConfig *config.Config
	opts      RunOptions

	exampleSymbolsUsage = `  # List the functions and classes declared in a file
  testforge symbols app.js

  # Read from stdin and print JSON
  cat app.js | testforge symbols --format json -`

	// SymbolsCmd represents the symbols command.
	SymbolsCmd = &cobra.Command{
		Use:                   "symbols [--rev REVISION] [--format text|json] [--output PATH] {PATH | -}",
		Short:                 "List declared functions and classes",
		Example:               exampleSymbolsUsage,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runSymbolsCommand,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

type symbolsOutput struct {
	Input     string                   `json:"input"`
	Symbols   []internalsymbols.Symbol `json:"symbols"`
	Functions int                      `json:"functions"`
	Classes   int                      `json:"classes"`
}

func runSymbolsCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	lg := logger.NewLogger(AppConfig, "symbols")

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

	syms := internalsymbols.Extract(doc.Text())
	functions, classes := internalsymbols.Count(syms)

	var buf bytes.Buffer
	if opts.Format == render.FormatJSON {
		err = render.JSON(&buf, symbolsOutput{Input: req.Describe(), Symbols: syms, Functions: functions, Classes: classes})
	} else {
		err = render.Symbols(&buf, syms)
	}
	if err != nil {
		return errors.NewCommandError(err, 2)
	}

	if _, err := shared.WriteOutput(cmd.OutOrStdout(), opts.Output, "testforge-symbols."+opts.Format, buf.Bytes()); err != nil {
		lg.Error("failed to write output", "error", err)
		return errors.NewCommandError(err, 2)
	}

	lg.Debug("symbols extracted", "input", req.Describe(), "functions", functions, "classes", classes)
	return nil
}

func init() {
	SymbolsCmd.Flags().StringVar(&opts.Revision, "rev", "", "Read the file as committed at this git revision.")
	SymbolsCmd.Flags().StringVarP(&opts.Format, "format", "f", render.FormatText, "Output format: text or json.")
	SymbolsCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Path to the output file or directory. Defaults to stdout.")
	SymbolsCmd.Flags().BoolP("help", "h", false, "Show help for the symbols command.")
}
