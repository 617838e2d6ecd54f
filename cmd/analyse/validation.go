package analyse

import (
	"fmt"

	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/rules"
	"github.com/scan-io-git/testforge/internal/scanner"
	"github.com/scan-io-git/testforge/internal/stubgen"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
)

// validateAnalyseArgs validates the arguments provided to the analyse command
// and resolves every stage's settings, falling back to the config.
func validateAnalyseArgs(options *RunOptionsAnalyse, args []string) (settings, error) {
	if len(args) == 0 && options.InputFile == "" {
		return settings{}, fmt.Errorf("either 'input-file' flag or a target path must be specified")
	}
	if len(args) > 0 && options.InputFile != "" {
		return settings{}, fmt.Errorf("you cannot use an 'input-file' flag and a target path at the same time")
	}
	if len(args) > 1 {
		return settings{}, fmt.Errorf("only one target path can be specified, use 'input-file' for more")
	}
	if options.Threads <= 0 {
		return settings{}, fmt.Errorf("the 'threads' flag must be a positive integer")
	}
	if options.Format != render.FormatText && options.Format != render.FormatJSON {
		return settings{}, errors.NewUnsupportedOptionError("format", options.Format, []string{render.FormatText, render.FormatJSON})
	}

	cfg := AppConfig
	if cfg == nil {
		cfg = config.Default()
	}

	var (
		s   settings
		err error
	)
	if s.level, err = scanner.ParseLevel(config.SetThen(options.Level, cfg.Scan.Level)); err != nil {
		return settings{}, err
	}
	if s.dialect, err = stubgen.ParseDialect(config.SetThen(options.Dialect, cfg.Stubs.Dialect)); err != nil {
		return settings{}, err
	}
	if s.tier, err = stubgen.ParseTier(config.SetThen(options.Coverage, cfg.Stubs.Coverage)); err != nil {
		return settings{}, err
	}
	s.environment = config.SetThen(options.Environment, cfg.Report.Environment)
	s.seed = cfg.Report.Seed

	s.catalog = rules.Default()
	if rulesFile := config.SetThen(options.RulesFile, cfg.Scan.RulesFile); rulesFile != "" {
		if s.catalog, err = rules.LoadFile(s.catalog, rulesFile); err != nil {
			return settings{}, err
		}
	}

	return s, nil
}
