package version

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/rules"
	"github.com/scan-io-git/testforge/pkg/shared"
	"github.com/scan-io-git/testforge/pkg/shared/config"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = runtime.Version()
	BuildTime     = "unknown"

	format string
)

// CoreVersions holds version information for the binary and its built-in rule catalog.
type CoreVersions struct {
	Versions shared.Versions `json:"versions"`
	RuleSets []RuleSetMeta   `json:"rule_sets"`
}

// RuleSetMeta describes one built-in rule set.
type RuleSetMeta struct {
	Name  string `json:"name"`
	Rules int    `json:"rules"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "version [--format text|json]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application and its rule sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := collect()
			if format == render.FormatJSON {
				return render.JSON(cmd.OutOrStdout(), v)
			}
			return printVersionInfo(cmd.OutOrStdout(), &v)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format: text or json.")
	return cmd
}

func collect() CoreVersions {
	v := CoreVersions{
		Versions: shared.Versions{
			Version:       CoreVersion,
			GolangVersion: GolangVersion,
			BuildTime:     BuildTime,
		},
	}
	for _, set := range rules.Default().Sets() {
		v.RuleSets = append(v.RuleSets, RuleSetMeta{Name: set.Name, Rules: len(set.Rules)})
	}
	return v
}

// printVersionInfo prints the version information for the binary and rule sets.
func printVersionInfo(w io.Writer, versions *CoreVersions) error {
	fmt.Fprintf(w, "Core Version: v%s\n", versions.Versions.Version)
	fmt.Fprintln(w, "Rule Sets:")
	for _, set := range versions.RuleSets {
		fmt.Fprintf(w, "  %s: %d rules\n", set.Name, set.Rules)
	}
	fmt.Fprintf(w, "Go Version: %s\n", versions.Versions.GolangVersion)
	_, err := fmt.Fprintf(w, "Build Time: %s\n", versions.Versions.BuildTime)
	return err
}
