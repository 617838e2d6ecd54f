package ask

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/testforge/internal/assistant"
	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/pkg/shared"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
	"github.com/scan-io-git/testforge/pkg/shared/httpclient"
	"github.com/scan-io-git/testforge/pkg/shared/logger"
)

// RunOptions holds flags for the ask command.
type RunOptions struct {
	Provider string
	Model    string
	BaseURL  string
	Format   string
}

var (
	AppConfig *config.Config
	opts      RunOptions

	exampleAskUsage = `  # Ask with whatever provider the environment configures
  testforge ask "how do I run a deep scan?"

  # Force the built-in answers
  testforge ask --provider canned what does the report contain

  # Use a specific Gemini model and print JSON
  GEMINI_API_KEY=... testforge ask --provider gemini --model gemini-2.0-flash --format json "what is coverage?"`

	// AskCmd represents the ask command.
	AskCmd = &cobra.Command{
		Use:                   "ask [--provider openai|gemini|canned] [--model MODEL] [--base-url URL] [--format text|json] QUESTION...",
		Short:                 "Answer questions about testforge using a completion provider",
		Example:               exampleAskUsage,
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		RunE:                  runAskCommand,
	}
)

// Init wires config into this command.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runAskCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	lg := logger.NewLogger(AppConfig, "ask")

	question, explicit, err := validate(&opts, args)
	if err != nil {
		lg.Error("invalid arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid arguments: %w", err), 1)
	}

	settings, err := assistant.ResolveSettings(explicit, os.Getenv)
	if err != nil {
		lg.Error("invalid assistant settings", "error", err)
		return errors.NewCommandError(err, 1)
	}

	ctx := cmd.Context()
	client := httpclient.InitializeRestyClient(lg.Named("http"), AppConfig)
	remote, err := assistant.NewProvider(ctx, settings, client)
	if err != nil {
		// Built-in answers only.
		lg.Warn("failed to initialise the completion provider", "provider", settings.Provider, "error", err)
	}

	a, err := assistant.New(remote, explicit.CacheSize, lg)
	if err != nil {
		return errors.NewCommandError(err, 2)
	}

	answer, err := a.Ask(ctx, question)
	if err != nil {
		lg.Error("failed to answer", "error", err)
		return errors.NewCommandError(err, 2)
	}
	lg.Debug("answered", "provider", answer.Provider, "cached", answer.Cached, "fallback", answer.Fallback)

	var buf bytes.Buffer
	if opts.Format == render.FormatJSON {
		if err := render.JSON(&buf, answer); err != nil {
			return errors.NewCommandError(err, 2)
		}
	} else {
		buf.WriteString(strings.TrimRight(answer.Text, "\n"))
		buf.WriteString("\n")
	}

	if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
		return errors.NewCommandError(err, 2)
	}
	return nil
}

func init() {
	AskCmd.Flags().StringVarP(&opts.Provider, "provider", "p", "", "Completion provider: openai, gemini or canned. Overrides assistant.provider and TESTFORGE_AI_PROVIDER.")
	AskCmd.Flags().StringVarP(&opts.Model, "model", "m", "", "Model name. Overrides assistant.model and the provider's model variable.")
	AskCmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "Base URL of an OpenAI-compatible or Gemini endpoint.")
	AskCmd.Flags().StringVarP(&opts.Format, "format", "f", render.FormatText, "Output format: text or json.")
	AskCmd.Flags().BoolP("help", "h", false, "Show help for the ask command.")
}
