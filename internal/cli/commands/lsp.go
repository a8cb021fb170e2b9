package commands

import (
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapmark/internal/cli/config"
	"github.com/leapstack-labs/leapmark/internal/lsp"
	"github.com/leapstack-labs/leapmark/internal/runner"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Long: `Start a Language Server Protocol server on stdin and stdout.

Open documents are linted as they change, using the configuration of the
editor's workspace. The server also completes element names, attributes,
ARIA roles and enumerated values, and offers a code action that applies
every automatic fix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := config.GetLogger(cmd.Context())
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.Options{
				Load:   workspaceLoader(logger),
				Logger: logger,
			})
			return server.Run(ctx)
		},
	}
}

// workspaceLoader builds language server workspaces from the project
// configuration found at or above the workspace root.
func workspaceLoader(logger *slog.Logger) lsp.Loader {
	return func(root string) (*lsp.Workspace, error) {
		cfg, err := config.LoadConfigFrom(root)
		if err != nil {
			return nil, err
		}
		setup, err := createEngine(cfg, ruleOverrides{}, logger)
		if err != nil {
			return nil, err
		}

		opts := runner.Options{
			Engine:    setup.Engine,
			Spec:      setup.Store,
			Mappings:  cfg.Mappings(),
			Exclude:   cfg.ExcludeFiles,
			Root:      cfg.ProjectRoot,
			Jobs:      1,
			ConfigKey: setup.ConfigKey,
			Cache:     newResultCache(cfg, logger),
			Logger:    logger,
		}
		linter, err := runner.New(opts)
		if err != nil {
			return nil, err
		}

		// The editor owns the buffer; fixes are returned as edits.
		opts.Fix = true
		opts.WriteFile = func(string, []byte) error { return nil }
		fixer, err := runner.New(opts)
		if err != nil {
			return nil, err
		}

		return &lsp.Workspace{
			Root:        cfg.ProjectRoot,
			Linter:      linter,
			Fixer:       fixer,
			Spec:        setup.Store,
			AriaVersion: cfg.Specs.AriaVersion,
			ConfigFile:  cfg.ConfigFile,
		}, nil
	}
}
