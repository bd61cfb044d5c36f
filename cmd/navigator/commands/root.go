package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/skills-gap-navigator/cmd/navigator/ui"
	"github.com/fairyhunter13/skills-gap-navigator/internal/adapter/observability"
	"github.com/fairyhunter13/skills-gap-navigator/internal/app"
	"github.com/fairyhunter13/skills-gap-navigator/internal/config"
	"github.com/fairyhunter13/skills-gap-navigator/internal/session"
	"github.com/fairyhunter13/skills-gap-navigator/internal/usecase"
)

// skipDeps marks commands that run without configuration.
const skipDeps = "skip-deps"

var (
	verbose bool
	width   int
	appCtx  *cliApp
)

type cliApp struct {
	cfg     config.Config
	creds   *usecase.CredentialManager
	queries usecase.QueryService
	render  ui.Renderer
	close   func()
}

func (a *cliApp) newOrchestrator() *session.Orchestrator {
	return session.NewOrchestrator(a.queries, a.cfg.QueryTimeout)
}

func newApp(ctx context.Context, cfg config.Config) (*cliApp, error) {
	// The CLI only talks to redis when credentials live there.
	store, closeStore, err := app.OpenCredentialStore(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	completer := app.BuildCompleter(cfg, nil)
	creds := usecase.NewCredentialManager(store, completer, cfg.GeminiAPIKey)
	if _, err := creds.Bootstrap(ctx); err != nil {
		slog.Warn("could not load saved key", slog.Any("error", err))
	}
	return &cliApp{
		cfg:     cfg,
		creds:   creds,
		queries: usecase.NewQueryService(completer),
		render:  ui.NewRenderer(width),
		close:   closeStore,
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "navigator",
		Short:         "Explore local job markets, skills gaps and ways to close them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipDeps] != "" {
				return nil
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			slog.SetDefault(observability.SetupCLILogger(cfg, verbose))
			appCtx, err = newApp(cmd.Context(), cfg)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if appCtx != nil && appCtx.close != nil {
				appCtx.close()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at info level to stderr")
	root.PersistentFlags().IntVar(&width, "width", 80, "card width in columns (0 disables wrapping)")

	root.AddCommand(keyCmd(), analyzeCmd(), exploreCmd(), hashPasswordCmd())
	return root
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}
