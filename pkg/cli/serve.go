package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hireme-dev/hireme/pkg/cli/config"
	httpctrl "github.com/hireme-dev/hireme/pkg/controller/http"
	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/hireme-dev/hireme/pkg/utils/async"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// shutdownTimeout bounds draining requests and in-flight alerts on exit.
const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var staticDir string
	var autoMigrate bool
	var repoCfg config.Repository
	var authCfg config.Auth
	var googleCfg config.Google
	var slackCfg config.Slack
	var storageCfg config.Storage

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("HIREME_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "static-dir",
			Usage:       "Directory with the built frontend, served for every non-API path",
			Sources:     cli.EnvVars("HIREME_STATIC_DIR"),
			Destination: &staticDir,
		},
		&cli.BoolFlag{
			Name:        "auto-migrate",
			Usage:       "Apply the PostgreSQL schema before serving",
			Sources:     cli.EnvVars("HIREME_AUTO_MIGRATE"),
			Destination: &autoMigrate,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, googleCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("Serve configuration",
				"addr", addr,
				"repository", repoCfg,
				"auth", authCfg,
				"google", googleCfg,
				"slack", slackCfg,
				"storage", storageCfg,
			)

			repo, err := openRepository(ctx, &repoCfg, autoMigrate)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{authCfg.Configure()}

			googleOpts, err := googleCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure google")
			}
			ucOpts = append(ucOpts, googleOpts...)
			if googleCfg.IsConfigured() {
				logging.Default().Info("Google account linking enabled", "redirect_url", googleCfg.RedirectURL())
			} else {
				logging.Default().Info("Google OAuth not configured, interview requests will only be recorded")
			}

			slackOpt, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack")
			}
			if slackOpt != nil {
				ucOpts = append(ucOpts, slackOpt)
				logging.Default().Info("Slack submission alerts enabled")
			}

			storageOpt, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure storage")
			}
			if storageOpt != nil {
				ucOpts = append(ucOpts, storageOpt)
				logging.Default().Info("Media uploads enabled")
			}

			uc := usecase.New(repo, ucOpts...)

			// Create HTTP server options
			httpOpts := []httpctrl.Options{
				httpctrl.WithAdminURL(googleCfg.AdminURL()),
			}
			if staticDir != "" {
				httpOpts = append(httpOpts, httpctrl.WithStaticFS(os.DirFS(staticDir)))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				if err := async.Wait(shutdownCtx); err != nil {
					logging.Default().Warn("Pending alerts were dropped at shutdown", "error", err.Error())
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

func openRepository(ctx context.Context, repoCfg *config.Repository, autoMigrate bool) (interfaces.Repository, error) {
	if !autoMigrate || repoCfg.Backend() != config.BackendPostgres {
		repo, err := repoCfg.Configure(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize repository")
		}
		return repo, nil
	}

	pg, err := repoCfg.Postgres(ctx)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		_ = pg.Close()
		return nil, goerr.Wrap(err, "failed to migrate database")
	}
	logging.Default().Info("PostgreSQL schema is up to date")
	return pg, nil
}
