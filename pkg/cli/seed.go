package cli

import (
	"context"
	"errors"

	"github.com/hireme-dev/hireme/pkg/cli/config"
	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdSeed() *cli.Command {
	var repoCfg config.Repository
	var seedPath string
	var replace bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Path to the TOML seed file",
			Required:    true,
			Sources:     cli.EnvVars("HIREME_SEED_FILE"),
			Destination: &seedPath,
		},
		&cli.BoolFlag{
			Name:        "replace",
			Usage:       "Replace collections that already have entries",
			Destination: &replace,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load initial site content and the bootstrap admin from a TOML file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			seed, err := config.LoadSeed(seedPath)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			return runSeed(ctx, repo, seed, replace)
		},
	}
}

func runSeed(ctx context.Context, repo interfaces.Repository, seed *config.Seed, replace bool) error {
	content, err := seed.Content()
	if err != nil {
		return err
	}

	uc := usecase.New(repo)
	result, err := uc.Content.Import(ctx, content, replace)
	if err != nil {
		return goerr.Wrap(err, "failed to import seed content")
	}
	logging.From(ctx).Info("Seed content imported",
		"settings", result.Settings,
		"experience", result.Experience,
		"testimonials", result.Testimonials,
		"skills", result.Skills,
		"hobbies", result.Hobbies,
	)

	if seed.Admin == nil {
		return nil
	}

	_, err = repo.AdminUser().GetByUsername(ctx, seed.Admin.Username)
	switch {
	case err == nil:
		logging.From(ctx).Info("Admin already exists, password left unchanged", "username", seed.Admin.Username)
		return nil
	case !errors.Is(err, model.ErrNotFound):
		return goerr.Wrap(err, "failed to look up admin")
	}

	if _, err := uc.Auth.CreateAdmin(ctx, seed.Admin.Username, seed.Admin.Password); err != nil {
		return err
	}
	logging.From(ctx).Info("Admin created", "username", seed.Admin.Username)
	return nil
}
