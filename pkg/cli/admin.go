package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hireme-dev/hireme/pkg/cli/config"
	"github.com/hireme-dev/hireme/pkg/domain/interfaces"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdAdmin() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Manage admin accounts",
		Commands: []*cli.Command{
			cmdAdminCreate(),
		},
	}
}

func cmdAdminCreate() *cli.Command {
	var repoCfg config.Repository
	var username string
	var password string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "username",
			Aliases:     []string{"u"},
			Usage:       "Admin username",
			Required:    true,
			Destination: &username,
		},
		&cli.StringFlag{
			Name:        "password",
			Aliases:     []string{"p"},
			Usage:       "Admin password (at least 6 characters)",
			Required:    true,
			Sources:     cli.EnvVars("HIREME_ADMIN_PASSWORD"),
			Destination: &password,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "create",
		Usage: "Create an admin or reset an existing admin's password",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			return createAdmin(ctx, os.Stdout, repo, username, password)
		},
	}
}

func createAdmin(ctx context.Context, w io.Writer, repo interfaces.Repository, username, password string) error {
	uc := usecase.New(repo)
	user, err := uc.Auth.CreateAdmin(ctx, username, password)
	if err != nil {
		_, _ = fmt.Fprintf(w, "%s %s\n", color.RedString("✗"), err.Error())
		return err
	}

	_, _ = fmt.Fprintf(w, "%s Admin %s is ready (id: %d)\n",
		color.GreenString("✓"),
		color.New(color.Bold).Sprint(user.Username),
		user.ID,
	)
	return nil
}
