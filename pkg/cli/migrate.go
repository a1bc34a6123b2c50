package cli

import (
	"context"
	"fmt"

	gfirestore "cloud.google.com/go/firestore"
	"github.com/hireme-dev/hireme/pkg/cli/config"
	"github.com/hireme-dev/hireme/pkg/repository/firestore"
	"github.com/hireme-dev/hireme/pkg/repository/postgres"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository
	var dryRun bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Preview changes without applying",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Apply the PostgreSQL schema or Firestore indexes",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("Migrate configuration",
				"repository", repoCfg,
				"dryRun", dryRun)

			switch repoCfg.Backend() {
			case config.BackendPostgres:
				return migratePostgres(ctx, &repoCfg, dryRun)
			case config.BackendFirestore:
				return migrateFirestore(ctx, &repoCfg, dryRun)
			default:
				logging.Default().Info("Nothing to migrate", "backend", repoCfg.Backend())
				return nil
			}
		},
	}
}

func migratePostgres(ctx context.Context, repoCfg *config.Repository, dryRun bool) error {
	if dryRun {
		fmt.Println(postgres.Schema())
		return nil
	}

	pg, err := repoCfg.Postgres(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := pg.Close(); err != nil {
			logging.Default().Error("failed to close postgres", "error", err.Error())
		}
	}()

	if err := pg.Migrate(ctx); err != nil {
		return goerr.Wrap(err, "failed to apply schema")
	}
	logging.Default().Info("Schema applied successfully")
	return nil
}

func migrateFirestore(ctx context.Context, repoCfg *config.Repository, dryRun bool) error {
	logger := logging.Default()
	if repoCfg.ProjectID() == "" {
		return goerr.Wrap(config.ErrMissingSetting, "firestore-project-id is required",
			goerr.V(config.FlagKey, "firestore-project-id"))
	}

	databaseID := repoCfg.DatabaseID()
	if databaseID == "" {
		databaseID = gfirestore.DefaultDatabaseID
	}

	client, err := fireconf.New(ctx, repoCfg.ProjectID(), databaseID,
		getIndexConfig(repoCfg.CollectionPrefix()),
		fireconf.WithLogger(logger),
		fireconf.WithDryRun(dryRun),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create fireconf client")
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close fireconf client", "error", err.Error())
		}
	}()

	if dryRun {
		logger.Info("Dry run mode - previewing changes")
	} else {
		logger.Info("Applying migrations")
	}
	if err := client.Migrate(ctx); err != nil {
		return goerr.Wrap(err, "failed to apply migrations", goerr.V("dry_run", dryRun))
	}
	if !dryRun {
		logger.Info("Migrations applied successfully")
	}
	return nil
}

// getIndexConfig returns the composite indexes the Firestore queries need
func getIndexConfig(prefix string) *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: firestore.CollectionName(prefix, firestore.CollectionSubmissions),
				Indexes: []fireconf.Index{
					// Unread inbox: read ASC, created_at DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "read", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderDescending},
						},
					},
				},
			},
		},
	}
}
