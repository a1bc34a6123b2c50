package config

import (
	"context"
	"log/slog"

	"github.com/hireme-dev/hireme/pkg/service/media"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Storage holds the Cloud Storage bucket for admin media uploads
type Storage struct {
	bucket    string
	prefix    string
	publicURL string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "Cloud Storage bucket for uploaded images",
			Category:    "Storage",
			Sources:     cli.EnvVars("HIREME_STORAGE_BUCKET"),
			Destination: &x.bucket,
		},
		&cli.StringFlag{
			Name:        "storage-prefix",
			Usage:       "Object name prefix for uploaded images",
			Category:    "Storage",
			Value:       "media",
			Sources:     cli.EnvVars("HIREME_STORAGE_PREFIX"),
			Destination: &x.prefix,
		},
		&cli.StringFlag{
			Name:        "storage-public-url",
			Usage:       "Public base URL for objects, e.g. a CDN in front of the bucket",
			Category:    "Storage",
			Sources:     cli.EnvVars("HIREME_STORAGE_PUBLIC_URL"),
			Destination: &x.publicURL,
		},
	}
}

func (x Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("prefix", x.prefix),
		slog.String("public-url", x.publicURL),
	)
}

// Configure returns the media upload option, or nil when no bucket is set.
func (x *Storage) Configure(ctx context.Context) (usecase.Option, error) {
	if x.bucket == "" {
		return nil, nil
	}

	opts := []media.Option{media.WithPrefix(x.prefix)}
	if x.publicURL != "" {
		opts = append(opts, media.WithPublicURL(x.publicURL))
	}

	svc, err := media.New(ctx, x.bucket, opts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize media storage", goerr.V("bucket", x.bucket))
	}
	return usecase.WithMedia(svc), nil
}
