package config

import (
	"log/slog"

	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Auth holds the key used to sign admin tokens
type Auth struct {
	jwtSecret string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "Secret for signing admin session tokens and OAuth state",
			Category:    "Authentication",
			Sources:     cli.EnvVars("HIREME_JWT_SECRET", "JWT_SECRET"),
			Destination: &x.jwtSecret,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("jwt-secret.len", len(x.jwtSecret)),
	)
}

// Configure returns the use case option carrying the signing key. Without a
// secret a random key is generated and sessions end on restart.
func (x *Auth) Configure() usecase.Option {
	if x.jwtSecret == "" {
		logging.Default().Warn("jwt-secret is not set, admin sessions will not survive a restart")
	}
	return usecase.WithJWTSecret([]byte(x.jwtSecret))
}
