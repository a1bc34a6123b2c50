package config

import (
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

// jwtPattern matches compact JWS strings such as admin tokens and OAuth state.
var jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

// Logger holds CLI flags for the process logger
type Logger struct {
	level      string
	format     string
	output     string
	maxSizeMB  int
	maxBackups int
}

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("HIREME_LOG_LEVEL"),
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Category:    "Logging",
			Value:       "console",
			Sources:     cli.EnvVars("HIREME_LOG_FORMAT"),
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log destination: stdout, stderr or a file path (rotated)",
			Category:    "Logging",
			Value:       "stdout",
			Sources:     cli.EnvVars("HIREME_LOG_OUTPUT"),
			Destination: &x.output,
		},
		&cli.IntFlag{
			Name:        "log-max-size",
			Usage:       "Rotate the log file after this many megabytes",
			Category:    "Logging",
			Value:       50,
			Sources:     cli.EnvVars("HIREME_LOG_MAX_SIZE"),
			Destination: &x.maxSizeMB,
		},
		&cli.IntFlag{
			Name:        "log-max-backups",
			Usage:       "Number of rotated log files to keep",
			Category:    "Logging",
			Value:       5,
			Sources:     cli.EnvVars("HIREME_LOG_MAX_BACKUPS"),
			Destination: &x.maxBackups,
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
	)
}

// Configure installs the process logger and returns a closer for its output.
func (x *Logger) Configure() (func(), error) {
	level, err := parseLevel(x.level)
	if err != nil {
		return nil, err
	}

	var w io.Writer
	closer := func() {}
	switch x.output {
	case "", "stdout", "-":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		rotator := &lumberjack.Logger{
			Filename:   x.output,
			MaxSize:    x.maxSizeMB,
			MaxBackups: x.maxBackups,
			Compress:   true,
		}
		w = rotator
		closer = func() {
			_ = rotator.Close()
		}
	}

	filter := newRedactor()

	var handler slog.Handler
	switch x.format {
	case "console", "":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithColor(x.output == "" || x.output == "stdout" || x.output == "-" || x.output == "stderr"),
		)
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: filter,
		})
	default:
		closer()
		return nil, goerr.Wrap(ErrInvalidConfig, "unknown log format", goerr.V(FlagKey, "log-format"), goerr.V("format", x.format))
	}

	logging.SetDefault(slog.New(handler))
	return closer, nil
}

// newRedactor masks credentials that may reach a log line.
func newRedactor() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		masq.WithFieldName("password"),
		masq.WithFieldName("Password"),
		masq.WithFieldName("PasswordHash"),
		masq.WithFieldName("RefreshToken"),
		masq.WithFieldName("refresh_token"),
		masq.WithFieldName("token"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("client_secret"),
		masq.WithFieldPrefix("secret_"),
		masq.WithRegex(jwtPattern),
	)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, goerr.Wrap(ErrInvalidConfig, "unknown log level", goerr.V(FlagKey, "log-level"), goerr.V("level", s))
}
