package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type errorBody struct {
	Error string `json:"error"`
}

// Handle logs the error with a message and reports it to Sentry when a client is configured.
// It returns err unchanged so callers can keep propagating it.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logError(ctx, msg, err)
	report(ctx, err)
	return err
}

// HandleHTTP logs the error and writes a JSON error body with statusCode.
// 5xx responses hide the error detail from the client and are reported to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logError(ctx, "HTTP error", err, "status", statusCode)

	msg := err.Error()
	if statusCode >= http.StatusInternalServerError {
		report(ctx, err)
		msg = http.StatusText(statusCode)
	}

	WriteError(ctx, w, statusCode, msg)
}

// WriteError writes {"error": msg} with statusCode without logging.
func WriteError(ctx context.Context, w http.ResponseWriter, statusCode int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorBody{Error: msg}); err != nil {
		logging.From(ctx).Error("failed to write error response", "error", err.Error())
	}
}

func logError(ctx context.Context, msg string, err error, attrs ...any) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		args := append(attrs,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
		logger.Error(msg, args...)
		return
	}

	logger.Error(msg, append(attrs, "error", err.Error())...)
}

func report(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	var ge *goerr.Error
	if errors.As(err, &ge) {
		hub.WithScope(func(scope *sentry.Scope) {
			if values := ge.Values(); len(values) > 0 {
				scope.SetContext("goerr", sentry.Context(values))
			}
			hub.CaptureException(err)
		})
		return
	}
	hub.CaptureException(err)
}
