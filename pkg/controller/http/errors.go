package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hireme-dev/hireme/pkg/domain/model"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/hireme-dev/hireme/pkg/utils/errutil"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
)

// handleError maps use case errors to a status code and a client safe message.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var status int
	var msg string
	switch {
	case errors.Is(err, model.ErrValidation):
		status, msg = http.StatusBadRequest, clientMessage(err, model.ErrValidation)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status, msg = http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, model.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found"
	case errors.Is(err, usecase.ErrUnauthorized):
		status, msg = http.StatusForbidden, "Invalid token"
	case errors.Is(err, usecase.ErrGoogleUnavailable):
		status, msg = http.StatusServiceUnavailable, "Google integration is not configured"
	case errors.Is(err, usecase.ErrMediaUnavailable):
		status, msg = http.StatusServiceUnavailable, "Media storage is not configured"
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	logging.From(ctx).Info("request rejected", "status", status, "error", err.Error())
	errutil.WriteError(ctx, w, status, msg)
}

// clientMessage returns the innermost message wrapped around sentinel.
// "failed to create hobby: hobby title is required: validation error"
// becomes "hobby title is required".
func clientMessage(err, sentinel error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	if msg == "" || msg == sentinel.Error() {
		return http.StatusText(http.StatusBadRequest)
	}
	return msg
}
