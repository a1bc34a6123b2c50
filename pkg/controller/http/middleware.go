package http

import (
	"net/http"
	"strings"

	"github.com/hireme-dev/hireme/pkg/domain/model/auth"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/hireme-dev/hireme/pkg/utils/errutil"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
)

// authMiddleware requires a valid admin bearer token on protected requests
func authMiddleware(authUC *usecase.AuthUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				errutil.WriteError(r.Context(), w, http.StatusUnauthorized, "Access denied")
				return
			}

			admin, err := authUC.Authenticate(r.Context(), token)
			if err != nil {
				logging.From(r.Context()).Debug("rejected admin token", "error", err.Error())
				errutil.WriteError(r.Context(), w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := auth.ContextWithAdmin(r.Context(), admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
