package http

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hireme-dev/hireme/pkg/metrics"
	"github.com/hireme-dev/hireme/pkg/usecase"
	"github.com/hireme-dev/hireme/pkg/utils/errutil"
	"github.com/hireme-dev/hireme/pkg/utils/logging"
	"github.com/hireme-dev/hireme/pkg/utils/safe"
)

// DefaultAdminURL is where the Google consent callback sends the browser when
// no admin URL is configured.
const DefaultAdminURL = "/admin"

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	staticFS fs.FS
	adminURL string
}

type Options func(*Server)

// WithStaticFS serves a built single page app for every path not handled by the API.
func WithStaticFS(fsys fs.FS) Options {
	return func(s *Server) {
		s.staticFS = fsys
	}
}

// WithAdminURL sets the page the Google consent callback redirects to.
func WithAdminURL(url string) Options {
	return func(s *Server) {
		s.adminURL = url
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		uc:       uc,
		adminURL: DefaultAdminURL,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler(uc))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/site-data", siteDataHandler(uc.Content))
		r.Post("/contact", contactHandler(uc.Submission))
		r.Get("/google/callback", googleCallbackHandler(uc.AccountLink, s.adminURL))
		r.Post("/auth/login", loginHandler(uc.Auth))

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(uc.Auth))

			r.Post("/auth/change-password", changePasswordHandler(uc.Auth))

			r.Route("/admin", func(r chi.Router) {
				r.Get("/settings", getSettingsHandler(uc.Content))
				r.Put("/settings", putSettingsHandler(uc.Content))
				r.Get("/personal-overview", getPersonalOverviewHandler(uc.Content))
				r.Put("/personal-overview", putPersonalOverviewHandler(uc.Content))
				r.Get("/contact-info", getContactInfoHandler(uc.Content))
				r.Put("/contact-info", putContactInfoHandler(uc.Content))

				experienceRoutes(uc.Content.Experience).mount(r, "/experience")
				testimonialRoutes(uc.Content.Testimonial).mount(r, "/testimonials")
				skillRoutes(uc.Content.Skill).mount(r, "/skills")
				hobbyRoutes(uc.Content.Hobby).mount(r, "/hobbies")

				r.Get("/submissions", listSubmissionsHandler(uc.Submission))
				r.Put("/submissions/{id}/read", markSubmissionReadHandler(uc.Submission))
				r.Delete("/submissions/{id}", deleteSubmissionHandler(uc.Submission))

				r.Get("/google/auth-url", googleAuthURLHandler(uc.AccountLink))
				r.Get("/google/status", googleStatusHandler(uc.AccountLink))
				r.Post("/google/disconnect", googleDisconnectHandler(uc.AccountLink))

				r.Post("/media", mediaUploadHandler(uc.Media))
			})
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			errutil.WriteError(r.Context(), w, http.StatusNotFound, "Not found")
		})
	})

	// Static file serving for SPA (catch-all, must be last)
	if s.staticFS != nil {
		r.Get("/*", spaHandler(s.staticFS))
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests and records their latency
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			elapsed := time.Since(start)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.RecordHTTPRequestDuration(r.Method, route, strconv.Itoa(ww.Status()), elapsed)

			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", elapsed,
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := uc.Ping(ctx); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusServiceUnavailable)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, response{Status: "ok"})
	}
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// spaHandler handles SPA routing by serving static files and falling back to index.html
func spaHandler(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		urlPath := strings.TrimPrefix(r.URL.Path, "/")

		// If the path is empty, serve index.html
		if urlPath == "" {
			urlPath = "index.html"
		}

		// Try to open the file to check if it exists
		file, err := staticFS.Open(urlPath)
		if err != nil {
			// File not found, serve index.html for SPA routing
			if _, err := fs.Stat(staticFS, "index.html"); err == nil {
				http.ServeFileFS(w, r, staticFS, "index.html")
				return
			}

			// If index.html is also not found, return 404
			http.NotFound(w, r)
			return
		}
		safe.Close(r.Context(), file)

		// Serve the requested file using the file server
		fileServer.ServeHTTP(w, r)
	}
}
