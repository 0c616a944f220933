package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"adstudio/internal/http/handlers"
	"adstudio/internal/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	cfg := app.Config
	r := chi.NewRouter()

	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(
		middleware.RequestID,
		middleware.Logger(app.Logger),
		chimw.Recoverer,
	)

	r.Get("/healthz", app.Health)
	r.Method(http.MethodGet, "/metrics", app.Metrics())

	sessions := middleware.Session(app.Sessions, middleware.SessionOptions{
		CookieName: cfg.SessionCookieName,
		Secure:     cfg.SecureCookies(),
	})
	throttle := middleware.RateLimit(cfg.RateLimitPerMin, time.Minute, http.HandlerFunc(app.RateLimited))

	r.Group(func(r chi.Router) {
		r.Use(sessions)

		r.Get("/", app.Index)

		r.Route("/workflows", func(r chi.Router) {
			r.Post("/back", app.Back)
			r.Post("/{kind}", app.SelectWorkflow)
		})

		r.Route("/image", func(r chi.Router) {
			r.Post("/file", app.ImageFile)
			r.With(throttle).Post("/generate", app.ImageGenerate)
			r.Post("/reset", app.ImageReset)
		})

		r.Route("/product", func(r chi.Router) {
			r.Post("/url", app.ProductURL)
			r.With(throttle).Post("/generate", app.ProductGenerate)
			r.Post("/reset", app.ProductReset)
			r.Get("/download-all.zip", app.DownloadAll)
		})
	})

	// CORS first so preflights are answered without starting a session.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.AllowedOrigins), sessions)
		r.Get("/state", app.State)
	})

	return r
}
