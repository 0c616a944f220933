package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"adstudio/internal/infra"
	"adstudio/internal/middleware"
	"adstudio/internal/workflow"
)

// AssetFetcher loads a generated image for the download-all archive.
type AssetFetcher interface {
	FetchAsset(ctx context.Context, ref string) ([]byte, error)
}

type App struct {
	Config   *infra.Config
	Logger   zerolog.Logger
	Sessions *workflow.Store
	Assets   AssetFetcher
}

func NewApp(cfg *infra.Config, logger zerolog.Logger, sessions *workflow.Store, assets AssetFetcher) *App {
	return &App{Config: cfg, Logger: logger, Sessions: sessions, Assets: assets}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorResponse{Error: errCode, Message: message})
}

// session returns the caller's session. The session middleware guarantees
// one on every page route.
func (a *App) session(r *http.Request) *workflow.Session {
	if sess := middleware.SessionFromContext(r.Context()); sess != nil {
		return sess
	}
	return a.Sessions.Create()
}

func (a *App) log(r *http.Request) *zerolog.Logger {
	l := a.Logger.With().Str("request_id", middleware.RequestIDFromContext(r.Context())).Logger()
	return &l
}

// redirectHome finishes every form action (Post/Redirect/Get).
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
