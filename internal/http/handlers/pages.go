package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"adstudio/internal/domain"
	"adstudio/internal/view"
	"adstudio/internal/workflow"
)

// Notice codes carried in the query string of the redirect back to the page.
const (
	NoticeRateLimited = "rate_limited"

	MsgRateLimited = "Too many requests. Please wait a moment and try again."
)

var notices = map[string]string{
	NoticeRateLimited: MsgRateLimited,
}

// Index renders the root shell for the caller's session.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	sess := a.session(r)
	data := view.IndexData{
		Active:         sess.Shell.Active(),
		MaxUploadMB:    a.Config.MaxUploadMB,
		RefreshSeconds: int(a.Config.LoadingRefresh.Seconds()),
		Notice:         notices[r.URL.Query().Get("notice")],
	}
	if form, err := sess.Shell.ImageUpload(); err == nil {
		st := form.State()
		data.Upload = &st
	}
	if form, err := sess.Shell.ProductURL(); err == nil {
		st := form.State()
		data.Product = &st
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := view.Index(data).Render(w); err != nil {
		a.log(r).Error().Err(err).Msg("render index")
	}
}

// SelectWorkflow activates the workflow named in the path.
func (a *App) SelectWorkflow(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseWorkflowKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := a.session(r).Shell.Select(kind); err != nil {
		http.NotFound(w, r)
		return
	}
	redirectHome(w, r)
}

// Back leaves the active workflow. Any request it has in flight is cancelled.
func (a *App) Back(w http.ResponseWriter, r *http.Request) {
	a.session(r).Shell.Back()
	redirectHome(w, r)
}

// RateLimited sends a throttled form action back to the page with a notice.
func (a *App) RateLimited(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/?notice="+NoticeRateLimited, http.StatusSeeOther)
}

// State returns the session's shell snapshot for polling clients.
func (a *App) State(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	a.json(w, http.StatusOK, a.session(r).Shell.Snapshot())
}

func (a *App) imageForm(w http.ResponseWriter, r *http.Request) (*workflow.ImageUpload, bool) {
	form, err := a.session(r).Shell.ImageUpload()
	if err != nil {
		// Stale page: the workflow was left in another tab or the session expired.
		redirectHome(w, r)
		return nil, false
	}
	return form, true
}

func (a *App) productForm(w http.ResponseWriter, r *http.Request) (*workflow.ProductURL, bool) {
	form, err := a.session(r).Shell.ProductURL()
	if err != nil {
		redirectHome(w, r)
		return nil, false
	}
	return form, true
}
