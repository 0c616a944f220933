package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"adstudio/internal/domain"
	"adstudio/pkg/zip"
)

// ProductURL records the typed URL and recomputes its inline validation.
func (a *App) ProductURL(w http.ResponseWriter, r *http.Request) {
	form, ok := a.productForm(w, r)
	if !ok {
		return
	}
	form.SetURL(r.PostFormValue("product_url"))
	redirectHome(w, r)
}

// ProductGenerate stores the submitted URL and starts generation.
func (a *App) ProductGenerate(w http.ResponseWriter, r *http.Request) {
	form, ok := a.productForm(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err == nil {
		if _, present := r.PostForm["product_url"]; present {
			form.SetURL(r.PostForm.Get("product_url"))
		}
	}
	if _, err := form.Submit(); err != nil && errors.Is(err, domain.ErrSubmissionInFlight) {
		a.log(r).Debug().Msg("ad generate ignored: request in flight")
	}
	redirectHome(w, r)
}

// ProductReset clears the product-URL form.
func (a *App) ProductReset(w http.ResponseWriter, r *http.Request) {
	form, ok := a.productForm(w, r)
	if !ok {
		return
	}
	form.Reset()
	redirectHome(w, r)
}

// DownloadAll bundles every present platform image of the current result
// into one zip archive.
func (a *App) DownloadAll(w http.ResponseWriter, r *http.Request) {
	form, err := a.session(r).Shell.ProductURL()
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "no product workflow is active")
		return
	}
	res := form.State().Result
	platforms := res.Platforms()
	if len(platforms) == 0 {
		a.error(w, http.StatusNotFound, "not_found", domain.ErrNoAdSizes.Error())
		return
	}

	title := res.ProductTitle()
	assets := make([]zip.Asset, len(platforms))
	g, ctx := errgroup.WithContext(r.Context())
	var mu sync.Mutex
	var failed []string
	for i, p := range platforms {
		g.Go(func() error {
			data, err := a.Assets.FetchAsset(ctx, p.Image.URL)
			if err != nil {
				mu.Lock()
				failed = append(failed, string(p.Spec.Platform))
				mu.Unlock()
				return fmt.Errorf("%s: %w", p.Spec.Platform, err)
			}
			assets[i] = zip.Asset{
				Filename: domain.AdFilename(p.Spec.Platform, title),
				MIME:     http.DetectContentType(data),
				Data:     data,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.log(r).Warn().Err(err).Strs("platforms", failed).Msg("download-all fetch failed")
		a.error(w, http.StatusBadGateway, "bad_gateway", "could not fetch every ad image")
		return
	}

	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		a.log(r).Error().Err(err).Msg("build download-all archive")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": archiveName(title)}))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func archiveName(title string) string {
	slug := domain.Slugify(title)
	if slug == "" {
		slug = "creative"
	}
	return zip.SafeName("ads-" + slug + ".zip")
}
