package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"adstudio/internal/domain"
)

// multipart framing allowance on top of the image itself
const multipartOverhead = 1 << 20

// ImageFile stores the uploaded image and its preview.
func (a *App) ImageFile(w http.ResponseWriter, r *http.Request) {
	form, ok := a.imageForm(w, r)
	if !ok {
		return
	}
	limit := a.Config.MaxUploadBytes()
	tooLarge := domain.NewValidationError(domain.ErrUploadTooLarge,
		fmt.Sprintf("Image is too large. Maximum size is %dMB.", a.Config.MaxUploadMB))

	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			form.Reject(tooLarge)
		} else {
			a.log(r).Debug().Err(err).Msg("parse image upload")
		}
		redirectHome(w, r)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, hdr, err := r.FormFile("image")
	if err != nil {
		// Picker closed without a choice; nothing changes.
		redirectHome(w, r)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		a.log(r).Warn().Err(err).Msg("read image upload")
		redirectHome(w, r)
		return
	}
	if int64(len(data)) > limit {
		form.Reject(tooLarge)
		redirectHome(w, r)
		return
	}
	if len(data) == 0 {
		redirectHome(w, r)
		return
	}

	form.SelectFile(domain.NewImageFile(hdr.Filename, hdr.Header.Get("Content-Type"), data))
	redirectHome(w, r)
}

// ImageGenerate submits the selected image.
func (a *App) ImageGenerate(w http.ResponseWriter, r *http.Request) {
	form, ok := a.imageForm(w, r)
	if !ok {
		return
	}
	if _, err := form.Submit(); err != nil && errors.Is(err, domain.ErrSubmissionInFlight) {
		a.log(r).Debug().Msg("image generate ignored: request in flight")
	}
	redirectHome(w, r)
}

// ImageReset clears the image-upload form.
func (a *App) ImageReset(w http.ResponseWriter, r *http.Request) {
	form, ok := a.imageForm(w, r)
	if !ok {
		return
	}
	form.Reset()
	redirectHome(w, r)
}
