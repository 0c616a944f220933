package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"adstudio/internal/domain"
	"adstudio/internal/metrics"
)

const MsgMotionEffectFailed = "Failed to generate motion effect. Please try again."

// UploadState is the image-upload form state. Result and Error are never both
// set.
type UploadState struct {
	File           *domain.ImageFile
	PreviewDataURI string
	Loading        bool
	Result         *domain.MotionEffectResult
	Error          string
}

// ImageUpload is the Idle → FileSelected → Submitting → Succeeded/Failed form.
type ImageUpload struct {
	mu     sync.Mutex
	state  UploadState
	epoch  uint64
	cancel context.CancelFunc
	deps   Deps
}

func newImageUpload(deps Deps) *ImageUpload {
	return &ImageUpload{deps: deps}
}

// State returns a copy of the current state.
func (w *ImageUpload) State() UploadState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SelectFile stores f with its preview and clears any previous outcome. A
// request still in flight belongs to the old file and is abandoned.
func (w *ImageUpload) SelectFile(f domain.ImageFile) {
	preview := f.DataURI()
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.Loading {
		w.abortLocked()
	}
	w.state.File = &f
	w.state.PreviewDataURI = preview
	w.state.Result = nil
	w.state.Error = ""
}

// Reject surfaces a local failure that happened before the form could use
// the input, such as an oversized upload.
func (w *ImageUpload) Reject(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Result = nil
	w.state.Error = domain.UserMessage(err, MsgMotionEffectFailed)
}

// Submit starts the backend request for the selected file. It fails without a
// network call when no file is selected or a request is already in flight.
// The returned channel is closed once the request has settled.
func (w *ImageUpload) Submit() (<-chan struct{}, error) {
	w.mu.Lock()
	if w.state.Loading {
		w.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	if w.state.File == nil {
		err := domain.NewValidationError(domain.ErrNoFileSelected, domain.MsgNoFileSelected)
		w.state.Result = nil
		w.state.Error = err.Message
		w.mu.Unlock()
		metrics.ObserveSubmission(string(domain.WorkflowImageUpload), metrics.OutcomeRejected, time.Time{})
		return nil, err
	}
	file := *w.state.File
	w.state.Loading = true
	w.state.Result = nil
	w.state.Error = ""
	w.epoch++
	epoch := w.epoch
	ctx, cancel := context.WithCancel(w.deps.baseContext())
	w.cancel = cancel
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		start := time.Now()
		res, err := w.deps.Motion.GenerateMotionEffect(ctx, file)
		w.settle(epoch, start, res, err)
	}()
	return done, nil
}

func (w *ImageUpload) settle(epoch uint64, start time.Time, res *domain.MotionEffectResult, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	kind := string(domain.WorkflowImageUpload)
	if epoch != w.epoch {
		metrics.ObserveSubmission(kind, metrics.OutcomeDiscarded, start)
		w.deps.Logger.Debug().Str("workflow", kind).Msg("discarded stale motion effect response")
		return
	}
	w.cancel = nil
	w.state.Loading = false
	if err == nil && res == nil {
		err = errors.New("empty motion effect response")
	}
	if err != nil {
		w.state.Result = nil
		w.state.Error = domain.UserMessage(err, MsgMotionEffectFailed)
		metrics.ObserveSubmission(kind, metrics.OutcomeFailed, start)
		w.deps.Logger.Debug().Err(err).Str("workflow", kind).Msg("motion effect request failed")
		return
	}
	w.state.Result = res
	w.state.Error = ""
	metrics.ObserveSubmission(kind, metrics.OutcomeSucceeded, start)
	w.deps.Logger.Debug().Str("workflow", kind).
		Bool("has_motion_effect", res.MotionEffectURL != "").
		Bool("has_download", res.DownloadURL != "").
		Msg("motion effect generated")
}

// Reset clears file, preview, result and error in one step and abandons any
// request in flight.
func (w *ImageUpload) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.abortLocked()
	w.state = UploadState{}
}

func (w *ImageUpload) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.abortLocked()
}

func (w *ImageUpload) abortLocked() {
	w.epoch++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.state.Loading = false
}
