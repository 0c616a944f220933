package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"adstudio/internal/domain"
	"adstudio/internal/metrics"
)

const MsgAdCreativeFailed = "Failed to generate ad creative. Please try again."

// Loading stages of the product-URL form.
const (
	StageFetching   = "Fetching product information..."
	StageAnalyzing  = "Analyzing product image and style..."
	StageGenerating = "Generating ad creatives..."
)

// URLState is the product-URL form state.
type URLState struct {
	ProductURL           string
	URLValidationMessage string
	Loading              bool
	LoadingStage         string
	Result               *domain.AdResult
	Error                string
}

// ProductURL is the product-URL form. Its loading stage advances from
// StageFetching to StageAnalyzing once the request body has been sent, and to
// StageGenerating when a successful response arrives.
type ProductURL struct {
	mu     sync.Mutex
	state  URLState
	epoch  uint64
	cancel context.CancelFunc
	deps   Deps
}

func newProductURL(deps Deps) *ProductURL {
	return &ProductURL{deps: deps}
}

// State returns a copy of the current state.
func (w *ProductURL) State() URLState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SetURL records the raw input, recomputes the inline validation message and
// clears any request error. Invalid input is kept so the user can keep editing.
func (w *ProductURL) SetURL(raw string) {
	hint := domain.ProductURLHint(raw)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.ProductURL = raw
	w.state.URLValidationMessage = hint
	w.state.Error = ""
}

// Submit validates the stored URL and starts the backend request. The returned
// channel is closed once the request has settled.
func (w *ProductURL) Submit() (<-chan struct{}, error) {
	w.mu.Lock()
	if w.state.Loading {
		w.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	productURL, err := domain.ValidateProductURL(w.state.ProductURL)
	if err != nil {
		w.state.Result = nil
		w.state.Error = domain.UserMessage(err, MsgAdCreativeFailed)
		w.mu.Unlock()
		metrics.ObserveSubmission(string(domain.WorkflowProductURL), metrics.OutcomeRejected, time.Time{})
		return nil, err
	}
	w.state.Loading = true
	w.state.Result = nil
	w.state.Error = ""
	w.state.LoadingStage = StageFetching
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
		res, err := w.deps.Ads.GenerateAdFromURL(ctx, productURL, func() {
			w.advanceStage(epoch, StageAnalyzing)
		})
		if err == nil && res != nil {
			w.advanceStage(epoch, StageGenerating)
		}
		w.settle(epoch, start, res, err)
	}()
	return done, nil
}

func (w *ProductURL) advanceStage(epoch uint64, stage string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if epoch == w.epoch && w.state.Loading {
		w.state.LoadingStage = stage
	}
}

func (w *ProductURL) settle(epoch uint64, start time.Time, res *domain.AdResult, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	kind := string(domain.WorkflowProductURL)
	if epoch != w.epoch {
		metrics.ObserveSubmission(kind, metrics.OutcomeDiscarded, start)
		w.deps.Logger.Debug().Str("workflow", kind).Msg("discarded stale ad creative response")
		return
	}
	w.cancel = nil
	w.state.Loading = false
	w.state.LoadingStage = ""
	if err == nil && res == nil {
		err = errors.New("empty ad creative response")
	}
	if err != nil {
		w.state.Result = nil
		w.state.Error = domain.UserMessage(err, MsgAdCreativeFailed)
		metrics.ObserveSubmission(kind, metrics.OutcomeFailed, start)
		w.deps.Logger.Debug().Err(err).Str("workflow", kind).Msg("ad creative request failed")
		return
	}
	w.state.Result = res
	w.state.Error = ""
	metrics.ObserveSubmission(kind, metrics.OutcomeSucceeded, start)

	present := make([]string, 0, len(domain.PlatformSpecs))
	for _, p := range res.Platforms() {
		present = append(present, string(p.Spec.Platform))
	}
	w.deps.Logger.Debug().Str("workflow", kind).
		Int("ad_size_keys", len(res.AdSizes)).
		Strs("platforms", present).
		Int("ad_images", len(res.AdImages)).
		Msg("ad creative generated")
}

// Reset clears the URL, validation message, result and error, and abandons
// any request in flight.
func (w *ProductURL) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.abortLocked()
	w.state = URLState{}
}

func (w *ProductURL) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.abortLocked()
}

func (w *ProductURL) abortLocked() {
	w.epoch++
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.state.Loading = false
	w.state.LoadingStage = ""
}
