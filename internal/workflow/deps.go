// Package workflow holds the per-browser UI state: which workflow is active and
// the state machines of the image-upload and product-URL forms. Every form
// allows at most one backend request in flight; resetting a form or leaving it
// cancels that request and discards whatever it returns.
package workflow

import (
	"context"

	"github.com/rs/zerolog"

	"adstudio/internal/domain"
)

// MotionEffectGenerator issues the image-upload round trip.
type MotionEffectGenerator interface {
	GenerateMotionEffect(ctx context.Context, img domain.ImageFile) (*domain.MotionEffectResult, error)
}

// AdGenerator issues the product-URL round trip. onSent is invoked once the
// request body has been fully written.
type AdGenerator interface {
	GenerateAdFromURL(ctx context.Context, productURL string, onSent func()) (*domain.AdResult, error)
}

// Deps are shared by every form a Shell creates.
type Deps struct {
	// Context bounds every backend request; cancelling it aborts all of them.
	Context context.Context
	Motion  MotionEffectGenerator
	Ads     AdGenerator
	Logger  zerolog.Logger
}

func (d Deps) baseContext() context.Context {
	if d.Context == nil {
		return context.Background()
	}
	return d.Context
}
