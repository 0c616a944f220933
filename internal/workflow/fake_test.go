package workflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"adstudio/internal/domain"
)

// fakeBackend blocks every call until release is closed or the request
// context is cancelled.
type fakeBackend struct {
	mu        sync.Mutex
	calls     int
	urls      []string
	release   chan struct{}
	started   chan struct{}
	ignoreCtx bool

	motionResult *domain.MotionEffectResult
	adResult     *domain.AdResult
	err          error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{release: make(chan struct{}), started: make(chan struct{}, 8)}
}

func (f *fakeBackend) wait(ctx context.Context) error {
	if f.ignoreCtx {
		<-f.release
		return nil
	}
	select {
	case <-f.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeBackend) GenerateMotionEffect(ctx context.Context, img domain.ImageFile) (*domain.MotionEffectResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	f.started <- struct{}{}
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.motionResult, nil
}

func (f *fakeBackend) GenerateAdFromURL(ctx context.Context, productURL string, onSent func()) (*domain.AdResult, error) {
	f.mu.Lock()
	f.calls++
	f.urls = append(f.urls, productURL)
	f.mu.Unlock()
	if onSent != nil {
		onSent()
	}
	f.started <- struct{}{}
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.adResult, nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testDeps(fb *fakeBackend) Deps {
	return Deps{Context: context.Background(), Motion: fb, Ads: fb, Logger: zerolog.Nop()}
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("request did not settle")
	}
}

func waitStarted(t *testing.T, fb *fakeBackend) {
	t.Helper()
	select {
	case <-fb.started:
	case <-time.After(2 * time.Second):
		t.Fatal("backend call did not start")
	}
}
