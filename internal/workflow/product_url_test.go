package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adstudio/internal/domain"
)

func TestProductURLSetURLValidation(t *testing.T) {
	w := newProductURL(testDeps(newFakeBackend()))

	w.SetURL("not a url")
	assert.Equal(t, domain.MsgProductURLHint, w.State().URLValidationMessage)
	assert.Equal(t, "not a url", w.State().ProductURL, "invalid input is kept")

	w.SetURL("https://shop.example.com/p")
	assert.Empty(t, w.State().URLValidationMessage)

	w.SetURL("")
	assert.Empty(t, w.State().URLValidationMessage)
}

func TestProductURLLocalRejections(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: "Please enter a product URL"},
		{input: "   ", want: "Please enter a product URL"},
		{input: "\t\n", want: "Please enter a product URL"},
		{input: "example.com/product", want: "Please enter a valid URL"},
		{input: "ftp://example.com/product", want: "Please enter a valid URL"},
	}
	for _, tc := range tests {
		fb := newFakeBackend()
		w := newProductURL(testDeps(fb))
		w.SetURL(tc.input)

		done, err := w.Submit()
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, "input %q", tc.input)
		assert.Nil(t, done)
		assert.Equal(t, tc.want, w.State().Error)
		assert.False(t, w.State().Loading)
		assert.Equal(t, 0, fb.callCount(), "input %q must not reach the backend", tc.input)
	}
}

func TestProductURLSuccessAdvancesStages(t *testing.T) {
	fb := newFakeBackend()
	fb.adResult = &domain.AdResult{Keywords: []string{"a", "b"}}
	w := newProductURL(testDeps(fb))
	w.SetURL("  https://shop.example.com/p/1  ")

	done, err := w.Submit()
	require.NoError(t, err)
	waitStarted(t, fb)

	st := w.State()
	assert.True(t, st.Loading)
	assert.Equal(t, StageAnalyzing, st.LoadingStage)

	close(fb.release)
	waitDone(t, done)

	st = w.State()
	assert.False(t, st.Loading)
	assert.Empty(t, st.LoadingStage)
	assert.Equal(t, fb.adResult, st.Result)
	assert.Equal(t, []string{"https://shop.example.com/p/1"}, fb.urls)
}

func TestProductURLFailureDetail(t *testing.T) {
	fb := newFakeBackend()
	fb.err = &domain.RequestError{StatusCode: 400, Detail: "Product page unreachable"}
	close(fb.release)
	w := newProductURL(testDeps(fb))
	w.SetURL("https://shop.example.com/p/1")

	done, err := w.Submit()
	require.NoError(t, err)
	waitDone(t, done)

	st := w.State()
	assert.Equal(t, "Product page unreachable", st.Error)
	assert.Empty(t, st.LoadingStage)
	assert.Nil(t, st.Result)

	fb2 := newFakeBackend()
	fb2.err = &domain.RequestError{StatusCode: 500}
	close(fb2.release)
	w2 := newProductURL(testDeps(fb2))
	w2.SetURL("https://shop.example.com/p/1")
	done, err = w2.Submit()
	require.NoError(t, err)
	waitDone(t, done)
	assert.Equal(t, MsgAdCreativeFailed, w2.State().Error)
}

func TestProductURLErrorReplacesResult(t *testing.T) {
	fb := newFakeBackend()
	fb.adResult = &domain.AdResult{Category: "Minimal"}
	close(fb.release)
	w := newProductURL(testDeps(fb))
	w.SetURL("https://shop.example.com/p/1")
	done, err := w.Submit()
	require.NoError(t, err)
	waitDone(t, done)
	require.NotNil(t, w.State().Result)

	w.SetURL("")
	_, err = w.Submit()
	require.Error(t, err)
	st := w.State()
	assert.Nil(t, st.Result)
	assert.Equal(t, "Please enter a product URL", st.Error)
}

func TestProductURLSetURLClearsRequestError(t *testing.T) {
	w := newProductURL(testDeps(newFakeBackend()))
	_, err := w.Submit()
	require.Error(t, err)
	require.NotEmpty(t, w.State().Error)

	w.SetURL("h")
	assert.Empty(t, w.State().Error)
}

func TestProductURLResetDuringLoading(t *testing.T) {
	fb := newFakeBackend()
	defer close(fb.release)
	w := newProductURL(testDeps(fb))
	w.SetURL("https://shop.example.com/p/1")

	done, err := w.Submit()
	require.NoError(t, err)
	waitStarted(t, fb)

	w.Reset()
	waitDone(t, done)
	assert.Equal(t, URLState{}, w.State())
}
