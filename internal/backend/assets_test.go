package backend

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAssetDataURI(t *testing.T) {
	c, err := NewClient(Options{BaseURL: "http://backend.internal"})
	require.NoError(t, err)
	data, err := c.FetchAsset(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestFetchAssetRelativeResolvesAgainstBackend(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generated/fb.png", r.URL.Path)
		_, _ = io.WriteString(w, "png-bytes")
	}))
	data, err := c.FetchAsset(context.Background(), "/generated/fb.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestFetchAssetHostAllowlist(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "cdn-bytes")
	}))
	t.Cleanup(ts.Close)

	c, err := NewClient(Options{BaseURL: "http://backend.internal"})
	require.NoError(t, err)
	_, err = c.FetchAsset(context.Background(), ts.URL+"/a.png")
	assert.ErrorIs(t, err, ErrHostNotAllowed)

	c, err = NewClient(Options{BaseURL: "http://backend.internal", AllowedHosts: []string{" 127.0.0.1 "}})
	require.NoError(t, err)
	data, err := c.FetchAsset(context.Background(), ts.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("cdn-bytes"), data)
}

func TestFetchAssetRedirectMustStayOnAllowedHosts(t *testing.T) {
	unlisted := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "private-bytes")
	}))
	t.Cleanup(unlisted.Close)
	target, err := url.Parse(unlisted.URL)
	require.NoError(t, err)
	target.Host = net.JoinHostPort("localhost", target.Port())
	target.Path = "/secret.png"

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/away.png":
			http.Redirect(w, r, target.String(), http.StatusFound)
		case "/moved.png":
			http.Redirect(w, r, "/generated/fb.png", http.StatusFound)
		case "/generated/fb.png":
			_, _ = io.WriteString(w, "png-bytes")
		}
	}))

	data, err := c.FetchAsset(context.Background(), "/away.png")
	assert.ErrorIs(t, err, ErrHostNotAllowed)
	assert.Nil(t, data)

	data, err = c.FetchAsset(context.Background(), "/moved.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestFetchAssetRejectsOtherSchemes(t *testing.T) {
	c, err := NewClient(Options{BaseURL: "http://backend.internal"})
	require.NoError(t, err)
	_, err = c.FetchAsset(context.Background(), "file:///etc/passwd")
	assert.Error(t, err)
	_, err = c.FetchAsset(context.Background(), "  ")
	assert.Error(t, err)
}
