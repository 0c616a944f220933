package httpapi

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adstudio/internal/backend"
	"adstudio/internal/http/handlers"
	"adstudio/internal/infra"
	"adstudio/internal/workflow"
)

type fakeGenerationBackend struct {
	srv       *httptest.Server
	adCalls   atomic.Int32
	lastURL   atomic.Value
	imageSeen atomic.Value
}

func newFakeGenerationBackend(t *testing.T) *fakeGenerationBackend {
	t.Helper()
	fb := &fakeGenerationBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate-ad-from-url", func(w http.ResponseWriter, r *http.Request) {
		fb.adCalls.Add(1)
		var body struct {
			ProductURL string `json:"product_url"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		fb.lastURL.Store(body.ProductURL)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(body.ProductURL, "unreachable"):
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"Product page unreachable"}`))
		case strings.Contains(body.ProductURL, "boom"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.Contains(body.ProductURL, "sale"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"product_info": map[string]string{"title": "Shoes 50% / off"},
				"ad_sizes": map[string]any{
					"facebook": map[string]string{"url": "/static/fb.png"},
					"twitter":  map[string]string{"url": "/static/tw.png"},
					"tiktok":   map[string]string{"url": "/static/tt.png"},
				},
			})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":       "success",
				"category":     "Minimal",
				"product_info": map[string]string{"title": "Trail Shoe", "price": "$89"},
				"ad_sizes": map[string]any{
					"facebook": map[string]string{"url": "/static/fb.png"},
					"tiktok":   map[string]string{"url": "/static/tt.png"},
				},
				"keywords": []string{"trail", "running"},
			})
		}
	})
	mux.HandleFunc("/api/generate-motion-effect", func(w http.ResponseWriter, r *http.Request) {
		file, hdr, err := r.FormFile("image")
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail":[{"msg":"field required"}]}`))
			return
		}
		data, _ := io.ReadAll(file)
		fb.imageSeen.Store(hdr.Filename + ":" + string(data))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","motion_effect_url":"/static/motion.gif","analysis":"Calm product shot"}`))
	})
	mux.HandleFunc("/static/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("PNG:" + strings.TrimPrefix(r.URL.Path, "/static/")))
	})
	fb.srv = httptest.NewServer(mux)
	t.Cleanup(fb.srv.Close)
	return fb
}

type studio struct {
	t       *testing.T
	web     *httptest.Server
	client  *http.Client
	backend *fakeGenerationBackend
}

func newStudio(t *testing.T, mutate func(cfg *infra.Config)) *studio {
	t.Helper()
	fb := newFakeGenerationBackend(t)
	cfg := &infra.Config{
		AppEnv:               "test",
		BackendURL:           fb.srv.URL,
		MaxUploadMB:          1,
		SessionCookieName:    "studio_session",
		SessionIdleTimeout:   time.Minute,
		AllowedOrigins:       []string{"http://localhost:5173"},
		RateLimitPerMin:      100,
		LoadingRefresh:       2 * time.Second,
		ImageSourceAllowlist: []string{"127.0.0.1"},
	}
	if mutate != nil {
		mutate(cfg)
	}
	client, err := backend.NewClient(backend.Options{BaseURL: cfg.BackendURL, AllowedHosts: cfg.ImageSourceAllowlist})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	store := workflow.NewStore(workflow.Deps{Context: ctx, Motion: client, Ads: client, Logger: zerolog.Nop()}, cfg.SessionIdleTimeout)
	app := handlers.NewApp(cfg, zerolog.Nop(), store, client)

	web := httptest.NewServer(NewRouter(app))
	t.Cleanup(web.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &studio{t: t, web: web, client: &http.Client{Jar: jar}, backend: fb}
}

func (s *studio) get(path string) (*http.Response, string) {
	s.t.Helper()
	resp, err := s.client.Get(s.web.URL + path)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, string(body)
}

func (s *studio) post(path string, form url.Values) (*http.Response, string) {
	s.t.Helper()
	resp, err := s.client.PostForm(s.web.URL+path, form)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp, string(body)
}

func (s *studio) state() workflow.Snapshot {
	s.t.Helper()
	_, body := s.get("/api/state")
	var snap workflow.Snapshot
	require.NoError(s.t, json.Unmarshal([]byte(body), &snap))
	return snap
}

func (s *studio) waitSettled() workflow.Snapshot {
	s.t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		snap := s.state()
		if !snap.Loading() {
			return snap
		}
		if time.Now().After(deadline) {
			s.t.Fatal("request did not settle")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSelectorAndBack(t *testing.T) {
	s := newStudio(t, nil)

	resp, body := s.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Choose Your Workflow")

	_, body = s.post("/workflows/product-url", nil)
	assert.Contains(t, body, "AI Ad Image Generator")
	assert.Equal(t, "product-url", s.state().Active)

	_, body = s.post("/workflows/back", nil)
	assert.Contains(t, body, "Choose Your Workflow")
	assert.Equal(t, "none", s.state().Active)
}

func TestUnknownWorkflowIsNotFound(t *testing.T) {
	s := newStudio(t, nil)
	resp, _ := s.post("/workflows/video", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductURLLocalValidationSkipsBackend(t *testing.T) {
	s := newStudio(t, nil)
	s.post("/workflows/product-url", nil)

	for _, input := range []string{"", "   ", "example.com/shoe"} {
		s.post("/product/generate", url.Values{"product_url": {input}})
	}
	assert.Equal(t, int32(0), s.backend.adCalls.Load())
	assert.Equal(t, "Please enter a valid URL", s.state().ProductURL.Error)

	_, body := s.post("/product/url", url.Values{"product_url": {"example.com/shoe"}})
	assert.Contains(t, body, "Please enter a valid URL (starting with http:// or https://)")
	assert.Empty(t, s.state().ProductURL.Error, "editing the URL clears the request error")
}

func TestProductURLGenerateAndDownloadAll(t *testing.T) {
	s := newStudio(t, nil)
	s.post("/workflows/product-url", nil)

	s.post("/product/generate", url.Values{"product_url": {"  https://shop.example.com/shoe  "}})

	snap := s.waitSettled()
	require.NotNil(t, snap.ProductURL)
	require.NotNil(t, snap.ProductURL.Result)
	assert.Empty(t, snap.ProductURL.Error)
	assert.Equal(t, "https://shop.example.com/shoe", s.backend.lastURL.Load())

	_, body := s.get("/")
	assert.NotContains(t, body, `http-equiv="refresh"`)
	assert.Less(t, strings.Index(body, `data-platform="facebook"`), strings.Index(body, `data-platform="tiktok"`))
	assert.Contains(t, body, `download="facebook-ad-Trail-Shoe.png"`)
	assert.Equal(t, 2, strings.Count(body, "data-keyword"))

	resp, archive := s.get("/product/download-all.zip")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	zr, err := zip.NewReader(strings.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	names := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, _ := io.ReadAll(rc)
		rc.Close()
		names[f.Name] = string(data)
	}
	assert.Equal(t, map[string]string{
		"facebook-ad-Trail-Shoe.png": "PNG:fb.png",
		"tiktok-ad-Trail-Shoe.png":   "PNG:tt.png",
	}, names)
}

func TestDownloadAllKeepsPlatformPrefixForTitleWithSlash(t *testing.T) {
	s := newStudio(t, nil)
	s.post("/workflows/product-url", nil)
	s.post("/product/generate", url.Values{"product_url": {"https://shop.example.com/sale"}})
	snap := s.waitSettled()
	require.NotNil(t, snap.ProductURL.Result)

	resp, archive := s.get("/product/download-all.zip")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "ads-Shoes-50%---off.zip", params["filename"])

	zr, err := zip.NewReader(strings.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		"facebook-ad-Shoes-50%---off.png",
		"twitter-ad-Shoes-50%---off.png",
		"tiktok-ad-Shoes-50%---off.png",
	}, names)
}

func TestProductURLBackendErrors(t *testing.T) {
	s := newStudio(t, nil)
	s.post("/workflows/product-url", nil)

	s.post("/product/generate", url.Values{"product_url": {"https://shop.example.com/unreachable"}})
	snap := s.waitSettled()
	assert.Equal(t, "Product page unreachable", snap.ProductURL.Error)
	assert.Nil(t, snap.ProductURL.Result)

	s.post("/product/generate", url.Values{"product_url": {"https://shop.example.com/boom"}})
	snap = s.waitSettled()
	assert.Equal(t, "Failed to generate ad creative. Please try again.", snap.ProductURL.Error)

	resp, _ := s.get("/product/download-all.zip")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *studio) upload(name string, data []byte) *http.Response {
	s.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", name)
	require.NoError(s.t, err)
	_, err = part.Write(data)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	resp, err := s.client.Post(s.web.URL+"/image/file", mw.FormDataContentType(), &body)
	require.NoError(s.t, err)
	resp.Body.Close()
	return resp
}

func TestImageUploadFlow(t *testing.T) {
	s := newStudio(t, nil)
	s.post("/workflows/image-upload", nil)

	_, body := s.post("/image/generate", nil)
	assert.Contains(t, body, "Please select an image first")

	resp := s.upload("cat.png", []byte("\x89PNG\r\n\x1a\nrest"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	snap := s.state()
	require.NotNil(t, snap.ImageUpload)
	assert.Equal(t, "cat.png", snap.ImageUpload.FileName)
	assert.True(t, snap.ImageUpload.HasPreview)
	assert.Empty(t, snap.ImageUpload.Error)

	s.post("/image/generate", nil)
	snap = s.waitSettled()
	require.NotNil(t, snap.ImageUpload.Result)
	assert.Equal(t, "Calm product shot", snap.ImageUpload.Result.Analysis)
	assert.Equal(t, "cat.png:\x89PNG\r\n\x1a\nrest", s.backend.imageSeen.Load())

	_, body = s.get("/")
	assert.Contains(t, body, "AI Analysis")

	s.post("/image/reset", nil)
	snap = s.state()
	assert.Empty(t, snap.ImageUpload.FileName)
	assert.False(t, snap.ImageUpload.HasPreview)
	assert.Nil(t, snap.ImageUpload.Result)
	assert.Empty(t, snap.ImageUpload.Error)
}

func TestImageUploadTooLarge(t *testing.T) {
	s := newStudio(t, nil)
	s.post("/workflows/image-upload", nil)

	s.upload("huge.png", bytes.Repeat([]byte{'x'}, 3<<19))
	snap := s.state()
	require.NotNil(t, snap.ImageUpload)
	assert.Equal(t, "Image is too large. Maximum size is 1MB.", snap.ImageUpload.Error)
	assert.Empty(t, snap.ImageUpload.FileName)
}

func TestGenerateIsRateLimited(t *testing.T) {
	s := newStudio(t, func(cfg *infra.Config) { cfg.RateLimitPerMin = 1 })
	s.post("/workflows/product-url", nil)

	s.post("/product/generate", url.Values{"product_url": {""}})
	resp, body := s.post("/product/generate", url.Values{"product_url": {""}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Request.URL.RawQuery, "notice=rate_limited")
	assert.Contains(t, body, "Too many requests")
}

func TestGenerateThrottleKeysOnConnectionByDefault(t *testing.T) {
	s := newStudio(t, func(cfg *infra.Config) { cfg.RateLimitPerMin = 1 })
	s.post("/workflows/product-url", nil)

	var last *http.Response
	for i := 1; i <= 2; i++ {
		req, err := http.NewRequest(http.MethodPost, s.web.URL+"/product/generate", strings.NewReader("product_url="))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", "203.0.113."+strconv.Itoa(i))
		last, err = s.client.Do(req)
		require.NoError(t, err)
		last.Body.Close()
	}
	assert.Contains(t, last.Request.URL.RawQuery, "notice=rate_limited")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newStudio(t, nil)

	resp, body := s.get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	resp, body = s.get("/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "studio_active_sessions")
}

func TestStateCORS(t *testing.T) {
	s := newStudio(t, nil)
	req, err := http.NewRequest(http.MethodOptions, s.web.URL+"/api/state", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Header.Get("Set-Cookie"))
}
