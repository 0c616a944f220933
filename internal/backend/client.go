package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"adstudio/internal/domain"
)

const (
	MotionEffectPath = "/api/generate-motion-effect"
	AdFromURLPath    = "/api/generate-ad-from-url"

	// Generated creatives commonly arrive inline as data URIs.
	maxResponseBytes = 64 << 20
	maxErrorBytes    = 1 << 20
)

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout applies only when HTTPClient is nil. Zero leaves the transport
	// default in place.
	Timeout time.Duration
	// AllowedHosts extends the hosts FetchAsset may contact; the backend host is
	// always allowed.
	AllowedHosts []string
}

// Client talks to the generation backend.
type Client struct {
	httpClient *http.Client
	// assetClient shares httpClient's transport but re-checks every redirect
	// against allowedHosts.
	assetClient  *http.Client
	baseURL      *url.URL
	allowedHosts map[string]struct{}
}

func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = "http://localhost:8000"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("backend: base url must be absolute http(s), got %q", base)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	allowed := map[string]struct{}{strings.ToLower(u.Hostname()): {}}
	for _, h := range opts.AllowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allowed[h] = struct{}{}
		}
	}
	c := &Client{httpClient: client, baseURL: u, allowedHosts: allowed}
	assets := *client
	assets.CheckRedirect = c.checkAssetRedirect
	c.assetClient = &assets
	return c, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// GenerateMotionEffect uploads img as multipart field `image`.
func (c *Client) GenerateMotionEffect(ctx context.Context, img domain.ImageFile) (*domain.MotionEffectResult, error) {
	if c == nil {
		return nil, errors.New("backend client not configured")
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreatePart(imagePartHeader(img))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out domain.MotionEffectResult
	if err := c.post(ctx, MotionEffectPath, mw.FormDataContentType(), body.Bytes(), nil, &out); err != nil {
		return nil, err
	}
	out.MotionEffectURL = c.resolve(out.MotionEffectURL)
	out.DownloadURL = c.resolve(out.DownloadURL)
	return &out, nil
}

type adFromURLRequest struct {
	ProductURL string `json:"product_url"`
}

// GenerateAdFromURL posts {product_url}. onSent, when non-nil, is called once
// as soon as the request body has been handed to the transport in full.
func (c *Client) GenerateAdFromURL(ctx context.Context, productURL string, onSent func()) (*domain.AdResult, error) {
	if c == nil {
		return nil, errors.New("backend client not configured")
	}
	payload, err := json.Marshal(adFromURLRequest{ProductURL: productURL})
	if err != nil {
		return nil, err
	}
	var out domain.AdResult
	if err := c.post(ctx, AdFromURLPath, "application/json", payload, onSent, &out); err != nil {
		return nil, err
	}
	if out.ProductInfo != nil {
		out.ProductInfo.ImageURL = c.resolve(out.ProductInfo.ImageURL)
	}
	for _, img := range out.AdSizes {
		if img != nil {
			img.URL = c.resolve(img.URL)
		}
	}
	for i := range out.AdImages {
		out.AdImages[i].URL = c.resolve(out.AdImages[i].URL)
	}
	return &out, nil
}

// resolve makes a backend-relative asset reference absolute so the browser
// loads it from the backend rather than from this service. Absolute URLs and
// data URIs pass through.
func (c *Client) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || domain.IsDataURI(ref) {
		return ref
	}
	u, err := c.baseURL.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

func (c *Client) post(ctx context.Context, path, contentType string, payload []byte, onSent func(), out any) error {
	endpoint := c.baseURL.JoinPath(path).String()
	var body io.Reader = bytes.NewReader(payload)
	if onSent != nil {
		body = &progressReader{r: body, total: int64(len(payload)), done: onSent}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	req.ContentLength = int64(len(payload))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(payload)), nil
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &domain.RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RequestError{
			StatusCode: resp.StatusCode,
			Detail:     readDetail(io.LimitReader(resp.Body, maxErrorBytes)),
		}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &domain.RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readDetail extracts a string `detail` from an error body. Validation errors
// from the backend carry a list there; those yield "" so the caller falls back
// to its generic message.
func readDetail(r io.Reader) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}

func imagePartHeader(img domain.ImageFile) textproto.MIMEHeader {
	name := img.Name
	if name == "" {
		name = "image"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(name)))
	ct := img.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// progressReader fires done once the whole body has been read.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	once  sync.Once
	done  func()
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.read >= p.total || errors.Is(err, io.EOF) {
		p.once.Do(p.done)
	}
	return n, err
}
