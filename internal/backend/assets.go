package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"adstudio/internal/domain"
)

const (
	maxAssetBytes     = 32 << 20
	maxAssetRedirects = 10
)

var ErrHostNotAllowed = errors.New("backend: asset host not allowed")

// FetchAsset loads a generated creative. Data URIs are decoded locally;
// relative references resolve against the backend; absolute http(s) URLs are
// fetched only from allowed hosts.
func (c *Client) FetchAsset(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("backend: empty asset reference")
	}
	if domain.IsDataURI(ref) {
		data, _, err := domain.DecodeDataURI(ref)
		return data, err
	}
	u, err := c.baseURL.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("backend: parse asset url: %w", err)
	}
	if err := c.checkAssetURL(u); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.assetClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: fetch asset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend: fetch asset: http %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("backend: read asset: %w", err)
	}
	if len(data) > maxAssetBytes {
		return nil, fmt.Errorf("backend: asset exceeds %d bytes", maxAssetBytes)
	}
	return data, nil
}

func (c *Client) checkAssetURL(u *url.URL) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend: unsupported asset scheme %q", u.Scheme)
	}
	if !c.hostAllowed(u) {
		return fmt.Errorf("%w: %s", ErrHostNotAllowed, u.Hostname())
	}
	return nil
}

// checkAssetRedirect applies the asset scheme and host rules to every hop.
func (c *Client) checkAssetRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxAssetRedirects {
		return fmt.Errorf("backend: stopped after %d asset redirects", maxAssetRedirects)
	}
	return c.checkAssetURL(req.URL)
}

func (c *Client) hostAllowed(u *url.URL) bool {
	_, ok := c.allowedHosts[strings.ToLower(u.Hostname())]
	return ok
}
