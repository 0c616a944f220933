package domain

// MotionEffectResult is the decoded body of a successful
// /api/generate-motion-effect call. Every field is optional; an empty value
// means the backend did not provide it and nothing is rendered for it.
type MotionEffectResult struct {
	Status          string   `json:"status,omitempty"`
	MotionEffectURL string   `json:"motion_effect_url,omitempty"`
	Analysis        string   `json:"analysis,omitempty"`
	DownloadURL     string   `json:"download_url,omitempty"`
	Category        string   `json:"category,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// ProductInfo describes the scraped product. A nil *ProductInfo on AdResult
// means the block is absent; a non-nil value renders even when every field is
// empty.
type ProductInfo struct {
	Title       string `json:"title,omitempty"`
	Price       string `json:"price,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// AdImage is a single generated creative.
type AdImage struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// AdResult is the decoded body of a successful /api/generate-ad-from-url call.
type AdResult struct {
	Status              string              `json:"status,omitempty"`
	Category            string              `json:"category,omitempty"`
	CategoryDescription string              `json:"category_description,omitempty"`
	ProductInfo         *ProductInfo        `json:"product_info,omitempty"`
	AdSizes             map[string]*AdImage `json:"ad_sizes,omitempty"`
	AdImages            []AdImage           `json:"ad_images,omitempty"`
	Keywords            []string            `json:"keywords,omitempty"`
	SuggestedCaptions   []string            `json:"suggested_captions,omitempty"`
	PrimaryCTA          string              `json:"primary_cta,omitempty"`
}

// HasAdSizes reports whether the backend returned a non-empty ad_sizes object.
// Keys are counted regardless of whether they name a known platform, so an
// object holding only unknown platforms still suppresses the ad_images grid.
func (r *AdResult) HasAdSizes() bool {
	return r != nil && len(r.AdSizes) > 0
}

// PlatformAd pairs a known platform with its generated image.
type PlatformAd struct {
	Spec  PlatformSpec
	Image AdImage
}

// Platforms returns the present known platforms in display order.
func (r *AdResult) Platforms() []PlatformAd {
	if !r.HasAdSizes() {
		return nil
	}
	var out []PlatformAd
	for _, spec := range PlatformSpecs {
		img := r.AdSizes[string(spec.Platform)]
		if img == nil || img.URL == "" {
			continue
		}
		out = append(out, PlatformAd{Spec: spec, Image: *img})
	}
	return out
}

// FallbackImages returns the ad_images grid entries, which only render when
// ad_sizes is absent or empty.
func (r *AdResult) FallbackImages() []AdImage {
	if r == nil || r.HasAdSizes() {
		return nil
	}
	return r.AdImages
}

// ProductTitle returns the product title, or "" when product_info is absent.
func (r *AdResult) ProductTitle() string {
	if r == nil || r.ProductInfo == nil {
		return ""
	}
	return r.ProductInfo.Title
}
