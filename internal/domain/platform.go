package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Platform names a social network an ad is sized for.
type Platform string

const (
	PlatformFacebook Platform = "facebook"
	PlatformTwitter  Platform = "twitter"
	PlatformTikTok   Platform = "tiktok"
)

// PlatformSpec is the fixed target format for a platform.
type PlatformSpec struct {
	Platform Platform
	Label    string
	Ratio    string
	Width    int
	Height   int
}

// PlatformSpecs is ordered: platform blocks always render in this order.
var PlatformSpecs = []PlatformSpec{
	{Platform: PlatformFacebook, Label: "Facebook Feed", Ratio: "1:1", Width: 1080, Height: 1080},
	{Platform: PlatformTwitter, Label: "X / Twitter", Ratio: "16:9", Width: 1200, Height: 675},
	{Platform: PlatformTikTok, Label: "TikTok / Reels", Ratio: "9:16", Width: 1080, Height: 1920},
}

// Caption renders the aspect-ratio/resolution caption, e.g. "1:1 Ratio (1080×1080)".
func (s PlatformSpec) Caption() string {
	return fmt.Sprintf("%s Ratio (%d×%d)", s.Ratio, s.Width, s.Height)
}

// AdFilename derives the download name `<platform>-ad-<slug>.png`, where the
// slug is the product title with whitespace runs replaced by hyphens, or
// "creative" when there is no title.
func AdFilename(p Platform, title string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = "creative"
	}
	return fmt.Sprintf("%s-ad-%s.png", p, slug)
}

// Slugify replaces every run of whitespace with a single hyphen. Leading and
// trailing runs are replaced too; nothing else about the input changes.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
