package view

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"adstudio/internal/domain"
)

// AdCreativeResult renders an ad generation result. Each block appears only
// when its field is present. Platform blocks follow domain.PlatformSpecs; the
// ad_images grid is the fallback when ad_sizes is absent or empty.
func AdCreativeResult(res *domain.AdResult, downloadAllHref string) g.Node {
	if res == nil {
		return nil
	}
	title := res.ProductTitle()

	return Div(
		Class("space-y-6"),
		g.Attr("data-block", "result"),
		H3(Class("text-2xl font-bold"), g.Text("Generated Ad Creative")),
		g.If(res.Category != "", categoryBlock(res.Category, res.CategoryDescription)),
		g.Iff(res.ProductInfo != nil, func() g.Node { return productInfoBlock(res.ProductInfo) }),
		g.If(res.HasAdSizes(), platformBlocks(res.Platforms(), title, downloadAllHref)),
		fallbackGrid(res.FallbackImages()),
		g.If(len(res.Keywords) > 0,
			Div(
				Class("bg-gray-50 rounded-xl p-6"),
				H4(Class("font-semibold mb-3"), g.Text("Generated Keywords")),
				tagList("keywords", "data-keyword", res.Keywords),
			),
		),
		g.If(len(res.SuggestedCaptions) > 0,
			Div(
				Class("bg-gray-50 rounded-xl p-6"),
				g.Attr("data-block", "captions"),
				H4(Class("font-semibold mb-3"), g.Text("Suggested Captions")),
				Ul(
					Class("space-y-2 text-sm text-gray-700 list-disc pl-5"),
					g.Group(g.Map(res.SuggestedCaptions, func(c string) g.Node {
						return Li(g.Attr("data-caption", ""), g.Text(c))
					})),
				),
			),
		),
		g.If(res.PrimaryCTA != "",
			Div(
				g.Attr("data-block", "cta"),
				Span(Class("text-xs font-medium text-gray-500 uppercase tracking-wide mr-2"), g.Text("Call to action")),
				Span(Class("inline-block bg-gray-900 text-white text-sm font-semibold px-4 py-2 rounded-lg"), g.Text(res.PrimaryCTA)),
			),
		),
	)
}

var monogramCaser = cases.Upper(language.Und)

// monogram is the first letter of the category, upper-cased.
func monogram(category string) string {
	r, size := utf8.DecodeRuneInString(category)
	if r == utf8.RuneError && size <= 1 {
		return ""
	}
	return monogramCaser.String(category[:size])
}

func categoryBlock(category, description string) g.Node {
	if description == "" {
		description = "AI-analyzed visual style"
	}
	return Div(
		Class("bg-gray-50 border border-gray-200 rounded-lg p-6"),
		g.Attr("data-block", "category"),
		Div(
			Class("flex items-center gap-4"),
			Div(
				Class("w-12 h-12 bg-gray-900 rounded-lg flex items-center justify-center text-white font-semibold text-lg"),
				g.Text(monogram(category)),
			),
			Div(
				P(Class("text-xs font-medium text-gray-500 mb-1 uppercase tracking-wide"), g.Text("Detected Style Category")),
				H4(Class("text-xl font-semibold tracking-tight"), g.Text(category)),
				P(Class("text-sm text-gray-600 mt-1"), g.Text(description)),
			),
		),
	)
}

func productInfoBlock(info *domain.ProductInfo) g.Node {
	field := func(name, label, value string) g.Node {
		if value == "" {
			return nil
		}
		return Div(
			g.Attr("data-field", name),
			Span(Class("font-medium text-gray-500 text-xs uppercase tracking-wide"), g.Text(label)),
			P(Class("mt-1.5 font-medium"), g.Text(value)),
		)
	}
	return Div(
		Class("bg-gray-50 border border-gray-200 rounded-lg p-6"),
		g.Attr("data-block", "product-info"),
		H4(Class("font-semibold mb-4 text-sm"), g.Text("Product Information")),
		Div(
			Class("grid grid-cols-1 md:grid-cols-2 gap-4 text-sm"),
			field("title", "Title", info.Title),
			field("price", "Price", info.Price),
		),
		g.If(info.Description != "",
			P(Class("mt-4 text-sm text-gray-600"), g.Attr("data-field", "description"), g.Text(info.Description)),
		),
		g.If(info.ImageURL != "",
			Img(Src(info.ImageURL), Alt("Product"), Class("mt-4 h-24 w-24 object-cover rounded-lg"), g.Attr("data-field", "image")),
		),
	)
}

var platformMaxHeight = map[domain.Platform]string{
	domain.PlatformFacebook: "400px",
	domain.PlatformTwitter:  "300px",
	domain.PlatformTikTok:   "500px",
}

func platformBlocks(ads []domain.PlatformAd, title, downloadAllHref string) g.Node {
	blocks := make([]g.Node, 0, len(ads))
	for _, ad := range ads {
		blocks = append(blocks, platformBlock(ad, title))
	}
	return Div(
		Class("space-y-6"),
		g.Attr("data-block", "ad-sizes"),
		Div(
			H4(Class("font-semibold mb-2"), g.Text("Ad Creatives by Platform")),
			P(Class("text-sm text-gray-600"), g.Text("Generated in multiple sizes for different social media platforms")),
		),
		g.Group(blocks),
		g.If(len(ads) > 0 && downloadAllHref != "",
			Div(
				Class("pt-6 border-t border-gray-200"),
				A(
					Href(downloadAllHref),
					g.Attr("download", ""),
					Class("w-full bg-gray-900 text-white font-medium py-3 rounded-lg flex items-center justify-center gap-2"),
					g.Attr("data-action", "download-all"),
					Icon("lucide--download size-5", ""),
					g.Text("Download All Ad Sizes"),
				),
			),
		),
	)
}

func platformBlock(ad domain.PlatformAd, title string) g.Node {
	return Div(
		Class("space-y-3"),
		g.Attr("data-platform", string(ad.Spec.Platform)),
		Div(
			Class("flex items-center justify-between"),
			Div(
				H5(Class("font-semibold text-sm"), g.Text(ad.Spec.Label)),
				P(Class("text-xs text-gray-500 mt-0.5"), g.Text(ad.Spec.Caption())),
			),
			A(
				Href(ad.Image.URL),
				g.Attr("download", domain.AdFilename(ad.Spec.Platform, title)),
				Class("border border-gray-300 rounded-lg px-4 py-2 text-sm"),
				g.Text("Download"),
			),
		),
		Div(
			Class("bg-gray-100 rounded-lg p-4 flex justify-center"),
			Img(
				Src(ad.Image.URL),
				Alt(fmt.Sprintf("%s Ad", ad.Spec.Label)),
				Class("max-w-full h-auto rounded-lg"),
				g.Attr("style", "max-height: "+platformMaxHeight[ad.Spec.Platform]),
			),
		),
	)
}

func fallbackGrid(images []domain.AdImage) g.Node {
	if len(images) == 0 {
		return nil
	}
	items := make([]g.Node, 0, len(images))
	for i, img := range images {
		items = append(items, Div(
			Class("rounded-xl overflow-hidden shadow-lg"),
			g.Attr("data-ad-image", fmt.Sprint(i)),
			Img(Src(img.URL), Alt(fmt.Sprintf("Ad Creative %d", i+1)), Class("w-full h-auto")),
			g.If(img.Description != "",
				Div(Class("bg-white p-4 border-t"), P(Class("text-sm text-gray-600"), g.Text(img.Description))),
			),
		))
	}
	return Div(
		Class("space-y-4"),
		g.Attr("data-block", "ad-images"),
		H4(Class("font-semibold"), g.Text("Ad Creatives")),
		Div(Class("grid grid-cols-1 md:grid-cols-2 gap-4"), g.Group(items)),
	)
}
