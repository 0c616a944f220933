package view

import (
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"adstudio/internal/domain"
	"adstudio/internal/workflow"
)

// DownloadAllPath serves the archive of every present platform image.
const DownloadAllPath = "/product/download-all.zip"

// ProductURLWorkflow renders the product-URL form for st.
func ProductURLWorkflow(st workflow.URLState) g.Node {
	inputClass := "w-full pl-12 pr-4 py-3 border rounded-lg focus:ring-2 outline-none text-gray-900 text-sm "
	if st.URLValidationMessage != "" {
		inputClass += "border-red-300 focus:border-red-500 focus:ring-red-200"
	} else {
		inputClass += "border-gray-300 focus:border-gray-900 focus:ring-gray-200"
	}

	return Div(
		Class("max-w-5xl mx-auto"),
		g.Attr("data-workflow-form", string(domain.WorkflowProductURL)),
		Div(
			Class("premium-card p-6 md:p-8"),
			H2(Class("text-3xl md:text-4xl font-semibold mb-2 tracking-tight"), g.Text("AI Ad Image Generator")),
			P(Class("text-gray-600 mb-8 text-sm"), g.Text("Enter a product URL and let AI create professional ad creatives automatically")),
			Div(
				Class("space-y-6"),
				postForm("/product/generate",
					ID("product-form"),
					g.Attr("novalidate", ""),
					Class("space-y-6"),
					Div(
						Label(
							g.Attr("for", "product-url"),
							Class("block text-sm font-semibold text-gray-700 mb-3"),
							g.Text("Product URL"),
						),
						Div(
							Class("flex gap-3"),
							Div(
								Class("flex-1 relative"),
								Div(
									Class("absolute inset-y-0 left-0 pl-4 flex items-center pointer-events-none"),
									Icon("lucide--link size-5 text-gray-400", ""),
								),
								Input(
									Type("url"),
									ID("product-url"),
									Name("product_url"),
									Value(st.ProductURL),
									Placeholder("https://example.com/product"),
									Class(inputClass),
								),
							),
							g.If(st.ProductURL != "",
								Button(
									Type("submit"),
									g.Attr("form", "product-reset"),
									Class("px-4 py-2 text-gray-600 hover:text-gray-900 transition-colors"),
									g.Attr("aria-label", "Clear"),
									g.Attr("data-action", "reset"),
									Icon("lucide--x size-5", ""),
								),
							),
						),
						P(Class("text-sm text-gray-500 mt-2"), g.Text("Enter any product page URL from e-commerce sites")),
						g.If(st.URLValidationMessage != "",
							P(
								Class("text-sm text-red-600 mt-2"),
								g.Attr("data-block", "url-validation"),
								g.Text(st.URLValidationMessage),
							),
						),
					),
					generateAdButton(st),
					// Not the default button: Enter in the input still generates.
					Button(
						Type("submit"),
						g.Attr("formaction", "/product/url"),
						Class("text-sm text-gray-600 underline hover:text-gray-900"),
						g.Attr("data-action", "check"),
						g.Text("Check URL"),
					),
				),
				g.El("form", ID("product-reset"), g.Attr("method", "post"), g.Attr("action", "/product/reset")),
				ErrorAlert(st.Error),
				g.If(st.Loading && st.Result == nil,
					Div(
						Class("space-y-6"),
						g.Attr("data-block", "skeleton"),
						SkeletonCategory(),
						Div(Class("space-y-4"), SkeletonText(2), SkeletonAdPreview(), SkeletonAdPreview(), SkeletonAdPreview()),
					),
				),
				g.Iff(st.Result != nil, func() g.Node { return AdCreativeResult(st.Result, DownloadAllPath) }),
			),
		),
	)
}

func generateAdButton(st workflow.URLState) g.Node {
	label := g.Group([]g.Node{Icon("lucide--sparkles size-4", ""), g.Text("Generate Ad Creative")})
	if st.Loading {
		stage := st.LoadingStage
		if strings.TrimSpace(stage) == "" {
			stage = "Processing..."
		}
		label = g.Group([]g.Node{spinner(), Span(Class("text-sm"), g.Attr("data-block", "loading-stage"), g.Text(stage))})
	}
	return Button(
		Type("submit"),
		Class("w-full flex items-center justify-center gap-2.5 bg-gray-900 text-white font-medium py-3 rounded-lg disabled:opacity-60"),
		g.Attr("data-action", "generate"),
		g.If(st.Loading, g.Attr("disabled")),
		label,
	)
}
