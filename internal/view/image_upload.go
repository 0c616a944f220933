package view

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"adstudio/internal/domain"
	"adstudio/internal/workflow"
)

// ImageUploadWorkflow renders the image-upload form for st.
func ImageUploadWorkflow(st workflow.UploadState, maxUploadMB int) g.Node {
	return Div(
		Class("max-w-5xl mx-auto"),
		g.Attr("data-workflow-form", string(domain.WorkflowImageUpload)),
		Div(
			Class("premium-card p-6 md:p-8"),
			H2(Class("text-3xl md:text-4xl font-semibold mb-2 tracking-tight"), g.Text("Motion Effect Generator")),
			P(Class("text-gray-600 mb-8 text-sm"), g.Text("Upload an image and transform it into a dynamic ad creative")),
			Div(
				Class("space-y-6"),
				Div(
					Span(Class("block text-sm font-semibold text-gray-700 mb-3"), g.Text("Upload Image")),
					g.Iff(st.PreviewDataURI == "", func() g.Node { return filePicker(maxUploadMB) }),
					g.Iff(st.PreviewDataURI != "", func() g.Node { return imagePreview(st) }),
				),
				g.If(st.PreviewDataURI != "", generateMotionButton(st.Loading)),
				g.If(st.Loading && st.Result == nil,
					Div(Class("space-y-4"), g.Attr("data-block", "skeleton"), SkeletonImage("400px"), SkeletonText(3)),
				),
				ErrorAlert(st.Error),
				g.Iff(st.Result != nil, func() g.Node { return MotionEffectResult(st.Result) }),
			),
		),
	)
}

func filePicker(maxUploadMB int) g.Node {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return g.El("form",
		g.Attr("method", "post"),
		g.Attr("action", "/image/file"),
		g.Attr("enctype", "multipart/form-data"),
		Class("border-2 border-dashed border-gray-300 rounded-xl p-12 text-center hover:border-blue-400 transition-colors"),
		Input(
			Type("file"),
			Name("image"),
			ID("image-upload"),
			g.Attr("accept", "image/*"),
			Class("hidden"),
			g.Attr("onchange", "this.form.submit()"),
		),
		Label(
			g.Attr("for", "image-upload"),
			Class("cursor-pointer block"),
			Icon("lucide--cloud-upload size-16 mx-auto text-gray-400 mb-4", ""),
			P(Class("text-gray-600 font-medium"), g.Text("Click to upload or drag and drop")),
			P(Class("text-sm text-gray-400 mt-2"), g.Text(fmt.Sprintf("PNG, JPG, GIF up to %dMB", maxUploadMB))),
		),
		g.El("noscript",
			Button(Type("submit"), Class("mt-4 btn-secondary px-4 py-2 text-sm"), g.Text("Upload")),
		),
	)
}

func imagePreview(st workflow.UploadState) g.Node {
	return Div(
		Class("relative"),
		Img(
			Src(st.PreviewDataURI),
			Alt("Preview"),
			Class("w-full h-auto rounded-xl shadow-lg max-h-96 object-contain bg-gray-50"),
			g.Attr("data-block", "preview"),
		),
		postForm("/image/reset",
			Button(
				Type("submit"),
				Class("absolute top-4 right-4 bg-white rounded-full p-2 shadow-lg hover:bg-gray-50 transition-colors"),
				g.Attr("aria-label", "Remove image"),
				g.Attr("data-action", "reset"),
				Icon("lucide--x size-5 text-gray-600", ""),
			),
		),
	)
}

func generateMotionButton(loading bool) g.Node {
	label := g.Group([]g.Node{Icon("lucide--zap size-4", ""), g.Text("Generate Motion Effect")})
	if loading {
		label = g.Group([]g.Node{spinner(), Span(Class("text-sm"), g.Text("Generating Motion Effect..."))})
	}
	return postForm("/image/generate",
		Button(
			Type("submit"),
			Class("w-full flex items-center justify-center gap-2.5 bg-gray-900 text-white font-medium py-3 rounded-lg disabled:opacity-60"),
			g.Attr("data-action", "generate"),
			g.If(loading, g.Attr("disabled")),
			label,
		),
	)
}

// MotionEffectResult renders each present field of res; absent fields render
// nothing.
func MotionEffectResult(res *domain.MotionEffectResult) g.Node {
	if res == nil {
		return nil
	}
	return Div(
		Class("space-y-4"),
		g.Attr("data-block", "result"),
		H3(Class("text-2xl font-bold"), g.Text("Generated Result")),
		g.If(res.MotionEffectURL != "",
			Div(
				Class("rounded-xl overflow-hidden shadow-lg"),
				g.Attr("data-block", "motion-effect"),
				Img(Src(res.MotionEffectURL), Alt("Motion Effect Result"), Class("w-full h-auto")),
			),
		),
		g.If(res.Category != "",
			P(
				Class("text-xs font-medium text-gray-500 uppercase tracking-wide"),
				g.Attr("data-block", "category"),
				g.Text("Style: "+res.Category),
			),
		),
		g.If(res.Analysis != "",
			Div(
				Class("bg-blue-50 border border-blue-200 rounded-lg p-4"),
				g.Attr("data-block", "analysis"),
				H4(Class("font-semibold text-blue-900 mb-2"), g.Text("AI Analysis")),
				P(Class("text-blue-800 text-sm"), g.Text(res.Analysis)),
			),
		),
		tagList("keywords", "data-keyword", res.Keywords),
		g.If(res.DownloadURL != "",
			A(
				Href(res.DownloadURL),
				g.Attr("download", ""),
				Class("inline-flex items-center gap-2 bg-green-600 text-white font-semibold py-3 px-6 rounded-lg hover:bg-green-700 transition-colors"),
				g.Attr("data-block", "download"),
				Icon("lucide--download size-5", ""),
				g.Text("Download Result"),
			),
		),
	)
}
