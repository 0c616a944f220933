package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"adstudio/internal/domain"
	"adstudio/internal/workflow"
)

// IndexData is everything the root page needs.
type IndexData struct {
	Active         domain.WorkflowKind
	Upload         *workflow.UploadState
	Product        *workflow.URLState
	MaxUploadMB    int
	RefreshSeconds int
	// Notice is a page-level message that belongs to no form, e.g. a rate
	// limit rejection.
	Notice string
}

func (d IndexData) loading() bool {
	return (d.Upload != nil && d.Upload.Loading) || (d.Product != nil && d.Product.Loading)
}

// Index renders the root shell: the selector when no workflow is active,
// otherwise the back link and the active form.
func Index(d IndexData) g.Node {
	refresh := 0
	if d.loading() {
		refresh = d.RefreshSeconds
		if refresh <= 0 {
			refresh = 2
		}
	}

	var body g.Node
	switch {
	case d.Active == domain.WorkflowImageUpload && d.Upload != nil:
		body = Div(BackLink(), ImageUploadWorkflow(*d.Upload, d.MaxUploadMB))
	case d.Active == domain.WorkflowProductURL && d.Product != nil:
		body = Div(BackLink(), ProductURLWorkflow(*d.Product))
	default:
		body = WorkflowSelector()
	}

	return Layout(
		PageConfig{RefreshSeconds: refresh},
		AppBar(),
		Main(
			Class("container mx-auto px-4 py-8 md:py-12"),
			g.If(d.Notice != "", Div(Class("max-w-5xl mx-auto mb-6"), ErrorAlert(d.Notice))),
			body,
		),
	)
}

func AppBar() g.Node {
	return Div(
		Class("border-b border-gray-200 bg-white"),
		Div(
			Class("container mx-auto px-4 py-4 flex items-center gap-3"),
			Span(
				Class("w-9 h-9 bg-gray-900 rounded-lg flex items-center justify-center text-white"),
				Icon("lucide--sparkles size-5", ""),
			),
			Span(Class("font-semibold text-lg tracking-tight"), g.Text("Ad Creative Studio")),
		),
	)
}

// BackLink posts to /workflows/back. Leaving discards the form without asking.
func BackLink() g.Node {
	return postForm("/workflows/back",
		Button(
			Type("submit"),
			Class("mb-6 flex items-center gap-2 text-gray-600 hover:text-gray-900 transition-colors"),
			g.Attr("data-action", "back"),
			Icon("lucide--chevron-left size-5", ""),
			g.Text("Back to Workflows"),
		),
	)
}

type workflowCard struct {
	Kind        domain.WorkflowKind
	Title       string
	Description string
	Icon        string
}

var workflowCards = []workflowCard{
	{
		Kind:        domain.WorkflowImageUpload,
		Title:       "Image Upload → Motion Effect",
		Description: "Upload an image and generate stunning motion effects for your ad creatives",
		Icon:        "lucide--image size-6",
	},
	{
		Kind:        domain.WorkflowProductURL,
		Title:       "Product URL → AI Ad Image",
		Description: "Enter a product URL and let AI generate professional ad creatives automatically",
		Icon:        "lucide--link size-6",
	},
}

// WorkflowSelector presents the workflows as cards; each card posts its kind.
func WorkflowSelector() g.Node {
	return Div(
		Class("max-w-6xl mx-auto"),
		Div(
			Class("text-center mb-16"),
			H2(Class("text-4xl md:text-5xl font-semibold mb-4 tracking-tight"), g.Text("Choose Your Workflow")),
			P(
				Class("text-lg text-gray-600 max-w-2xl mx-auto"),
				g.Text("Transform your ideas into premium ad creatives with AI-powered tools"),
			),
		),
		Div(
			Class("grid grid-cols-1 md:grid-cols-2 gap-6"),
			g.Group(g.Map(workflowCards, func(c workflowCard) g.Node {
				return postForm("/workflows/"+string(c.Kind),
					Button(
						Type("submit"),
						Class("premium-card p-8 w-full text-left cursor-pointer group"),
						g.Attr("data-workflow", string(c.Kind)),
						Div(
							Class("w-12 h-12 bg-gray-900 rounded-lg flex items-center justify-center text-white mb-6"),
							Icon(c.Icon, ""),
						),
						H3(Class("text-xl font-semibold mb-2 tracking-tight"), g.Text(c.Title)),
						P(Class("text-gray-600 mb-6 leading-relaxed text-sm"), g.Text(c.Description)),
						Div(
							Class("flex items-center font-medium text-sm"),
							g.Text("Get Started"),
							Icon("lucide--arrow-right size-4 ml-2", ""),
						),
					),
				)
			})),
		),
	)
}
