package view

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func convertIconName(iconClass string) string {
	parts := strings.Fields(iconClass)
	if len(parts) == 0 {
		return ""
	}
	return strings.Replace(parts[0], "--", ":", 1)
}

func extractSizeClasses(iconClass string) string {
	parts := strings.Fields(iconClass)
	if len(parts) > 1 {
		return strings.Join(parts[1:], " ")
	}
	return ""
}

// Icon renders an iconify placeholder such as Icon("lucide--link size-5", "").
func Icon(iconClass, ariaLabel string) g.Node {
	iconName := convertIconName(iconClass)
	sizeClasses := extractSizeClasses(iconClass)
	classes := "iconify inline-block"
	if sizeClasses != "" {
		classes = fmt.Sprintf("iconify inline-block %s", sizeClasses)
	}

	if ariaLabel != "" {
		return Span(
			Class(classes),
			g.Attr("data-icon", iconName),
			g.Attr("role", "img"),
			g.Attr("aria-label", ariaLabel),
		)
	}

	return Span(
		Class(classes),
		g.Attr("data-icon", iconName),
		g.Attr("aria-hidden", "true"),
	)
}

// ErrorAlert shows the single inline error of a form.
func ErrorAlert(message string) g.Node {
	if message == "" {
		return nil
	}
	return Div(
		Class("bg-red-50 border border-red-200 text-red-700 px-4 py-3 rounded-lg text-sm"),
		g.Attr("role", "alert"),
		g.Attr("data-block", "error"),
		g.Text(message),
	)
}

// postForm is a form that posts to action. Its submit controls redirect back
// to the page.
func postForm(action string, children ...g.Node) g.Node {
	return g.El("form",
		g.Attr("method", "post"),
		g.Attr("action", action),
		g.Group(children),
	)
}

func spinner() g.Node {
	return Icon("lucide--loader-circle size-4 animate-spin", "")
}

func tagList(block, item string, values []string) g.Node {
	if len(values) == 0 {
		return nil
	}
	return Div(
		Class("flex flex-wrap gap-2"),
		g.Attr("data-block", block),
		g.Group(g.Map(values, func(v string) g.Node {
			return Span(
				Class("bg-white border border-gray-200 px-4 py-2 rounded-full text-sm text-gray-700 font-medium"),
				g.Attr(item, ""),
				g.Text(v),
			)
		})),
	)
}
