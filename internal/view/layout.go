// Package view renders the studio pages with gomponents. Every renderer is a
// pure function of the state it is given.
package view

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
	// RefreshSeconds > 0 makes the page reload itself, which is how a pending
	// request's settlement becomes visible without client scripts.
	RefreshSeconds int
}

const shimmerCSS = `.skeleton-shimmer{background:linear-gradient(90deg,#f3f4f6 25%,#e5e7eb 50%,#f3f4f6 75%);background-size:200% 100%;animation:shimmer 1.5s infinite}
@keyframes shimmer{0%{background-position:200% 0}100%{background-position:-200% 0}}
.premium-card{background:#fff;border:1px solid #e5e7eb;border-radius:1rem;box-shadow:0 1px 3px rgba(0,0,0,.04)}`

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Ad Creative Studio"
	}

	if config.Description == "" {
		config.Description = "Turn product pages and images into ad creatives for every platform."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				g.If(config.RefreshSeconds > 0,
					Meta(g.Attr("http-equiv", "refresh"), Content(strconv.Itoa(config.RefreshSeconds))),
				),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Script(Src("https://cdn.tailwindcss.com")),
				Script(Src("https://code.iconify.design/1/1.0.7/iconify.min.js")),
				g.El("style", g.Raw(shimmerCSS)),
			),
			Body(
				Class("min-h-screen bg-gray-50 text-gray-900"),
				g.Group(content),
			),
		),
	})
}
