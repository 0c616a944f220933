package view

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Placeholders shown while a request is pending and no result exists.

func SkeletonImage(height string) g.Node {
	if height == "" {
		height = "400px"
	}
	return Div(Class("skeleton-shimmer rounded-xl w-full"), g.Attr("style", "height: "+height))
}

func SkeletonText(lines int) g.Node {
	if lines <= 0 {
		lines = 3
	}
	rows := make([]g.Node, 0, lines)
	for i := 0; i < lines; i++ {
		width := "w-full"
		if i == lines-1 {
			width = "w-3/4"
		}
		rows = append(rows, Div(Class("skeleton-shimmer h-4 rounded "+width)))
	}
	return Div(Class("space-y-2"), g.Group(rows))
}

func SkeletonAdPreview() g.Node {
	return Div(
		Class("space-y-3"),
		Div(
			Class("flex items-center justify-between"),
			Div(
				Class("space-y-2"),
				Div(Class("skeleton-shimmer h-5 w-32 rounded")),
				Div(Class("skeleton-shimmer h-4 w-24 rounded")),
			),
			Div(Class("skeleton-shimmer h-9 w-24 rounded-lg")),
		),
		Div(
			Class("bg-gray-100 rounded-xl p-4 flex justify-center"),
			Div(Class("skeleton-shimmer h-64 w-64 rounded-lg")),
		),
	)
}

func SkeletonCategory() g.Node {
	return Div(
		Class("bg-gray-50 border border-gray-200 rounded-xl p-6"),
		Div(
			Class("flex items-center gap-4"),
			Div(Class("skeleton-shimmer w-16 h-16 rounded-xl")),
			Div(
				Class("flex-1 space-y-2"),
				Div(Class("skeleton-shimmer h-4 w-32 rounded")),
				Div(Class("skeleton-shimmer h-6 w-48 rounded")),
				Div(Class("skeleton-shimmer h-3 w-40 rounded")),
			),
		),
	)
}
