package postprocess

import (
	"html"
	"strings"
)

const crumbSeparator = " → "

// breadcrumb prepends an <h2> linking every ancestor from the root down to the page itself.
func breadcrumb(page *Page) error {
	page.Body = Breadcrumb(page.Path) + "\n" + page.Body
	return nil
}

// Breadcrumb renders the breadcrumb heading for a node path.
func Breadcrumb(path []string) string {
	links := make([]string, len(path))
	for i, name := range path {
		href := strings.Join(path[:i+1], "_") + ".html"
		links[i] = `<a href="` + html.EscapeString(href) + `">` + html.EscapeString(name) + `</a>`
	}
	return "<h2>" + strings.Join(links, crumbSeparator) + "</h2>"
}
