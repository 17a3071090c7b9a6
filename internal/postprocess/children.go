package postprocess

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/webhelp/internal/markdown"
)

// summaryEntry matches "name | alias  Description" rows. Names are any run of characters
// other than whitespace and '|', the same set cmdtree.Validate accepts. The name list is
// separated from the description by at least two spaces; anything else is continuation text.
var summaryEntry = regexp.MustCompile(`^\s*([^\s|]+(?:\s\|\s[^\s|]+)*)\s{2,}(\S.*)$`)

// childrenTable appends the linked list of a group's children under an <h4> heading.
func childrenTable(renderer *markdown.Renderer) Transform {
	return func(page *Page) error {
		if !page.Group {
			return nil
		}
		list := LinkSummary(page.FullPath(), page.ChildrenSummary)
		if list == "" {
			return nil
		}
		rendered, err := renderer.Convert(list)
		if err != nil {
			return fmt.Errorf("render children summary: %w", err)
		}
		heading := "Commands"
		if page.IsRoot() {
			heading = "Groups"
		}
		page.Body = strings.TrimRight(page.Body, "\n") + "\n<h4>" + heading + "</h4>\n" + rendered
		return nil
	}
}

// LinkSummary turns summary lines into a markdown list whose entries link to
// "<fullPath>_<name>.html". Lines before the first entry are dropped, later lines that
// are not entries are appended to the previous entry. It returns "" when no entry matched.
func LinkSummary(fullPath, summary string) string {
	var b strings.Builder
	entries := 0
	for _, line := range strings.Split(strings.ReplaceAll(summary, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := summaryEntry.FindStringSubmatch(line)
		if m == nil {
			if entries > 0 {
				b.WriteString(" " + escapeText(strings.TrimSpace(line)))
			}
			continue
		}
		names := m[1]
		first := strings.Fields(names)[0]
		fmt.Fprintf(&b, "\n* <a href=\"%s_%s.html\">%s</a> - %s",
			html.EscapeString(fullPath), html.EscapeString(first), html.EscapeString(names), escapeText(m[2]))
		entries++
	}
	if entries == 0 {
		return ""
	}
	return strings.TrimPrefix(b.String(), "\n") + "\n"
}

func escapeText(s string) string {
	return markdown.EscapeAngleBrackets(s)
}
