package helptext

import (
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
)

const (
	summaryWidth  = 78
	summaryIndent = "  "
	noDescription = "(no description)"
)

// SummaryTable formats children as aligned "name | alias  Description" rows under a
// heading line. Descriptions are wrapped with continuation lines indented to the
// description column.
func SummaryTable(heading string, children []*cmdtree.Node) string {
	labels := make([]string, len(children))
	width := 0
	for i, child := range children {
		labels[i] = strings.Join(append([]string{child.Name}, child.SecondaryAliases()...), " | ")
		width = max(width, utf8.RuneCountInString(labels[i]))
	}

	var b strings.Builder
	b.WriteString(heading + "\n\n")
	column := len(summaryIndent) + width + 2
	for i, child := range children {
		desc := strings.Join(strings.Fields(child.Description), " ")
		if desc == "" {
			desc = noDescription
		}
		lines := wrap(desc, max(summaryWidth-column, 20))
		b.WriteString(summaryIndent + labels[i])
		b.WriteString(strings.Repeat(" ", column-len(summaryIndent)-utf8.RuneCountInString(labels[i])))
		b.WriteString(lines[0] + "\n")
		for _, line := range lines[1:] {
			b.WriteString(strings.Repeat(" ", column) + line + "\n")
		}
	}
	return b.String()
}

func wrap(text string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && utf8.RuneCountInString(current.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 || len(lines) == 0 {
		lines = append(lines, current.String())
	}
	return lines
}
