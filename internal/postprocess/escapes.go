package postprocess

import (
	"regexp"
	"strings"
)

var (
	anchorPattern    = regexp.MustCompile(`(?s)<a\b([^>]*)>(.*?)</a>`)
	encodedBackslash = regexp.MustCompile(`(?i)%5C`)
)

// cleanLinkEscapes removes escaping artifacts inside anchors: encoded backslashes in
// attributes and backslashes placed before dots in the link text.
func cleanLinkEscapes(page *Page) error {
	page.Body = CleanLinkEscapes(page.Body)
	return nil
}

// CleanLinkEscapes applies the anchor cleanup to an HTML fragment.
func CleanLinkEscapes(s string) string {
	return anchorPattern.ReplaceAllStringFunc(s, func(anchor string) string {
		m := anchorPattern.FindStringSubmatch(anchor)
		attrs := encodedBackslash.ReplaceAllLiteralString(m[1], "")
		text := strings.ReplaceAll(m[2], `\.`, `.`)
		return "<a" + attrs + ">" + text + "</a>"
	})
}
