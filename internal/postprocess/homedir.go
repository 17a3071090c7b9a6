package postprocess

import (
	"html"
	"regexp"
	"strings"
)

const userPlaceholder = "&lt;user&gt;"

type homeDirMask struct {
	pattern     *regexp.Regexp
	replacement string
}

// newHomeDirMask returns nil when home is empty or a filesystem root.
func newHomeDirMask(home string) *homeDirMask {
	home = strings.TrimRight(home, `/\`)
	segments := strings.FieldsFunc(home, isPathSeparator)
	if len(segments) == 0 || (len(segments) == 1 && strings.HasSuffix(segments[0], ":")) {
		return nil
	}

	var expr strings.Builder
	if isPathSeparator(rune(home[0])) {
		expr.WriteString(`[\\/]`)
	}
	for i, seg := range segments {
		if i > 0 {
			expr.WriteString(`[\\/]`)
		}
		quoted := regexp.QuoteMeta(seg)
		if escaped := html.EscapeString(seg); escaped != seg {
			quoted = "(?:" + quoted + "|" + regexp.QuoteMeta(escaped) + ")"
		}
		expr.WriteString(quoted)
	}

	parent := home[:strings.LastIndexAny(home, `/\`)+1]
	return &homeDirMask{
		pattern:     regexp.MustCompile(expr.String()),
		replacement: html.EscapeString(parent) + userPlaceholder,
	}
}

func isPathSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

func (m *homeDirMask) apply(page *Page) error {
	page.Body = m.Replace(page.Body)
	return nil
}

// Replace masks every literal occurrence of the home directory in s, including ones
// followed by further name characters such as "/home/alice.bak".
func (m *homeDirMask) Replace(s string) string {
	return m.pattern.ReplaceAllLiteralString(s, m.replacement)
}
