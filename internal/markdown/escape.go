package markdown

import "strings"

var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// EscapeAngleBrackets replaces < and > with entities everywhere except inside fenced
// code blocks and inline code spans, where the markdown renderer escapes them itself.
func EscapeAngleBrackets(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	lines := strings.SplitAfter(s, "\n")
	inCodeBlock := false
	activeFence := ""

	var out strings.Builder
	out.Grow(len(s) + 16)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "```"):
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, "```")
			out.WriteString(line)
			continue
		case strings.HasPrefix(trimmed, "~~~"):
			inCodeBlock, activeFence = toggleFencedBlock(inCodeBlock, activeFence, "~~~")
			out.WriteString(line)
			continue
		}
		if inCodeBlock {
			out.WriteString(line)
			continue
		}
		escapeOutsideCodeSpans(&out, line)
	}
	return out.String()
}

func toggleFencedBlock(inCodeBlock bool, activeFence string, fence string) (bool, string) {
	if !inCodeBlock {
		return true, fence
	}
	if activeFence == fence {
		return false, ""
	}
	return inCodeBlock, activeFence
}

func escapeOutsideCodeSpans(out *strings.Builder, s string) {
	for i := 0; i < len(s); {
		if s[i] != '`' {
			next := strings.IndexByte(s[i:], '`')
			if next == -1 {
				next = len(s) - i
			}
			out.WriteString(angleEscaper.Replace(s[i : i+next]))
			i += next
			continue
		}

		run := 1
		for i+run < len(s) && s[i+run] == '`' {
			run++
		}
		marker := s[i : i+run]
		closeRel := strings.Index(s[i+run:], marker)
		if closeRel == -1 {
			// Unclosed code span; the backticks are literal text.
			out.WriteString(marker)
			i += run
			continue
		}
		end := i + run + closeRel + run
		out.WriteString(s[i:end])
		i = end
	}
}
