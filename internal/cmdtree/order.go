package cmdtree

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/webhelp/internal/logfields"
)

// CompareNames orders names with locale-aware collation, falling back to a byte-wise
// comparison so distinct names never compare equal.
func CompareNames(a, b string) int {
	if c := collate.New(language.Und).CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// OrderChildren returns a sorted copy of children with duplicates removed.
// Duplicates share a canonical name; the first one in declaration order is kept and a
// warning is logged when the dropped entry differs from it. The input slice is not modified.
func OrderChildren(children []*Node, logger *slog.Logger) []*Node {
	if logger == nil {
		logger = slog.Default()
	}
	out := make([]*Node, 0, len(children))
	kept := make(map[string]*Node, len(children))
	for _, child := range children {
		if prev, ok := kept[child.Name]; ok {
			if !sameShape(prev, child) {
				logger.Warn("Dropping conflicting duplicate command definition",
					logfields.Node(child.Name),
					slog.Any("kept_aliases", prev.Aliases),
					slog.Any("dropped_aliases", child.Aliases))
			}
			continue
		}
		kept[child.Name] = child
		out = append(out, child)
	}
	slices.SortStableFunc(out, func(a, b *Node) int { return CompareNames(a.Name, b.Name) })
	return out
}

func sameShape(a, b *Node) bool {
	return a.Type == b.Type &&
		a.Description == b.Description &&
		slices.Equal(a.Aliases, b.Aliases) &&
		len(a.Children) == len(b.Children)
}

// ExcludeGroups returns a shallow copy of root without the named top-level children.
func ExcludeGroups(root *Node, names []string) *Node {
	if root == nil || len(names) == 0 {
		return root
	}
	clone := *root
	clone.Children = slices.DeleteFunc(slices.Clone(root.Children), func(n *Node) bool {
		return n != nil && slices.Contains(names, n.Name)
	})
	return &clone
}
