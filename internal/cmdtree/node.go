// Package cmdtree models the command tree of a CLI: groups and commands with their
// aliases, a short description and an opaque source of help text.
package cmdtree

import (
	"strings"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/util/sets"
)

// Type distinguishes groups (nodes with subcommands) from leaf commands.
type Type string

const (
	TypeGroup   Type = "group"
	TypeCommand Type = "command"
)

// HelpContext is handed to a HelpSource when help for a node is requested.
type HelpContext struct {
	// Path holds the node names from the root down to the node, root included.
	Path []string
	// Children are the node's children in page order, after exclusion and deduplication.
	Children []*Node
}

// Command returns the command line that invokes the node, e.g. "zowe zos-jobs list".
func (hc HelpContext) Command() string {
	return strings.Join(hc.Path, " ")
}

// HelpSource produces the help text of a single node.
type HelpSource interface {
	// HelpMarkdown returns the full help of the node as markdown.
	HelpMarkdown(hc HelpContext) (string, error)
	// ChildrenSummary returns pre-formatted summary lines for the node's children:
	// optional heading lines, then one "name | alias  Description" row per child
	// whose description may continue on indented lines.
	ChildrenSummary(hc HelpContext) (string, error)
}

// Node is one command or group of the tree. Nodes are treated as immutable once built.
type Node struct {
	Name        string
	Aliases     []string
	Type        Type
	Description string
	Children    []*Node
	Help        HelpSource
}

// IsGroup reports whether the node is a group.
func (n *Node) IsGroup() bool {
	return n.Type == TypeGroup
}

// SecondaryAliases returns the aliases without the canonical name and without repeats,
// in declaration order.
func (n *Node) SecondaryAliases() []string {
	seen := sets.New(n.Name)
	var out []string
	for _, a := range n.Aliases {
		if a == "" || !seen.AddNew(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Matches reports whether token names the node by name or alias.
func (n *Node) Matches(token string) bool {
	if n.Name == token {
		return true
	}
	for _, a := range n.Aliases {
		if a == token {
			return true
		}
	}
	return false
}

// Find resolves a path of names or aliases below n. It returns the matched nodes,
// starting with n itself, or nil if a token does not resolve.
func (n *Node) Find(path ...string) []*Node {
	chain := []*Node{n}
	current := n
	for _, token := range path {
		var next *Node
		for _, child := range current.Children {
			if child.Matches(token) {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		chain = append(chain, next)
		current = next
	}
	return chain
}

// Validate checks the tree below n. Names must be usable as page file name segments.
func Validate(root *Node) error {
	if root == nil {
		return errors.TreeError("command tree has no root").Build()
	}
	return validate(root, nil)
}

func validate(n *Node, parent []string) error {
	path := append(append([]string(nil), parent...), n.Name)
	where := strings.Join(path, " ")
	if strings.TrimSpace(n.Name) == "" {
		return errors.TreeError("command node without a name").WithContext("parent", strings.Join(parent, " ")).Build()
	}
	if strings.ContainsAny(n.Name, " \t\r\n/\\|") {
		return errors.TreeError("command name contains whitespace, a path separator or '|'").
			WithContext("node", where).
			Build()
	}
	switch n.Type {
	case TypeGroup:
	case TypeCommand:
		if len(n.Children) > 0 {
			return errors.TreeError("command node has children; declare it as a group").
				WithContext("node", where).
				Build()
		}
	default:
		return errors.TreeError("unknown node type " + string(n.Type)).WithContext("node", where).Build()
	}
	if n.Help == nil {
		return errors.TreeError("command node has no help source").WithContext("node", where).Build()
	}
	for _, child := range n.Children {
		if child == nil {
			return errors.TreeError("nil child node").WithContext("node", where).Build()
		}
		if err := validate(child, path); err != nil {
			return err
		}
	}
	return nil
}
