package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Path  []string `arg:"" optional:"" help:"Command path below the root, names or aliases (e.g. zos-jobs ls)"`
	Raw   bool     `help:"Print markdown instead of rendering it"`
	Style string   `default:"auto" enum:"auto,dark,light,notty,ascii" help:"Glamour style used for rendering"`
	Width int      `default:"100" help:"Word wrap width"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	tree, err := loadTree(cfg)
	if err != nil {
		return err
	}
	md, err := HelpFor(tree, cfg.RootDescription, s.Path)
	if err != nil {
		return err
	}
	if !s.Raw {
		if md, err = renderTerminal(md, s.Style, s.Width); err != nil {
			return errors.WrapError(err, errors.CategoryRender, "failed to render help for the terminal").Build()
		}
	}
	_, err = fmt.Fprint(g.stdout(), md)
	return err
}

// HelpFor returns the markdown help of the node at path. The root node shows its
// description followed by the summary of its children.
func HelpFor(tree *cmdtree.Node, rootDescription string, path []string) (string, error) {
	chain := tree.Find(path...)
	if chain == nil {
		return "", errors.NotFoundError("no such command: " + strings.Join(append([]string{tree.Name}, path...), " ")).Build()
	}
	node := chain[len(chain)-1]
	names := make([]string, len(chain))
	for i, n := range chain {
		names[i] = n.Name
	}
	hc := cmdtree.HelpContext{Path: names, Children: cmdtree.OrderChildren(node.Children, nil)}

	if len(chain) > 1 {
		return node.Help.HelpMarkdown(hc)
	}
	description := rootDescription
	if description == "" {
		description = node.Description
	}
	summary, err := node.Help.ChildrenSummary(hc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("# %s\n\n%s\n\n```\n%s```\n", node.Name, description, summary), nil
}

func renderTerminal(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
