package webhelp

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/helptext"
	"git.home.luguber.info/inful/webhelp/internal/incremental"
)

const autoGenMarker = "###### Auto generated by spf13/cobra"

// commandTree converts root and its available subcommands into a command tree.
// Hidden, deprecated and help-topic commands are left out.
func commandTree(root *cobra.Command) (*cmdtree.Node, error) {
	if root == nil {
		return nil, errors.TreeError("command tree has no root").Build()
	}
	node := convert(root)
	if err := cmdtree.Validate(node); err != nil {
		return nil, err
	}
	return node, nil
}

func convert(cmd *cobra.Command) *cmdtree.Node {
	n := &cmdtree.Node{
		Name:        cmd.Name(),
		Aliases:     cmd.Aliases,
		Type:        cmdtree.TypeCommand,
		Description: cmd.Short,
		Help:        &cobraHelp{cmd: cmd},
	}
	for _, child := range cmd.Commands() {
		if !child.IsAvailableCommand() || child.IsAdditionalHelpTopicCommand() {
			continue
		}
		n.Children = append(n.Children, convert(child))
	}
	if len(n.Children) > 0 {
		n.Type = cmdtree.TypeGroup
	}
	return n
}

func packageFor(root *cobra.Command) incremental.Package {
	return incremental.Package{Name: root.Name(), Version: root.Version}
}

type cobraHelp struct {
	cmd *cobra.Command
}

// HelpMarkdown renders cobra's markdown documentation for the command. Cross references
// point at the generated pages, which follow cobra's own "root_sub_cmd" file naming.
func (h *cobraHelp) HelpMarkdown(cmdtree.HelpContext) (string, error) {
	var buf bytes.Buffer
	if err := doc.GenMarkdownCustom(h.cmd, &buf, pageLink); err != nil {
		return "", err
	}
	out := buf.String()
	if i := strings.Index(out, autoGenMarker); i >= 0 {
		out = out[:i]
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// ChildrenSummary lists the subcommands in page order.
func (h *cobraHelp) ChildrenSummary(hc cmdtree.HelpContext) (string, error) {
	return helptext.SummaryTable("Available Commands:", hc.Children), nil
}

func pageLink(name string) string {
	return strings.TrimSuffix(name, ".md") + ".html"
}
