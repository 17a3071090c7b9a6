// Package helptext renders markdown help for command definitions loaded from files.
package helptext

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
)

// Source is the cmdtree.HelpSource of a definition node.
type Source struct {
	def *cmdtree.Definition
}

// New returns the help source for def. It satisfies cmdtree.HelpFactory.
func New(def *cmdtree.Definition) cmdtree.HelpSource {
	return &Source{def: def}
}

// HelpMarkdown renders the full help of the node.
func (s *Source) HelpMarkdown(hc cmdtree.HelpContext) (string, error) {
	def := s.def
	command := hc.Command()
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", command)
	if text := strings.TrimSpace(def.Description); text != "" {
		b.WriteString(text + "\n\n")
	} else if def.Summary != "" {
		b.WriteString(def.Summary + "\n\n")
	}

	b.WriteString("## Usage\n\n")
	fmt.Fprintf(&b, "`%s`\n\n", usage(command, def, len(hc.Children) > 0))

	if len(def.Positionals) > 0 {
		b.WriteString("## Positional Arguments\n\n")
		for _, p := range def.Positionals {
			fmt.Fprintf(&b, "* `%s`%s%s\n\n", p.Name, typeSuffix(p.Type), requiredSuffix(p.Required))
			writeDescription(&b, p.Description)
		}
	}

	if len(def.Options) > 0 {
		b.WriteString("## Options\n\n")
		for _, o := range def.Options {
			flags := []string{"`" + flag(o.Name) + "`"}
			for _, a := range o.Aliases {
				flags = append(flags, "`"+flag(a)+"`")
			}
			fmt.Fprintf(&b, "* %s%s%s\n\n", strings.Join(flags, " | "), typeSuffix(o.Type), requiredSuffix(o.Required))
			writeDescription(&b, o.Description)
			if o.Default != "" {
				fmt.Fprintf(&b, "    Default value: %s\n\n", o.Default)
			}
			if len(o.AllowableValues) > 0 {
				fmt.Fprintf(&b, "    Allowed values: %s\n\n", strings.Join(o.AllowableValues, ", "))
			}
		}
	}

	if len(def.Examples) > 0 {
		b.WriteString("## Examples\n\n")
		for _, ex := range def.Examples {
			fmt.Fprintf(&b, "* %s:\n\n", strings.TrimSuffix(strings.TrimSpace(ex.Description), ":"))
			line := strings.TrimSpace(command + " " + ex.Options)
			fmt.Fprintf(&b, "    * `$ %s`\n\n", line)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

// ChildrenSummary renders the summary table of the node's children.
func (s *Source) ChildrenSummary(hc cmdtree.HelpContext) (string, error) {
	return SummaryTable("COMMANDS", hc.Children), nil
}

func usage(command string, def *cmdtree.Definition, hasChildren bool) string {
	parts := []string{command}
	if hasChildren || def.Type == cmdtree.TypeGroup {
		return command + " <command>"
	}
	for _, p := range def.Positionals {
		if p.Required {
			parts = append(parts, "<"+p.Name+">")
		} else {
			parts = append(parts, "["+p.Name+"]")
		}
	}
	if len(def.Options) > 0 {
		parts = append(parts, "[options]")
	}
	return strings.Join(parts, " ")
}

func flag(name string) string {
	name = strings.TrimLeft(name, "-")
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

func typeSuffix(t string) string {
	if t == "" {
		return ""
	}
	return " *(" + t + ")*"
}

func requiredSuffix(required bool) string {
	if required {
		return " **required**"
	}
	return ""
}

func writeDescription(b *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.WriteString("    * " + strings.ReplaceAll(text, "\n", " ") + "\n\n")
}
