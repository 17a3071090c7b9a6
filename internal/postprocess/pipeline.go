// Package postprocess applies the ordered HTML rewrites every generated help page
// goes through after markdown rendering.
package postprocess

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/webhelp/internal/markdown"
)

// Page is the unit the transforms operate on. Body is rewritten in place.
type Page struct {
	// Path holds the node names from the root down to the page's node.
	Path []string
	// Group is true for group pages, including the root page.
	Group bool
	// Body is the rendered HTML of the page content.
	Body string
	// ChildrenSummary holds the raw summary lines of a group's children.
	ChildrenSummary string
}

// FullPath is the underscore-joined node path, e.g. "zowe_zos-jobs_list".
func (p *Page) FullPath() string {
	return strings.Join(p.Path, "_")
}

// IsRoot reports whether the page documents the root node.
func (p *Page) IsRoot() bool {
	return len(p.Path) == 1
}

// Transform rewrites a page in place.
type Transform func(page *Page) error

// Step is a named transform.
type Step struct {
	Name  string
	Apply Transform
}

// Options configures the default pipeline.
type Options struct {
	// HomeDir is masked in page bodies when non-empty.
	HomeDir string
}

// Pipeline runs its steps in order. It holds no per-page state and can be reused.
type Pipeline struct {
	steps []Step
}

// New builds the default pipeline. The step order is significant: breadcrumbs and child
// links are added before anchors are cleaned up, and home directory masking runs before
// copy buttons duplicate code text into attributes.
func New(renderer *markdown.Renderer, opts Options) *Pipeline {
	steps := []Step{
		{Name: "breadcrumb", Apply: breadcrumb},
		{Name: "children_table", Apply: childrenTable(renderer)},
		{Name: "link_escapes", Apply: cleanLinkEscapes},
	}
	if mask := newHomeDirMask(opts.HomeDir); mask != nil {
		steps = append(steps, Step{Name: "home_dir", Apply: mask.apply})
	}
	steps = append(steps, Step{Name: "copy_buttons", Apply: copyButtons})
	return &Pipeline{steps: steps}
}

// WithSteps returns a pipeline running exactly the given steps.
func WithSteps(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Names lists the step names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Apply runs all steps on page, stopping at the first error.
func (p *Pipeline) Apply(page *Page) error {
	for _, step := range p.steps {
		if err := step.Apply(page); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return nil
}
