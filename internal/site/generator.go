package site

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
	"git.home.luguber.info/inful/webhelp/internal/markdown"
	"git.home.luguber.info/inful/webhelp/internal/postprocess"
)

// GeneratorOptions configures a Generator.
type GeneratorOptions struct {
	// PagesDir receives the HTML pages.
	PagesDir string
	// RootDescription is the markdown shown on the root page. The root node's
	// description is used when empty.
	RootDescription string
	// HomeDir is masked in page bodies. Empty disables masking.
	HomeDir string
	Logger  *slog.Logger
}

// Generator renders and writes the page of a single node.
type Generator struct {
	renderer        *markdown.Renderer
	pipeline        *postprocess.Pipeline
	pagesDir        string
	rootDescription string
	logger          *slog.Logger
}

// NewGenerator creates a generator with the default post-processing pipeline.
func NewGenerator(opts GeneratorOptions) *Generator {
	renderer := markdown.New()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		renderer:        renderer,
		pipeline:        postprocess.New(renderer, postprocess.Options{HomeDir: opts.HomeDir}),
		pagesDir:        opts.PagesDir,
		rootDescription: opts.RootDescription,
		logger:          logger,
	}
}

// PagesDir returns the directory pages are written to.
func (g *Generator) PagesDir() string {
	return g.pagesDir
}

// generatePage renders, post-processes and writes the page of node. path is the
// chain of names from the root to node; children are the node's children in page order.
func (g *Generator) generatePage(node *cmdtree.Node, path []string, children []*cmdtree.Node) error {
	page, err := g.renderPage(node, path, children)
	if err != nil {
		return err
	}
	title := strings.Join(path[1:], " ")
	if page.IsRoot() {
		title = node.Name
	}
	doc, err := wrapPage(title, page.Body)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to render page shell").
			Fatal().
			WithContext("page", page.FullPath()).
			Build()
	}
	if err := WritePage(g.pagesDir, page.FullPath(), doc); err != nil {
		return err
	}
	g.logger.Debug("Page generated", logfields.Page(pageFileName(page.FullPath())), logfields.Path(filepath.Join(g.pagesDir, pageFileName(page.FullPath()))))
	return nil
}

func (g *Generator) renderPage(node *cmdtree.Node, path []string, children []*cmdtree.Node) (*postprocess.Page, error) {
	page := &postprocess.Page{Path: path, Group: node.IsGroup()}
	hc := cmdtree.HelpContext{Path: path, Children: children}
	renderErr := func(err error, msg string) error {
		return errors.WrapError(err, errors.CategoryRender, msg).
			Fatal().
			WithContext("page", page.FullPath()).
			Build()
	}

	var source string
	if page.IsRoot() {
		source = g.rootDescription
		if source == "" {
			source = node.Description
		}
	} else {
		help, err := node.Help.HelpMarkdown(hc)
		if err != nil {
			return nil, renderErr(err, "failed to produce help text")
		}
		source = help
	}
	body, err := g.renderer.Render(source + "\n")
	if err != nil {
		return nil, renderErr(err, "failed to render markdown")
	}
	page.Body = body

	if page.Group {
		summary, err := node.Help.ChildrenSummary(hc)
		if err != nil {
			return nil, renderErr(err, "failed to produce children summary")
		}
		page.ChildrenSummary = summary
	}
	if err := g.pipeline.Apply(page); err != nil {
		return nil, renderErr(err, "post-processing failed")
	}
	return page, nil
}

// WritePage writes html to "<fullPath>.html" inside pagesDir.
func WritePage(pagesDir, fullPath, html string) error {
	target := filepath.Join(pagesDir, pageFileName(fullPath))
	if err := os.WriteFile(target, []byte(html), 0o644); err != nil { //nolint:gosec // public HTML output, non-sensitive
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
			Fatal().
			WithContext(logfields.KeyFile, target).
			Build()
	}
	return nil
}
