// Package webhelp generates a static HTML help site from the command tree of a cobra
// application.
//
// A host program passes its root command to Build, or adds the command returned by
// NewCommand to its own tree:
//
//	root.AddCommand(webhelp.NewCommand(root, webhelp.Options{OutputDir: "./help-site"}))
//
// Every available command gets a page under "<output>/docs", navigation data is written to
// "<output>/tree-data.js", and "<output>/metadata.json" records the documented version so
// an unchanged application is not rebuilt.
package webhelp

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"git.home.luguber.info/inful/webhelp/internal/config"
	"git.home.luguber.info/inful/webhelp/internal/site"
)

// Options configures Build. Zero values fall back to the webhelp defaults.
type Options struct {
	// OutputDir receives the site. Defaults to "./help-site".
	OutputDir string
	// ProductDisplayName is shown in the navigation header. Defaults to the root command name.
	ProductDisplayName string
	// RootDescription is the markdown of the root page. Defaults to the root command's
	// Long text, then its Short text.
	RootDescription string
	// ExcludeGroups names top-level commands left out of the site.
	ExcludeGroups []string
	// PluginsFile is an optional plugins.json whose entries take part in change detection.
	PluginsFile string
	// HomeDir is masked in the pages. Defaults to the current user's home directory.
	HomeDir string
	// KeepHomeDir disables home directory masking.
	KeepHomeDir bool
	// VerifyLinks fails the build when a page links to a page that was not generated.
	VerifyLinks bool
	// Force rebuilds even when the application version is unchanged.
	Force  bool
	Logger *slog.Logger
}

// Result summarizes one Build.
type Result struct {
	BuildID   string
	OutputDir string
	Pages     int
	Aliases   int
	// Skipped is true when the application was unchanged and nothing was written.
	Skipped  bool
	Duration time.Duration
}

// Build generates the help site of root.
func Build(ctx context.Context, root *cobra.Command, opts Options) (*Result, error) {
	tree, err := commandTree(root)
	if err != nil {
		return nil, err
	}
	pkg := packageFor(root)
	cfg, err := opts.config(root)
	if err != nil {
		return nil, err
	}

	builder := site.NewBuilder(site.Options{
		Config:  cfg,
		Root:    tree,
		Package: &pkg,
		Force:   opts.Force,
		Logger:  opts.Logger,
	})
	report, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{
		BuildID:   report.BuildID,
		OutputDir: builder.OutputDir(),
		Pages:     report.Pages,
		Aliases:   report.Aliases,
		Skipped:   report.Outcome == site.OutcomeSkipped,
		Duration:  report.Duration(),
	}, nil
}

func (o Options) config(root *cobra.Command) (*config.Config, error) {
	description := o.RootDescription
	if description == "" {
		description = strings.TrimSpace(root.Long)
	}
	sanitize := !o.KeepHomeDir
	cfg := &config.Config{
		ProductDisplayName: o.ProductDisplayName,
		RootDescription:    description,
		ExcludeGroups:      o.ExcludeGroups,
		Package:            config.PackageConfig{Name: root.Name(), Version: root.Version},
		PluginsFile:        o.PluginsFile,
		HomeDir:            o.HomeDir,
		SanitizeHomeDir:    &sanitize,
		Output:             config.OutputConfig{Directory: o.OutputDir},
		VerifyLinks:        o.VerifyLinks,
	}
	if err := cfg.Complete(); err != nil {
		return nil, err
	}
	return cfg, nil
}
