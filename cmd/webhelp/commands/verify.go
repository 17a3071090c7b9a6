package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/webhelp/internal/linkverify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	Output string `short:"o" help:"Site directory to check (overrides output.directory)"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	outputDir := v.Output
	if outputDir == "" {
		outputDir = cfg.Resolve(cfg.Output.Directory)
	}
	result, err := linkverify.VerifySite(context.Background(), filepath.Join(outputDir, cfg.Output.PagesDir))
	if err != nil {
		return err
	}
	out := g.stdout()
	_, _ = fmt.Fprintf(out, "Checked %d links in %d pages\n", result.Links, result.Pages)
	for _, b := range result.Broken {
		_, _ = fmt.Fprintf(out, "  broken: %s\n", b)
	}
	return result.Err()
}
