package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/webhelp/internal/config"
	"git.home.luguber.info/inful/webhelp/internal/eventstore"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
	"git.home.luguber.info/inful/webhelp/internal/metrics"
	"git.home.luguber.info/inful/webhelp/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory for the generated site (overrides output.directory)"`
	Force  bool   `short:"f" help:"Rebuild even when the package metadata is unchanged"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunBuild(ctx, g, cfg, b.Output, b.Force)
}

// RunBuild loads the command tree and runs one site build with the optional history and
// metrics sinks configured in cfg.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, outputDir string, force bool) error {
	log := logger(g)
	tree, err := loadTree(cfg)
	if err != nil {
		return err
	}

	var events eventstore.Store
	if cfg.History.Database != "" {
		store, err := eventstore.NewSQLiteStore(cfg.Resolve(cfg.History.Database))
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		events = store
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}

	builder := site.NewBuilder(site.Options{
		Config:    cfg,
		Root:      tree,
		OutputDir: outputDir,
		Force:     force,
		Recorder:  recorder,
		Events:    events,
		Logger:    log,
	})
	report, buildErr := builder.Build(ctx)

	if prom != nil {
		path := cfg.Resolve(cfg.Metrics.Textfile)
		if err := metrics.WriteTextfile(path, prom.Registry()); err != nil {
			log.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(err))
		}
	}
	if buildErr != nil {
		return buildErr
	}
	if report.Outcome == site.OutcomeSuccess {
		_, _ = fmt.Fprintf(g.stdout(), "Generated %d pages in %s\n", report.Pages, builder.OutputDir())
	}
	return nil
}
