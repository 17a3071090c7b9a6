package site

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
	"git.home.luguber.info/inful/webhelp/internal/config"
	"git.home.luguber.info/inful/webhelp/internal/eventstore"
	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/incremental"
	"git.home.luguber.info/inful/webhelp/internal/linkverify"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
	"git.home.luguber.info/inful/webhelp/internal/metrics"
)

// Options configures a Builder.
type Options struct {
	Config *config.Config
	Root   *cmdtree.Node
	// Package replaces config.Package when set, e.g. for trees read from a cobra command.
	Package *incremental.Package
	// OutputDir replaces the configured output directory when set.
	OutputDir string
	// Force rebuilds even when the package metadata is unchanged.
	Force    bool
	Recorder metrics.Recorder
	// Events receives the build history. Nil disables history.
	Events eventstore.Store
	Logger *slog.Logger
}

// Builder runs site builds.
type Builder struct {
	opts Options
}

// NewBuilder creates a builder. Recorder and Logger default to no-op and slog.Default.
func NewBuilder(opts Options) *Builder {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Builder{opts: opts}
}

// OutputDir returns the resolved output directory.
func (b *Builder) OutputDir() string {
	if b.opts.OutputDir != "" {
		return b.opts.OutputDir
	}
	return b.opts.Config.Resolve(b.opts.Config.Output.Directory)
}

// Package returns the package the footer and the metadata cache describe.
func (b *Builder) Package() incremental.Package {
	if b.opts.Package != nil {
		return *b.opts.Package
	}
	return incremental.Package{Name: b.opts.Config.Package.Name, Version: b.opts.Config.Package.Version}
}

// buildState carries the mutable state of one run across stages.
type buildState struct {
	builder  *Builder
	cfg      *config.Config
	report   *BuildReport
	recorder metrics.Recorder
	logger   *slog.Logger

	outputDir string
	stageDir  string
	current   incremental.PackageMetadata
	tree      *PageRecord
	aliases   AliasIndex
	skip      bool
}

func (bs *buildState) pagesDir() string {
	return filepath.Join(bs.stageDir, bs.cfg.Output.PagesDir)
}

// Build runs all stages and returns the report of the run. On error the staging
// directory is removed and the previous output and metadata cache are left untouched.
func (b *Builder) Build(ctx context.Context) (*BuildReport, error) {
	if b.opts.Config == nil {
		return nil, errors.InternalError("builder has no configuration").Build()
	}
	report := newBuildReport(uuid.NewString())
	logger := b.opts.Logger.With(logfields.BuildID(report.BuildID))
	bs := &buildState{
		builder:   b,
		cfg:       b.opts.Config,
		report:    report,
		recorder:  b.opts.Recorder,
		logger:    logger,
		outputDir: b.OutputDir(),
	}

	b.emit(ctx, bs, eventstore.TypeBuildStarted, eventstore.BuildStartedPayload{
		Root:   rootName(b.opts.Root),
		Output: bs.outputDir,
		Force:  b.opts.Force,
	})

	stages := []stageDef{
		{StageCheckChanges, stageCheckChanges},
		{StagePrepareOutput, stagePrepareOutput},
		{StageRenderPages, stageRenderPages},
		{StageWriteNavigation, stageWriteNavigation},
	}
	if bs.cfg.VerifyLinks {
		stages = append(stages, stageDef{StageVerifyLinks, stageVerifyLinks})
	}
	stages = append(stages,
		stageDef{StageFinalizeOutput, stageFinalizeOutput},
		stageDef{StagePersistCache, stagePersistCache},
	)

	err := runStages(ctx, bs, stages)
	if err != nil {
		bs.abortStaging()
	}
	report.finish()
	b.complete(ctx, bs, err)
	return report, err
}

// complete records metrics, history and the report of a finished run.
func (b *Builder) complete(ctx context.Context, bs *buildState, err error) {
	report := bs.report
	bs.recorder.ObserveBuildDuration(report.Duration())
	bs.recorder.IncBuildOutcome(metrics.BuildOutcomeLabel(report.Outcome))

	switch report.Outcome {
	case OutcomeSuccess:
		bs.recorder.AddPagesRendered(report.Pages)
		bs.recorder.SetAliases(report.Aliases)
		b.emit(ctx, bs, eventstore.TypeBuildCompleted, eventstore.BuildCompletedPayload{
			Pages:      report.Pages,
			Aliases:    report.Aliases,
			DurationMS: report.Duration().Milliseconds(),
		})
		if perr := report.Persist(bs.outputDir); perr != nil {
			bs.logger.Warn("Failed to persist build report", logfields.Error(perr))
		}
		bs.logger.Info("Build completed", slog.String("summary", report.Summary()))
	case OutcomeSkipped:
		b.emit(ctx, bs, eventstore.TypeBuildSkipped, eventstore.BuildSkippedPayload{
			Reason:    report.SkipReason,
			Signature: report.Signature,
		})
	default:
		stage := ""
		if se, ok := err.(*StageError); ok {
			stage = string(se.Stage)
		}
		b.emit(context.WithoutCancel(ctx), bs, eventstore.TypeBuildFailed, eventstore.BuildFailedPayload{
			Stage: stage,
			Error: err.Error(),
		})
		bs.logger.Error("Build failed", logfields.Stage(stage), logfields.Error(err))
	}
}

// emit appends a history event. History is best effort: failures are logged only.
func (b *Builder) emit(ctx context.Context, bs *buildState, eventType string, payload any) {
	if b.opts.Events == nil {
		return
	}
	event, err := eventstore.NewEvent(bs.report.BuildID, eventType, payload)
	if err == nil {
		err = b.opts.Events.Append(ctx, event)
	}
	if err != nil {
		bs.logger.Warn("Failed to record build event", slog.String("event_type", eventType), logfields.Error(err))
	}
}

func rootName(root *cmdtree.Node) string {
	if root == nil {
		return ""
	}
	return root.Name
}

func stageCheckChanges(_ context.Context, bs *buildState) error {
	plugins, err := incremental.LoadPlugins(bs.cfg.Resolve(bs.cfg.PluginsFile))
	if err != nil {
		return err
	}
	bs.current = incremental.Current(bs.builder.Package(), plugins)
	bs.report.Signature = bs.current.Signature()

	if bs.builder.opts.Force {
		bs.logger.Info("Forced rebuild, skipping change detection")
		return nil
	}
	cached := incremental.LoadCache(filepath.Join(bs.outputDir, bs.cfg.Output.MetadataFile), bs.logger)
	if incremental.ShouldRebuild(cached, bs.current) {
		return nil
	}
	if !bs.existingSiteValid() {
		bs.logger.Info("Package metadata unchanged but output is incomplete; rebuilding", logfields.Output(bs.outputDir))
		return nil
	}
	bs.logger.Info("Nothing has changed, skipping help generation")
	bs.report.SkipReason = SkipReasonNoChanges
	bs.skip = true
	return nil
}

// existingSiteValid reports whether the previous output still has its pages and navigation.
func (bs *buildState) existingSiteValid() bool {
	for _, p := range []string{
		filepath.Join(bs.outputDir, bs.cfg.Output.PagesDir),
		filepath.Join(bs.outputDir, bs.cfg.Output.NavigationFile),
	} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

func stagePrepareOutput(_ context.Context, bs *buildState) error {
	if err := os.MkdirAll(filepath.Dir(bs.outputDir), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output parent directory").
			Fatal().
			WithContext(logfields.KeyFile, bs.outputDir).
			Build()
	}
	if err := bs.beginStaging(); err != nil {
		return err
	}
	if err := bs.carryOverAssets(); err != nil {
		return err
	}
	if err := os.MkdirAll(bs.pagesDir(), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create pages directory").
			Fatal().
			WithContext(logfields.KeyFile, bs.pagesDir()).
			Build()
	}
	return nil
}

func stageRenderPages(ctx context.Context, bs *buildState) error {
	homeDir := ""
	if bs.cfg.SanitizeHome() {
		homeDir = bs.cfg.ResolvedHomeDir()
	}
	gen := NewGenerator(GeneratorOptions{
		PagesDir:        bs.pagesDir(),
		RootDescription: bs.cfg.RootDescription,
		HomeDir:         homeDir,
		Logger:          bs.logger,
	})
	root := cmdtree.ExcludeGroups(bs.builder.opts.Root, bs.cfg.ExcludeGroups)
	tree, aliases, err := Walk(ctx, gen, root)
	if err != nil {
		return err
	}
	bs.tree, bs.aliases = tree, aliases
	bs.report.Pages = tree.Count()
	bs.report.Aliases = len(aliases)
	bs.logger.Info("Generated documentation pages for all commands and groups", logfields.Pages(bs.report.Pages))
	return nil
}

func stageWriteNavigation(_ context.Context, bs *buildState) error {
	pkg := bs.builder.Package()
	footer := strings.TrimSpace(pkg.Name + " " + pkg.Version)
	nav := BuildNavigation(bs.tree, bs.aliases, bs.cfg.ProductDisplayName, footer)
	return nav.Write(filepath.Join(bs.stageDir, bs.cfg.Output.NavigationFile))
}

func stageVerifyLinks(ctx context.Context, bs *buildState) error {
	result, err := linkverify.VerifySite(ctx, bs.pagesDir())
	if err != nil {
		return err
	}
	bs.report.LinksChecked = result.Links
	return result.Err()
}

func stageFinalizeOutput(_ context.Context, bs *buildState) error {
	return bs.finalizeStaging()
}

func stagePersistCache(_ context.Context, bs *buildState) error {
	return incremental.SaveCache(filepath.Join(bs.outputDir, bs.cfg.Output.MetadataFile), bs.current)
}
