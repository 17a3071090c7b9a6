package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/webhelp/internal/logfields"
	"git.home.luguber.info/inful/webhelp/internal/metrics"
)

// StageName identifies a build stage.
type StageName string

// Build stages in execution order.
const (
	StageCheckChanges    StageName = "check_changes"
	StagePrepareOutput   StageName = "prepare_output"
	StageRenderPages     StageName = "render_pages"
	StageWriteNavigation StageName = "write_navigation"
	StageVerifyLinks     StageName = "verify_links"
	StageFinalizeOutput  StageName = "finalize_output"
	StagePersistCache    StageName = "persist_cache"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *buildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"
	StageErrorCanceled StageErrorKind = "canceled"
)

// StageError is a structured error carrying the failed stage and the underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newStageError(stage StageName, err error) *StageError {
	var se *StageError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
	}
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

type stageDef struct {
	name StageName
	fn   Stage
}

// runStages executes stages in order, recording timing and stopping on the first error
// or when a stage marks the build as skipped.
func runStages(ctx context.Context, bs *buildState, stages []stageDef) error {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			se := newStageError(st.name, err)
			bs.report.recordStageError(se)
			bs.recorder.IncStageResult(string(st.name), metrics.ResultCanceled)
			return se
		}

		bs.logger.Debug("Stage started", logfields.Stage(string(st.name)))
		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.report.StageDurations[string(st.name)] = dur
		bs.recorder.ObserveStageDuration(string(st.name), dur)

		if err != nil {
			se := newStageError(st.name, err)
			bs.report.recordStageError(se)
			result := metrics.ResultFatal
			if se.Kind == StageErrorCanceled {
				result = metrics.ResultCanceled
			}
			bs.recorder.IncStageResult(string(st.name), result)
			return se
		}
		bs.recorder.IncStageResult(string(st.name), metrics.ResultSuccess)
		bs.logger.Info("Stage completed",
			logfields.Stage(string(st.name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))

		if bs.skip {
			bs.logger.Debug("Skipping remaining stages", slog.String("reason", bs.report.SkipReason))
			return nil
		}
	}
	return nil
}
