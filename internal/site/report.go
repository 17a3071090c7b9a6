package site

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/incremental"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
)

// ReportFileName is the name of the persisted build report inside the output directory.
const ReportFileName = "build-report.json"

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeSkipped  BuildOutcome = "skipped"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Skip reasons.
const (
	SkipReasonNoChanges = "no_changes"
)

// BuildReport captures the result of one build run.
type BuildReport struct {
	SchemaVersion   int
	BuildID         string
	Start           time.Time
	End             time.Time
	Pages           int
	Aliases         int
	LinksChecked    int
	Signature       string
	Errors          []error
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	Outcome         BuildOutcome
	// SkipReason is set when the build stopped after the change check.
	SkipReason string
}

func newBuildReport(buildID string) *BuildReport {
	return &BuildReport{
		SchemaVersion:   1,
		BuildID:         buildID,
		Start:           time.Now(),
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
	}
}

func (r *BuildReport) recordStageError(se *StageError) {
	r.StageErrorKinds[se.Stage] = se.Kind
	r.Errors = append(r.Errors, se)
}

// finish stamps the end time and derives the outcome.
func (r *BuildReport) finish() {
	r.End = time.Now()
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
		for _, err := range r.Errors {
			if se, ok := err.(*StageError); ok && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
			}
		}
	case r.SkipReason != "":
		r.Outcome = OutcomeSkipped
	default:
		r.Outcome = OutcomeSuccess
	}
}

// Duration returns the wall time of the run.
func (r *BuildReport) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	return fmt.Sprintf("build=%s outcome=%s pages=%d aliases=%d duration=%s errors=%d",
		r.BuildID, r.Outcome, r.Pages, r.Aliases, r.Duration().Truncate(time.Millisecond), len(r.Errors))
}

// BuildReportSerializable mirrors BuildReport with string errors for JSON output.
type BuildReportSerializable struct {
	SchemaVersion   int                      `json:"schema_version"`
	BuildID         string                   `json:"build_id"`
	Start           time.Time                `json:"start"`
	End             time.Time                `json:"end"`
	Pages           int                      `json:"pages"`
	Aliases         int                      `json:"aliases"`
	LinksChecked    int                      `json:"links_checked"`
	Signature       string                   `json:"signature"`
	Errors          []string                 `json:"errors"`
	StageDurations  map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds map[string]string        `json:"stage_error_kinds"`
	Outcome         string                   `json:"outcome"`
	SkipReason      string                   `json:"skip_reason,omitempty"`
}

func (r *BuildReport) serializable() *BuildReportSerializable {
	kinds := make(map[string]string, len(r.StageErrorKinds))
	for k, v := range r.StageErrorKinds {
		kinds[string(k)] = string(v)
	}
	durations := r.StageDurations
	if durations == nil {
		durations = map[string]time.Duration{}
	}
	s := &BuildReportSerializable{
		SchemaVersion:   r.SchemaVersion,
		BuildID:         r.BuildID,
		Start:           r.Start,
		End:             r.End,
		Pages:           r.Pages,
		Aliases:         r.Aliases,
		LinksChecked:    r.LinksChecked,
		Signature:       r.Signature,
		Errors:          make([]string, len(r.Errors)),
		StageDurations:  durations,
		StageErrorKinds: kinds,
		Outcome:         string(r.Outcome),
		SkipReason:      r.SkipReason,
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	return s
}

// Persist writes build-report.json atomically into dir.
func (r *BuildReport) Persist(dir string) error {
	data, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal build report").Build()
	}
	return incremental.WriteFileAtomic(filepath.Join(dir, ReportFileName), append(data, '\n'))
}

// LoadReport reads a persisted build report.
func LoadReport(dir string) (*BuildReportSerializable, error) {
	path := filepath.Join(dir, ReportFileName)
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	var report BuildReportSerializable
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "build report is not valid JSON").
			WithContext(logfields.KeyFile, path).
			Build()
	}
	return &report, nil
}
