package eventstore

import (
	"slices"
	"time"
)

// Build statuses derived from events.
const (
	StatusRunning   = "running"
	StatusSkipped   = "skipped"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// BuildSummary is the read model of one build, folded from its events.
type BuildSummary struct {
	BuildID     string        `json:"build_id"`
	Status      string        `json:"status"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at,omitzero"`
	Duration    time.Duration `json:"duration,omitempty"`
	Output      string        `json:"output,omitempty"`
	Pages       int           `json:"pages"`
	Aliases     int           `json:"aliases"`
	SkipReason  string        `json:"skip_reason,omitempty"`
	ErrorStage  string        `json:"error_stage,omitempty"`
	ErrorDetail string        `json:"error,omitempty"`
}

// Summarize folds events into one summary per build, newest build first.
// Events with undecodable payloads only contribute their type and time.
func Summarize(events []Event) []*BuildSummary {
	byID := make(map[string]*BuildSummary)
	var order []*BuildSummary

	for _, e := range events {
		s, ok := byID[e.BuildID()]
		if !ok {
			s = &BuildSummary{BuildID: e.BuildID(), Status: StatusRunning, StartedAt: e.Timestamp()}
			byID[e.BuildID()] = s
			order = append(order, s)
		}
		switch e.Type() {
		case TypeBuildStarted:
			var p BuildStartedPayload
			if DecodePayload(e, &p) == nil {
				s.Output = p.Output
			}
			s.StartedAt = e.Timestamp()
		case TypeBuildSkipped:
			var p BuildSkippedPayload
			if DecodePayload(e, &p) == nil {
				s.SkipReason = p.Reason
			}
			s.finish(StatusSkipped, e.Timestamp())
		case TypeBuildCompleted:
			var p BuildCompletedPayload
			if DecodePayload(e, &p) == nil {
				s.Pages, s.Aliases = p.Pages, p.Aliases
			}
			s.finish(StatusCompleted, e.Timestamp())
		case TypeBuildFailed:
			var p BuildFailedPayload
			if DecodePayload(e, &p) == nil {
				s.ErrorStage, s.ErrorDetail = p.Stage, p.Error
			}
			s.finish(StatusFailed, e.Timestamp())
		}
	}

	slices.SortStableFunc(order, func(a, b *BuildSummary) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	return order
}

func (s *BuildSummary) finish(status string, at time.Time) {
	s.Status = status
	s.FinishedAt = at
	s.Duration = at.Sub(s.StartedAt)
}
