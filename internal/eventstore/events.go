package eventstore

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
)

// Event type names.
const (
	TypeBuildStarted   = "BuildStarted"
	TypeBuildSkipped   = "BuildSkipped"
	TypeBuildCompleted = "BuildCompleted"
	TypeBuildFailed    = "BuildFailed"
)

// BuildStartedPayload describes the inputs of a build.
type BuildStartedPayload struct {
	Root      string `json:"root"`
	Output    string `json:"output"`
	Signature string `json:"signature"`
	Force     bool   `json:"force"`
}

// BuildSkippedPayload explains why nothing was generated.
type BuildSkippedPayload struct {
	Reason    string `json:"reason"`
	Signature string `json:"signature"`
}

// BuildCompletedPayload summarizes a successful build.
type BuildCompletedPayload struct {
	Pages      int   `json:"pages"`
	Aliases    int   `json:"aliases"`
	DurationMS int64 `json:"duration_ms"`
}

// BuildFailedPayload records where a build failed.
type BuildFailedPayload struct {
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// NewEvent builds an event with a JSON payload stamped with the current time.
func NewEvent(buildID, eventType string, payload any) (*BaseEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryEventStore, "failed to marshal event payload").
			WithContext("build_id", buildID).
			WithContext("event_type", eventType).
			Build()
	}
	return &BaseEvent{
		EventBuildID:   buildID,
		EventType:      eventType,
		EventTimestamp: time.Now(),
		EventPayload:   data,
	}, nil
}

// DecodePayload unmarshals the JSON payload of e into v.
func DecodePayload(e Event, v any) error {
	if err := json.Unmarshal(e.Payload(), v); err != nil {
		return errors.WrapError(err, errors.CategoryEventStore, "failed to unmarshal event payload").
			WithContext("event_type", e.Type()).
			Build()
	}
	return nil
}
