package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("render_pages", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("render_pages", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.AddPagesRendered(12)
	pr.SetAliases(4)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	if got := values["webhelp_pages_rendered_total"]; got != 12 {
		t.Fatalf("pages = %v, want 12", got)
	}
	if got := values["webhelp_build_outcomes_total"]; got != 1 {
		t.Fatalf("outcomes = %v, want 1", got)
	}
	if got := values["webhelp_aliases"]; got != 4 {
		t.Fatalf("aliases = %v, want 4", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome(BuildOutcomeSkipped)

	path := filepath.Join(t.TempDir(), "webhelp.prom")
	if err := WriteTextfile(path, pr.Registry()); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `webhelp_build_outcomes_total{outcome="skipped"} 1`) {
		t.Fatalf("unexpected textfile content:\n%s", data)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("x", time.Second)
	r.IncBuildOutcome(BuildOutcomeFailed)
	r.AddPagesRendered(1)
}
