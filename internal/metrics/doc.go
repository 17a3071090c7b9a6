// Package metrics records build and stage metrics for webhelp runs.
//
// Components receive a Recorder and default to NoopRecorder, so metrics stay optional.
// When a textfile path is configured the CLI swaps in a PrometheusRecorder backed by its
// own registry and writes the registry with WriteTextfile once the run ends, which suits
// node_exporter's textfile collector for batch jobs such as documentation builds.
package metrics
