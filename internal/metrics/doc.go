// Package metrics records build and stage metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics
// collection never needs nil checks:
//
//	b := site.NewBuilder(cfg, root)            // NoopRecorder
//	b.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// A PrometheusRecorder registers its collectors on the given registry. The
// CLI exports that registry in Prometheus text format with WriteTextfile,
// which node_exporter's textfile collector can pick up after each build.
package metrics
