package dawg

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WriteMetrics writes the build statistics to path in the Prometheus text
// format, for collection by the node exporter's textfile collector.
func WriteMetrics(path string, stats Stats) error {
	reg := prometheus.NewRegistry()

	gauge := func(name, help string, value float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dawg",
			Subsystem: "build",
			Name:      name,
			Help:      help,
		})
		g.Set(value)
		reg.MustRegister(g)
	}

	gauge("words", "Number of words compiled.", float64(stats.Words))
	gauge("skipped_lines", "Number of input lines rejected.", float64(stats.Skipped))
	gauge("nodes", "Number of distinct nodes, root included.", float64(stats.Nodes))
	gauge("edges", "Number of stored edges, root block included.", float64(stats.Edges))
	gauge("shared_nodes", "Number of times an identical node was reused.", float64(stats.Shared))
	gauge("output_bytes", "Size of the compiled file in bytes.", float64(stats.Bytes))
	gauge("duration_seconds", "Time spent building the graph.", stats.Duration.Seconds())

	return prometheus.WriteToTextfile(path, reg)
}
