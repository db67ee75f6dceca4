// Package promsink implements storage.MetricsSink: Prometheus
// text-exposition rendering plus a push-gateway flush on reset.
package promsink

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/hkex/market-sim/pkg/storage"
)

// Sink renders metrics as Prometheus text-exposition format and flushes
// the configured push-gateway job on reset.
type Sink struct {
	jobName string
	url     string
}

// New builds a Sink targeting the given push-gateway job and URL.
func New(jobName, url string) *Sink {
	return &Sink{jobName: jobName, url: url}
}

// FlushMetrics deletes the series belonging to the configured job from
// the push gateway.
func (s *Sink) FlushMetrics() error {
	return push.New(s.url, s.jobName).Delete()
}

// GetMetricsText renders metrics as
// "<prefix>_<name>{k="v",...} <value>\n" per metric, omitting the
// label block entirely when a metric has no labels.
func (s *Sink) GetMetricsText(prefix string, metrics []storage.Metric) (string, error) {
	var sb strings.Builder
	for _, m := range metrics {
		name := prefix + "_" + m.Name
		if len(m.Labels) == 0 {
			fmt.Fprintf(&sb, "%s %v\n", name, m.Value)
			continue
		}
		keys := make([]string, 0, len(m.Labels))
		for k := range m.Labels {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%q", k, m.Labels[k]))
		}
		fmt.Fprintf(&sb, "%s{%s} %v\n", name, strings.Join(parts, ","), m.Value)
	}
	return sb.String(), nil
}

// registry is kept so the sink can also be scraped directly (rather
// than only pushed), matching how the rest of the corpus wires
// client_golang collectors into an http.Handler.
var registry = prometheus.NewRegistry()

// Registry exposes the sink's Prometheus registry for a /metrics
// http.Handler, as an alternative to the text renderer above.
func (s *Sink) Registry() *prometheus.Registry {
	return registry
}
