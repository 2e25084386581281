package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keywatch/internal/store"
)

// Operation outcome label values.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

const (
	collectTimeout = 5 * time.Second

	// DefaultMaxChannels caps the channel label values exported per scrape.
	// Channels past the cap are summed under OverflowChannel.
	DefaultMaxChannels = 100
	OverflowChannel    = "_other"
)

var (
	keywordsDesc = prometheus.NewDesc(
		"keywatch_keywords",
		"Number of tracked keywords per channel",
		[]string{"channel"},
		nil,
	)
	alertsDesc = prometheus.NewDesc(
		"keywatch_keyword_alerts",
		"Sum of stored alert counts per channel",
		[]string{"channel"},
		nil,
	)
)

// KeywordCollector is a custom Prometheus collector that reads keywords from
// the store on each scrape.
type KeywordCollector struct {
	store       store.Store
	maxChannels int
}

// NewKeywordCollector creates a collector backed by s.
func NewKeywordCollector(s store.Store) *KeywordCollector {
	return &KeywordCollector{store: s, maxChannels: DefaultMaxChannels}
}

// Describe sends the metric descriptors to the channel.
func (c *KeywordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordsDesc
	ch <- alertsDesc
}

type channelTotals struct {
	keywords int
	alerts   int64
}

// Collect lists the store and emits per-channel gauges. Channels keep their
// own series in first-seen order until maxChannels is reached.
func (c *KeywordCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	keywords, err := c.store.List(ctx)
	if err != nil {
		slog.Error("failed to collect keyword metrics", "error", err)
		return
	}

	var order []string
	totals := make(map[string]*channelTotals)
	for _, kw := range keywords {
		label := kw.ChannelID
		if _, ok := totals[label]; !ok && len(order) >= c.maxChannels {
			label = OverflowChannel
		}
		t, ok := totals[label]
		if !ok {
			t = &channelTotals{}
			totals[label] = t
			order = append(order, label)
		}
		t.keywords++
		t.alerts += kw.AlertCount
	}

	for _, channel := range order {
		t := totals[channel]
		ch <- prometheus.MustNewConstMetric(keywordsDesc, prometheus.GaugeValue, float64(t.keywords), channel)
		ch <- prometheus.MustNewConstMetric(alertsDesc, prometheus.GaugeValue, float64(t.alerts), channel)
	}
}

// Metrics owns the registry served at /metrics for one store.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// New creates a registry with the keyword collector for s, the operation
// counter and the Go runtime collectors.
func New(s store.Store) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "keywatch_keyword_operations_total",
			Help: "Keyword API operations by outcome",
		}, []string{"operation", "outcome"}),
	}
	m.registry.MustRegister(
		NewKeywordCollector(s),
		m.operations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordOperation counts an API operation outcome. It is a no-op on a nil
// Metrics.
func (m *Metrics) RecordOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}
