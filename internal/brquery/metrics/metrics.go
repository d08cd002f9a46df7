package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const MetricPrefix = "bitsmcp_"

var ToolCallsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: MetricPrefix + "tool_calls_total",
	Help: "Total number of MCP tool calls",
}, []string{"tool", "outcome"})

var QueryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
	Name:    MetricPrefix + "query_duration_seconds",
	Help:    "Time taken to execute a business request query",
	Buckets: prometheus.DefBuckets,
})

var dbOpenConnectionsDesc = prometheus.NewDesc(
	MetricPrefix+"db_open_connections",
	"Number of open connections to database",
	nil,
	nil,
)

var dbOpenConnectionsUtilizationDesc = prometheus.NewDesc(
	MetricPrefix+"db_open_connections_utilization",
	"Percentage of connections used over total allowed connections to database",
	nil,
	nil,
)

func ExposeBRQueryMetrics(dbMetrics DbMetricsProvider) {
	prometheus.MustRegister(ToolCallsCounter)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(&dbCollector{dbMetrics: dbMetrics})
}

type dbCollector struct {
	dbMetrics DbMetricsProvider
}

func (c *dbCollector) Describe(desc chan<- *prometheus.Desc) {
	desc <- dbOpenConnectionsDesc
	desc <- dbOpenConnectionsUtilizationDesc
}

func (c *dbCollector) Collect(metrics chan<- prometheus.Metric) {
	metrics <- prometheus.MustNewConstMetric(
		dbOpenConnectionsDesc,
		prometheus.GaugeValue,
		float64(c.dbMetrics.GetOpenConnections()),
	)
	metrics <- prometheus.MustNewConstMetric(
		dbOpenConnectionsUtilizationDesc,
		prometheus.GaugeValue,
		c.dbMetrics.GetOpenConnectionsUtilization(),
	)
}

func RecordToolCall(tool string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ToolCallsCounter.WithLabelValues(tool, outcome).Inc()
}
