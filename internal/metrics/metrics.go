package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry 为本进程私有注册表；不注册 Go 运行时指标，导出文件只包含业务指标
var Registry = prometheus.NewRegistry()

var (
	ProbeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netstatus_probe_total",
		Help: "Connectivity probe results by strategy",
	}, []string{"strategy", "result"})
	NetworkTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netstatus_network_total",
		Help: "Network classification results",
	}, []string{"network"})
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netstatus_cache_lookups_total",
		Help: "Country cache lookups by outcome (hit, miss, stale, error)",
	}, []string{"outcome"})
	CacheWriteErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "netstatus_cache_write_errors_total",
		Help: "Failed country cache writes",
	})
	PluginRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netstatus_plugin_requests_total",
		Help: "Country provider queries",
	}, []string{"plugin"})
	PluginSuccessTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netstatus_plugin_success_total",
		Help: "Country provider queries that returned a country",
	}, []string{"plugin"})
	PluginFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netstatus_plugin_fail_total",
		Help: "Country provider failures by reason",
	}, []string{"plugin", "reason"})
	PluginDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "netstatus_plugin_duration_ms",
		Help:    "Country provider query duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 4000},
	}, []string{"plugin"})
	RunDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "netstatus_run_duration_ms",
		Help:    "Whole status line computation in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 4000, 8000, 15000},
	})
)

func init() {
	Registry.MustRegister(ProbeTotal)
	Registry.MustRegister(NetworkTotal)
	Registry.MustRegister(CacheLookupsTotal)
	Registry.MustRegister(CacheWriteErrorsTotal)
	Registry.MustRegister(PluginRequestsTotal)
	Registry.MustRegister(PluginSuccessTotal)
	Registry.MustRegister(PluginFailTotal)
	Registry.MustRegister(PluginDurationMs)
	Registry.MustRegister(RunDurationMs)
}

// 文档注释：以 Prometheus 文本格式写出本次运行的指标
// 约束：单次进程无法被抓取，写入文件交由 node_exporter textfile collector 收集；写入为原子替换。
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
