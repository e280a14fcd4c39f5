// 包 status：依次执行网络判定、VPN 检测、连通性探测与国家解析，拼接为一行状态文本
package status

import (
	"context"
	"strings"
	"time"

	"netstatus-bar/internal/logger"
	"netstatus-bar/internal/metrics"
	"netstatus-bar/internal/netinfo"
	"netstatus-bar/internal/probe"
)

type Classifier interface {
	Classify() netinfo.Network
}

type VPN interface {
	Active(ctx context.Context) bool
}

type Prober interface {
	Run(ctx context.Context) probe.Result
}

// CountryResolver 返回国家文本及是否取自缓存
type CountryResolver interface {
	Country(ctx context.Context) (string, bool)
}

// Markers 为各段输出文本，自带尾随空格
type Markers struct {
	Corporate string
	Unknown   string
	VPN       string
}

type Reporter struct {
	Markers    Markers
	classifier Classifier
	vpn        VPN
	prober     Prober
	resolver   CountryResolver
}

func NewReporter(m Markers, c Classifier, v VPN, p Prober, r CountryResolver) *Reporter {
	return &Reporter{Markers: m, classifier: c, vpn: v, prober: p, resolver: r}
}

// 文档注释：计算一次状态行
// 约束：总能返回一行文本；只有探测结果为 OK 时才会调用国家解析。
func (r *Reporter) Run(ctx context.Context) string {
	t0 := time.Now()
	defer func() {
		metrics.RunDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	}()

	network := r.classifier.Classify()
	metrics.NetworkTotal.WithLabelValues(network.String()).Inc()
	vpn := r.vpn.Active(ctx)
	result := r.prober.Run(ctx)

	country, cached := "", false
	if result == probe.Reachable {
		country, cached = r.resolver.Country(ctx)
	}
	line := Format(r.networkMarker(network), r.vpnMarker(vpn), result, country, cached)
	logger.L().Debug("status_line", "network", network.String(), "vpn", vpn, "probe", result.String(), "country", country, "cached", cached, "elapsed_ms", time.Since(t0).Milliseconds())
	return line
}

func (r *Reporter) networkMarker(n netinfo.Network) string {
	switch n {
	case netinfo.Corporate:
		return r.Markers.Corporate
	case netinfo.Unknown:
		return r.Markers.Unknown
	default:
		return ""
	}
}

func (r *Reporter) vpnMarker(active bool) string {
	if active {
		return r.Markers.VPN
	}
	return ""
}

// Format 按固定顺序拼接：网络标记、VPN 标记、国家或连通性文本
// 约束：国家非空时替代连通性文本；缓存的国家后跟一个空格，新查询的国家不带空格；
// 连通性文本自带一个尾随空格。
func Format(network, vpn string, result probe.Result, country string, cached bool) string {
	tail := result.String() + " "
	if country = strings.TrimSpace(country); country != "" {
		tail = country
		if cached {
			tail += " "
		}
	}
	return network + vpn + tail
}
