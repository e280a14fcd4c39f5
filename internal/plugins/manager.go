package plugins

import (
	"context"
	"errors"
	"time"

	"netstatus-bar/internal/logger"
	"netstatus-bar/internal/metrics"
)

// 文档注释：国家查询插件（统一契约）
// 约束：Query 成功时返回非空、已去除首尾空白的国家文本；失败一律返回 error，不重试。
type Plugin interface {
	Name() string
	Query(ctx context.Context) (string, error)
}

// 文档注释：插件管理器
// 约束：按注册顺序依次尝试，首个成功即停止；调用方无需关心具体来源。
type Manager struct {
	ps []Plugin
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Register(p Plugin) {
	m.ps = append(m.ps, p)
	logger.L().Debug("plugin_registered", "name", p.Name(), "position", len(m.ps))
}

func (m *Manager) Plugins() []Plugin { return m.ps }

// Resolve 返回国家与来源插件名；全部失败时均为空串
func (m *Manager) Resolve(ctx context.Context) (string, string) {
	for _, p := range m.ps {
		if ctx.Err() != nil {
			logger.L().Debug("plugin_resolve_cancelled", "err", ctx.Err())
			return "", ""
		}
		t0 := time.Now()
		metrics.PluginRequestsTotal.WithLabelValues(p.Name()).Inc()
		country, err := p.Query(ctx)
		metrics.PluginDurationMs.WithLabelValues(p.Name()).Observe(float64(time.Since(t0).Milliseconds()))
		if err != nil {
			reason := failReason(err)
			metrics.PluginFailTotal.WithLabelValues(p.Name(), reason).Inc()
			logger.L().Info("plugin_query_fail", "name", p.Name(), "reason", reason, "err", err)
			continue
		}
		metrics.PluginSuccessTotal.WithLabelValues(p.Name()).Inc()
		logger.L().Debug("plugin_query_ok", "name", p.Name(), "country", country)
		return country, p.Name()
	}
	return "", ""
}

func failReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidResponse):
		return "invalid"
	case errors.Is(err, ErrNoCountry):
		return "empty"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
