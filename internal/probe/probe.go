package probe

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"netstatus-bar/internal/logger"
	"netstatus-bar/internal/metrics"
	"netstatus-bar/internal/shell"
)

const (
	helperTimeout = 4 * time.Second
	maxBody       = 64 * 1024
)

// DNSChecker 只关心目标名称能否解析
type DNSChecker interface {
	Check(ctx context.Context, host string) error
}

// 文档注释：连通性探测器
// 约束：两种策略互斥；HelperPath 指向可执行文件时只使用辅助程序，否则使用 HTTP 探测 + DNS 兜底。
type Prober struct {
	HelperPath   string
	CaptiveURL   string
	Expect       string
	DNSProbeHost string

	executor shell.Executor
	client   *http.Client
	dns      DNSChecker
}

func New(helperPath, captiveURL, expect, dnsHost string, executor shell.Executor, client *http.Client, dns DNSChecker) *Prober {
	if executor == nil {
		executor = shell.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: 4 * time.Second}
	}
	return &Prober{
		HelperPath:   helperPath,
		CaptiveURL:   captiveURL,
		Expect:       expect,
		DNSProbeHost: dnsHost,
		executor:     executor,
		client:       client,
		dns:          dns,
	}
}

func (p *Prober) Run(ctx context.Context) Result {
	var r Result
	strategy := "http"
	if helperExists(p.HelperPath) {
		strategy = "helper"
		r = p.runHelper(ctx)
	} else {
		r = p.runFallback(ctx)
	}
	metrics.ProbeTotal.WithLabelValues(strategy, r.String()).Inc()
	logger.L().Info("probe_done", "strategy", strategy, "result", r.String())
	return r
}

func helperExists(path string) bool {
	if path == "" {
		return false
	}
	st, err := os.Stat(path)
	if err != nil {
		return false
	}
	return st.Mode().IsRegular() && st.Mode().Perm()&0o111 != 0
}

func (p *Prober) runHelper(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, helperTimeout)
	defer cancel()
	res, err := p.executor.Exec(ctx, p.HelperPath)
	if err != nil {
		logger.L().Warn("probe_helper_error", "path", p.HelperPath, "err", err)
		return Unreachable
	}
	logger.L().Debug("probe_helper_exit", "code", res.ExitCode)
	return FromExitCode(res.ExitCode)
}

func (p *Prober) runFallback(ctx context.Context) Result {
	if p.webOK(ctx) {
		return Reachable
	}
	if p.dns == nil {
		return Unreachable
	}
	if err := p.dns.Check(ctx, p.DNSProbeHost); err != nil {
		logger.L().Debug("probe_dns_fail", "host", p.DNSProbeHost, "err", err)
		return Unreachable
	}
	return WebBlocked
}

// webOK：捕获门户检测页面包含期望文本即视为可达；状态码不参与判定
func (p *Prober) webOK(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.CaptiveURL, nil)
	if err != nil {
		logger.L().Debug("probe_web_request_error", "err", err)
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		logger.L().Debug("probe_web_fail", "url", p.CaptiveURL, "err", err)
		return false
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		logger.L().Debug("probe_web_read_error", "err", err)
		return false
	}
	return strings.Contains(string(body), p.Expect)
}
