// 包 logger：出站 HTTP 日志，记录每次外部请求的方法、主机、状态、字节数与耗时
package logger

import (
	"log/slog"
	"net/http"
	"time"
)

// Transport 包装 RoundTripper；只记录元数据，不读取请求或响应体
type Transport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	l := t.Logger
	if l == nil {
		l = L()
	}
	start := time.Now()
	resp, err := base.RoundTrip(r)
	dur := time.Since(start)
	if err != nil {
		l.Debug("http_out_error",
			"method", r.Method,
			"host", r.URL.Host,
			"duration_ms", dur.Milliseconds(),
			"err", err,
		)
		return nil, err
	}
	l.Debug("http_out",
		"method", r.Method,
		"host", r.URL.Host,
		"path", r.URL.Path,
		"status", resp.StatusCode,
		"bytes", resp.ContentLength,
		"duration_ms", dur.Milliseconds(),
	)
	return resp, nil
}
