// 包 utils：外部探测与查询共用的 HTTP 客户端
package utils

import (
	"net"
	"net/http"
	"time"

	"netstatus-bar/internal/logger"
)

// NewHTTPClient：构建带连接超时与总超时的客户端
// 约束：不复用连接（单次进程，无需连接池）；重定向按标准库默认跟随；出站请求统一经 logger.Transport 记录。
func NewHTTPClient(connect, total time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: connect}).DialContext,
		TLSHandshakeTimeout: total,
		DisableKeepAlives:   true,
	}
	return &http.Client{
		Timeout:   total,
		Transport: &logger.Transport{Base: tr},
	}
}
