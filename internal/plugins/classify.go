package plugins

import (
	"regexp"
	"strings"
)

// Verdict 为响应体分类结果：Valid 时 Body 可用，否则 Reason 说明丢弃原因
type Verdict struct {
	Valid  bool
	Body   string
	Reason string
}

var (
	tagOpener     = regexp.MustCompile(`<[A-Za-z!/]`)
	rateLimitHint = []string{"rate limit", "ratelimit", "rate-limit", "too many requests", "try again"}
)

// 文档注释：响应体检查
// 约束：与传输层解耦；命中 DOCTYPE、HTML 标签或限流提示（不区分大小写）即判为无效，
// 调用方必须把无效响应当作请求失败处理。
func Classify(body string) Verdict {
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<!doctype") {
		return Verdict{Reason: "doctype"}
	}
	if tagOpener.MatchString(body) {
		return Verdict{Reason: "html"}
	}
	for _, h := range rateLimitHint {
		if strings.Contains(lower, h) {
			return Verdict{Reason: "rate_limit"}
		}
	}
	return Verdict{Valid: true, Body: body}
}
