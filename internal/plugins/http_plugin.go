package plugins

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxBody = 4096

var (
	ErrInvalidResponse = errors.New("invalid response")
	ErrNoCountry       = errors.New("no country in response")
)

type Format string

const (
	FormatPlain Format = "plain"
	FormatCSV   Format = "csv"
)

// 文档注释：在线国家查询插件
// 约束：plain 取首个非空行；csv 取首行第 Field 个逗号分隔字段（从 1 计）。
type HTTPPlugin struct {
	name    string
	url     string
	format  Format
	field   int
	timeout time.Duration
	client  *http.Client
}

func NewHTTP(name, url string, format Format, field int, timeout time.Duration, client *http.Client) *HTTPPlugin {
	if client == nil {
		client = &http.Client{Timeout: 4 * time.Second}
	}
	return &HTTPPlugin{name: name, url: url, format: format, field: field, timeout: timeout, client: client}
}

func (h *HTTPPlugin) Name() string { return h.name }

func (h *HTTPPlugin) Query(ctx context.Context) (string, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	body, err := fetch(ctx, h.client, h.url)
	if err != nil {
		return "", err
	}
	var country string
	switch h.format {
	case FormatCSV:
		country = csvField(body, h.field)
	default:
		country = firstLine(body)
	}
	if country == "" {
		return "", ErrNoCountry
	}
	return country, nil
}

// fetch 发起 GET 并经 Classify 过滤；非 2xx、传输错误与无效响应都作为错误返回
func fetch(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "netstatus-bar")
	req.Header.Set("Accept", "text/plain, text/csv")
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	v := Classify(string(b))
	if !v.Valid {
		return "", fmt.Errorf("%w: %s", ErrInvalidResponse, v.Reason)
	}
	return v.Body, nil
}

func firstLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func csvField(body string, n int) string {
	line := firstLine(body)
	if line == "" || n < 1 {
		return ""
	}
	fields := strings.Split(line, ",")
	if len(fields) < n {
		return ""
	}
	return strings.Trim(strings.TrimSpace(fields[n-1]), `"`)
}
