package plugins

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"netstatus-bar/internal/localdb"
)

// 文档注释：离线库插件
// 约束：先通过回显服务获取出口 IP，再在本地库链中查询；本地库未配置时不应注册。
type LocalPlugin struct {
	name    string
	echoURL string
	client  *http.Client
	cache   localdb.Lookuper
}

func NewLocal(name, echoURL string, client *http.Client, cache localdb.Lookuper) *LocalPlugin {
	if client == nil {
		client = http.DefaultClient
	}
	return &LocalPlugin{name: name, echoURL: echoURL, client: client, cache: cache}
}

func (p *LocalPlugin) Name() string { return p.name }

func (p *LocalPlugin) Query(ctx context.Context) (string, error) {
	body, err := fetch(ctx, p.client, p.echoURL)
	if err != nil {
		return "", err
	}
	ip := firstLine(body)
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("%w: egress ip %q", ErrInvalidResponse, ip)
	}
	l, ok := p.cache.Lookup(ip)
	if !ok || l.Country == "" {
		return "", ErrNoCountry
	}
	return l.Country, nil
}
