package ip2region

import (
	"net"
	"strings"

	"github.com/lionsoul2014/ip2region/binding/golang/xdb"

	"netstatus-bar/internal/localdb"
)

// IP2RegionCache 按地址族选择 v4/v6 xdb；国家字段为库内原文（如“中国”）
type IP2RegionCache struct {
	v4 *xdb.Searcher
	v6 *xdb.Searcher
}

func NewIP2RegionCache(v4Path, v6Path string) (*IP2RegionCache, error) {
	c := &IP2RegionCache{}
	var err error
	if v4Path != "" {
		if c.v4, err = xdb.NewWithFileOnly(xdb.IPv4, v4Path); err != nil {
			return nil, err
		}
	}
	if v6Path != "" {
		if c.v6, err = xdb.NewWithFileOnly(xdb.IPv6, v6Path); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (c *IP2RegionCache) Lookup(ip string) (localdb.Location, bool) {
	var zero localdb.Location
	p := net.ParseIP(ip)
	if p == nil {
		return zero, false
	}
	s := c.v6
	if p.To4() != nil {
		s = c.v4
	}
	if s == nil {
		return zero, false
	}
	region, err := s.SearchByStr(ip)
	if err != nil || region == "" {
		return zero, false
	}
	return parseRegion(region), true
}

func (c *IP2RegionCache) Close() error {
	if c.v4 != nil {
		c.v4.Close()
	}
	if c.v6 != nil {
		c.v6.Close()
	}
	return nil
}

// parseRegion 解析 “国家|区域|省份|城市|ISP”；0 与 unknown 视为空
func parseRegion(s string) localdb.Location {
	parts := strings.Split(s, "|")
	var l localdb.Location
	if len(parts) > 0 {
		l.Country = safe(parts[0])
	}
	if len(parts) > 1 {
		l.Region = safe(parts[1])
	}
	if len(parts) > 2 {
		l.Province = safe(parts[2])
	}
	if len(parts) > 3 {
		l.City = safe(parts[3])
	}
	if len(parts) > 4 {
		l.ISP = safe(parts[4])
	}
	return l
}

func safe(s string) string {
	if s == "0" || s == "" || strings.EqualFold(s, "unknown") {
		return ""
	}
	return s
}
