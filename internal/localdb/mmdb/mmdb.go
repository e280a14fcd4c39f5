// 包 mmdb：MaxMind 格式离线库
// 约束：GeoIP2/GeoLite2/DB-IP 布局使用 geoip2 读取 ISO 国家码；
// 其他布局（如 ipinfo country 库）按顶层 country / country_code 字段解码。
package mmdb

import (
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
	"github.com/oschwald/maxminddb-golang"

	"netstatus-bar/internal/localdb"
)

// Open 根据库元数据中的 DatabaseType 选择读取方式
func Open(path string) (localdb.Closer, error) {
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mmdb: %w", err)
	}
	if isGeoIP2Layout(db.Metadata.DatabaseType) {
		db.Close()
		r, err := geoip2.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open geoip2: %w", err)
		}
		return &GeoIP2Cache{db: r}, nil
	}
	return &RawCache{db: db}, nil
}

func isGeoIP2Layout(t string) bool {
	for _, p := range []string{"GeoIP2", "GeoLite2", "DBIP", "GeoIP-"} {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

type GeoIP2Cache struct {
	db *geoip2.Reader
}

func (c *GeoIP2Cache) Lookup(ip string) (localdb.Location, bool) {
	var zero localdb.Location
	p := net.ParseIP(ip)
	if p == nil {
		return zero, false
	}
	rec, err := c.db.Country(p)
	if err != nil || rec.Country.IsoCode == "" {
		return zero, false
	}
	return localdb.Location{Country: rec.Country.IsoCode, Region: rec.Continent.Code}, true
}

func (c *GeoIP2Cache) Close() error { return c.db.Close() }

type RawCache struct {
	db *maxminddb.Reader
}

type rawRecord struct {
	Country     string `maxminddb:"country"`
	CountryCode string `maxminddb:"country_code"`
}

func (c *RawCache) Lookup(ip string) (localdb.Location, bool) {
	var zero localdb.Location
	p := net.ParseIP(ip)
	if p == nil {
		return zero, false
	}
	var rec rawRecord
	if err := c.db.Lookup(p, &rec); err != nil {
		return zero, false
	}
	country := rec.Country
	if country == "" {
		country = rec.CountryCode
	}
	if country == "" {
		return zero, false
	}
	return localdb.Location{Country: country}, true
}

func (c *RawCache) Close() error { return c.db.Close() }
