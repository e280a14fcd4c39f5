// 包 config：从环境变量读取运行配置；未设置或解析失败时回退到内置默认值
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// 文档注释：Redis 缓存后端连接参数
type Redis struct {
	Host string
	Port string
	Pass string
	DB   int
	TTL  time.Duration
}

// 文档注释：Postgres 缓存后端连接参数
type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
}

// 文档注释：一次状态行计算所需的全部配置
// 约束：字段均有默认值，FromEnv 永不失败；数值类字段非法时静默回退。
type Config struct {
	ResolvConf      string
	CorpDomain      string
	CorpMarker      string
	UnknownMarker   string
	VPNIface        string
	VPNMarker       string
	SignatureIfaces []string

	HelperPath     string
	CaptiveURL     string
	CaptiveExpect  string
	DNSProbeHost   string
	DNSServer      string
	ConnectTimeout time.Duration
	HTTPTimeout    time.Duration
	DNSTimeout     time.Duration

	CacheBackend string
	CacheDir     string
	Redis        Redis
	Postgres     Postgres

	ProvidersFile string
	GeoIPDB       string
	IP2RegionDB   string
	EgressIPURL   string

	RunTimeout      time.Duration
	MetricsTextfile string
}

// LoadDotenv 依次加载工作目录与用户配置目录下的 .env；已存在的环境变量不会被覆盖
func LoadDotenv() {
	_ = godotenv.Load(".env")
	if home, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(home, ".config", "netstatus-bar", ".env"))
	}
}

func FromEnv() Config {
	return Config{
		ResolvConf:      str("RESOLV_CONF", "/etc/resolv.conf"),
		CorpDomain:      str("CORP_DOMAIN", "cisco.com"),
		CorpMarker:      str("CORP_MARKER", ".:I:.:I:. "),
		UnknownMarker:   str("UNKNOWN_MARKER", "Unknown connection "),
		VPNIface:        str("VPN_IFACE", "utun0"),
		VPNMarker:       str("VPN_MARKER", "VPN "),
		SignatureIfaces: list("SIGNATURE_IFACES", []string{"en0", "en1", "utun0"}),

		HelperPath:     str("HELPER_PATH", "/usr/local/bin/inet-check"),
		CaptiveURL:     str("CAPTIVE_URL", "http://captive.apple.com/hotspot-detect.html"),
		CaptiveExpect:  str("CAPTIVE_EXPECT", "Success"),
		DNSProbeHost:   str("DNS_PROBE_HOST", "www.apple.com"),
		DNSServer:      os.Getenv("DNS_SERVER"),
		ConnectTimeout: duration("CONNECT_TIMEOUT", 2*time.Second),
		HTTPTimeout:    duration("HTTP_TIMEOUT", 4*time.Second),
		DNSTimeout:     duration("DNS_TIMEOUT", 4*time.Second),

		CacheBackend: strings.ToLower(str("CACHE_BACKEND", "file")),
		CacheDir:     str("CACHE_DIR", os.TempDir()),
		Redis: Redis{
			Host: str("REDIS_HOST", "127.0.0.1"),
			Port: str("REDIS_PORT", "6379"),
			Pass: os.Getenv("REDIS_PASS"),
			DB:   integer("REDIS_DB", 0),
			TTL:  duration("REDIS_TTL", 0),
		},
		Postgres: Postgres{
			Host:     str("PG_HOST", "localhost"),
			Port:     str("PG_PORT", "5432"),
			User:     str("PG_USER", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			DB:       str("PG_DB", "netstatus"),
			SSLMode:  str("PG_SSLMODE", "disable"),
		},

		ProvidersFile: os.Getenv("PROVIDERS_FILE"),
		GeoIPDB:       os.Getenv("GEOIP_DB"),
		IP2RegionDB:   os.Getenv("IP2REGION_DB"),
		EgressIPURL:   str("EGRESS_IP_URL", "https://api.ipify.org"),

		RunTimeout:      duration("RUN_TIMEOUT", 15*time.Second),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
	}
}

func str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// duration 同时接受 Go 时长写法（"4s"）与纯秒数（"4"）
func duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func list(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
