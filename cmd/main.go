// 程序入口：读取配置、组装各探测组件，向标准输出打印一行状态文本；任何失败都降级为文本片段，退出码恒为 0
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"netstatus-bar/internal/config"
	"netstatus-bar/internal/localdb"
	"netstatus-bar/internal/localdb/chain"
	"netstatus-bar/internal/localdb/ip2region"
	"netstatus-bar/internal/localdb/mmdb"
	"netstatus-bar/internal/logger"
	"netstatus-bar/internal/metrics"
	"netstatus-bar/internal/netinfo"
	"netstatus-bar/internal/plugins"
	"netstatus-bar/internal/probe"
	"netstatus-bar/internal/resolver"
	"netstatus-bar/internal/shell"
	"netstatus-bar/internal/status"
	"netstatus-bar/internal/store"
	"netstatus-bar/internal/utils"
	"netstatus-bar/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println(version.String())
		return
	}

	config.LoadDotenv()
	l := logger.Setup()
	cfg := config.FromEnv()
	l.Debug("config_loaded", "cache_backend", cfg.CacheBackend, "cache_dir", cfg.CacheDir, "helper", cfg.HelperPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancel()

	exec := shell.Default()
	client := utils.NewHTTPClient(cfg.ConnectTimeout, cfg.HTTPTimeout)

	dnsServer := cfg.DNSServer
	if dnsServer == "" {
		dnsServer = probe.SystemNameserver(cfg.ResolvConf)
	}
	l.Debug("dns_server", "server", dnsServer)
	prober := probe.New(cfg.HelperPath, cfg.CaptiveURL, cfg.CaptiveExpect, cfg.DNSProbeHost, exec, client, probe.NewResolver(dnsServer, cfg.DNSTimeout))

	local, closeLocal := openLocalDB(cfg)
	defer closeLocal()

	specs := plugins.DefaultSpecs(cfg.EgressIPURL)
	if cfg.ProvidersFile != "" {
		loaded, err := plugins.LoadSpecs(cfg.ProvidersFile)
		if err != nil {
			l.Warn("providers_file_error", "path", cfg.ProvidersFile, "err", err)
		} else {
			specs = loaded
		}
	}
	mgr, err := plugins.Build(specs, client, local)
	if err != nil {
		l.Warn("providers_build_error", "err", err)
		mgr, _ = plugins.Build(plugins.DefaultSpecs(cfg.EgressIPURL), client, local)
	}

	st, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		l.Warn("store_open_error", "backend", cfg.CacheBackend, "err", err)
		st, closeStore = store.NewFileStore(cfg.CacheDir), func() error { return nil }
	}
	defer closeStore()

	signer := netinfo.NewSigner(cfg.SignatureIfaces, exec)
	rep := status.NewReporter(
		status.Markers{Corporate: cfg.CorpMarker, Unknown: cfg.UnknownMarker, VPN: cfg.VPNMarker},
		netinfo.NewClassifier(cfg.ResolvConf, cfg.CorpDomain),
		netinfo.NewVPNDetector(cfg.VPNIface, exec),
		prober,
		resolver.New(st, mgr, signer),
	)

	fmt.Println(rep.Run(ctx))

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			l.Warn("metrics_write_error", "path", cfg.MetricsTextfile, "err", err)
		}
	}
}

// openLocalDB 按 GEOIP_DB 与 IP2REGION_DB 组装离线查询链；均未配置或全部打开失败时返回 nil
// 约束：IP2REGION_DB 可写作 "v4路径[,v6路径]"。
func openLocalDB(cfg config.Config) (localdb.Lookuper, func()) {
	l := logger.L()
	var list []localdb.Lookuper
	if cfg.GeoIPDB != "" {
		db, err := mmdb.Open(cfg.GeoIPDB)
		if err != nil {
			l.Warn("geoip_open_error", "path", cfg.GeoIPDB, "err", err)
		} else {
			list = append(list, db)
		}
	}
	if cfg.IP2RegionDB != "" {
		v4, v6, _ := strings.Cut(cfg.IP2RegionDB, ",")
		db, err := ip2region.NewIP2RegionCache(strings.TrimSpace(v4), strings.TrimSpace(v6))
		if err != nil {
			l.Warn("ip2region_open_error", "path", cfg.IP2RegionDB, "err", err)
		} else {
			list = append(list, db)
		}
	}
	if len(list) == 0 {
		return nil, func() {}
	}
	c := chain.NewChainCache(list...)
	l.Debug("localdb_ready", "sources", c.Len())
	return c, func() {
		if err := c.Close(); err != nil {
			l.Debug("localdb_close_error", "err", err)
		}
	}
}
