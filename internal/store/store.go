// 包 store：国家缓存的存取抽象；文件为默认后端，可切换到 Redis 或 PostgreSQL
package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"netstatus-bar/internal/config"
	"netstatus-bar/internal/logger"
	"netstatus-bar/internal/migrate"
	"netstatus-bar/internal/utils"
)

// ErrMiss 表示尚无缓存的国家值
var ErrMiss = errors.New("store: no cached country")

// Entry 为一次查询的结果及其所属连接签名
// 约束：Country 原样保存；仅当 Signature 与当前签名相同时 Country 可信。
type Entry struct {
	Signature string
	Country   string
}

type Store interface {
	Get(ctx context.Context) (Entry, error)
	Set(ctx context.Context, e Entry) error
}

// Clearer 由支持删除缓存的后端实现
type Clearer interface {
	Clear(ctx context.Context) error
}

// Open 按 CACHE_BACKEND 打开后端；返回的 close 函数总是非 nil
func Open(ctx context.Context, cfg config.Config) (Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.CacheBackend {
	case "", "file":
		return NewFileStore(cfg.CacheDir), noop, nil
	case "redis":
		rc := utils.OpenRedisFromConfig(cfg.Redis)
		if err := rc.Ping(ctx).Err(); err != nil {
			rc.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		logger.L().Debug("redis_ping_ok")
		return NewRedisStore(rc, hostKey(), cfg.Redis.TTL), rc.Close, nil
	case "postgres":
		db, err := utils.OpenPostgres(utils.BuildPostgresDSN(cfg.Postgres))
		if err != nil {
			return nil, noop, fmt.Errorf("postgres open: %w", err)
		}
		if err := migrate.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("postgres schema: %w", err)
		}
		return NewPGStore(db, hostKey()), db.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

// hostKey 在共享后端中区分不同主机
func hostKey() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "localhost"
	}
	return h
}
