// 包 resolver：按连接签名缓存出口国家，签名变化时才重新查询提供方
package resolver

import (
	"context"
	"errors"

	"netstatus-bar/internal/logger"
	"netstatus-bar/internal/metrics"
	"netstatus-bar/internal/store"
)

// Lookup 按顺序尝试各提供方，返回国家与来源名；全部失败时均为空串
type Lookup interface {
	Resolve(ctx context.Context) (string, string)
}

type Signer interface {
	Signature(ctx context.Context) string
}

// Outcome 记录本次解析走的分支，供日志与测试断言
type Outcome string

const (
	Hit   Outcome = "hit"
	Miss  Outcome = "miss"
	Stale Outcome = "stale"
	Error Outcome = "error"
)

type Resolver struct {
	store  store.Store
	lookup Lookup
	signer Signer
}

func New(s store.Store, lookup Lookup, signer Signer) *Resolver {
	return &Resolver{store: s, lookup: lookup, signer: signer}
}

// 文档注释：返回国家文本及是否来自缓存
// 约束：签名一致时直接返回缓存原文且不发起任何提供方请求；
// 否则重新查询并覆盖签名与国家两项（国家为空也写入）；本次运行被取消时不写入。
// 缓存读取失败按未命中处理，写入失败只记录，不影响本次结果。
func (r *Resolver) Country(ctx context.Context) (string, bool) {
	sig := r.signer.Signature(ctx)
	e, err := r.store.Get(ctx)
	outcome := Stale
	switch {
	case errors.Is(err, store.ErrMiss):
		outcome = Miss
	case err != nil:
		outcome = Error
		logger.L().Warn("cache_read_error", "err", err)
	case e.Signature == sig:
		metrics.CacheLookupsTotal.WithLabelValues(string(Hit)).Inc()
		logger.L().Debug("cache_hit", "signature", sig, "country", e.Country)
		return e.Country, true
	}
	metrics.CacheLookupsTotal.WithLabelValues(string(outcome)).Inc()
	logger.L().Debug("cache_refresh", "outcome", outcome, "signature", sig, "cached_signature", e.Signature)

	country, source := r.lookup.Resolve(ctx)
	if ctx.Err() != nil {
		logger.L().Warn("country_resolve_cancelled", "err", ctx.Err())
		return "", false
	}
	if err := r.store.Set(ctx, store.Entry{Signature: sig, Country: country}); err != nil {
		metrics.CacheWriteErrorsTotal.Inc()
		logger.L().Warn("cache_write_error", "err", err)
	}
	logger.L().Info("country_resolved", "country", country, "source", source)
	return country, false
}
