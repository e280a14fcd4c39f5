// 包 utils：Redis 连接工具，从配置构建客户端
package utils

import (
	"netstatus-bar/internal/config"
	"netstatus-bar/internal/logger"

	"github.com/redis/go-redis/v9"
)

// OpenRedis：使用地址与密码打开 Redis 客户端；地址为空时返回 nil
func OpenRedis(addr, pass string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// OpenRedisFromConfig：按 REDIS_* 配置打开客户端
func OpenRedisFromConfig(c config.Redis) *redis.Client {
	addr := c.Host + ":" + c.Port
	logger.L().Debug("redis_config", "addr", addr, "db", c.DB)
	return OpenRedis(addr, c.Pass, c.DB)
}
