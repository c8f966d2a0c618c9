package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	// Key 从请求上下文中提取限流标识
	Key(c *gin.Context) string
	// GetBucket 获取标识对应的令牌桶
	GetBucket(key string) (*ratelimit.Bucket, bool)
	// AddBuckets 注册限流规则
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 令牌桶规则
type BucketRule struct {
	// Key 限流标识, 通常为路由前缀
	Key string
	// FillInterval 令牌补充间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次补充的令牌数
	Quantum int64
}

// Limiter 基础限流器
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}
