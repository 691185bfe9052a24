package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fursa_backend/internal/logger"
	"fursa_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitRecorder - счетчик отклоненных запросов (metrics.Manager)
type RateLimitRecorder interface {
	RecordRateLimited()
}

// RateLimiter - фиксированное окно в redis по клиенту.
// Если redis недоступен, запросы пропускаются.
func RateLimiter(rdb redis.UniversalClient, limit int, window time.Duration, keyPrefix string, recorder RateLimitRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := rateLimitKey(c, keyPrefix)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		defer cancel()

		// INCR и EXPIRE NX в одной транзакции: ключ без TTL не остается
		var incr *redis.IntCmd
		var ttlCmd *redis.DurationCmd
		_, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, window)
			ttlCmd = pipe.TTL(ctx, key)
			return nil
		})
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		count := incr.Val()

		ttl := ttlCmd.Val()
		if ttl < 0 {
			ttl = window
		}

		remaining := limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(ttl.Seconds())))

		if count > int64(limit) {
			if recorder != nil {
				recorder.RecordRateLimited()
			}
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			apperrors.HandleError(c, apperrors.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}

// rateLimitKey - лимитер стоит до AuthMiddleware, поэтому ключ только по IP
func rateLimitKey(c *gin.Context, prefix string) string {
	return fmt.Sprintf("%s:ip:%s", prefix, c.ClientIP())
}
