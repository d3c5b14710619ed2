package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pos/backend/internal/infrastructure/cache"
	"github.com/pos/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader is the client-supplied retry deduplication key.
const IdempotencyKeyHeader = "Idempotency-Key"

// DefaultIdempotencyTTL bounds how long a key blocks replays.
const DefaultIdempotencyTTL = 24 * time.Hour

// Idempotency rejects replays of mutating requests that carry an
// Idempotency-Key header. Requests without the header pass through;
// money-movement endpoints should sit behind this so a retried POST
// cannot double-book a payment.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		scoped := c.Request.Method + ":" + c.FullPath() + ":" + key
		first, err := store.MarkProcessed(c.Request.Context(), scoped, ttl)
		if err != nil {
			// Fail open: a store outage must not block payments
			if log != nil {
				log.Error("idempotency store unavailable", zap.Error(err))
			}
			c.Next()
			return
		}
		if !first {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				"DUPLICATE_REQUEST",
				"A request with this idempotency key was already processed",
				GetRequestID(c)))
			return
		}
		c.Next()
	}
}
