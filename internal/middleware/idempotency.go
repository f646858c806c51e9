package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-tenure/internal/shared/apperror"
	"go-tenure/internal/shared/contextutil"
	"go-tenure/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyKeyHeader      = "Idempotency-Key"
	IdempotencyReplayedHeader = "Idempotent-Replayed"

	idempotencyTTL     = 24 * time.Hour
	idempotencyLockTTL = 30 * time.Second
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func idempotencyCacheKey(c *gin.Context, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), c.ClientIP(), key)
}

// Idempotency replays the stored 2xx response of an earlier POST that carried
// the same Idempotency-Key from the same client. A nil client disables it.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyKeyHeader)
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L().Named("middleware.idempotency"))

		cacheKey := idempotencyCacheKey(c, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cached cachedResponse
			if jsonErr := json.Unmarshal(val, &cached); jsonErr == nil {
				c.Header(IdempotencyReplayedHeader, "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
			log.Warn("discarding unreadable idempotency entry", zap.String("key", cacheKey))
		} else if !errors.Is(err, redis.Nil) {
			log.Error("idempotency lookup failed, serving request without it", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Error("idempotency lock failed, serving request without it", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			httpErr := apperror.ToHTTP(apperror.ErrRequestInProgress)
			response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message)
			return
		}
		defer rdb.Del(ctx, lockKey)

		rec := &bodyRecorder{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}

		payload, err := json.Marshal(cachedResponse{Status: status, Body: rec.buf.Bytes()})
		if err != nil {
			log.Error("encode idempotent response failed", zap.Error(err))
			return
		}
		if err := rdb.Set(ctx, cacheKey, string(payload), idempotencyTTL).Err(); err != nil {
			log.Error("store idempotent response failed", zap.Error(err))
		}
	}
}
