package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"

	idempotencyLockTTL = 30 * time.Second
	maxIdempotencyKey  = 255
)

type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyKey scopes a client key to the caller and route so two
// accounts can never replay each other's responses.
func IdempotencyKey(c *gin.Context, clientKey string) string {
	return "idempotency:" + GetUserID(c).String() + ":" + c.FullPath() + ":" + clientKey
}

// Idempotency replays the first completed response for a repeated
// Idempotency-Key. Requests without the header, or with a nil client, pass
// straight through. Redis failures fall back to normal processing.
func Idempotency(rdb *redis.Client, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := c.GetHeader(IdempotencyKeyHeader)
		if rdb == nil || clientKey == "" {
			c.Next()
			return
		}
		if len(clientKey) > maxIdempotencyKey {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "idempotency key too long"})
			return
		}

		ctx := c.Request.Context()
		key := IdempotencyKey(c, clientKey)

		cached, err := rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var resp storedResponse
			if json.Unmarshal(cached, &resp) == nil {
				c.Header(ReplayedHeader, "true")
				c.Data(resp.Status, "application/json; charset=utf-8", resp.Body)
				c.Abort()
				return
			}
		case !errors.Is(err, redis.Nil):
			log.Warn("idempotency lookup failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		locked, err := rdb.SetNX(ctx, key+":lock", "1", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !locked {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "a request with this idempotency key is in progress"})
			return
		}
		defer rdb.Del(ctx, key+":lock")

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		// Server errors are not cached so the client can retry.
		status := w.Status()
		if status >= http.StatusInternalServerError || w.body.Len() == 0 {
			return
		}
		data, err := json.Marshal(storedResponse{Status: status, Body: w.body.Bytes()})
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, key, data, ttl).Err(); err != nil {
			log.Warn("idempotency store failed", zap.String("key", key), zap.Error(err))
		}
	}
}
