package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency shields the decision endpoint from duplicate POSTs: a replay
// with the same Idempotency-Key returns the cached outcome, and a concurrent
// duplicate is rejected while the first is still in flight.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "success", "data": cachedRes})
			return
		}

		// Short lock expiry so a crashed process releases it on its own
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()

		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "Your request is still being processed, please wait.",
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
