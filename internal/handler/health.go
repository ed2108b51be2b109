package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports postgres and redis connectivity for liveness probes.
// Either dependency failing flips the response to 503; the body names the
// broken one without leaking DSNs or addresses.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := gin.H{}
		healthy := true

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["db"] = "error"
			healthy = false
		} else {
			checks["db"] = "connected"
		}

		if rdb.Ping(ctx).Err() != nil {
			checks["redis"] = "error"
			healthy = false
		} else {
			checks["redis"] = "connected"
		}

		checks["ok"] = healthy
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, checks)
	}
}
