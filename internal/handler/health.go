package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports service identity and DB/Redis connectivity.
// Redis reports "disabled" when not configured and does not affect the status code.
func Health(appName, version string, db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		if db == nil {
			dbStatus = "error"
		} else if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "connected"
			if rdb.Ping(ctx).Err() != nil {
				redisStatus = "error"
			}
		}

		status := http.StatusOK
		health := "healthy"
		if dbStatus != "connected" || redisStatus == "error" {
			status = http.StatusServiceUnavailable
			health = "unhealthy"
		}

		c.JSON(status, gin.H{
			"status":  health,
			"service": appName,
			"version": version,
			"db":      dbStatus,
			"redis":   redisStatus,
		})
	}
}
