package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"unisports/backend/internal/metrics"
)

// Metrics HTTP 请求耗时采集中间件
// 以路由模板（c.FullPath）为标签，避免路径参数导致标签爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
