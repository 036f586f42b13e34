package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"unisports/backend/config"
	"unisports/backend/internal/api/handler"
	"unisports/backend/internal/api/middleware"
	"unisports/backend/internal/metrics"
	"unisports/backend/internal/model"
	"unisports/backend/pkg/jwt"
	"unisports/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录注册限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Refresh)
			auth.POST("/register", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 静态目录（登录用户可见）
			catalog := authorized.Group("/catalog")
			{
				catalog.GET("/sports", h.Catalog.ListSports)
				catalog.GET("/time-slots", h.Catalog.ListTimeSlots)
			}

			// 场地设置（只读，维护状态提示用）
			authorized.GET("/settings", h.Settings.Get)

			// 预约模块（学生侧）
			bookings := authorized.Group("/bookings")
			{
				bookings.POST("", middleware.RoleAuth(model.RoleStudent), h.Booking.Create)
				bookings.GET("", middleware.RoleAuth(model.RoleStudent), h.Booking.ListMine)
				bookings.GET("/calendar", middleware.RoleAuth(model.RoleStudent), h.Export.Calendar)
			}

			// 管理员模块
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/bookings", h.Booking.ListAll)
				admin.GET("/bookings/export", h.Export.ExportBookings)
				admin.PUT("/bookings/:id/approve", h.Booking.Approve)
				admin.PUT("/bookings/:id/reject", h.Booking.Reject)

				admin.GET("/students", h.User.ListStudents)
				admin.PUT("/students/:id/blocked", h.User.SetBlocked)

				admin.PUT("/settings", h.Settings.Update)
			}
		}
	}

	return r
}
