package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edu-workload/backend/config"
	"edu-workload/backend/internal/api/handler"
	"edu-workload/backend/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(8 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 会话模块
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", h.Session.CreateSession)
			sessions.GET("/:id", h.Session.GetSession)
			sessions.DELETE("/:id", h.Session.DeleteSession)

			// 分班指派模块
			assignments := sessions.Group("/:id/assignments")
			{
				assignments.GET("", h.Assignment.Get)
				assignments.POST("/run", h.Assignment.Run)
				assignments.POST("/reset", h.Assignment.Reset)
				assignments.POST("/overrides", h.Assignment.ApplyOverrides)
				assignments.GET("/candidates", h.Assignment.ListCandidates)
			}

			// 年度工作量模块
			sessions.GET("/:id/workload/annual", h.Workload.GetAnnual)

			// 导出模块
			export := sessions.Group("/:id/export")
			{
				export.GET("/assignments", h.Export.ExportAssignments)
				export.GET("/annual", h.Export.ExportAnnual)
			}
		}
	}

	return r
}
