package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldoffice-hris/config"
	"fieldoffice-hris/internal/api/handler"
	"fieldoffice-hris/internal/api/middleware"
	"fieldoffice-hris/pkg/redis"
)

// maxBodyBytes 请求体上限（批量导入为最大请求，2MB 足够数千行）
const maxBodyBytes = 2 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 公共员工目录（只读，限流）
		directory := v1.Group("/directory")
		directory.Use(middleware.RateLimit(rdb, cfg.Directory.RateLimit, cfg.Directory.RateWindow))
		{
			directory.GET("", h.Directory.SearchDirectory)
			directory.GET("/suggest", h.Directory.Suggest)
		}

		// 管理端（鉴权由外部网关负责，见部署说明）
		admin := v1.Group("")
		{
			// 员工生命周期
			employees := admin.Group("/employees")
			{
				employees.GET("", h.Employee.ListEmployees)
				employees.GET("/facets", h.Employee.GetFacets)
				employees.POST("", h.Employee.HireEmployee)
				employees.POST("/import", h.Employee.ImportEmployees)
				employees.GET("/:id", h.Employee.GetEmployee)
				employees.PUT("/:id", h.Employee.UpdateEmployee)
				employees.DELETE("/:id", h.Employee.DeleteEmployee)
				employees.POST("/:id/resign", h.Employee.ResignEmployee)
				employees.POST("/:id/archive", h.Employee.ArchiveEmployee)
				employees.POST("/:id/restore", h.Employee.RestoreEmployee)
				employees.GET("/:id/archivability", h.Employee.GetArchivability)
			}

			// 历史投影
			admin.GET("/dashboard", h.History.GetDashboard)
			history := admin.Group("/history")
			{
				history.GET("", h.History.ListHistory)
				history.GET("/stats", h.History.GetHistoryStats)
				history.GET("/export", h.History.ExportHistory)
			}

			// 科室
			sections := admin.Group("/sections")
			{
				sections.GET("", h.Section.ListSections)
				sections.POST("", h.Section.CreateSection)
				sections.PUT("/:id", h.Section.UpdateSection)
				sections.POST("/:id/archive", h.Section.ArchiveSection)
				sections.POST("/:id/restore", h.Section.RestoreSection)
			}

			// 聘用状态
			statuses := admin.Group("/employment-statuses")
			{
				statuses.GET("", h.EmploymentStatus.ListStatuses)
				statuses.POST("", h.EmploymentStatus.CreateStatus)
				statuses.PUT("/:id", h.EmploymentStatus.UpdateStatus)
				statuses.POST("/:id/archive", h.EmploymentStatus.ArchiveStatus)
				statuses.POST("/:id/restore", h.EmploymentStatus.RestoreStatus)
			}
		}
	}

	return r
}
