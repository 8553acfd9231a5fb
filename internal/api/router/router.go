package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stagelink/backend/config"
	"stagelink/backend/internal/api/handler"
	"stagelink/backend/internal/api/middleware"
	"stagelink/backend/internal/model"
	"stagelink/backend/pkg/jwt"
	"stagelink/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 职能角色：教师/秘书/管理员（教师的秘书职能在 Handler 层细化）
	staffRoles := []string{model.RoleSupervisor, model.RoleSecretary, model.RoleAdmin}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录与注册限流）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register/student", h.Auth.RegisterStudent)
			auth.POST("/register/company", h.Auth.RegisterCompany)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.POST("/auth/change-password", h.Auth.ChangePassword)

			// 学生模块
			students := authorized.Group("/students")
			{
				students.GET("/me", middleware.RoleAuth(model.RoleStudent), h.Student.GetMe)
				students.PUT("/me", middleware.RoleAuth(model.RoleStudent), h.Student.UpdateMe)
				students.GET("/visible", middleware.RoleAuth(model.RoleCompany), h.Student.ListVisible)
				students.GET("", middleware.RoleAuth(staffRoles...), h.Student.List)
				students.GET("/:id", middleware.RoleAuth(staffRoles...), h.Student.Get)
				students.PUT("/:id", middleware.RoleAuth(staffRoles...), h.Student.Update)
				students.POST("/:id/insurance", middleware.RoleAuth(staffRoles...), h.Student.ValidateInsurance)
			}

			// 企业模块
			companies := authorized.Group("/companies")
			{
				companies.GET("/me", middleware.RoleAuth(model.RoleCompany), h.Company.GetMe)
				companies.PUT("/me", middleware.RoleAuth(model.RoleCompany), h.Company.UpdateMe)
				companies.GET("/me/stats", middleware.RoleAuth(model.RoleCompany), h.Company.GetMyStats)
				companies.GET("", middleware.RoleAuth(staffRoles...), h.Company.List)
				companies.GET("/:id", middleware.RoleAuth(staffRoles...), h.Company.Get)
			}

			// 机会模块
			offers := authorized.Group("/offers")
			{
				offers.GET("", middleware.RoleAuth(model.RoleStudent), h.Offer.ListVisible)
				offers.GET("/mine", middleware.RoleAuth(model.RoleCompany), h.Offer.ListMine)
				offers.GET("/pending", middleware.RoleAuth(model.RoleSupervisor, model.RoleAdmin), h.Offer.ListPendingReview)
				offers.GET("/:id", h.Offer.Get)
				offers.POST("", middleware.RoleAuth(model.RoleCompany), h.Offer.Create)
				offers.PUT("/:id", middleware.RoleAuth(model.RoleCompany), h.Offer.Update)
				offers.PUT("/:id/visibility", middleware.RoleAuth(model.RoleCompany), h.Offer.SetVisibility)
				offers.POST("/:id/review", middleware.RoleAuth(model.RoleSupervisor, model.RoleAdmin), h.Offer.Review)
				offers.GET("/:id/applications", middleware.RoleAuth(model.RoleCompany), h.Application.ListForOffer)
			}

			// 申请模块
			applications := authorized.Group("/applications")
			{
				applications.POST("", middleware.RoleAuth(model.RoleStudent), h.Application.Submit)
				applications.GET("/mine", middleware.RoleAuth(model.RoleStudent), h.Application.ListMine)
				applications.GET("/pending", middleware.RoleAuth(model.RoleSupervisor, model.RoleAdmin), h.Application.ListPendingValidation)
				applications.GET("/:id", h.Application.Get)
				applications.POST("/:id/withdraw", middleware.RoleAuth(model.RoleStudent), h.Application.Withdraw)
				applications.POST("/:id/company-decision", middleware.RoleAuth(model.RoleCompany), h.Application.CompanyDecide)
				applications.POST("/:id/supervisor-decision", middleware.RoleAuth(model.RoleSupervisor, model.RoleAdmin), h.Application.SupervisorDecide)
			}

			// 报酬标准模块（查询公开给已认证用户，维护限秘书/管理员）
			scales := authorized.Group("/scales")
			{
				scales.GET("", h.Scale.List)
				scales.POST("", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Scale.Create)
				scales.PUT("/:id", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Scale.Update)
				scales.DELETE("/:id", middleware.RoleAuth(model.RoleSecretary, model.RoleAdmin), h.Scale.Delete)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.CountUnread)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			// 统计模块
			stats := authorized.Group("/stats")
			{
				stats.GET("/dashboard", middleware.RoleAuth(staffRoles...), h.Stats.Dashboard)
			}

			// 账户管理模块
			admin := authorized.Group("/admin")
			{
				admin.POST("/students", middleware.RoleAuth(staffRoles...), h.Admin.CreateStudent)
				admin.POST("/supervisors", middleware.RoleAuth(staffRoles...), h.Admin.CreateSupervisor)
				admin.POST("/secretaries", middleware.RoleAuth(staffRoles...), h.Admin.CreateSecretary)
				admin.GET("/supervisors", middleware.RoleAuth(staffRoles...), h.Admin.ListSupervisors)
				admin.GET("/secretaries", middleware.RoleAuth(staffRoles...), h.Admin.ListSecretaries)
				admin.PUT("/secretaries/:id/leave", middleware.RoleAuth(model.RoleAdmin), h.Admin.SetSecretaryLeave)
				admin.PUT("/supervisors/:id/secretary-rights", middleware.RoleAuth(model.RoleAdmin), h.Admin.SetSupervisorSecretaryRights)
				admin.PUT("/companies/:id/active", middleware.RoleAuth(staffRoles...), h.Admin.SetCompanyActive)
				admin.POST("/archive", middleware.RoleAuth(model.RoleAdmin), h.Stats.RunArchive)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/placements", middleware.RoleAuth(staffRoles...), h.Export.ExportPlacements)
				export.GET("/placements/calendar", middleware.RoleAuth(staffRoles...), h.Export.ExportPlacementCalendar)
			}
		}
	}

	return r
}
