package attendance

import (
	"dayflow/internal/domain"
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb redis.Cmdable,
	jwtSecret string,
	logger *zap.Logger,
) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware(jwtSecret))
	attendance.Use(middleware.ExtractUserID())
	attendance.Use(middleware.ResolveRole(rbacService))
	attendance.Use(middleware.ContextLogger(logger))
	{
		attendance.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionRead), handler.GetAll)
		attendance.GET("/today", middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionRead), handler.Today)
		attendance.POST("/check-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionCreate),
			middleware.Idempotency(rdb),
			handler.CheckIn,
		)
		attendance.POST("/check-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionCreate),
			middleware.Idempotency(rdb),
			handler.CheckOut,
		)
		attendance.PUT("/manual",
			middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionUpdate),
			handler.Manual,
		)
	}
}
