package payroll

import (
	"dayflow/internal/domain"
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
	logger *zap.Logger,
) {
	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware(jwtSecret))
	payroll.Use(middleware.ExtractUserID())
	payroll.Use(middleware.ResolveRole(rbacService))
	payroll.Use(middleware.ContextLogger(logger))
	{
		payroll.GET("", middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionRead), handler.GetAll)
		payroll.GET("/me", middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionReadOwn), handler.Me)
		payroll.GET("/export",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionExport),
			handler.Export,
		)
	}
}
