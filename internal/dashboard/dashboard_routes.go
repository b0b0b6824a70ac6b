package dashboard

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
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(jwtSecret))
	dashboard.Use(middleware.ExtractUserID())
	dashboard.Use(middleware.ResolveRole(rbacService))
	dashboard.Use(middleware.ContextLogger(logger))
	{
		dashboard.GET("/stats", middleware.RBACAuthorize(rbacService, domain.ResourceDashboard, domain.ActionRead), handler.Stats)
		dashboard.GET("/activities", middleware.RBACAuthorize(rbacService, domain.ResourceDashboard, domain.ActionRead), handler.Activities)
	}
}
