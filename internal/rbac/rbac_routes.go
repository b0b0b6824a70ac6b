package rbac

import (
	"dayflow/internal/domain"
	"dayflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService Service,
	jwtSecret string,
	logger *zap.Logger,
) {
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware(jwtSecret))
	roles.Use(middleware.ExtractUserID())
	roles.Use(middleware.ResolveRole(rbacService))
	roles.Use(middleware.ContextLogger(logger))
	{
		roles.GET("/me",
			middleware.RBACAuthorize(rbacService, domain.ResourceRole, domain.ActionReadOwn),
			handler.Me,
		)
		roles.PUT("/:user_id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceRole, domain.ActionUpdate),
			handler.Assign,
		)
	}
}
