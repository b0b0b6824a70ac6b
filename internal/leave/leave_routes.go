package leave

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
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(jwtSecret))
	leaves.Use(middleware.ExtractUserID())
	leaves.Use(middleware.ResolveRole(rbacService))
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.GetAll)
		leaves.GET("/stats", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.Stats)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead), handler.GetById)
		leaves.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.POST("/:id/approve",
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionApprove),
			middleware.Idempotency(rdb),
			handler.Approve,
		)
		leaves.POST("/:id/reject",
			middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionApprove),
			middleware.Idempotency(rdb),
			handler.Reject,
		)
	}
}
