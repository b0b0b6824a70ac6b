package profile

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
	profiles := r.Group("/profiles")
	profiles.Use(middleware.AuthMiddleware(jwtSecret))
	profiles.Use(middleware.ExtractUserID())
	profiles.Use(middleware.ResolveRole(rbacService))
	profiles.Use(middleware.ContextLogger(logger))
	{
		profiles.GET("/me",
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionReadOwn),
			handler.Me,
		)
		profiles.PATCH("/me",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionUpdateOwn),
			handler.UpdateMe,
		)
		profiles.GET("",
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionRead),
			handler.GetAll,
		)
		profiles.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		profiles.GET("/:user_id",
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionRead),
			handler.GetByUserID,
		)
		profiles.GET("/:user_id/leave-balance",
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionRead),
			handler.LeaveBalance,
		)
		profiles.PATCH("/:user_id",
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionUpdate),
			handler.Update,
		)
		profiles.DELETE("/:user_id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionDelete),
			handler.Delete,
		)
	}

	balance := r.Group("/leave-balance")
	balance.Use(middleware.AuthMiddleware(jwtSecret))
	balance.Use(middleware.ExtractUserID())
	balance.Use(middleware.ResolveRole(rbacService))
	balance.Use(middleware.ContextLogger(logger))
	{
		balance.GET("/me",
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionReadOwn),
			handler.MyLeaveBalance,
		)
	}
}
