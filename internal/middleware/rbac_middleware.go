package middleware

import (
	"context"

	"dayflow/internal/domain"
	"dayflow/internal/shared/apperror"
	"dayflow/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is implemented by rbac.Service.
type RBACService interface {
	RoleOf(ctx context.Context, userID string) (string, error)
	Enforce(req domain.EnforceRequest) (bool, error)
}

// ResolveRole looks up the caller's role and stores it under "role".
func ResolveRole(service RBACService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id_validated")
		if userID == "" {
			abortWith(c, apperror.ErrUnauthorized, nil)
			return
		}

		role, err := service.RoleOf(c.Request.Context(), userID)
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), zap.L()).Error("resolve role failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			abortWith(c, apperror.ErrInternal, nil)
			return
		}

		c.Set("role", role)
		c.Request = c.Request.WithContext(contextutil.WithRole(c.Request.Context(), role))
		c.Next()
	}
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			abortWith(c, apperror.ErrUnauthorized, nil)
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), zap.L()).Error("rbac enforce failed", zap.Error(err))
			abortWith(c, apperror.ErrInternal, nil)
			return
		}

		if !allowed {
			abortWith(c, apperror.ErrForbidden, gin.H{"required": resource + ":" + action})
			return
		}
		c.Next()
	}
}
