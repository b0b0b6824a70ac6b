package middleware

import (
	"dayflow/internal/domain"
	"dayflow/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

func ExtractUserID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, exists := ctx.Get("user_id")
		if !exists {
			abortWith(ctx, apperror.ErrUnauthorized, nil)
			return
		}

		userIDStr, ok := userID.(string)
		if !ok || userIDStr == "" {
			abortWith(ctx, ErrInvalidToken, nil)
			return
		}

		ctx.Set("user_id_validated", userIDStr)
		ctx.Next()
	}
}

// CurrentActor returns the caller resolved by ExtractUserID and ResolveRole.
func CurrentActor(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID: c.GetString("user_id_validated"),
		Role:   c.GetString("role"),
	}
}
