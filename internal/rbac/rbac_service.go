package rbac

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dayflow/internal/domain"
	rbacerrors "dayflow/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const roleCacheTTL = 5 * time.Minute

func RoleCacheKey(userID string) string {
	return fmt.Sprintf("rbac:role:%s", userID)
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	RoleOf(ctx context.Context, userID string) (string, error)
	Enforce(req domain.EnforceRequest) (bool, error)
	AssignRole(ctx context.Context, actorID, userID, role string) error
}

// The enforcer's policy is fixed at construction and only read afterwards.
type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	rdb      redis.Cmdable
	group    singleflight.Group
	logger   *zap.Logger
}

// NewService wires the role lookup. rdb may be nil, in which case every
// lookup goes to the database.
func NewService(repo Repository, enforcer *casbin.Enforcer, rdb redis.Cmdable, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		rdb:      rdb,
		logger:   l,
	}
}

// RoleOf returns the caller's role. Users without a user_roles row are
// employees.
func (s *service) RoleOf(ctx context.Context, userID string) (string, error) {
	key := RoleCacheKey(userID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil && domain.IsValidRole(cached) {
			return cached, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			s.logger.Warn("role cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		role, err := s.repo.FindRole(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role, err = domain.RoleEmployee, nil
		}
		if err != nil {
			return "", err
		}

		if s.rdb != nil {
			if err := s.rdb.Set(ctx, key, role, roleCacheTTL).Err(); err != nil {
				s.logger.Warn("role cache write failed", zap.String("user_id", userID), zap.Error(err))
			}
		}
		return role, nil
	})
	if err != nil {
		s.logger.Error("find role failed", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}

	return v.(string), nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) AssignRole(ctx context.Context, actorID, userID, role string) error {
	if !domain.IsValidRole(role) {
		return rbacerrors.ErrInvalidRole
	}
	if actorID == userID && role != domain.RoleHR {
		return rbacerrors.ErrSelfDemotion
	}

	exists, err := s.repo.ProfileExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return rbacerrors.ErrUserNotFound
	}

	if err := s.repo.UpsertRole(ctx, userID, role); err != nil {
		s.logger.Error("assign role failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, RoleCacheKey(userID)).Err(); err != nil {
			s.logger.Warn("role cache invalidate failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	s.logger.Info("role assigned",
		zap.String("actor_id", actorID),
		zap.String("user_id", userID),
		zap.String("role", role),
	)
	return nil
}
