package profile

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"dayflow/internal/domain"
	"dayflow/internal/events"
	"dayflow/internal/identity"
	"dayflow/internal/messaging/kafka"
	profileerrors "dayflow/internal/profile/errors"
	"dayflow/internal/rbac"
	"dayflow/internal/shared/apperror"
	"dayflow/internal/shared/contextutil"
	"dayflow/internal/shared/money"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	GetMe(ctx context.Context, actor domain.Actor) (ProfileResponse, error)
	GetByUserID(ctx context.Context, actor domain.Actor, userID string) (ProfileResponse, error)
	List(ctx context.Context, q ListQuery) ([]ProfileResponse, error)
	Create(ctx context.Context, actor domain.Actor, req CreateProfileRequest) (ProfileResponse, error)
	UpdateMe(ctx context.Context, actor domain.Actor, req UpdateMeRequest) (ProfileResponse, error)
	Update(ctx context.Context, actor domain.Actor, userID string, req UpdateProfileRequest) (ProfileResponse, error)
	Delete(ctx context.Context, actor domain.Actor, userID string) error
	LeaveBalance(ctx context.Context, actor domain.Actor, userID string) (LeaveBalanceResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	roles    rbac.Repository
	outbox   kafka.OutboxRepository
	identity identity.Provisioner
	rdb      redis.Cmdable
	caps     LeaveCaps
	nowFunc  func() time.Time
	logger   *zap.Logger
}

type Deps struct {
	DB       *gorm.DB
	Repo     Repository
	Roles    rbac.Repository
	Outbox   kafka.OutboxRepository
	Identity identity.Provisioner
	Redis    redis.Cmdable
	Caps     LeaveCaps
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	if deps.Identity == nil {
		deps.Identity = identity.Noop{}
	}
	if deps.Caps == (LeaveCaps{}) {
		deps.Caps = DefaultLeaveCaps
	}
	return &service{
		db:       deps.DB,
		repo:     deps.Repo,
		roles:    deps.Roles,
		outbox:   deps.Outbox,
		identity: deps.Identity,
		rdb:      deps.Redis,
		caps:     deps.Caps,
		nowFunc:  time.Now,
		logger:   l,
	}
}

func (s *service) GetMe(ctx context.Context, actor domain.Actor) (ProfileResponse, error) {
	return s.GetByUserID(ctx, actor, actor.UserID)
}

func (s *service) GetByUserID(ctx context.Context, actor domain.Actor, userID string) (ProfileResponse, error) {
	if !actor.CanAccess(userID) {
		return ProfileResponse{}, apperror.ErrForbidden
	}

	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(p), nil
}

// List returns the directory. A search term ranks matches by fuzzy distance
// over name, email and department; without one the order is by name.
func (s *service) List(ctx context.Context, q ListQuery) ([]ProfileResponse, error) {
	profiles, err := s.repo.List(ctx, ListFilter{
		Department: strings.TrimSpace(q.Department),
		Status:     strings.TrimSpace(q.Status),
	})
	if err != nil {
		s.logger.Error("list profiles failed", zap.Error(err))
		return nil, err
	}

	term := strings.TrimSpace(q.Search)
	if term == "" {
		out := make([]ProfileResponse, 0, len(profiles))
		for i := range profiles {
			out = append(out, mapToResponse(&profiles[i]))
		}
		return out, nil
	}

	targets := make([]string, len(profiles))
	for i, p := range profiles {
		targets[i] = searchText(p)
	}
	ranks := fuzzy.RankFindNormalizedFold(term, targets)
	sort.Stable(ranks)

	out := make([]ProfileResponse, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, mapToResponse(&profiles[r.OriginalIndex]))
	}
	return out, nil
}

func searchText(p Profile) string {
	parts := []string{p.FullName, p.Email}
	if p.Department != nil {
		parts = append(parts, *p.Department)
	}
	return strings.Join(parts, " ")
}

// Create provisions the login first, then writes the profile, role and
// employee.created event in one transaction. If the transaction fails the
// login is removed again.
func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateProfileRequest) (ProfileResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if !actor.IsHR() {
		return ProfileResponse{}, apperror.ErrForbidden
	}

	var salary *int64
	if req.Salary != nil {
		minor, err := money.ToMinor(*req.Salary)
		if err != nil {
			return ProfileResponse{}, profileerrors.ErrInvalidSalary
		}
		salary = &minor
	}

	var joinDate *time.Time
	if req.JoinDate != nil && *req.JoinDate != "" {
		d, err := time.Parse(dateLayout, *req.JoinDate)
		if err != nil {
			return ProfileResponse{}, profileerrors.ErrInvalidJoinDate
		}
		joinDate = &d
	}

	user, err := s.identity.CreateUser(ctx, identity.NewUser{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		FullName: strings.TrimSpace(req.FullName),
	})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailTaken):
			return ProfileResponse{}, profileerrors.ErrEmailTaken
		case errors.Is(err, identity.ErrNotConfigured):
			return ProfileResponse{}, profileerrors.ErrProvisioningUnavailable
		}
		s.logger.Error("create identity user failed", zap.String("request_id", rid), zap.Error(err))
		return ProfileResponse{}, apperror.ErrServiceUnavailable
	}

	p := &Profile{
		UserID:               user.ID,
		FullName:             strings.TrimSpace(req.FullName),
		Email:                user.Email,
		Phone:                req.Phone,
		Department:           req.Department,
		Position:             req.Position,
		Status:               StatusActive,
		Salary:               salary,
		JoinDate:             joinDate,
		RemainingAnnualLeave: s.caps.Annual,
		RemainingSickLeave:   s.caps.Sick,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
			return mapRepositoryError(err)
		}
		if err := s.roles.WithTx(tx).UpsertRole(ctx, p.UserID, domain.RoleEmployee); err != nil {
			return err
		}

		department := ""
		if p.Department != nil {
			department = *p.Department
		}
		evt := events.EmployeeLifecycleEvent{
			Base:       events.NewBase(events.EmployeeCreated, rid, actor.UserID, p.UserID, s.nowFunc()),
			FullName:   p.FullName,
			Email:      p.Email,
			Department: department,
		}
		return s.enqueue(ctx, tx, rid, p.UserID, evt.EventType, evt)
	})
	if err != nil {
		s.logger.Error("create profile failed, removing identity user",
			zap.String("request_id", rid),
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		if delErr := s.identity.DeleteUser(ctx, user.ID); delErr != nil {
			s.logger.Error("compensating identity delete failed",
				zap.String("user_id", user.ID),
				zap.Error(delErr),
			)
		}
		return ProfileResponse{}, err
	}

	s.logger.Info("profile created",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.UserID),
		zap.String("user_id", p.UserID),
	)
	return mapToResponse(p), nil
}

func (s *service) UpdateMe(ctx context.Context, actor domain.Actor, req UpdateMeRequest) (ProfileResponse, error) {
	fields := map[string]any{}
	if req.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	return s.applyUpdate(ctx, actor.UserID, fields)
}

// Update is the HR edit, including direct corrections of the leave counters.
func (s *service) Update(ctx context.Context, actor domain.Actor, userID string, req UpdateProfileRequest) (ProfileResponse, error) {
	if !actor.IsHR() {
		return ProfileResponse{}, apperror.ErrForbidden
	}

	fields := map[string]any{}
	if req.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Position != nil {
		fields["position"] = *req.Position
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	if req.Salary != nil {
		minor, err := money.ToMinor(*req.Salary)
		if err != nil {
			return ProfileResponse{}, profileerrors.ErrInvalidSalary
		}
		fields["salary"] = minor
	}
	if req.JoinDate != nil {
		d, err := time.Parse(dateLayout, *req.JoinDate)
		if err != nil {
			return ProfileResponse{}, profileerrors.ErrInvalidJoinDate
		}
		fields["join_date"] = d
	}
	if req.RemainingAnnualLeave != nil {
		if *req.RemainingAnnualLeave < 0 || *req.RemainingAnnualLeave > s.caps.Annual {
			return ProfileResponse{}, profileerrors.ErrLeaveBalanceOutOfRange
		}
		fields["remaining_annual_leave"] = *req.RemainingAnnualLeave
	}
	if req.RemainingSickLeave != nil {
		if *req.RemainingSickLeave < 0 || *req.RemainingSickLeave > s.caps.Sick {
			return ProfileResponse{}, profileerrors.ErrLeaveBalanceOutOfRange
		}
		fields["remaining_sick_leave"] = *req.RemainingSickLeave
	}

	resp, err := s.applyUpdate(ctx, userID, fields)
	if err == nil {
		s.logger.Info("profile updated by hr",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("actor_id", actor.UserID),
			zap.String("user_id", userID),
			zap.Int("fields", len(fields)),
		)
	}
	return resp, err
}

func (s *service) applyUpdate(ctx context.Context, userID string, fields map[string]any) (ProfileResponse, error) {
	if len(fields) == 0 {
		return ProfileResponse{}, profileerrors.ErrNothingToUpdate
	}

	if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(p), nil
}

// Delete removes the employee's rows and role, then their login.
func (s *service) Delete(ctx context.Context, actor domain.Actor, userID string) error {
	rid := contextutil.GetRequestID(ctx)
	if !actor.IsHR() {
		return apperror.ErrForbidden
	}
	if actor.UserID == userID {
		return profileerrors.ErrCannotDeleteSelf
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		p, err := qtx.FindByUserID(ctx, userID)
		if err != nil {
			return mapRepositoryError(err)
		}
		if err := qtx.DeleteCascade(ctx, userID); err != nil {
			return mapRepositoryError(err)
		}
		if err := s.roles.WithTx(tx).DeleteByUserID(ctx, userID); err != nil {
			return err
		}

		evt := events.EmployeeLifecycleEvent{
			Base:     events.NewBase(events.EmployeeDeleted, rid, actor.UserID, userID, s.nowFunc()),
			FullName: p.FullName,
			Email:    p.Email,
		}
		return s.enqueue(ctx, tx, rid, userID, evt.EventType, evt)
	})
	if err != nil {
		return err
	}

	if err := s.identity.DeleteUser(ctx, userID); err != nil && !errors.Is(err, identity.ErrUserNotFound) {
		s.logger.Error("delete identity user failed",
			zap.String("request_id", rid),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, rbac.RoleCacheKey(userID)).Err(); err != nil {
			s.logger.Warn("role cache invalidate failed", zap.String("user_id", userID), zap.Error(err))
		}
	}

	s.logger.Info("profile deleted",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.UserID),
		zap.String("user_id", userID),
	)
	return nil
}

func (s *service) LeaveBalance(ctx context.Context, actor domain.Actor, userID string) (LeaveBalanceResponse, error) {
	if !actor.CanAccess(userID) {
		return LeaveBalanceResponse{}, apperror.ErrForbidden
	}

	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return LeaveBalanceResponse{}, mapRepositoryError(err)
	}
	return LeaveBalanceResponse{
		UserID:               p.UserID,
		RemainingAnnualLeave: p.RemainingAnnualLeave,
		RemainingSickLeave:   p.RemainingSickLeave,
		AnnualCap:            s.caps.Annual,
		SickCap:              s.caps.Sick,
	}, nil
}

func (s *service) enqueue(ctx context.Context, tx *gorm.DB, rid, userID, eventType string, payload any) error {
	if s.outbox == nil {
		return nil
	}
	row, err := kafka.NewOutboxEvent(rid, "profile", userID, eventType, events.EmployeeLifecycleTopic, payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

func mapToResponse(p *Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:                   p.ID,
		UserID:               p.UserID,
		FullName:             p.FullName,
		Email:                p.Email,
		Phone:                p.Phone,
		Department:           p.Department,
		Position:             p.Position,
		Status:               p.Status,
		RemainingAnnualLeave: p.RemainingAnnualLeave,
		RemainingSickLeave:   p.RemainingSickLeave,
		AvatarURL:            p.AvatarURL,
		CreatedAt:            p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Salary != nil {
		amount := money.FromMinor(*p.Salary)
		resp.Salary = &amount
	}
	if p.JoinDate != nil {
		d := p.JoinDate.Format(dateLayout)
		resp.JoinDate = &d
	}
	return resp
}
