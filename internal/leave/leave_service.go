package leave

import (
	"context"
	"errors"
	"time"

	"dayflow/internal/domain"
	"dayflow/internal/events"
	leaveerrors "dayflow/internal/leave/errors"
	"dayflow/internal/messaging/kafka"
	"dayflow/internal/shared/apperror"
	"dayflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, actor domain.Actor, q ListQuery) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	Approve(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actor domain.Actor, id, reason string) (LeaveResponse, error)
	Stats(ctx context.Context, actor domain.Actor) (StatsResponse, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	outbox  kafka.OutboxRepository
	loc     *time.Location
	nowFunc func() time.Time
	logger  *zap.Logger
}

// NewService builds the leave workflow. loc decides what "today" is when
// rejecting start dates in the past; nil means UTC.
func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		db:      db,
		repo:    repo,
		outbox:  outbox,
		loc:     loc,
		nowFunc: time.Now,
		logger:  l,
	}
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("user_id", actor.UserID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if !IsValidLeaveType(req.LeaveType) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	now := s.nowFunc()
	if err := ValidateDateRange(startDate, endDate, now.In(s.loc)); err != nil {
		return LeaveResponse{}, err
	}
	days := CountDays(startDate, endDate)

	l := &LeaveRequest{
		ID:        uuid.NewString(),
		UserID:    actor.UserID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		Days:      days,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		balance, err := qtx.GetBalance(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrProfileNotFound
			}
			return err
		}

		overlap, err := qtx.HasOverlappingPeriod(ctx, actor.UserID, startDate, endDate)
		if err != nil {
			return err
		}
		if overlap {
			s.logger.Warn("submit leave overlap detected",
				zap.String("user_id", actor.UserID),
				zap.String("start_date", req.StartDate),
				zap.String("end_date", req.EndDate),
			)
			return leaveerrors.ErrLeaveOverlap
		}

		if err := ValidateSubmission(balance, req.LeaveType, days); err != nil {
			return toAppError(err)
		}

		if err := qtx.Create(ctx, l); err != nil {
			return err
		}
		return s.enqueue(ctx, tx, rid, actor.UserID, events.LeaveRequested, l, now)
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID),
		zap.String("user_id", actor.UserID),
		zap.Int("days", days),
	)
	return mapToResponse(*l, ""), nil
}

// List shows HR every request (optionally one user's); employees only ever
// see their own.
func (s *service) List(ctx context.Context, actor domain.Actor, q ListQuery) ([]LeaveResponse, error) {
	filter := ListFilter{Status: q.Status, UserID: q.UserID}
	if !actor.IsHR() {
		filter.UserID = actor.UserID
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list leaves failed", zap.Error(err))
		return nil, err
	}

	out := make([]LeaveResponse, 0, len(items))
	for _, it := range items {
		out = append(out, mapToResponse(it.LeaveRequest, it.FullName))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !actor.CanAccess(l.UserID) {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	return mapToResponse(*l, ""), nil
}

// Approve debits the balance and flips the status in one transaction. The
// row lock plus both guarded updates keep a request from being approved
// twice or approved without its debit.
func (s *service) Approve(ctx context.Context, actor domain.Actor, id string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if !actor.IsHR() {
		return LeaveResponse{}, apperror.ErrForbidden
	}

	now := s.nowFunc()
	var approved *LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		l, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}

		balance, err := qtx.GetBalance(ctx, l.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrProfileNotFound
			}
			return err
		}

		if _, err := ApplyApproval(l, balance, actor.UserID, now.UTC()); err != nil {
			s.logger.Warn("approve leave rejected by ledger",
				zap.String("leave_id", id),
				zap.String("status", l.Status),
				zap.Error(err),
			)
			return toAppError(err)
		}

		debited, err := qtx.DebitBalance(ctx, l.UserID, l.LeaveType, l.Days)
		if err != nil {
			return err
		}
		if !debited {
			available, _ := balance.Remaining(l.LeaveType)
			return toAppError(&InsufficientBalanceError{LeaveType: l.LeaveType, Available: available, Requested: l.Days})
		}

		moved, err := qtx.TransitionStatus(ctx, l)
		if err != nil {
			return err
		}
		if !moved {
			return leaveerrors.ErrInvalidStatusTransition
		}

		approved = l
		return s.enqueue(ctx, tx, rid, actor.UserID, events.LeaveApproved, l, now)
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("approve leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("reviewer_id", actor.UserID),
		zap.String("leave_type", approved.LeaveType),
		zap.Int("days", approved.Days),
	)
	return mapToResponse(*approved, ""), nil
}

func (s *service) Reject(ctx context.Context, actor domain.Actor, id, reason string) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if !actor.IsHR() {
		return LeaveResponse{}, apperror.ErrForbidden
	}

	now := s.nowFunc()
	var rejected *LeaveRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		l, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}

		if err := ApplyRejection(l, actor.UserID, reason, now.UTC()); err != nil {
			return err
		}

		moved, err := qtx.TransitionStatus(ctx, l)
		if err != nil {
			return err
		}
		if !moved {
			return leaveerrors.ErrInvalidStatusTransition
		}

		rejected = l
		return s.enqueue(ctx, tx, rid, actor.UserID, events.LeaveRejected, l, now)
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("reject leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("reviewer_id", actor.UserID),
	)
	return mapToResponse(*rejected, ""), nil
}

func (s *service) Stats(ctx context.Context, actor domain.Actor) (StatsResponse, error) {
	userID := ""
	if !actor.IsHR() {
		userID = actor.UserID
	}

	rows, err := s.repo.CountByStatusAndType(ctx, userID)
	if err != nil {
		return StatsResponse{}, err
	}

	resp := StatsResponse{
		ByStatus: map[string]int64{StatusPending: 0, StatusApproved: 0, StatusRejected: 0},
		ByType:   map[string]int64{},
	}
	for _, r := range rows {
		resp.Total += r.Count
		resp.ByStatus[r.Status] += r.Count
		resp.ByType[r.LeaveType] += r.Count
	}
	return resp, nil
}

func (s *service) enqueue(ctx context.Context, tx *gorm.DB, rid, actorID, eventType string, l *LeaveRequest, at time.Time) error {
	if s.outbox == nil {
		return nil
	}

	evt := events.LeaveLifecycleEvent{
		Base:      events.NewBase(eventType, rid, actorID, l.UserID, at),
		LeaveID:   l.ID,
		LeaveType: l.LeaveType,
		StartDate: l.StartDate.Format(dateLayout),
		EndDate:   l.EndDate.Format(dateLayout),
		Days:      l.Days,
		Status:    l.Status,
	}
	if l.RejectionReason != nil {
		evt.RejectionReason = *l.RejectionReason
	}

	row, err := kafka.NewOutboxEvent(rid, "leave_request", l.ID, eventType, events.LeaveLifecycleTopic, evt)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

// toAppError attaches the numbers of an InsufficientBalanceError for the
// client.
func toAppError(err error) error {
	var ib *InsufficientBalanceError
	if errors.As(err, &ib) {
		return leaveerrors.ErrInsufficientBalance.WithDetails(map[string]any{
			"leave_type": ib.LeaveType,
			"available":  ib.Available,
			"requested":  ib.Requested,
		})
	}
	return err
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return d, nil
}

func mapToResponse(l LeaveRequest, fullName string) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID,
		UserID:          l.UserID,
		FullName:        fullName,
		LeaveType:       l.LeaveType,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		Days:            l.Days,
		Reason:          l.Reason,
		Status:          l.Status,
		ReviewedBy:      l.ReviewedBy,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
