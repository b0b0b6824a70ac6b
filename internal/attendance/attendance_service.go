package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	attendanceerrors "dayflow/internal/attendance/errors"
	"dayflow/internal/domain"
	"dayflow/internal/events"
	"dayflow/internal/messaging/kafka"
	"dayflow/internal/shared/apperror"
	"dayflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, actor domain.Actor, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, actor domain.Actor, req CheckOutRequest) (AttendanceResponse, error)
	Today(ctx context.Context, actor domain.Actor) (*AttendanceResponse, error)
	List(ctx context.Context, actor domain.Actor, q ListQuery) ([]AttendanceResponse, error)
	ManualUpsert(ctx context.Context, actor domain.Actor, req ManualAttendanceRequest) (AttendanceResponse, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	outbox  kafka.OutboxRepository
	policy  Policy
	nowFunc func() time.Time
	logger  *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, policy Policy, logger ...*zap.Logger) Service {
	return NewServiceWithClock(db, repo, outbox, policy, time.Now, logger...)
}

func NewServiceWithClock(
	db *gorm.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	policy Policy,
	now func() time.Time,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		db:      db,
		repo:    repo,
		outbox:  outbox,
		policy:  policy,
		nowFunc: now,
		logger:  l,
	}
}

func (s *service) CheckIn(ctx context.Context, actor domain.Actor, req CheckInRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := s.nowFunc().UTC()
	today := s.policy.Today(now)

	row := &Attendance{
		ID:      uuid.NewString(),
		UserID:  actor.UserID,
		Date:    today,
		CheckIn: &now,
		Status:  s.policy.ClassifyCheckIn(now),
		Notes:   req.Notes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		_, err := qtx.FindByUserAndDate(ctx, actor.UserID, today)
		if err == nil {
			return attendanceerrors.ErrAlreadyCheckedIn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := qtx.Create(ctx, row); err != nil {
			return mapRepositoryError(err)
		}
		return s.enqueue(ctx, tx, rid, actor.UserID, events.AttendanceCheckedIn, row, now)
	})
	if err != nil {
		if !errors.Is(err, attendanceerrors.ErrAlreadyCheckedIn) {
			s.logger.Error("check in failed", zap.String("request_id", rid), zap.String("user_id", actor.UserID), zap.Error(err))
		}
		return AttendanceResponse{}, err
	}

	s.logger.Info("check in recorded",
		zap.String("request_id", rid),
		zap.String("user_id", actor.UserID),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row, ""), nil
}

func (s *service) CheckOut(ctx context.Context, actor domain.Actor, req CheckOutRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := s.nowFunc().UTC()
	today := s.policy.Today(now)

	var row *Attendance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByUserAndDate(ctx, actor.UserID, today)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrNotCheckedIn
			}
			return err
		}
		if existing.CheckIn == nil {
			return attendanceerrors.ErrNotCheckedIn
		}
		if existing.CheckOut != nil {
			return attendanceerrors.ErrAlreadyCheckedOut
		}

		minutes := WorkMinutes(*existing.CheckIn, now)
		updated, err := qtx.MarkCheckOut(ctx, existing.ID, now, minutes, req.Notes)
		if err != nil {
			return err
		}
		if !updated {
			return attendanceerrors.ErrAlreadyCheckedOut
		}

		existing.CheckOut = &now
		existing.WorkMinutes = &minutes
		if req.Notes != nil {
			existing.Notes = req.Notes
		}
		row = existing
		return s.enqueue(ctx, tx, rid, actor.UserID, events.AttendanceCheckedOut, row, now)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("check out recorded",
		zap.String("request_id", rid),
		zap.String("user_id", actor.UserID),
		zap.Int("work_minutes", *row.WorkMinutes),
	)
	return mapToResponse(*row, ""), nil
}

func (s *service) Today(ctx context.Context, actor domain.Actor) (*AttendanceResponse, error) {
	row, err := s.repo.FindByUserAndDate(ctx, actor.UserID, s.policy.Today(s.nowFunc()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapToResponse(*row, "")
	return &resp, nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, q ListQuery) ([]AttendanceResponse, error) {
	month := s.policy.Today(s.nowFunc())
	if q.Month != "" {
		m, err := time.Parse("2006-01", q.Month)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidMonth
		}
		month = m
	}
	from, to := MonthRange(month)

	filter := ListFilter{UserID: q.UserID, From: from, To: to}
	if !actor.IsHR() {
		filter.UserID = actor.UserID
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}

	out := make([]AttendanceResponse, 0, len(items))
	for _, it := range items {
		out = append(out, mapToResponse(it.Attendance, it.FullName))
	}
	return out, nil
}

// ManualUpsert writes an HR correction for one (user, date). Without an
// explicit status the check-in time decides, and no check-in means absent.
func (s *service) ManualUpsert(ctx context.Context, actor domain.Actor, req ManualAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if !actor.IsHR() {
		return AttendanceResponse{}, apperror.ErrForbidden
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	row := &Attendance{
		ID:     uuid.NewString(),
		UserID: req.UserID,
		Date:   date,
		Notes:  req.Notes,
	}

	if req.CheckIn != nil {
		in, err := s.policy.At(date, *req.CheckIn)
		if err != nil {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidTime
		}
		in = in.UTC()
		row.CheckIn = &in
	}
	if req.CheckOut != nil {
		if row.CheckIn == nil {
			return AttendanceResponse{}, attendanceerrors.ErrCheckOutWithoutCheckIn
		}
		out, err := s.policy.At(date, *req.CheckOut)
		if err != nil {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidTime
		}
		out = out.UTC()
		if !out.After(*row.CheckIn) {
			return AttendanceResponse{}, attendanceerrors.ErrCheckOutBeforeCheckIn
		}
		minutes := WorkMinutes(*row.CheckIn, out)
		row.CheckOut = &out
		row.WorkMinutes = &minutes
	}

	switch {
	case req.Status != nil:
		row.Status = *req.Status
	case row.CheckIn != nil:
		row.Status = s.policy.ClassifyCheckIn(*row.CheckIn)
	default:
		row.Status = StatusAbsent
	}

	now := s.nowFunc()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		exists, err := qtx.ProfileExists(ctx, req.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return attendanceerrors.ErrProfileNotFound
		}

		if err := qtx.Upsert(ctx, row); err != nil {
			return err
		}
		return s.enqueue(ctx, tx, rid, actor.UserID, events.AttendanceCorrected, row, now)
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance corrected",
		zap.String("request_id", rid),
		zap.String("actor_id", actor.UserID),
		zap.String("user_id", req.UserID),
		zap.String("date", req.Date),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row, ""), nil
}

func (s *service) enqueue(ctx context.Context, tx *gorm.DB, rid, actorID, eventType string, a *Attendance, at time.Time) error {
	if s.outbox == nil {
		return nil
	}

	evt := events.AttendanceRecordedEvent{
		Base:         events.NewBase(eventType, rid, actorID, a.UserID, at),
		AttendanceID: a.ID,
		Date:         a.Date.Format("2006-01-02"),
		Status:       a.Status,
		WorkMinutes:  a.WorkMinutes,
	}
	row, err := kafka.NewOutboxEvent(rid, "attendance", a.ID, eventType, events.AttendanceRecordedTopic, evt)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

func formatWorkHours(minutes *int) string {
	if minutes == nil {
		return ""
	}
	return fmt.Sprintf("%dh %dm", *minutes/60, *minutes%60)
}

func mapToResponse(a Attendance, fullName string) AttendanceResponse {
	resp := AttendanceResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		FullName:    fullName,
		Date:        a.Date.Format("2006-01-02"),
		Status:      a.Status,
		WorkMinutes: a.WorkMinutes,
		WorkHours:   formatWorkHours(a.WorkMinutes),
		Notes:       a.Notes,
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
