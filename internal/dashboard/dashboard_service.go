package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"dayflow/internal/activity"
	"dayflow/internal/domain"
	"dayflow/internal/shared/money"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DefaultStatsTTL      = 30 * time.Second
	DefaultActivityLimit = 10
	MaxActivityLimit     = 50
)

func StatsCacheKey(actor domain.Actor) string {
	if actor.IsHR() {
		return "dashboard:stats:hr"
	}
	return fmt.Sprintf("dashboard:stats:user:%s", actor.UserID)
}

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	Stats(ctx context.Context, actor domain.Actor) (StatsResponse, error)
	Activities(ctx context.Context, actor domain.Actor, limit int) (ActivitiesResponse, error)
}

type Deps struct {
	Repo       Repository
	Activities activity.Repository
	Redis      redis.Cmdable
	TTL        time.Duration
	// Location decides which calendar day "today" is.
	Location *time.Location
	Now      func() time.Time
}

type service struct {
	repo       Repository
	activities activity.Repository
	rdb        redis.Cmdable
	ttl        time.Duration
	loc        *time.Location
	nowFunc    func() time.Time
	group      singleflight.Group
	logger     *zap.Logger
}

func NewService(deps Deps, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	s := &service{
		repo:       deps.Repo,
		activities: deps.Activities,
		rdb:        deps.Redis,
		ttl:        deps.TTL,
		loc:        deps.Location,
		nowFunc:    deps.Now,
		logger:     l,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultStatsTTL
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.nowFunc == nil {
		s.nowFunc = time.Now
	}
	return s
}

func (s *service) Stats(ctx context.Context, actor domain.Actor) (StatsResponse, error) {
	key := StatsCacheKey(actor)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var resp StatsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		var (
			resp StatsResponse
			err  error
		)
		if actor.IsHR() {
			resp, err = s.hrStats(ctx)
		} else {
			resp, err = s.employeeStats(ctx, actor.UserID)
		}
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if body, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, key, body, s.ttl).Err(); err != nil {
					s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("dashboard stats failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return StatsResponse{}, err
	}
	return v.(StatsResponse), nil
}

func (s *service) hrStats(ctx context.Context) (StatsResponse, error) {
	today := s.today()
	var total, present, pending, salaries int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { total, err = s.repo.CountProfiles(gctx); return })
	g.Go(func() (err error) { present, err = s.repo.CountPresentOn(gctx, today); return })
	g.Go(func() (err error) { pending, err = s.repo.CountPendingLeaves(gctx, ""); return })
	g.Go(func() (err error) { salaries, err = s.repo.SumAnnualSalary(gctx); return })
	if err := g.Wait(); err != nil {
		return StatsResponse{}, err
	}

	return StatsResponse{
		Role: domain.RoleHR,
		HR: &HRStats{
			TotalEmployees: total,
			PresentToday:   present,
			AttendanceRate: percent(present, total),
			PendingLeaves:  pending,
			MonthlyPayroll: money.MonthlyFromAnnual(salaries),
		},
	}, nil
}

func (s *service) employeeStats(ctx context.Context, userID string) (StatsResponse, error) {
	var (
		snap    *ProfileSnapshot
		tally   AttendanceTally
		pending int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = s.repo.FindProfileSnapshot(gctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			snap, err = &ProfileSnapshot{}, nil
		}
		return err
	})
	g.Go(func() (err error) { tally, err = s.repo.TallyAttendance(gctx, userID); return })
	g.Go(func() (err error) { pending, err = s.repo.CountPendingLeaves(gctx, userID); return })
	if err := g.Wait(); err != nil {
		return StatsResponse{}, err
	}

	stats := &EmployeeStats{
		RemainingAnnualLeave: snap.RemainingAnnualLeave,
		RemainingSickLeave:   snap.RemainingSickLeave,
		AttendanceRate:       percent(tally.Present, max(tally.Total, 1)),
		PendingRequests:      pending,
		DaysPresent:          tally.Present,
	}
	if snap.Salary != nil {
		salary := money.FromMinor(*snap.Salary)
		stats.Salary = &salary
	}
	return StatsResponse{Role: domain.RoleEmployee, Employee: stats}, nil
}

func (s *service) Activities(ctx context.Context, actor domain.Actor, limit int) (ActivitiesResponse, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}

	userID := ""
	if !actor.IsHR() {
		userID = actor.UserID
	}

	items, err := s.activities.ListRecent(ctx, userID, limit)
	if err != nil {
		s.logger.Error("list activities failed", zap.String("user_id", actor.UserID), zap.Error(err))
		return ActivitiesResponse{}, err
	}
	if items == nil {
		items = []activity.FeedItem{}
	}
	return ActivitiesResponse{Items: items}, nil
}

func (s *service) today() time.Time {
	y, m, d := s.nowFunc().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// percent rounds half away from zero; zero when there is nothing to divide by.
func percent(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
