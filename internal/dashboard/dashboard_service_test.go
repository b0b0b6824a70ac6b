package dashboard_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"dayflow/internal/activity"
	activityMock "dayflow/internal/activity/mock"
	"dayflow/internal/dashboard"
	dashboardMock "dayflow/internal/dashboard/mock"
	"dayflow/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var (
	hrActor       = domain.Actor{UserID: "hr-1", Role: domain.RoleHR}
	employeeActor = domain.Actor{UserID: "u-1", Role: domain.RoleEmployee}
	now           = time.Date(2024, 3, 4, 23, 30, 0, 0, time.UTC)
)

type serviceDeps struct {
	service    dashboard.Service
	repo       *dashboardMock.MockRepository
	activities *activityMock.MockRepository
	redismock  redismock.ClientMock
}

func setupServiceTest(t *testing.T, loc *time.Location) *serviceDeps {
	ctrl := gomock.NewController(t)
	rdb, redisMock := redismock.NewClientMock()

	deps := &serviceDeps{
		repo:       dashboardMock.NewMockRepository(ctrl),
		activities: activityMock.NewMockRepository(ctrl),
		redismock:  redisMock,
	}
	deps.service = dashboard.NewService(dashboard.Deps{
		Repo:       deps.repo,
		Activities: deps.activities,
		Redis:      rdb,
		Location:   loc,
		Now:        func() time.Time { return now },
	})
	return deps
}

func i64Ptr(i int64) *int64 { return &i }

func TestDashboardService_Stats_HR(t *testing.T) {
	ctx := context.Background()

	t.Run("computes and caches", func(t *testing.T) {
		kolkata, _ := time.LoadLocation("Asia/Kolkata")
		deps := setupServiceTest(t, kolkata)
		key := dashboard.StatsCacheKey(hrActor)

		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().CountProfiles(gomock.Any()).Return(int64(8), nil)
		// 23:30 UTC is already the 5th in Kolkata.
		deps.repo.EXPECT().CountPresentOn(gomock.Any(), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)).Return(int64(5), nil)
		deps.repo.EXPECT().CountPendingLeaves(gomock.Any(), "").Return(int64(3), nil)
		deps.repo.EXPECT().SumAnnualSalary(gomock.Any()).Return(int64(120000000), nil)
		deps.redismock.Regexp().ExpectSet(key, `.+`, 30*time.Second).SetVal("OK")

		got, err := deps.service.Stats(ctx, hrActor)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleHR, got.Role)
		assert.Nil(t, got.Employee)
		assert.Equal(t, int64(8), got.HR.TotalEmployees)
		assert.Equal(t, int64(5), got.HR.PresentToday)
		assert.Equal(t, 63, got.HR.AttendanceRate)
		assert.Equal(t, int64(3), got.HR.PendingLeaves)
		assert.Equal(t, "100000.00", got.HR.MonthlyPayroll.StringFixed(2))
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("served from cache", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		cached, _ := json.Marshal(dashboard.StatsResponse{
			Role: domain.RoleHR,
			HR:   &dashboard.HRStats{TotalEmployees: 42},
		})
		deps.redismock.ExpectGet(dashboard.StatsCacheKey(hrActor)).SetVal(string(cached))

		got, err := deps.service.Stats(ctx, hrActor)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), got.HR.TotalEmployees)
	})

	t.Run("no employees means zero rate", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		key := dashboard.StatsCacheKey(hrActor)
		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().CountProfiles(gomock.Any()).Return(int64(0), nil)
		deps.repo.EXPECT().CountPresentOn(gomock.Any(), gomock.Any()).Return(int64(0), nil)
		deps.repo.EXPECT().CountPendingLeaves(gomock.Any(), "").Return(int64(0), nil)
		deps.repo.EXPECT().SumAnnualSalary(gomock.Any()).Return(int64(0), nil)
		deps.redismock.Regexp().ExpectSet(key, `.+`, 30*time.Second).SetVal("OK")

		got, err := deps.service.Stats(ctx, hrActor)

		assert.NoError(t, err)
		assert.Equal(t, 0, got.HR.AttendanceRate)
	})

	t.Run("repository failure is not cached", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		deps.redismock.ExpectGet(dashboard.StatsCacheKey(hrActor)).RedisNil()
		deps.repo.EXPECT().CountProfiles(gomock.Any()).Return(int64(0), errors.New("db down"))
		deps.repo.EXPECT().CountPresentOn(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
		deps.repo.EXPECT().CountPendingLeaves(gomock.Any(), "").Return(int64(0), nil).AnyTimes()
		deps.repo.EXPECT().SumAnnualSalary(gomock.Any()).Return(int64(0), nil).AnyTimes()

		_, err := deps.service.Stats(ctx, hrActor)

		assert.Error(t, err)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestDashboardService_Stats_Employee(t *testing.T) {
	ctx := context.Background()

	t.Run("own figures", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		key := dashboard.StatsCacheKey(employeeActor)
		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().FindProfileSnapshot(gomock.Any(), "u-1").Return(&dashboard.ProfileSnapshot{
			RemainingAnnualLeave: 12,
			RemainingSickLeave:   9,
			Salary:               i64Ptr(6000000),
		}, nil)
		deps.repo.EXPECT().TallyAttendance(gomock.Any(), "u-1").Return(dashboard.AttendanceTally{Total: 20, Present: 17}, nil)
		deps.repo.EXPECT().CountPendingLeaves(gomock.Any(), "u-1").Return(int64(1), nil)
		deps.redismock.Regexp().ExpectSet(key, `.+`, 30*time.Second).SetVal("OK")

		got, err := deps.service.Stats(ctx, employeeActor)

		assert.NoError(t, err)
		assert.Equal(t, domain.RoleEmployee, got.Role)
		assert.Equal(t, 12, got.Employee.RemainingAnnualLeave)
		assert.Equal(t, 9, got.Employee.RemainingSickLeave)
		assert.Equal(t, "60000.00", got.Employee.Salary.StringFixed(2))
		assert.Equal(t, 85, got.Employee.AttendanceRate)
		assert.Equal(t, int64(17), got.Employee.DaysPresent)
		assert.Equal(t, int64(1), got.Employee.PendingRequests)
	})

	t.Run("new hire without profile row or attendance", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		key := dashboard.StatsCacheKey(employeeActor)
		deps.redismock.ExpectGet(key).RedisNil()
		deps.repo.EXPECT().FindProfileSnapshot(gomock.Any(), "u-1").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().TallyAttendance(gomock.Any(), "u-1").Return(dashboard.AttendanceTally{}, nil)
		deps.repo.EXPECT().CountPendingLeaves(gomock.Any(), "u-1").Return(int64(0), nil)
		deps.redismock.Regexp().ExpectSet(key, `.+`, 30*time.Second).SetVal("OK")

		got, err := deps.service.Stats(ctx, employeeActor)

		assert.NoError(t, err)
		assert.Equal(t, 0, got.Employee.AttendanceRate)
		assert.Nil(t, got.Employee.Salary)
	})
}

func TestDashboardService_Activities(t *testing.T) {
	ctx := context.Background()

	t.Run("employee sees own feed, limit clamped", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		deps.activities.EXPECT().ListRecent(gomock.Any(), "u-1", dashboard.MaxActivityLimit).
			Return([]activity.FeedItem{{ID: "act-1", Message: "Jane Doe checked in"}}, nil)

		got, err := deps.service.Activities(ctx, employeeActor, 500)

		assert.NoError(t, err)
		assert.Len(t, got.Items, 1)
	})

	t.Run("hr sees everyone with default limit", func(t *testing.T) {
		deps := setupServiceTest(t, nil)
		deps.activities.EXPECT().ListRecent(gomock.Any(), "", dashboard.DefaultActivityLimit).Return(nil, nil)

		got, err := deps.service.Activities(ctx, hrActor, 0)

		assert.NoError(t, err)
		assert.NotNil(t, got.Items)
		assert.Empty(t, got.Items)
	})
}
