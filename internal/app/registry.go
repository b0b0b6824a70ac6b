package app

import (
	"dayflow/internal/activity"
	"dayflow/internal/attendance"
	"dayflow/internal/config"
	"dayflow/internal/dashboard"
	"dayflow/internal/identity"
	"dayflow/internal/leave"
	"dayflow/internal/messaging/kafka"
	"dayflow/internal/payroll"
	"dayflow/internal/profile"
	"dayflow/internal/rbac"
	"dayflow/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	loc := cfg.Policy.Location()
	cutoffHour, cutoffMinute, err := cfg.Policy.Cutoff()
	if err != nil {
		return err
	}

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	payrollRepo := payroll.NewRepository(db)
	dashboardRepo := dashboard.NewRepository(db)
	activityRepo := activity.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, rdb, logger)

	// --- Services ---
	profileService := profile.NewService(profile.Deps{
		DB:       db,
		Repo:     profileRepo,
		Roles:    rbacRepo,
		Outbox:   outboxRepo,
		Identity: identity.NewProvisioner(cfg.Identity.URL, cfg.Identity.ServiceRoleKey, logger),
		Redis:    rdb,
		Caps:     profile.LeaveCaps{Annual: cfg.Policy.AnnualLeaveCap, Sick: cfg.Policy.SickLeaveCap},
	}, logger)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, loc, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, outboxRepo, attendance.Policy{
		Location:     loc,
		CutoffHour:   cutoffHour,
		CutoffMinute: cutoffMinute,
	}, logger)
	payrollService := payroll.NewService(payrollRepo, cfg.Policy.Currency, logger)
	dashboardService := dashboard.NewService(dashboard.Deps{
		Repo:       dashboardRepo,
		Activities: activityRepo,
		Redis:      rdb,
		TTL:        cfg.Policy.StatsCacheTTL(),
		Location:   loc,
	}, logger)

	// --- Handlers ---
	profileHandler := profile.NewHandler(profileService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	payrollHandler := payroll.NewHandler(payrollService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	secret := cfg.Identity.JWTSecret
	api := router.Group("/api/v1")
	{
		profile.RegisterRoutes(api, profileHandler, rbacService, rdb, secret, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb, secret, logger)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb, secret, logger)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, secret, logger)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService, secret, logger)
		rbac.RegisterRoutes(api, rbacHandler, rbacService, secret, logger)
	}

	return nil
}
