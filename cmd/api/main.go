package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/config"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/leave"
	appHTTP "github.com/cmlabs-hris/timeleave-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/timeleave-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/timeleave-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/timeleave-backend-go/internal/service/employee"
	employeeDashboardService "github.com/cmlabs-hris/timeleave-backend-go/internal/service/employee_dashboard"
	leaveService "github.com/cmlabs-hris/timeleave-backend-go/internal/service/leave"
	timesheetService "github.com/cmlabs-hris/timeleave-backend-go/internal/service/timesheet"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "timeleave"), slog.String("env", cfg.App.Env)))

	dsn := cfg.DatabaseURL()
	if cfg.Database.MigrateOnStart {
		if err := database.RunMigrations(dsn); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	transactor := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	leaveSvc := leaveService.NewLeaveService(transactor, leaveBalanceRepo, leaveRequestRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, cfg.Cache.SummarySize, cfg.Cache.SummaryTTL)
	timesheetSvc := timesheetService.NewTimesheetService(timesheetRepo)
	employeeSvc := employeeService.NewEmployeeService(
		transactor,
		employeeRepo,
		userRepo,
		leaveBalanceRepo,
		leave.Balance{
			Casual: cfg.Leave.DefaultCasual,
			Sick:   cfg.Leave.DefaultSick,
			Earned: cfg.Leave.DefaultEarned,
		},
	)

	empDashboardSvc := employeeDashboardService.NewEmployeeDashboardService(timesheetRepo, attendanceRepo, leaveBalanceRepo, leaveRequestRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.Cache.SummaryTTL).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg.App,
		cfg.RateLimit,
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewTimesheetHandler(timesheetSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewEmployeeDashboardHandler(empDashboardSvc),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
