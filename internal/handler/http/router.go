package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/config"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/time/rate"
)

func NewRouter(
	appCfg config.AppConfig,
	rateCfg config.RateLimitConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	timesheetHandler TimesheetHandler,
	employeeHandler EmployeeHandler,
	employeeDashboardHandler EmployeeDashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appCfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeleave"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appCfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	accessLevel := slog.LevelDebug
	if appCfg.Env == "production" {
		accessLevel = slog.LevelInfo
	}
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  accessLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimitByIP(rate.Limit(rateCfg.LoginPerSecond), rateCfg.LoginBurst)).
				Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Post("/auth/change-password", authHandler.ChangePassword)
			r.Get("/dashboard/me", employeeDashboardHandler.GetDashboard)

			r.Route("/leave", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", leaveHandler.CreateRequest)
					r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/my", leaveHandler.GetMyRequests)
					r.Get("/{id}", leaveHandler.GetRequest)

					// Approver only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
						r.Get("/pending", leaveHandler.ListPendingRequests)
						r.Post("/{id}/approve", leaveHandler.ApproveRequest)
						r.Post("/{id}/reject", leaveHandler.RejectRequest)
					})
				})

				r.Get("/balance", leaveHandler.GetMyBalance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveViewAll))
					r.Get("/balance/{employeeID}", leaveHandler.GetBalance)
					r.Get("/employees/{employeeID}/requests", leaveHandler.ListEmployeeRequests)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Put("/", attendanceHandler.Record)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/summary", attendanceHandler.GetMonthReport)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewOwn)).Get("/export", attendanceHandler.Export)
				r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/company-summary", attendanceHandler.GetCompanySummary)
			})

			r.Route("/timesheet", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionTimesheetLog))
				r.Post("/tasks", timesheetHandler.LogTask)
				r.Delete("/tasks/{id}", timesheetHandler.DeleteTask)
				r.Get("/day", timesheetHandler.GetDay)
				r.Get("/range", timesheetHandler.GetRange)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionViewOwnProfile)).Get("/me", employeeHandler.GetMyProfile)
				r.With(middleware.RequirePermission(user.PermissionEditOwnProfile)).Put("/me", employeeHandler.UpdateMyProfile)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", employeeHandler.CreateEmployee)
					r.Get("/", employeeHandler.ListEmployees)
				})
				r.Get("/{id}", employeeHandler.GetEmployee)
			})
		})
	})
	return r
}
