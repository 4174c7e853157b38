package http

import (
	"log/slog"
	"os"

	"github.com/attendancepro/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env            string
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	companyHandler CompanyHandler,
	employeeHandler EmployeeHandler,
	hardwareHandler HardwareHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendancepro"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
				r.Get("/callback/google", authHandler.OAuthCallbackGoogle)
			})
		})

		// The SSE stream authenticates with a short-lived query token
		// instead of the Authorization header.
		r.Get("/attendance/stream", attendanceHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/history", attendanceHandler.History)
				r.Get("/summary", attendanceHandler.MonthlySummary)
				r.Get("/stream-token", attendanceHandler.GetStreamToken)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/manual", attendanceHandler.RecordManualEntry)
					r.Get("/day", attendanceHandler.ListCompanyDay)
				})
			})

			r.Route("/companies", func(r chi.Router) {

				// Platform owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.SuperAdminOnly)
					r.Get("/", companyHandler.List)
					r.Post("/", companyHandler.Create)
					r.Put("/{id}/name", companyHandler.Rename)
					r.Post("/{id}/suspend", companyHandler.Suspend)
					r.Post("/{id}/activate", companyHandler.Activate)
				})

				r.Route("/my", func(r chi.Router) {
					r.Get("/", companyHandler.GetMyCompany)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/location", companyHandler.UpdateLocation)
						r.Put("/schedule", companyHandler.UpdateSchedule)
					})
				})
			})

			// Admin only
			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Delete("/{id}", employeeHandler.Delete)
			})

			r.Route("/devices", func(r chi.Router) {

				// Platform owner only
				r.Group(func(r chi.Router) {
					r.Use(middleware.SuperAdminOnly)
					r.Get("/", hardwareHandler.List)
					r.Post("/", hardwareHandler.Register)
					r.Put("/{id}", hardwareHandler.Update)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/my", hardwareHandler.ListMine)
					r.Post("/{id}/emergency-open", hardwareHandler.EmergencyOpen)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/me", dashboardHandler.GetEmployeeDashboard)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", dashboardHandler.GetAdminDashboard)
				})
			})
		})
	})
	return r
}
