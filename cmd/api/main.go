package main

import (
	"fmt"
	"net/http"

	"github.com/attendancepro/attendance-backend-go/internal/config"
	appHTTP "github.com/attendancepro/attendance-backend-go/internal/handler/http"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/database"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/oauth"
	"github.com/attendancepro/attendance-backend-go/internal/pkg/sse"
	"github.com/attendancepro/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendancepro/attendance-backend-go/internal/service/attendance"
	authService "github.com/attendancepro/attendance-backend-go/internal/service/auth"
	companyService "github.com/attendancepro/attendance-backend-go/internal/service/company"
	dashboardService "github.com/attendancepro/attendance-backend-go/internal/service/dashboard"
	employeeService "github.com/attendancepro/attendance-backend-go/internal/service/employee"
	hardwareService "github.com/attendancepro/attendance-backend-go/internal/service/hardware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	deviceRepo := postgresql.NewDeviceRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub()

	authSvc := authService.NewAuthService(db, userRepo, companyRepo, jwtService, jwtRepo, googleService)
	attendanceSvc := attendanceService.NewAttendanceService(db, eventRepo, employeeRepo, companyRepo, hub)
	companySvc := companyService.NewCompanyService(db, companyRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	hardwareSvc := hardwareService.NewDeviceService(db, deviceRepo)
	dashboardSvc := dashboardService.NewDashboardService(eventRepo, employeeRepo, companyRepo, deviceRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, jwtService, hub)
	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	hardwareHandler := appHTTP.NewHardwareHandler(hardwareSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		jwtService,
		authHandler,
		attendanceHandler,
		companyHandler,
		employeeHandler,
		hardwareHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
