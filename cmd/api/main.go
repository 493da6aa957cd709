package main

import (
	"fmt"
	"net/http"

	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/config"
	appHTTP "github.com/hasinesrak/Time-Track-Hub-TTH/internal/handler/http"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/database"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/jwt"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/keyvalue"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/lockout"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/oauth"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/repository/postgresql"
	attendanceService "github.com/hasinesrak/Time-Track-Hub-TTH/internal/service/attendance"
	authService "github.com/hasinesrak/Time-Track-Hub-TTH/internal/service/auth"
	dashboardService "github.com/hasinesrak/Time-Track-Hub-TTH/internal/service/dashboard"
	reportService "github.com/hasinesrak/Time-Track-Hub-TTH/internal/service/report"
	taskService "github.com/hasinesrak/Time-Track-Hub-TTH/internal/service/task"
	userService "github.com/hasinesrak/Time-Track-Hub-TTH/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	// Lockout state lives in Redis when configured, memory otherwise
	var kvStore keyvalue.Store
	if cfg.Redis.Addr != "" {
		kvStore, err = keyvalue.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, "tth")
		if err != nil {
			fmt.Println("Error connecting to redis:", err)
			return
		}
	} else {
		kvStore = keyvalue.NewMemoryStore()
	}
	loginGuard := lockout.NewGuard(kvStore, cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutDuration)

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo, loginGuard, cfg.Auth.AdminRegistrationCode)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	taskSvc := taskService.NewTaskService(taskRepo, userRepo)
	reportSvc := reportService.NewReportService(reportRepo)
	userSvc := userService.NewUserService(db, userRepo, jwtRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		taskHandler,
		reportHandler,
		userHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
