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

	"github.com/Siliatu1/dashboard-inscritos/internal/commands"
	"github.com/Siliatu1/dashboard-inscritos/internal/config"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/attendance"
	appHTTP "github.com/Siliatu1/dashboard-inscritos/internal/handler/http"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/cron"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/database"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/jwt"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/remote"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/sse"
	"github.com/Siliatu1/dashboard-inscritos/internal/repository/postgresql"
	attendanceService "github.com/Siliatu1/dashboard-inscritos/internal/service/attendance"
	dashboardService "github.com/Siliatu1/dashboard-inscritos/internal/service/dashboard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.App.LogLevel),
	})))

	// Check for subcommands
	if len(os.Args) > 1 && os.Args[1] == "issue-token" {
		if err := commands.IssueToken(os.Args[2:], cfg.JWT.Secret, cfg.JWT.AccessExpiration, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var toggleLogRepo attendance.ToggleLogRepository
	if cfg.AuditLogEnabled() {
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			slog.Error("Error connecting to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := postgresql.EnsureToggleLogSchema(ctx, db); err != nil {
			slog.Error("Error preparing database schema", "error", err)
			os.Exit(1)
		}
		toggleLogRepo = postgresql.NewToggleLogRepository(db)
	} else {
		slog.Info("DB_HOST not set, attendance history is disabled")
		toggleLogRepo = attendanceService.NewNopToggleLogRepository()
	}

	client := remote.NewClient(cfg.Remote)
	reservationRepo := remote.NewReservationRepository(client)
	eventRepo := remote.NewEventRepository(client)
	rosterRepo := remote.NewRosterRepository(client)

	hub := sse.NewHub()
	board := attendanceService.NewBoard()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	dashboardSvc := dashboardService.NewDashboardService(reservationRepo, rosterRepo, cfg.Remote.PageSize)
	attendanceSvc := attendanceService.NewAttendanceService(
		reservationRepo,
		eventRepo,
		toggleLogRepo,
		board,
		hub,
		cfg.Remote.PageSize,
	)

	// Cron jobs
	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(reservationRepo, board, hub, cfg.Remote.PageSize).
		RegisterJobs(scheduler, cfg.Remote.RefreshInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, hub)

	router := appHTTP.NewRouter(cfg.App, JWTService, dashboardHandler, attendanceHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			// open SSE streams do not finish on their own
			_ = server.Close()
		}
	}()

	slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
