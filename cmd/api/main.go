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
	_ "time/tzdata"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	companyService "github.com/cmlabs-hris/hris-attendance-go/internal/service/company"
	holidayService "github.com/cmlabs-hris/hris-attendance-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/hris-attendance-go/internal/service/leave"
	overtimeService "github.com/cmlabs-hris/hris-attendance-go/internal/service/overtime"
	reportService "github.com/cmlabs-hris/hris-attendance-go/internal/service/report"
	setupService "github.com/cmlabs-hris/hris-attendance-go/internal/service/setup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	settingsRepo := postgresql.NewSettingsRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)

	if err := setupService.NewSetupService(settingsRepo, leaveTypeRepo, cfg.App.Timezone.String()).SeedDefaults(ctx); err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case config.StorageLocal:
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
	case config.StorageS3:
		fileStorage, err = storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			Endpoint:  cfg.Storage.S3Endpoint,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
			PublicURL: cfg.Storage.S3PublicURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, settingsRepo, cfg.App.Timezone)
	leaveSvc := leaveService.NewLeaveService(leaveTypeRepo, leaveRequestRepo, leaveQuotaRepo, employeeRepo, settingsRepo, postgresql.Transactor(db))
	overtimeSvc := overtimeService.NewOvertimeService(overtimeRepo, holidayRepo, employeeRepo, settingsRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	settingsSvc := companyService.NewSettingsService(settingsRepo)
	reportSvc := reportService.NewReportService(
		settingsRepo,
		employeeRepo,
		attendanceRepo,
		leaveRequestRepo,
		holidayRepo,
		overtimeRepo,
		reportService.Options{
			Concurrency: cfg.Report.Concurrency,
			Location:    cfg.App.Timezone,
		},
	)

	scheduler := cron.NewScheduler()
	if cfg.Report.ArchiveEnabled {
		cron.NewReportJobs(reportSvc, fileStorage, cfg.App.Timezone).RegisterJobs(scheduler, cfg.Report.ArchiveInterval)
		scheduler.Start(ctx)
	}
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: cfg.App.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		TrustedProxies: cfg.RateLimit.TrustedProxies,
		LogLevel:       cfg.App.LogLevel,
		Version:        cfg.App.Version,
		Env:            cfg.App.Env,
	}, JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Report:     appHTTP.NewReportHandler(reportSvc, fileStorage),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
