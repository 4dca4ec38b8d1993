package http

import (
	"io"
	"log/slog"
	"net/netip"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	TrustedProxies []netip.Prefix
	LogLevel       slog.Level
	Version        string
	Env            string
	// LogOutput defaults to stdout.
	LogOutput io.Writer
}

type Handlers struct {
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Overtime   OvertimeHandler
	Holiday    HolidayHandler
	Settings   SettingsHandler
	Report     ReportHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	out := cfg.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-attendance"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustedProxies))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequireEmployee)
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/my", h.Attendance.GetMyAttendance)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", h.Leave.ListTypes)

				r.Route("/requests", func(r chi.Router) {
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireEmployee)
						r.Post("/", h.Leave.CreateRequest)
						r.Get("/my", h.Leave.GetMyRequests)
					})

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireAdmin)
						r.Post("/{id}/approve", h.Leave.ApproveRequest)
						r.Post("/{id}/reject", h.Leave.RejectRequest)
					})
				})

				r.Route("/quotas", func(r chi.Router) {
					r.With(middleware.RequireEmployee).Get("/my", h.Leave.GetMyQuotas)
					r.With(middleware.RequireAdmin).Put("/", h.Leave.AllocateQuota)
				})
			})

			r.Route("/overtime", func(r chi.Router) {
				r.With(middleware.RequireEmployee).Post("/", h.Overtime.Submit)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/{id}/approve", h.Overtime.Approve)
					r.Post("/{id}/reject", h.Overtime.Reject)
				})
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/", h.Holiday.Create)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.Get)
				r.With(middleware.RequireAdmin).Put("/", h.Settings.Update)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequireEmployee).Get("/my-summary", h.Report.GetMySummary)

				// Admin only
				r.Route("/monthly", func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", h.Report.GetMonthlyReport)
					r.Get("/export", h.Report.ExportMonthlyReport)
					r.Get("/archive", h.Report.DownloadArchive)
				})
			})
		})
	})
	return r
}
