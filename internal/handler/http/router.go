package http

import (
	"log/slog"
	"os"

	"github.com/Siliatu1/dashboard-inscritos/internal/config"
	"github.com/Siliatu1/dashboard-inscritos/internal/handler/http/middleware"
	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(appConfig config.AppConfig, JWTService jwt.Service, dashboardHandler DashboardHandler, attendanceHandler AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appConfig.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "dashboard-inscritos"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appConfig.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appConfig.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  config.ParseLogLevel(appConfig.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", dashboardHandler.GetOverview)
			r.Get("/departments/{department}", dashboardHandler.GetDepartmentDetail)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", attendanceHandler.ListEvents)
			r.Route("/{eventID}", func(r chi.Router) {
				r.Get("/reservations", attendanceHandler.ListReservations)
				r.Get("/reservations/export", attendanceHandler.Export)
				r.Get("/stream", attendanceHandler.Stream)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/reservations/{reservationID}/attendance", func(r chi.Router) {
				r.Put("/", attendanceHandler.Toggle)
				r.Get("/history", attendanceHandler.History)
			})
		})
	})
	return r
}
