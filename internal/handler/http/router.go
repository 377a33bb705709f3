package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/config"
	"github.com/peopleops-hr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/peopleops-hr/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/summary", attendanceHandler.Summary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/absentees", attendanceHandler.Absentees)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Post("/recompute", attendanceHandler.Recompute)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/balance", leaveHandler.Balance)

				r.Route("/requests", func(r chi.Router) {
					r.Get("/", leaveHandler.MyRequests)
					r.Post("/", leaveHandler.Create)
					r.Post("/validate", leaveHandler.Validate)
					r.Post("/{id}/cancel", leaveHandler.Cancel)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Post("/{id}/approve", leaveHandler.Approve)
						r.Post("/{id}/reject", leaveHandler.Reject)
					})
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/approvals", leaveHandler.PendingApprovals)
				})
			})
		})
	})

	return r
}
