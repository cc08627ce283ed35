package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/rotalabs/shift-backend-go/internal/config"
	"github.com/rotalabs/shift-backend-go/internal/handler/http/middleware"
	"github.com/rotalabs/shift-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	shiftHandler ShiftHandler,
	checkinHandler CheckinHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Device-Key"},
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

		// Checkin devices authenticate with the shared device key
		r.Group(func(r chi.Router) {
			r.Use(middleware.DeviceKeyRequired(cfg.HR.DeviceAPIKeyHash))
			r.Post("/checkins", checkinHandler.IngestCheckin)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/shift-types", func(r chi.Router) {
				r.Get("/", shiftHandler.ListShiftTypes)
				r.Post("/", shiftHandler.CreateShiftType)
				r.Get("/{id}", shiftHandler.GetShiftType)
				r.Put("/{id}", shiftHandler.UpdateShiftType)
				r.Delete("/{id}", shiftHandler.DeleteShiftType)
				r.Post("/{id}/process-auto-attendance", attendanceHandler.ProcessAutoAttendance)
			})

			r.Route("/shift-assignments", func(r chi.Router) {
				r.Get("/", shiftHandler.ListAssignments)
				r.Post("/", shiftHandler.CreateAssignment)
				r.Post("/bulk", shiftHandler.BulkCreateAssignments)
				r.Get("/{id}", shiftHandler.GetAssignment)
				r.Put("/{id}/end", shiftHandler.EndAssignment)
				r.Delete("/{id}", shiftHandler.DeleteAssignment)
			})

			r.Route("/shift-locations", func(r chi.Router) {
				r.Get("/", shiftHandler.ListLocations)
				r.Post("/", shiftHandler.CreateLocation)
				r.Get("/{id}", shiftHandler.GetLocation)
				r.Put("/{id}", shiftHandler.UpdateLocation)
				r.Delete("/{id}", shiftHandler.DeleteLocation)
			})

			r.Route("/shift-schedules", func(r chi.Router) {
				r.Get("/", shiftHandler.ListSchedules)
				r.Post("/", shiftHandler.CreateSchedule)
				r.Get("/{id}", shiftHandler.GetSchedule)
				r.Delete("/{id}", shiftHandler.DeleteSchedule)
			})

			// POST /checkins belongs to the device group above
			r.Get("/checkins", checkinHandler.ListCheckins)
			r.Get("/checkins/{id}", checkinHandler.GetCheckin)

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListAttendance)
				r.Post("/", attendanceHandler.MarkAttendance)
				r.Get("/{id}", attendanceHandler.GetAttendance)
			})
		})
	})
	return r
}
