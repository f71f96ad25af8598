package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventory/internal/delivery/http/controllers"
	"eventory/internal/delivery/http/helpers"
	"eventory/internal/delivery/http/middleware"
	"eventory/internal/domain"
)

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps holds everything NewRouter wires into routes.
type RouterDeps struct {
	Logger   *slog.Logger
	Verifier domain.TokenVerifier
	DB       Pinger
	Metrics  http.Handler

	Colleges      *controllers.CollegeController
	Students      *controllers.StudentController
	Events        *controllers.EventController
	Registrations *controllers.RegistrationController
	Attendance    *controllers.AttendanceController
	Feedback      *controllers.FeedbackController
	Reports       *controllers.ReportController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(d.Verifier, d.Logger)
	// guard authenticates the caller and checks that their role may perform op.
	guard := func(op domain.Operation, h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.Authorize(op)(h))
	}
	read := func(h http.HandlerFunc) http.HandlerFunc { return guard(domain.OpRead, h) }
	manage := func(h http.HandlerFunc) http.HandlerFunc { return guard(domain.OpManageCatalog, h) }

	// Colleges
	mux.HandleFunc("POST /colleges", manage(d.Colleges.CreateCollege))
	mux.HandleFunc("GET /colleges", read(d.Colleges.ListColleges))
	mux.HandleFunc("GET /colleges/{collegeID}", read(d.Colleges.GetCollege))
	mux.HandleFunc("PATCH /colleges/{collegeID}", manage(d.Colleges.UpdateCollege))
	mux.HandleFunc("DELETE /colleges/{collegeID}", manage(d.Colleges.DeleteCollege))

	// Students
	mux.HandleFunc("POST /students", manage(d.Students.CreateStudent))
	mux.HandleFunc("GET /students", read(d.Students.ListStudents))
	mux.HandleFunc("GET /students/{studentID}", read(d.Students.GetStudent))
	mux.HandleFunc("PATCH /students/{studentID}", manage(d.Students.UpdateStudent))
	mux.HandleFunc("DELETE /students/{studentID}", manage(d.Students.DeleteStudent))

	// Events
	mux.HandleFunc("POST /events", manage(d.Events.CreateEvent))
	mux.HandleFunc("GET /events", read(d.Events.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", read(d.Events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", manage(d.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", manage(d.Events.DeleteEvent))

	// Registration, attendance, feedback
	mux.HandleFunc("POST /events/{eventID}/registrations", guard(domain.OpRegisterForEvent, d.Registrations.Register))
	mux.HandleFunc("GET /events/{eventID}/registered-students", read(d.Attendance.ListRegisteredStudents))
	mux.HandleFunc("POST /events/{eventID}/attendance", guard(domain.OpMarkAttendance, d.Attendance.CheckIn))
	mux.HandleFunc("POST /events/{eventID}/attendance/batch", guard(domain.OpMarkAttendance, d.Attendance.CheckInBatch))
	mux.HandleFunc("GET /events/{eventID}/attendance", read(d.Attendance.ListAttendance))
	mux.HandleFunc("POST /events/{eventID}/feedback", guard(domain.OpSubmitFeedback, d.Feedback.Submit))

	// Reports
	mux.HandleFunc("GET /reports/event-metrics/{eventID}", read(d.Reports.EventMetrics))
	mux.HandleFunc("GET /reports/event-popularity", read(d.Reports.EventPopularity))
	mux.HandleFunc("GET /reports/student-participation/{studentID}", read(d.Reports.StudentParticipation))
	mux.HandleFunc("GET /reports/top-students", read(d.Reports.TopStudents))

	// Operations
	mux.HandleFunc("GET /healthz", healthz(d.DB))
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// HealthResponse is the data payload for GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

// healthz godoc
// @Summary Liveness and database check
// @Tags ops
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Failure 503 {object} helpers.APIResponse "data.status: degraded"
// @Router /healthz [get]
func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if db == nil || db.PingContext(ctx) != nil {
			helpers.WriteJSONSuccess(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", DB: "unreachable"})
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok", DB: "ok"})
	}
}

// NewHandler wraps the router with the cross-cutting middleware: request logging outermost,
// then CORS, then latency instrumentation next to the mux so the matched route pattern is visible.
func NewHandler(mux *http.ServeMux, logger *slog.Logger, corsOrigins []string, instrument func(http.Handler) http.Handler) http.Handler {
	var h http.Handler = mux
	if instrument != nil {
		h = instrument(h)
	}
	h = middleware.CORS(corsOrigins, h)
	return middleware.LoggingMiddleware(logger, h)
}
