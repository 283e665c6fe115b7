package router

import (
	"net/http"
	"time"

	"Mansoor88-6/mastery-tracker/internal/auth"
	"Mansoor88-6/mastery-tracker/internal/config"
	"Mansoor88-6/mastery-tracker/internal/handler"

	"go.uber.org/zap"
)

type Handlers struct {
	Tasks       *handler.TaskHandler
	TimeEntries *handler.TimeEntryHandler
	Journal     *handler.JournalHandler
}

func New(h Handlers, provider auth.Provider, cfg config.Server, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	protect := auth.Middleware(provider, logger)
	route := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, protect(fn))
	}

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	route("GET /me", handler.Me)

	// Task endpoints
	route("GET /tasks", h.Tasks.ListTasks)
	route("POST /tasks", h.Tasks.CreateTask)
	route("GET /tasks/stats", h.Tasks.Stats)
	route("GET /tasks/{id}", h.Tasks.GetTask)
	route("PUT /tasks/{id}", h.Tasks.UpdateTask)
	route("DELETE /tasks/{id}", h.Tasks.DeleteTask)

	// Time entry endpoints
	route("GET /time-entries", h.TimeEntries.ListTimeEntries)
	route("POST /time-entries", h.TimeEntries.CreateTimeEntry)
	route("POST /time-entries/manual", h.TimeEntries.CreateManualEntry)

	// Journal endpoints
	route("GET /journal", h.Journal.ListEntries)
	route("GET /journal/questions", h.Journal.Questions)
	route("GET /journal/{date}", h.Journal.GetEntry)
	route("PUT /journal/{date}", h.Journal.SaveEntry)

	var next http.Handler = mux
	next = withTimeout(next, cfg.RequestTimeout)
	next = withCORS(next, cfg.AllowedOrigins)
	return withLogging(next, logger)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
