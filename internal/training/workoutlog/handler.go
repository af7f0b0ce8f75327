package workoutlog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/volleyfit/internal/telemetry/tracing"
	"github.com/2beens/volleyfit/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workoutlog_test

type workoutService interface {
	LogWorkout(ctx context.Context, moduleID string, req LogRequest) (_ WorkoutLog, total int, err error)
	Logs(ctx context.Context, moduleID string) ([]WorkoutLog, error)
}

type LogWorkoutResponse struct {
	Log   WorkoutLog `json:"log"`
	Total int        `json:"total"`
}

type ListResponse struct {
	Logs  []WorkoutLog `json:"logs"`
	Total int          `json:"total"`
}

type Handler struct {
	service workoutService
}

func NewHandler(service workoutService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers the log routes. The append route is wrapped with the
// given middleware (rate limiting).
func (handler *Handler) SetupRoutes(r *mux.Router, appendMiddleware ...mux.MiddlewareFunc) {
	var appendHandler http.Handler = http.HandlerFunc(handler.HandleLogWorkout)
	for i := len(appendMiddleware) - 1; i >= 0; i-- {
		appendHandler = appendMiddleware[i](appendHandler)
	}

	r.Handle("/modules/{module}/logs", appendHandler).Methods("POST", "OPTIONS").Name("new-workout-log")
	r.HandleFunc("/modules/{module}/logs", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workout-logs")
}

func (handler *Handler) HandleLogWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req LogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout log, unmarshal json params: %s", err)
		http.Error(w, "add workout log failed", http.StatusBadRequest)
		return
	}

	moduleID := mux.Vars(r)["module"]
	workoutLog, total, err := handler.service.LogWorkout(ctx, moduleID, req)
	switch {
	case errors.Is(err, ErrUnknownModule):
		http.Error(w, "error, module not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrUnknownExercise), errors.Is(err, ErrInvalidEntry):
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("failed to add workout log [%s] [%s]: %s", moduleID, req.ExerciseID, err)
		http.Error(w, "error, failed to add workout log", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(LogWorkoutResponse{
		Log:   workoutLog,
		Total: total,
	})
	if err != nil {
		log.Errorf("failed to marshal new workout log: %s", err)
		http.Error(w, "error, failed to add workout log", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutlog.list")
	defer span.End()

	moduleID := mux.Vars(r)["module"]
	logs, err := handler.service.Logs(ctx, moduleID)
	if errors.Is(err, ErrUnknownModule) {
		http.Error(w, "error, module not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get workout logs [%s]: %s", moduleID, err)
		http.Error(w, "error, failed to get workout logs", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		Logs:  logs,
		Total: len(logs),
	})
	if err != nil {
		log.Errorf("failed to marshal workout logs: %s", err)
		http.Error(w, "error, failed to get workout logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
