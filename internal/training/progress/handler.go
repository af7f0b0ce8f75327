package progress

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type progressService interface {
	ModuleProgress(ctx context.Context, moduleID string) (ModuleProgress, error)
	AllProgress(ctx context.Context) (map[string]ModuleProgress, error)
}

type Handler struct {
	service progressService
}

func NewHandler(service progressService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/modules/{module}/progress", handler.HandleModuleProgress).Methods("GET", "OPTIONS").Name("module-progress")
	r.HandleFunc("/progress", handler.HandleAllProgress).Methods("GET", "OPTIONS").Name("all-progress")
}

func (handler *Handler) HandleModuleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.module")
	defer span.End()

	moduleID := mux.Vars(r)["module"]
	moduleProgress, err := handler.service.ModuleProgress(ctx, moduleID)
	if errors.Is(err, ErrUnknownModule) {
		http.Error(w, "error, module not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get progress [%s]: %s", moduleID, err)
		http.Error(w, "error, failed to get progress", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(moduleProgress)
	if err != nil {
		log.Errorf("failed to marshal progress [%s]: %s", moduleID, err)
		http.Error(w, "error, failed to get progress", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleAllProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.all")
	defer span.End()

	allProgress, err := handler.service.AllProgress(ctx)
	if err != nil {
		log.Errorf("failed to get progress of all modules: %s", err)
		http.Error(w, "error, failed to get progress", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(allProgress)
	if err != nil {
		log.Errorf("failed to marshal all progress: %s", err)
		http.Error(w, "error, failed to get progress", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
