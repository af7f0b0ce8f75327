package program

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/volleyfit/internal/telemetry/tracing"
	"github.com/2beens/volleyfit/pkg"
)

type ModulesResponse struct {
	Modules []Module `json:"modules"`
}

type ProgramResponse struct {
	Module Module        `json:"module"`
	Weeks  []WorkoutWeek `json:"weeks"`
}

type WeekResponse struct {
	Module Module      `json:"module"`
	Week   WorkoutWeek `json:"week"`
}

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/modules", handler.HandleModules).Methods("GET", "OPTIONS").Name("list-modules")
	r.HandleFunc("/modules/{module}/program", handler.HandleProgram).Methods("GET", "OPTIONS").Name("module-program")
	r.HandleFunc("/modules/{module}/program/week/{week}", handler.HandleWeek).Methods("GET", "OPTIONS").Name("module-program-week")
}

func (handler *Handler) HandleModules(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.modules")
	defer span.End()

	respJson, err := json.Marshal(ModulesResponse{
		Modules: handler.catalog.Modules(),
	})
	if err != nil {
		log.Errorf("failed to marshal modules: %s", err)
		http.Error(w, "failed to marshal modules", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleProgram(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.get")
	defer span.End()

	moduleID := mux.Vars(r)["module"]
	span.SetAttributes(attribute.String("module", moduleID))
	if !handler.catalog.IsKnownModule(moduleID) {
		log.Debugf("program for unknown module [%s] requested, serving default", moduleID)
	}

	respJson, err := json.Marshal(ProgramResponse{
		Module: handler.catalog.Module(moduleID),
		Weeks:  handler.catalog.Program(moduleID),
	})
	if err != nil {
		log.Errorf("failed to marshal program [%s]: %s", moduleID, err)
		http.Error(w, "failed to marshal program", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.week")
	defer span.End()

	vars := mux.Vars(r)
	moduleID := vars["module"]
	weekNumber, err := strconv.Atoi(vars["week"])
	if err != nil {
		http.Error(w, "error, week NaN", http.StatusBadRequest)
		return
	}
	span.SetAttributes(
		attribute.String("module", moduleID),
		attribute.Int("week", weekNumber),
	)

	week, err := handler.catalog.Week(moduleID, weekNumber)
	if errors.Is(err, ErrWeekOutOfRange) {
		http.Error(w, "error, week must be between 1 and 12", http.StatusBadRequest)
		return
	} else if err != nil {
		log.Errorf("failed to get week %d of [%s]: %s", weekNumber, moduleID, err)
		http.Error(w, "failed to get week", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(WeekResponse{
		Module: handler.catalog.Module(moduleID),
		Week:   week,
	})
	if err != nil {
		log.Errorf("failed to marshal week: %s", err)
		http.Error(w, "failed to marshal week", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
