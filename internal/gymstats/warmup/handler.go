package warmup

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/telemetry/tracing"
	"github.com/Dalmiro47/GymTrackerv2-sub001/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=warmup_test

type warmupService interface {
	Prescribe(ctx context.Context, req PrescribeRequest) (*Prescription, error)
	Classify(ctx context.Context, ex Exercise) Classification
	Templates(ctx context.Context) TemplatesResponse
}

type RoundResponse struct {
	Value   float64 `json:"value"`
	Step    float64 `json:"step,omitempty"`
	Mode    string  `json:"mode,omitempty"`
	Rounded float64 `json:"rounded"`
}

type Handler struct {
	service warmupService
}

func NewHandler(service warmupService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/gymstats/warmup", handler.HandlePrescribe).Methods("POST", "OPTIONS").Name("warmup-prescribe")
	r.HandleFunc("/gymstats/warmup/classify", handler.HandleClassify).Methods("GET", "OPTIONS").Name("warmup-classify")
	r.HandleFunc("/gymstats/warmup/templates", handler.HandleTemplates).Methods("GET", "OPTIONS").Name("warmup-templates")
	r.HandleFunc("/gymstats/warmup/round", handler.HandleRound).Methods("GET", "OPTIONS").Name("warmup-round")
}

func (handler *Handler) HandlePrescribe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.warmup.prescribe")
	defer span.End()

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req PrescribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("warmup prescribe, unmarshal json params: %s", err)
		http.Error(w, "invalid warm-up request", http.StatusBadRequest)
		return
	}

	prescription, err := handler.service.Prescribe(ctx, req)
	if err != nil {
		if errors.Is(err, ErrExerciseRequired) ||
			errors.Is(err, ErrUnknownArchetype) ||
			errors.Is(err, ErrUnknownEquipment) {
			http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to prescribe warm-up for [%s]: %s", req.Exercise, err)
		http.Error(w, "error, failed to prescribe warm-up", http.StatusInternalServerError)
		return
	}

	log.Debugf("warm-up for [%s] at %s kg: %d steps", req.Exercise, pkg.FormatWeight(req.WorkingWeight), len(prescription.Steps))

	respJson, err := json.Marshal(prescription)
	if err != nil {
		log.Errorf("failed to marshal warm-up prescription: %s", err)
		http.Error(w, "error, failed to prescribe warm-up", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.warmup.classify")
	defer span.End()

	query := r.URL.Query()
	name := query.Get("name")
	if strings.TrimSpace(name) == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}

	equipment, ok := ParseEquipment(query.Get("equipment"))
	if !ok {
		http.Error(w, "error, unknown equipment", http.StatusBadRequest)
		return
	}

	classification := handler.service.Classify(ctx, Exercise{
		Name:      name,
		Equipment: equipment,
		Isolation: queryBool(query.Get("isolation")),
		LowerBody: queryBool(query.Get("lowerBody")),
	})

	respJson, err := json.Marshal(classification)
	if err != nil {
		log.Errorf("failed to marshal classification: %s", err)
		http.Error(w, "error, failed to classify exercise", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.warmup.templates")
	defer span.End()

	respJson, err := json.Marshal(handler.service.Templates(ctx))
	if err != nil {
		log.Errorf("failed to marshal warm-up templates: %s", err)
		http.Error(w, "error, failed to get templates", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleRound(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymstats.warmup.round")
	defer span.End()

	query := r.URL.Query()
	value, err := strconv.ParseFloat(query.Get("value"), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		http.Error(w, "error, value NaN", http.StatusBadRequest)
		return
	}

	resp := RoundResponse{Value: value}
	if stepStr := query.Get("step"); stepStr != "" {
		step, err := strconv.ParseFloat(stepStr, 64)
		if err != nil || step <= 0 {
			http.Error(w, "error, invalid step", http.StatusBadRequest)
			return
		}
		mode := pkg.ParseSnapMode(query.Get("mode"))
		resp.Step = step
		resp.Mode = string(mode)
		resp.Rounded = pkg.SnapToStep(value, step, mode)
	} else {
		resp.Rounded = pkg.RoundToGymHalf(value)
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal round response: %s", err)
		http.Error(w, "error, failed to round", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func queryBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
