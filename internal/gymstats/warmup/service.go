package warmup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/cache"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/telemetry/metrics"
	"github.com/Dalmiro47/GymTrackerv2-sub001/internal/telemetry/tracing"
)

var ErrUnknownEquipment = errors.New("unknown equipment")

// PrescribeRequest describes one exercise and the weight planned for its top set.
// The archetype is taken from Archetype when set, else from the equipment tag,
// else from keywords in the exercise name.
type PrescribeRequest struct {
	Exercise  string    `json:"exercise"`
	Equipment Equipment `json:"equipment,omitempty"`
	Isolation bool      `json:"isolation,omitempty"`
	LowerBody bool      `json:"lowerBody,omitempty"`

	Archetype          string `json:"archetype,omitempty"`
	IsLowerBodyBarbell *bool  `json:"isLowerBodyBarbell,omitempty"`
	// Deprecated: ignored, see ExerciseConfig.IsWeightedBodyweight.
	IsWeightedBodyweight bool       `json:"isWeightedBodyweight,omitempty"`
	OverrideSteps        []StepSpec `json:"overrideSteps,omitempty"`

	WorkingWeight float64 `json:"workingWeight"`
}

type Prescription struct {
	Exercise           string    `json:"exercise"`
	Archetype          Archetype `json:"archetype"`
	IsLowerBodyBarbell bool      `json:"isLowerBodyBarbell"`
	ClassifiedFromName bool      `json:"classifiedFromName"`
	WorkingWeight      float64   `json:"workingWeight"`
	CatalogVersion     string    `json:"catalogVersion"`
	Steps              []Step    `json:"steps"`
}

type TemplatesResponse struct {
	Version   string                   `json:"version"`
	Templates map[Archetype][]StepSpec `json:"templates"`
}

type Service struct {
	generator      *Generator
	cache          cache.Cache
	metricsManager *metrics.Manager
}

// NewService builds the prescription service. cache and metricsManager are optional.
func NewService(generator *Generator, cache cache.Cache, metricsManager *metrics.Manager) *Service {
	if generator == nil {
		generator = NewGenerator(nil)
	}
	return &Service{
		generator:      generator,
		cache:          cache,
		metricsManager: metricsManager,
	}
}

func (s *Service) Prescribe(ctx context.Context, req PrescribeRequest) (_ *Prescription, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.warmup.prescribe")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cfg, classification, err := resolveConfig(req)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("exercise", req.Exercise),
		attribute.String("archetype", string(cfg.Archetype)),
		attribute.Float64("working_weight", req.WorkingWeight),
		attribute.Bool("lower_body_barbell", cfg.IsLowerBodyBarbell),
		attribute.Int("override_steps", len(cfg.OverrideSteps)),
	)

	steps := s.computeCached(cfg, req.WorkingWeight)

	if s.metricsManager != nil {
		s.metricsManager.CounterPrescriptions.WithLabelValues(string(cfg.Archetype)).Inc()
		s.metricsManager.HistogramWarmupSteps.Observe(float64(len(steps)))
	}

	return &Prescription{
		Exercise:           req.Exercise,
		Archetype:          cfg.Archetype,
		IsLowerBodyBarbell: cfg.IsLowerBodyBarbell,
		ClassifiedFromName: classification.FromName,
		WorkingWeight:      req.WorkingWeight,
		CatalogVersion:     s.generator.Catalog().Version(),
		Steps:              steps,
	}, nil
}

func (s *Service) Classify(ctx context.Context, ex Exercise) Classification {
	_, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.warmup.classify")
	defer span.End()

	c := ClassifyExercise(ex)
	span.SetAttributes(
		attribute.String("exercise", ex.Name),
		attribute.String("archetype", string(c.Archetype)),
	)
	return c
}

func (s *Service) Templates(ctx context.Context) TemplatesResponse {
	_, span := tracing.GlobalTracer.Start(ctx, "service.gymstats.warmup.templates")
	defer span.End()

	catalog := s.generator.Catalog()
	return TemplatesResponse{
		Version:   catalog.Version(),
		Templates: catalog.Templates(),
	}
}

type cacheKey struct {
	Version       string         `json:"v"`
	Config        ExerciseConfig `json:"c"`
	WorkingWeight float64        `json:"w"`
}

func (s *Service) computeCached(cfg ExerciseConfig, workingWeight float64) []Step {
	if s.cache == nil {
		return s.generator.Compute(cfg, workingWeight)
	}

	key, err := json.Marshal(cacheKey{
		Version:       s.generator.Catalog().Version(),
		Config:        cfg,
		WorkingWeight: workingWeight,
	})
	if err != nil {
		// NaN/Inf weights cannot be marshalled, just skip the cache
		log.Tracef("warmup cache key: %s", err)
		return s.generator.Compute(cfg, workingWeight)
	}

	if cached, found := s.cache.Get(key); found {
		var steps []Step
		if err := json.Unmarshal(cached, &steps); err == nil {
			s.countCache("hit")
			return steps
		}
		log.Warnf("warmup cache: unmarshal cached steps: %s", err)
	}
	s.countCache("miss")

	steps := s.generator.Compute(cfg, workingWeight)
	stepsJson, err := json.Marshal(steps)
	if err != nil {
		log.Errorf("warmup cache: marshal steps: %s", err)
		return steps
	}
	if err := s.cache.Set(key, stepsJson); err != nil {
		log.Debugf("warmup cache: set: %s", err)
	}

	return steps
}

func (s *Service) countCache(result string) {
	if s.metricsManager != nil {
		s.metricsManager.CounterPrescriptionCache.WithLabelValues(result).Inc()
	}
}

func resolveConfig(req PrescribeRequest) (ExerciseConfig, Classification, error) {
	if strings.TrimSpace(req.Exercise) == "" && strings.TrimSpace(req.Archetype) == "" {
		return ExerciseConfig{}, Classification{}, ErrExerciseRequired
	}

	equipment, ok := ParseEquipment(string(req.Equipment))
	if !ok {
		return ExerciseConfig{}, Classification{}, fmt.Errorf("%w: %q", ErrUnknownEquipment, req.Equipment)
	}

	var classification Classification
	if req.Archetype != "" {
		archetype, err := ParseArchetype(req.Archetype)
		if err != nil {
			return ExerciseConfig{}, Classification{}, err
		}
		classification = Classification{Archetype: archetype}
		if archetype == ArchetypeHeavyBarbell {
			classification.IsLowerBodyBarbell = req.LowerBody ||
				containsAny(strings.ToLower(req.Exercise), lowerBodyBarbellKeywords)
		}
	} else {
		classification = ClassifyExercise(Exercise{
			Name:      req.Exercise,
			Equipment: equipment,
			Isolation: req.Isolation,
			LowerBody: req.LowerBody,
		})
	}

	cfg := ExerciseConfig{
		Archetype:          classification.Archetype,
		IsLowerBodyBarbell: classification.IsLowerBodyBarbell,
		OverrideSteps:      req.OverrideSteps,
	}
	if req.IsLowerBodyBarbell != nil {
		cfg.IsLowerBodyBarbell = *req.IsLowerBodyBarbell
	}

	return cfg, classification, nil
}
