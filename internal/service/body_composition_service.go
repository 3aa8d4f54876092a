package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/analytics"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/wellness"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/nudge"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/risk"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/metrics"
)

const tracerName = "wellscore/service"

// Engines bundles the stateless calculators the service delegates to.
type Engines struct {
	Risk      *risk.Engine
	Nudges    *nudge.Generator
	Analytics *analytics.Engine
	// DefaultPeriod applies when an analytics request names none.
	DefaultPeriod analytics.Period
}

type BodyCompositionService struct {
	readings biometric.Repository
	scores   wellness.Repository
	engines  Engines
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
	tracer   trace.Tracer
}

func NewBodyCompositionService(
	readings biometric.Repository,
	scores wellness.Repository,
	engines Engines,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *BodyCompositionService {
	if engines.DefaultPeriod == "" {
		engines.DefaultPeriod = analytics.Period30D
	}
	return &BodyCompositionService{
		readings: readings,
		scores:   scores,
		engines:  engines,
		auditSvc: auditSvc,
		metrics:  m,
		log:      log,
		tracer:   otel.Tracer(tracerName),
	}
}

type AnalyticsRequest struct {
	UserID    uuid.UUID
	ProfileID *uuid.UUID
	Period    string
	Timeline  string
	Fields    []string
}

type ScoreRequest struct {
	UserID    uuid.UUID
	ProfileID *uuid.UUID
	// Gender overrides the gender stored on the reading.
	Gender string
}

type WellnessReport struct {
	Score     *wellness.Score     `json:"score"`
	Reading   *biometric.Reading  `json:"reading"`
	Breakdown []risk.Contribution `json:"breakdown"`
}

type RiskAssessment struct {
	*risk.Result
	Nudges []nudge.Nudge `json:"nudges"`
}

func (s *BodyCompositionService) RecordReading(ctx context.Context, cmd *biometric.CreateReadingCommand, caller domain.Caller) (*biometric.Reading, error) {
	ctx, span := s.tracer.Start(ctx, "BodyComposition.RecordReading")
	defer span.End()

	if cmd.UserID == uuid.Nil {
		cmd.UserID = caller.UserID
	}
	if err := authorize(caller, cmd.UserID); err != nil {
		return nil, err
	}
	cmd.CreatedBy = caller.UserID

	r, err := biometric.NewReading(cmd)
	if err != nil {
		return nil, asValidationError(err)
	}

	if err := s.readings.Create(ctx, r); err != nil {
		s.log.Error("failed to store reading", zap.Error(err))
		return nil, spanError(span, fmt.Errorf("storing reading: %w", err))
	}

	s.metrics.ReadingsRecorded.WithLabelValues(string(r.Source)).Inc()
	s.auditSvc.LogAsync(AuditEntry{
		Caller:       caller,
		Action:       domain.ActionCreate,
		ResourceType: "reading",
		ResourceID:   r.ID.String(),
	})

	s.log.Info("reading recorded",
		zap.String("reading_id", r.ID.String()),
		zap.String("user_id", r.UserID.String()),
		zap.Int("fields", len(r.Values())),
	)
	return r, nil
}

func (s *BodyCompositionService) ListReadings(ctx context.Context, q *biometric.ListReadingsQuery, caller domain.Caller) (*biometric.PagedReadings, error) {
	ctx, span := s.tracer.Start(ctx, "BodyComposition.ListReadings")
	defer span.End()

	if q.UserID == uuid.Nil {
		q.UserID = caller.UserID
	}
	if err := authorize(caller, q.UserID); err != nil {
		return nil, err
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, &ValidationError{Fields: []string{"from must not be after to"}}
	}
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	page, err := s.readings.List(ctx, q)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("listing readings: %w", err))
	}
	return page, nil
}

func (s *BodyCompositionService) DeleteReading(ctx context.Context, id uuid.UUID, caller domain.Caller) error {
	ctx, span := s.tracer.Start(ctx, "BodyComposition.DeleteReading")
	defer span.End()

	r, err := s.readings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(caller, r.UserID); err != nil {
		return err
	}

	if err := s.readings.SoftDelete(ctx, id); err != nil {
		return spanError(span, err)
	}

	s.auditSvc.LogAsync(AuditEntry{
		Caller:       caller,
		Action:       domain.ActionDelete,
		ResourceType: "reading",
		ResourceID:   id.String(),
	})
	return nil
}

// Analytics builds graph series, trends and statistics for the readings that fall
// inside the requested period.
func (s *BodyCompositionService) Analytics(ctx context.Context, req AnalyticsRequest, caller domain.Caller) (*analytics.Report, error) {
	ctx, span := s.tracer.Start(ctx, "BodyComposition.Analytics")
	defer span.End()

	if req.UserID == uuid.Nil {
		req.UserID = caller.UserID
	}
	if err := authorize(caller, req.UserID); err != nil {
		return nil, err
	}

	raw := req.Period
	if raw == "" {
		raw = string(s.engines.DefaultPeriod)
	}
	period, err := analytics.ParsePeriod(raw)
	if err != nil {
		return nil, err
	}
	timeline := period.DefaultTimeline()
	if req.Timeline != "" {
		if timeline, err = analytics.ParseTimeline(req.Timeline); err != nil {
			return nil, err
		}
	}
	fields, err := analytics.ResolveFields(req.Fields)
	if err != nil {
		return nil, err
	}

	window, err := s.engines.Analytics.ResolveDateRange(string(period))
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("period", string(period)),
		attribute.String("timeline", string(timeline)),
	)

	readings, err := s.readings.ListInRange(ctx, req.UserID, req.ProfileID, window.Start, window.End)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("fetching readings: %w", err))
	}

	start := time.Now()
	report, err := s.engines.Analytics.Summarize(analytics.FromReadings(readings), period, window, timeline, fields)
	if err != nil {
		return nil, err
	}
	s.metrics.AnalyticsDuration.Observe(time.Since(start).Seconds())
	s.metrics.AnalyticsEntries.Observe(float64(report.Statistics.TotalEntries))
	s.metrics.AnalyticsRequests.WithLabelValues(string(period), string(timeline)).Inc()

	s.auditSvc.LogAsync(AuditEntry{
		Caller:       caller,
		Action:       domain.ActionRead,
		ResourceType: "analytics",
		ResourceID:   req.UserID.String(),
	})
	return report, nil
}

// ScoreLatest scores the newest reading and stores the result as a snapshot.
func (s *BodyCompositionService) ScoreLatest(ctx context.Context, req ScoreRequest, caller domain.Caller) (*WellnessReport, error) {
	ctx, span := s.tracer.Start(ctx, "BodyComposition.ScoreLatest")
	defer span.End()

	if req.UserID == uuid.Nil {
		req.UserID = caller.UserID
	}
	if err := authorize(caller, req.UserID); err != nil {
		return nil, err
	}

	r, err := s.readings.Latest(ctx, req.UserID, req.ProfileID)
	if err != nil {
		if errors.Is(err, biometric.ErrNoReadings) {
			s.metrics.ScoringFailures.WithLabelValues("no_readings").Inc()
			return nil, err
		}
		return nil, spanError(span, fmt.Errorf("fetching latest reading: %w", err))
	}

	rawGender := req.Gender
	if rawGender == "" {
		rawGender = string(r.Gender)
	}
	gender, err := risk.ParseGender(rawGender)
	if err != nil {
		s.metrics.ScoringFailures.WithLabelValues("invalid_gender").Inc()
		return nil, err
	}

	result, err := s.engines.Risk.CalculateRisk(gender, riskMetrics(r))
	if err != nil {
		if errors.Is(err, risk.ErrInsufficientData) {
			s.metrics.ScoringFailures.WithLabelValues("insufficient_data").Inc()
		}
		return nil, err
	}
	nudges := s.engines.Nudges.Generate(nudge.Reading{Weight: r.Weight, BMI: r.BMI, BodyFat: r.BodyFat})

	score := newScore(r, result, nudges, caller.UserID)
	if err := s.scores.Create(ctx, score); err != nil {
		s.log.Error("failed to store wellness score", zap.Error(err))
		return nil, spanError(span, fmt.Errorf("storing wellness score: %w", err))
	}

	s.metrics.ScoresComputed.Inc()
	s.metrics.WellnessScore.Observe(result.WellnessScore)
	s.auditSvc.LogAsync(AuditEntry{
		Caller:       caller,
		Action:       domain.ActionScore,
		ResourceType: "wellness_score",
		ResourceID:   score.ID.String(),
	})

	s.log.Info("wellness score computed",
		zap.String("user_id", req.UserID.String()),
		zap.String("reading_id", r.ID.String()),
		zap.Float64("wellness_score", result.WellnessScore),
		zap.Int("metrics_used", result.MetricsUsed),
	)

	return &WellnessReport{Score: score, Reading: r, Breakdown: result.Breakdown}, nil
}

func (s *BodyCompositionService) ScoreHistory(ctx context.Context, q *wellness.ListScoresQuery, caller domain.Caller) (*wellness.PagedScores, error) {
	ctx, span := s.tracer.Start(ctx, "BodyComposition.ScoreHistory")
	defer span.End()

	if q.UserID == uuid.Nil {
		q.UserID = caller.UserID
	}
	if err := authorize(caller, q.UserID); err != nil {
		return nil, err
	}
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	page, err := s.scores.List(ctx, q)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("listing wellness scores: %w", err))
	}
	return page, nil
}

// CalculateRisk scores a caller-supplied metric set without touching storage.
func (s *BodyCompositionService) CalculateRisk(ctx context.Context, rawGender string, m risk.Metrics) (*RiskAssessment, error) {
	_, span := s.tracer.Start(ctx, "BodyComposition.CalculateRisk")
	defer span.End()

	gender, err := risk.ParseGender(rawGender)
	if err != nil {
		return nil, err
	}
	result, err := s.engines.Risk.CalculateRisk(gender, m)
	if err != nil {
		if errors.Is(err, risk.ErrInsufficientData) {
			s.metrics.ScoringFailures.WithLabelValues("insufficient_data").Inc()
		}
		return nil, err
	}

	return &RiskAssessment{
		Result: result,
		Nudges: s.engines.Nudges.Generate(nudge.Reading{Weight: m.BodyWeight, BMI: m.BMI, BodyFat: m.BodyFat}),
	}, nil
}

// authorize lets members act on their own data and admins on anyone's.
func authorize(caller domain.Caller, owner uuid.UUID) error {
	if caller.IsAdmin() || caller.UserID == owner {
		return nil
	}
	return ErrForbidden
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func riskMetrics(r *biometric.Reading) risk.Metrics {
	return risk.Metrics{
		BodyFat:         finite(r, biometric.FieldBodyFat),
		BMI:             finite(r, biometric.FieldBMI),
		BodyWater:       finite(r, biometric.FieldBodyWater),
		BodyWeight:      finite(r, biometric.FieldWeight),
		BoneMass:        finite(r, biometric.FieldBoneMass),
		Height:          finite(r, biometric.FieldHeight),
		MuscleVolume:    finite(r, biometric.FieldMuscleVolume),
		BloodPressure:   finite(r, biometric.FieldBloodPressure),
		HeartRate:       finite(r, biometric.FieldHeartRate),
		HRV:             finite(r, biometric.FieldHRV),
		SpO2:            finite(r, biometric.FieldSpO2),
		RespirationRate: finite(r, biometric.FieldRespirationRate),
	}
}

func finite(r *biometric.Reading, f biometric.Field) *float64 {
	v, ok := r.Value(f)
	if !ok {
		return nil
	}
	return &v
}

func newScore(r *biometric.Reading, res *risk.Result, nudges []nudge.Nudge, createdBy uuid.UUID) *wellness.Score {
	stored := make([]wellness.Nudge, len(nudges))
	for i, n := range nudges {
		stored[i] = wellness.Nudge(n)
	}
	return &wellness.Score{
		ID:               uuid.New(),
		UserID:           r.UserID,
		ProfileID:        r.ProfileID,
		ReadingID:        r.ID,
		Cardiac:          res.Scores.Cardiac,
		Kidney:           res.Scores.Kidney,
		Diabetes:         res.Scores.Diabetes,
		Neurological:     res.Scores.Neurological,
		Cancer:           res.Scores.Cancer,
		COPD:             res.Scores.COPD,
		Mental:           res.Scores.Mental,
		Gastrointestinal: res.Scores.Gastrointestinal,
		TotalRiskScore:   res.TotalRiskScore,
		WellnessScore:    res.WellnessScore,
		MetricsUsed:      res.MetricsUsed,
		Nudges:           stored,
		CreatedBy:        createdBy,
	}
}
