package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/analytics"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/wellness"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/risk"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/service"
)

type BodyCompositionService interface {
	RecordReading(ctx context.Context, cmd *biometric.CreateReadingCommand, caller domain.Caller) (*biometric.Reading, error)
	ListReadings(ctx context.Context, q *biometric.ListReadingsQuery, caller domain.Caller) (*biometric.PagedReadings, error)
	DeleteReading(ctx context.Context, id uuid.UUID, caller domain.Caller) error
	Analytics(ctx context.Context, req service.AnalyticsRequest, caller domain.Caller) (*analytics.Report, error)
	ScoreLatest(ctx context.Context, req service.ScoreRequest, caller domain.Caller) (*service.WellnessReport, error)
	ScoreHistory(ctx context.Context, q *wellness.ListScoresQuery, caller domain.Caller) (*wellness.PagedScores, error)
	CalculateRisk(ctx context.Context, gender string, m risk.Metrics) (*service.RiskAssessment, error)
}

// HealthHandler serves readings, analytics and wellness scoring.
type HealthHandler struct {
	svc BodyCompositionService
}

func NewHealthHandler(svc BodyCompositionService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

type createReadingRequest struct {
	UserID    *uuid.UUID         `json:"userId"`
	ProfileID *uuid.UUID         `json:"profileId"`
	Timestamp int64              `json:"timestamp" binding:"required"`
	Gender    string             `json:"gender"`
	Source    string             `json:"source"`
	Metrics   map[string]float64 `json:"metrics" binding:"required"`
}

type scoreRequest struct {
	UserID    *uuid.UUID `json:"userId"`
	ProfileID *uuid.UUID `json:"profileId"`
	Gender    string     `json:"gender"`
}

type riskRequest struct {
	Gender  string       `json:"gender" binding:"required"`
	Metrics risk.Metrics `json:"metrics"`
}

func (h *HealthHandler) CreateReading(c *gin.Context) {
	var req createReadingRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &biometric.CreateReadingCommand{
		ProfileID: req.ProfileID,
		Timestamp: req.Timestamp,
		Gender:    biometric.Gender(req.Gender),
		Source:    biometric.Source(req.Source),
		Metrics:   req.Metrics,
	}
	if req.UserID != nil {
		cmd.UserID = *req.UserID
	}

	r, err := h.svc.RecordReading(c.Request.Context(), cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, r)
}

func (h *HealthHandler) ListReadings(c *gin.Context) {
	userID, ok := parseQueryUUID(c, "user_id")
	if !ok {
		return
	}
	profileID, ok := parseQueryProfile(c)
	if !ok {
		return
	}
	from, ok := parseQueryTime(c, "from")
	if !ok {
		return
	}
	to, ok := parseQueryTime(c, "to")
	if !ok {
		return
	}

	page, err := h.svc.ListReadings(c.Request.Context(), &biometric.ListReadingsQuery{
		UserID:    userID,
		ProfileID: profileID,
		From:      from,
		To:        to,
		Page:      parseQueryInt(c, "page", 1),
		PageSize:  parseQueryInt(c, "page_size", 20),
	}, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagedResponse[*biometric.Reading]{
		Data:       page.Readings,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	})
}

func (h *HealthHandler) DeleteReading(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteReading(c.Request.Context(), id, callerFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HealthHandler) Analytics(c *gin.Context) {
	userID, ok := parseQueryUUID(c, "user_id")
	if !ok {
		return
	}
	profileID, ok := parseQueryProfile(c)
	if !ok {
		return
	}

	report, err := h.svc.Analytics(c.Request.Context(), service.AnalyticsRequest{
		UserID:    userID,
		ProfileID: profileID,
		Period:    c.Query("period"),
		Timeline:  c.Query("timeline"),
		Fields:    splitList(c.QueryArray("fields")),
	}, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, report)
}

func (h *HealthHandler) Score(c *gin.Context) {
	var req scoreRequest
	// An empty body scores the caller's own latest reading.
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	sr := service.ScoreRequest{ProfileID: req.ProfileID, Gender: req.Gender}
	if req.UserID != nil {
		sr.UserID = *req.UserID
	}

	report, err := h.svc.ScoreLatest(c.Request.Context(), sr, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, report)
}

func (h *HealthHandler) ScoreHistory(c *gin.Context) {
	userID, ok := parseQueryUUID(c, "user_id")
	if !ok {
		return
	}
	profileID, ok := parseQueryProfile(c)
	if !ok {
		return
	}

	page, err := h.svc.ScoreHistory(c.Request.Context(), &wellness.ListScoresQuery{
		UserID:    userID,
		ProfileID: profileID,
		Page:      parseQueryInt(c, "page", 1),
		PageSize:  parseQueryInt(c, "page_size", 20),
	}, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagedResponse[*wellness.Score]{
		Data:       page.Scores,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	})
}

func (h *HealthHandler) CalculateRisk(c *gin.Context) {
	var req riskRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.svc.CalculateRisk(c.Request.Context(), req.Gender, req.Metrics)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, res)
}

var errNotReady = errors.New("dependency not ready")

// Pinger reports whether a backing dependency is reachable.
type Pinger func(ctx context.Context) error

func Healthz(ping Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				_ = c.Error(errors.Join(errNotReady, err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
