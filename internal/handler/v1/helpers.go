package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/analytics"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/wellness"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/risk"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/service"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type PagedResponse[T any] struct {
	Data       []T   `json:"data"`
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Allowed string `json:"allowed,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var (
		validErr     *service.ValidationError
		paramErr     *analytics.ValidationError
		riskInputErr *risk.ValidationError
	)
	switch {
	case errors.As(err, &validErr):
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	case errors.As(err, &paramErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   paramErr.Error(),
			Code:    "INVALID_PARAMETER",
			Allowed: paramErr.Allowed,
		})
		return
	case errors.As(err, &riskInputErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: riskInputErr.Error(), Code: "INVALID_INPUT"})
		return
	}

	switch {
	case errors.Is(err, risk.ErrInsufficientData):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "INSUFFICIENT_DATA"})

	case errors.Is(err, biometric.ErrNoReadings):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NO_READINGS"})

	case errors.Is(err, biometric.ErrReadingNotFound),
		errors.Is(err, wellness.ErrScoreNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})

	case errors.Is(err, service.ErrAccountInactive):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "account is inactive", Code: "ACCOUNT_INACTIVE"})

	case errors.Is(err, service.ErrAccountLocked):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error: "account temporarily locked",
			Code:  "ACCOUNT_LOCKED",
		})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// parseQueryUUID reads an optional UUID query parameter. Absent yields uuid.Nil.
func parseQueryUUID(c *gin.Context, key string) (uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + key + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseQueryProfile(c *gin.Context) (*uuid.UUID, bool) {
	id, ok := parseQueryUUID(c, "profile_id")
	if !ok || id == uuid.Nil {
		return nil, ok
	}
	return &id, true
}

func parseQueryTime(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + key + ": must be an RFC 3339 timestamp"})
		return nil, false
	}
	return &t, true
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}

// splitList accepts both ?fields=a,b and ?fields=a&fields=b.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
