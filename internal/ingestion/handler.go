package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	v1 "github.com/tierline-lab/tierline/internal/api/v1"
	"github.com/tierline-lab/tierline/internal/core/commission"
	httperr "github.com/tierline-lab/tierline/internal/core/errors"
	"github.com/tierline-lab/tierline/internal/core/storage"
)

const (
	msgReadBodyFailed     = "Failed to read request body"
	msgInvalidJSON        = "Invalid JSON body"
	msgPersistFailed      = "Failed to persist referral"
	msgPersistMetricsFail = "Failed to persist player metrics"
	msgReferralConflict   = "Referred user is already linked to another affiliate"
	msgMissingUserID      = "user_id is required"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestReferralHandler handles POST /v1/referrals.
func (s *Service) IngestReferralHandler(c *gin.Context) {
	var ref v1.Referral
	payloadSize, ierr := s.bindBody(c, &ref)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	if err := ref.Validate(); err != nil {
		slog.Warn("[Ingestion] Referral validation failed", "error", err)
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    err.Error(),
		})
		return
	}

	ref.RequestID = uuid.NewString()
	ref.OccurredAt = ref.OccurredAt.UTC()
	ref.IngestedAt = time.Now().UTC()

	slog.Info("[Ingestion] Received referral",
		"request_id", ref.RequestID,
		"affiliate_id", ref.AffiliateID,
		"referred_user_id", ref.ReferredUserID,
		"payload_size", payloadSize)

	duplicate, ierr := s.persistReferral(c.Request.Context(), &ref)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	if duplicate {
		c.JSON(http.StatusOK, gin.H{"status": "duplicate", "request_id": ref.RequestID})
		return
	}
	// Reports pick the referral up once their cached computation expires.
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "request_id": ref.RequestID})
}

// UpsertMetricsHandler handles PUT /v1/players/:user_id/metrics.
func (s *Service) UpsertMetricsHandler(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgMissingUserID,
		})
		return
	}

	var update v1.PlayerMetricsUpdate
	if _, ierr := s.bindBody(c, &update); ierr != nil {
		writeError(c, ierr)
		return
	}

	if err := update.Validate(); err != nil {
		slog.Warn("[Ingestion] Player metrics validation failed", "error", err, "user_id", userID)
		writeError(c, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    err.Error(),
		})
		return
	}

	m := commission.PlayerMetrics{
		TotalDeposit: update.TotalDeposit,
		TotalBets:    update.TotalBets,
		TotalGGR:     update.TotalGGR,
	}
	if err := s.metrics.UpsertPlayerMetrics(c.Request.Context(), userID, m); err != nil {
		slog.Error("[Ingestion] Failed to persist player metrics", "error", err, "user_id", userID)
		writeError(c, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistMetricsFail,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated", "user_id": userID})
}

// bindBody reads the size-capped request body and binds it into dst.
// Returns the raw payload size for structured logging upstream.
func (s *Service) bindBody(c *gin.Context, dst interface{}) (int, *ingestionError) {
	// Enforce maximum body size to prevent OOM attacks
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("[Ingestion] Failed to read request body", "error", err)
		return 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("[Ingestion] Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	if err := c.ShouldBindJSON(dst); err != nil {
		slog.Warn("[Ingestion] Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	return len(bodyBytes), nil
}

// persistReferral saves the referral. An exact repeat of a stored referral is reported
// as duplicate rather than as an error.
func (s *Service) persistReferral(ctx context.Context, ref *v1.Referral) (bool, *ingestionError) {
	err := s.referrals.SaveReferral(ctx, ref)
	switch {
	case err == nil:
		return false, nil

	case errors.Is(err, storage.ErrDuplicate):
		slog.Info("[Ingestion] Duplicate referral ignored",
			"request_id", ref.RequestID,
			"affiliate_id", ref.AffiliateID,
			"referred_user_id", ref.ReferredUserID)
		return true, nil

	case errors.Is(err, storage.ErrReferralConflict):
		slog.Warn("[Ingestion] Referral conflicts with existing referrer",
			"request_id", ref.RequestID,
			"affiliate_id", ref.AffiliateID,
			"referred_user_id", ref.ReferredUserID,
			"error", err)
		return false, &ingestionError{
			statusCode: http.StatusConflict,
			errorType:  httperr.HttpReferralConflictError,
			message:    msgReferralConflict,
			details: map[string]interface{}{
				"referred_user_id": ref.ReferredUserID,
			},
		}
	}

	slog.Error("[Ingestion] Failed to persist referral", "error", err, "request_id", ref.RequestID)
	return false, &ingestionError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgPersistFailed,
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
