package report

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tierline-lab/tierline/internal/core/commission"
	httperr "github.com/tierline-lab/tierline/internal/core/errors"
	"github.com/tierline-lab/tierline/internal/core/hierarchy"
)

// RegisterRoutes registers the report API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/affiliates/network", s.HandleNetwork)
	r.GET("/v1/affiliates/:affiliate_id/network", s.HandleAffiliate)
}

// HandleNetwork handles GET /v1/affiliates/network
// Query parameters: page, limit, start_date, end_date
func (s *Service) HandleNetwork(c *gin.Context) {
	var query Query
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.Network(c.Request.Context(), query)
	if err != nil {
		writeReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleAffiliate handles GET /v1/affiliates/:affiliate_id/network
// Query parameters: start_date, end_date
func (s *Service) HandleAffiliate(c *gin.Context) {
	var uri struct {
		AffiliateID string `uri:"affiliate_id" binding:"required"`
	}
	var query Query

	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.Affiliate(c.Request.Context(), uri.AffiliateID, query)
	if err != nil {
		writeReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// writeReportError maps engine errors to HTTP responses. No partial report is ever written.
func writeReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid report query",
			Details:   err.Error(),
		})

	case errors.Is(err, ErrAffiliateNotFound):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpAffiliateNotFound,
			Message:   "Affiliate has no referrals in the requested range",
			Details:   err.Error(),
		})

	case errors.Is(err, hierarchy.ErrDataQuality):
		slog.Error("[Report] Referral data violates hierarchy invariants", "error", err)
		details := map[string]interface{}{"reason": err.Error()}
		var dup *hierarchy.DuplicateReferralError
		if errors.As(err, &dup) {
			details["referred_user_id"] = dup.ReferredUserID
			details["affiliate_ids"] = []string{dup.ExistingID, dup.ConflictingID}
		}
		c.JSON(http.StatusUnprocessableEntity, httperr.ErrorResponse{
			ErrorType: httperr.HttpDataQualityError,
			Message:   "Referral data is inconsistent",
			Details:   details,
		})

	case errors.Is(err, commission.ErrConfiguration):
		slog.Error("[Report] Commission configuration rejected", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpConfigurationError,
			Message:   "Commission configuration is invalid",
			Details:   err.Error(),
		})

	default:
		slog.Error("[Report] Failed to compute network report", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to compute network report",
		})
	}
}
