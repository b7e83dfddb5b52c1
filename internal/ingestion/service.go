package ingestion

import (
	"github.com/gin-gonic/gin"
	"github.com/tierline-lab/tierline/internal/core/storage"
)

type Service struct {
	referrals        storage.ReferralStore
	metrics          storage.MetricsStore
	maxBodySizeBytes int
}

func NewService(referrals storage.ReferralStore, metrics storage.MetricsStore, maxBodySizeMB int) *Service {
	if referrals == nil {
		panic("ingestion: referral store must not be nil")
	}
	if metrics == nil {
		panic("ingestion: metrics store must not be nil")
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		referrals:        referrals,
		metrics:          metrics,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/referrals", s.IngestReferralHandler)
	r.PUT("/v1/players/:user_id/metrics", s.UpsertMetricsHandler)
}
