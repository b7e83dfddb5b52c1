package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Referral is the wire shape of a referral event: AffiliateID brought ReferredUserID
// onto the platform at OccurredAt.
type Referral struct {
	// RequestID is assigned by the ingestion service for log correlation.
	// It is never read from the client payload.
	RequestID string `json:"-"`

	AffiliateID    string `json:"affiliate_id"`
	ReferredUserID string `json:"referred_user_id"`

	// OccurredAt is when the referral happened (client clock). Date filters apply to it.
	OccurredAt time.Time `json:"occurred_at"`

	// IngestedAt is set by the ingestion service, not the client.
	IngestedAt time.Time `json:"-"`
}

// Validate ensures the referral has both IDs and an occurrence time and is not a self-referral.
// IDs are trimmed in place.
func (r *Referral) Validate() error {
	r.AffiliateID = strings.TrimSpace(r.AffiliateID)
	r.ReferredUserID = strings.TrimSpace(r.ReferredUserID)

	if r.AffiliateID == "" {
		return fmt.Errorf("affiliate_id is required")
	}
	if r.ReferredUserID == "" {
		return fmt.Errorf("referred_user_id is required")
	}
	if r.AffiliateID == r.ReferredUserID {
		return fmt.Errorf("affiliate_id and referred_user_id must differ")
	}
	if r.OccurredAt.IsZero() {
		return fmt.Errorf("occurred_at is required")
	}
	return nil
}

// PlayerMetricsUpdate replaces the lifetime metric snapshot of one player.
// Money values accept JSON numbers or strings.
type PlayerMetricsUpdate struct {
	TotalDeposit decimal.Decimal `json:"total_deposit"`
	TotalBets    int64           `json:"total_bets"`

	// TotalGGR may be negative: the player won more than they lost.
	TotalGGR decimal.Decimal `json:"total_ggr"`
}

// Validate rejects negative deposits and bet counts.
func (m *PlayerMetricsUpdate) Validate() error {
	if m.TotalDeposit.IsNegative() {
		return fmt.Errorf("total_deposit must not be negative")
	}
	if m.TotalBets < 0 {
		return fmt.Errorf("total_bets must not be negative")
	}
	return nil
}
