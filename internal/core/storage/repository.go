package storage

import (
	"context"
	"errors"

	v1 "github.com/tierline-lab/tierline/internal/api/v1"
	"github.com/tierline-lab/tierline/internal/core/commission"
	"github.com/tierline-lab/tierline/internal/core/hierarchy"
)

// ErrDuplicate is returned when the exact (affiliate_id, referred_user_id) pair already exists.
var ErrDuplicate = errors.New("referral already exists")

// ErrReferralConflict is returned when the referred user is already linked to a different affiliate.
var ErrReferralConflict = errors.New("referred user already belongs to another affiliate")

// ReferralStore persists referral events and replays them for report computation.
type ReferralStore interface {
	// SaveReferral stores one referral. The conflict check against other affiliates is
	// best effort; hierarchy.Build still rejects a user with two referrers.
	SaveReferral(ctx context.Context, referral *v1.Referral) error

	// ListReferrals returns every stored referral. Date filtering happens in
	// hierarchy.Build, which reports both the raw and the filtered event counts.
	ListReferrals(ctx context.Context) ([]hierarchy.ReferralEvent, error)
}

// MetricsStore holds the lifetime metric snapshot of each player.
type MetricsStore interface {
	UpsertPlayerMetrics(ctx context.Context, userID string, metrics commission.PlayerMetrics) error

	// GetPlayerMetrics fetches metrics for userIDs in one call. Users without a row are
	// absent from the result.
	GetPlayerMetrics(ctx context.Context, userIDs []string) (map[string]commission.PlayerMetrics, error)
}
