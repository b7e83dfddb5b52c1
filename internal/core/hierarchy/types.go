package hierarchy

import (
	"fmt"
	"time"
)

// MaxLevel is the deepest referral level tracked (N1..N5).
const MaxLevel = 5

// ReferralEvent records that an affiliate referred a user at a point in time.
// Events are immutable; the source of truth lives outside the engine.
type ReferralEvent struct {
	AffiliateID    string
	ReferredUserID string
	OccurredAt     time.Time
}

// LevelStats holds the per-level network size of one affiliate.
// Levels[0] is N1 (direct referrals), Levels[4] is N5.
type LevelStats struct {
	AffiliateID string
	Levels      [MaxLevel]uint
	Total       uint
}

// N returns the count at the given level (1-based). Out-of-range levels return 0.
func (s LevelStats) N(level int) uint {
	if level < 1 || level > MaxLevel {
		return 0
	}
	return s.Levels[level-1]
}

// TotalPolicy decides how LevelStats.Total is derived from the level counts.
// The traversal never depends on it, so switching policy never changes N1..N5.
type TotalPolicy struct {
	name  string
	depth int
}

var (
	// TotalFullNetwork counts every referred user down to MaxLevel: n1+n2+n3+n4+n5.
	TotalFullNetwork = TotalPolicy{name: "full_network", depth: MaxLevel}

	// TotalDirectOnly counts direct referrals only: n1.
	TotalDirectOnly = TotalPolicy{name: "direct_only", depth: 1}
)

// Name is the stable identifier reported in debug output and used in config.
func (p TotalPolicy) Name() string {
	return p.orDefault().name
}

// Total folds level counts into a single total.
func (p TotalPolicy) Total(levels [MaxLevel]uint) uint {
	var total uint
	for _, n := range levels[:p.orDefault().depth] {
		total += n
	}
	return total
}

func (p TotalPolicy) orDefault() TotalPolicy {
	if p.depth == 0 {
		return TotalFullNetwork
	}
	return p
}

// ParseTotalPolicy resolves a policy by name. An empty name selects TotalFullNetwork.
func ParseTotalPolicy(name string) (TotalPolicy, error) {
	switch name {
	case "", TotalFullNetwork.name:
		return TotalFullNetwork, nil
	case TotalDirectOnly.name:
		return TotalDirectOnly, nil
	}
	return TotalPolicy{}, fmt.Errorf("unknown total policy %q (want %s or %s)", name, TotalFullNetwork.name, TotalDirectOnly.name)
}
