package commission

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tierline-lab/tierline/internal/core/hierarchy"
)

// LevelRateTable maps referral levels 1..5 to an amount.
// For CPA it is a flat payout per eligible user; for rev share it is a fraction of GGR.
type LevelRateTable struct {
	levels [hierarchy.MaxLevel]decimal.Decimal
}

// NewLevelRateTable requires exactly the levels 1..5, none negative.
func NewLevelRateTable(byLevel map[int]decimal.Decimal) (LevelRateTable, error) {
	var t LevelRateTable
	for level := range byLevel {
		if level < 1 || level > hierarchy.MaxLevel {
			return LevelRateTable{}, configErrorf("rate table has unexpected level %d", level)
		}
	}
	for level := 1; level <= hierarchy.MaxLevel; level++ {
		rate, ok := byLevel[level]
		if !ok {
			return LevelRateTable{}, configErrorf("rate table is missing level %d", level)
		}
		if rate.IsNegative() {
			return LevelRateTable{}, configErrorf("rate for level %d is negative: %s", level, rate)
		}
		t.levels[level-1] = rate
	}
	return t, nil
}

// MustLevelRateTable builds a table from five values in level order. It panics on
// invalid input and is meant for tests and literal defaults.
func MustLevelRateTable(rates ...string) LevelRateTable {
	byLevel := make(map[int]decimal.Decimal, len(rates))
	for i, r := range rates {
		byLevel[i+1] = decimal.RequireFromString(r)
	}
	t, err := NewLevelRateTable(byLevel)
	if err != nil {
		panic(err)
	}
	return t
}

// Rate returns the value for level.
func (t LevelRateTable) Rate(level int) (decimal.Decimal, error) {
	if level < 1 || level > hierarchy.MaxLevel {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	return t.levels[level-1], nil
}

// ByLevel returns the table as a level-keyed map.
func (t LevelRateTable) ByLevel() map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, hierarchy.MaxLevel)
	for i, r := range t.levels {
		out[i+1] = r
	}
	return out
}

func (t LevelRateTable) String() string {
	parts := make([]string, hierarchy.MaxLevel)
	for i, r := range t.levels {
		parts[i] = r.String()
	}
	return strings.Join(parts, "/")
}

// Rates is the payout configuration for one computation.
// RevShare is optional; without it no revenue share is paid.
type Rates struct {
	CPA      LevelRateTable
	RevShare *LevelRateTable
}

// Fingerprint identifies the rate values for cache keys.
func (r Rates) Fingerprint() string {
	raw := "cpa=" + r.CPA.String()
	if r.RevShare != nil {
		raw += ";rev=" + r.RevShare.String()
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))[:16]
}

// ParseLevelKey accepts "level1".."level5" or "1".."5".
func ParseLevelKey(key string) (int, error) {
	k := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(key)), "level")
	level, err := strconv.Atoi(k)
	if err != nil {
		return 0, configErrorf("invalid level key %q", key)
	}
	return level, nil
}

// levelTableFromKeys converts a level1..level5 keyed map.
func levelTableFromKeys(raw map[string]decimal.Decimal) (LevelRateTable, error) {
	byLevel := make(map[int]decimal.Decimal, len(raw))
	for key, v := range raw {
		level, err := ParseLevelKey(key)
		if err != nil {
			return LevelRateTable{}, err
		}
		byLevel[level] = v
	}
	return NewLevelRateTable(byLevel)
}
