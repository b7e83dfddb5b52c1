package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tierline-lab/tierline/internal/core/commission"
	"github.com/tierline-lab/tierline/internal/core/hierarchy"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanReferralRow scans one referrals row into a ReferralEvent.
func scanReferralRow(row scanner) (hierarchy.ReferralEvent, error) {
	var evt hierarchy.ReferralEvent
	if err := row.Scan(&evt.AffiliateID, &evt.ReferredUserID, &evt.OccurredAt); err != nil {
		return hierarchy.ReferralEvent{}, fmt.Errorf("failed to scan referral row: %w", err)
	}
	evt.OccurredAt = evt.OccurredAt.UTC()
	return evt, nil
}

// scanMetricsRow scans one player_metrics row. NUMERIC columns arrive as text.
func scanMetricsRow(row scanner) (string, commission.PlayerMetrics, error) {
	var (
		userID             string
		depositStr, ggrStr string
		m                  commission.PlayerMetrics
	)
	if err := row.Scan(&userID, &depositStr, &m.TotalBets, &ggrStr); err != nil {
		return "", commission.PlayerMetrics{}, fmt.Errorf("failed to scan player_metrics row: %w", err)
	}

	var err error
	if m.TotalDeposit, err = decimal.NewFromString(depositStr); err != nil {
		return "", commission.PlayerMetrics{}, fmt.Errorf("parse total_deposit %q for %s: %w", depositStr, userID, err)
	}
	if m.TotalGGR, err = decimal.NewFromString(ggrStr); err != nil {
		return "", commission.PlayerMetrics{}, fmt.Errorf("parse total_ggr %q for %s: %w", ggrStr, userID, err)
	}
	return userID, m, nil
}

// scanRuleRow scans one validation_rules row. Groups are stored as JSONB and decoded
// through the commission package's text unmarshalers; a row that does not decode into a
// valid rule is a configuration error.
func scanRuleRow(row scanner) (commission.Rule, error) {
	var (
		id, name   string
		groupOp    string
		groupsJSON []byte
		active     bool
	)
	if err := row.Scan(&id, &name, &groupOp, &groupsJSON, &active); err != nil {
		return commission.Rule{}, fmt.Errorf("failed to scan validation_rules row: %w", err)
	}

	op, err := commission.ParseOperator(groupOp)
	if err != nil {
		return commission.Rule{}, fmt.Errorf("rule %q: %w", id, err)
	}

	var groups []commission.Group
	if len(groupsJSON) > 0 {
		if err := json.Unmarshal(groupsJSON, &groups); err != nil {
			return commission.Rule{}, &commission.ConfigurationError{
				Reason: fmt.Sprintf("rule %q: decode groups: %v", id, err),
			}
		}
	}
	return commission.NewRule(id, name, op, groups, active)
}
