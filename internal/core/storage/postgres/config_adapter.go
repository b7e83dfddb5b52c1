package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/tierline-lab/tierline/internal/core/commission"
)

// ConfigAdapter implements commission.Source over the validation_rules and level_rates
// tables. Every call reads the current rows; wrap it in commission.FallbackSource to
// survive database outages.
type ConfigAdapter struct {
	db *sql.DB
}

// NewConfigAdapter creates a ConfigAdapter sharing the given connection.
func NewConfigAdapter(db *sql.DB) *ConfigAdapter {
	return &ConfigAdapter{db: db}
}

// Rules returns every stored rule, active or not, ordered by id.
func (a *ConfigAdapter) Rules(ctx context.Context) ([]commission.Rule, error) {
	rows, err := a.db.QueryContext(ctx, queryListValidationRules)
	if err != nil {
		return nil, fmt.Errorf("query validation_rules: %w", err)
	}
	defer rows.Close()

	var rules []commission.Rule
	for rows.Next() {
		rule, err := scanRuleRow(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate validation_rules: %w", err)
	}

	slog.Debug("[ConfigAdapter] Loaded validation rules", "count", len(rules))
	return rules, nil
}

// Rates assembles the CPA table and, when every level carries a rev_share value, the
// revenue share table. A partially filled rev_share column is a configuration error.
func (a *ConfigAdapter) Rates(ctx context.Context) (commission.Rates, error) {
	rows, err := a.db.QueryContext(ctx, queryListLevelRates)
	if err != nil {
		return commission.Rates{}, fmt.Errorf("query level_rates: %w", err)
	}
	defer rows.Close()

	cpa := make(map[int]decimal.Decimal)
	rev := make(map[int]decimal.Decimal)
	var missingRev int

	for rows.Next() {
		var (
			level    int
			cpaStr   string
			revShare decimal.NullDecimal
		)
		if err := rows.Scan(&level, &cpaStr, &revShare); err != nil {
			return commission.Rates{}, fmt.Errorf("scan level_rates row: %w", err)
		}

		value, err := decimal.NewFromString(cpaStr)
		if err != nil {
			return commission.Rates{}, fmt.Errorf("parse cpa %q for level %d: %w", cpaStr, level, err)
		}
		cpa[level] = value

		if revShare.Valid {
			rev[level] = revShare.Decimal
		} else {
			missingRev++
		}
	}

	if err := rows.Err(); err != nil {
		return commission.Rates{}, fmt.Errorf("iterate level_rates: %w", err)
	}

	cpaTable, err := commission.NewLevelRateTable(cpa)
	if err != nil {
		return commission.Rates{}, err
	}
	rates := commission.Rates{CPA: cpaTable}

	if len(rev) == 0 {
		return rates, nil
	}
	if missingRev > 0 {
		return commission.Rates{}, &commission.ConfigurationError{
			Reason: fmt.Sprintf("rev_share is set for %d levels but missing for %d", len(rev), missingRev),
		}
	}
	revTable, err := commission.NewLevelRateTable(rev)
	if err != nil {
		return commission.Rates{}, err
	}
	rates.RevShare = &revTable
	return rates, nil
}
