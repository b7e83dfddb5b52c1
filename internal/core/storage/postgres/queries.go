package postgres

// SQL for referral and player metric storage

const (
	// querySaveReferral inserts one referral edge.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for an exact duplicate.
	querySaveReferral = `
		INSERT INTO referrals (
			affiliate_id, referred_user_id, occurred_at, ingested_at
		)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (affiliate_id, referred_user_id) DO NOTHING
		RETURNING id
	`

	// queryOtherReferrer finds an existing referrer of the user other than the given affiliate.
	queryOtherReferrer = `
		SELECT affiliate_id
		FROM referrals
		WHERE referred_user_id = $1
		  AND affiliate_id <> $2
		LIMIT 1
	`

	// queryListReferrals replays the full referral log in insertion order.
	queryListReferrals = `
		SELECT affiliate_id, referred_user_id, occurred_at
		FROM referrals
		ORDER BY id ASC
	`

	queryUpsertPlayerMetrics = `
		INSERT INTO player_metrics (
			user_id, total_deposit, total_bets, total_ggr, updated_at
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			total_deposit = EXCLUDED.total_deposit,
			total_bets    = EXCLUDED.total_bets,
			total_ggr     = EXCLUDED.total_ggr,
			updated_at    = EXCLUDED.updated_at
	`

	// queryGetPlayerMetrics fetches a batch of users in one round trip.
	queryGetPlayerMetrics = `
		SELECT user_id, total_deposit, total_bets, total_ggr
		FROM player_metrics
		WHERE user_id = ANY($1)
	`

	queryTableExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = $1
		)
	`
)

// SQL for commission configuration

const (
	queryListValidationRules = `
		SELECT id, name, group_operator, groups, active
		FROM validation_rules
		ORDER BY id ASC
	`

	queryListLevelRates = `
		SELECT level, cpa, rev_share
		FROM level_rates
		ORDER BY level ASC
	`
)
