package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	v1 "github.com/tierline-lab/tierline/internal/api/v1"
	"github.com/tierline-lab/tierline/internal/core/commission"
	"github.com/tierline-lab/tierline/internal/core/storage"
)

var fixedNow = time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

func TestAdapter_SaveReferral(t *testing.T) {
	occurred := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		referral   *v1.Referral
		mockResult func(mock sqlmock.Sqlmock, r *v1.Referral)
		assertions func(t *testing.T, err error)
	}{
		{
			name: "success",
			referral: &v1.Referral{
				AffiliateID:    "aff-1",
				ReferredUserID: "user-1",
				OccurredAt:     occurred,
				IngestedAt:     fixedNow,
			},
			mockResult: func(mock sqlmock.Sqlmock, r *v1.Referral) {
				mock.ExpectQuery(regexp.QuoteMeta(queryOtherReferrer)).
					WithArgs(r.ReferredUserID, r.AffiliateID).
					WillReturnRows(sqlmock.NewRows([]string{"affiliate_id"}))
				mock.ExpectQuery(regexp.QuoteMeta(querySaveReferral)).
					WithArgs(r.AffiliateID, r.ReferredUserID, r.OccurredAt, r.IngestedAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
			},
			assertions: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "missing ingested_at uses adapter clock",
			referral: &v1.Referral{
				AffiliateID:    "aff-1",
				ReferredUserID: "user-2",
				OccurredAt:     occurred,
			},
			mockResult: func(mock sqlmock.Sqlmock, r *v1.Referral) {
				mock.ExpectQuery(regexp.QuoteMeta(queryOtherReferrer)).
					WithArgs(r.ReferredUserID, r.AffiliateID).
					WillReturnRows(sqlmock.NewRows([]string{"affiliate_id"}))
				mock.ExpectQuery(regexp.QuoteMeta(querySaveReferral)).
					WithArgs(r.AffiliateID, r.ReferredUserID, r.OccurredAt, fixedNow).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(43)))
			},
			assertions: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "other referrer maps to ErrReferralConflict",
			referral: &v1.Referral{
				AffiliateID:    "aff-2",
				ReferredUserID: "user-1",
				OccurredAt:     occurred,
				IngestedAt:     fixedNow,
			},
			mockResult: func(mock sqlmock.Sqlmock, r *v1.Referral) {
				mock.ExpectQuery(regexp.QuoteMeta(queryOtherReferrer)).
					WithArgs(r.ReferredUserID, r.AffiliateID).
					WillReturnRows(sqlmock.NewRows([]string{"affiliate_id"}).AddRow("aff-1"))
			},
			assertions: func(t *testing.T, err error) {
				require.ErrorIs(t, err, storage.ErrReferralConflict)
				require.ErrorContains(t, err, "aff-1")
			},
		},
		{
			name: "duplicate maps to ErrDuplicate",
			referral: &v1.Referral{
				AffiliateID:    "aff-1",
				ReferredUserID: "user-1",
				OccurredAt:     occurred,
				IngestedAt:     fixedNow,
			},
			mockResult: func(mock sqlmock.Sqlmock, r *v1.Referral) {
				mock.ExpectQuery(regexp.QuoteMeta(queryOtherReferrer)).
					WithArgs(r.ReferredUserID, r.AffiliateID).
					WillReturnRows(sqlmock.NewRows([]string{"affiliate_id"}))
				mock.ExpectQuery(regexp.QuoteMeta(querySaveReferral)).
					WithArgs(r.AffiliateID, r.ReferredUserID, r.OccurredAt, r.IngestedAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			assertions: func(t *testing.T, err error) {
				require.ErrorIs(t, err, storage.ErrDuplicate)
			},
		},
		{
			name: "conflict check failure is wrapped",
			referral: &v1.Referral{
				AffiliateID:    "aff-1",
				ReferredUserID: "user-1",
				OccurredAt:     occurred,
			},
			mockResult: func(mock sqlmock.Sqlmock, r *v1.Referral) {
				mock.ExpectQuery(regexp.QuoteMeta(queryOtherReferrer)).
					WithArgs(r.ReferredUserID, r.AffiliateID).
					WillReturnError(errors.New("connection reset"))
			},
			assertions: func(t *testing.T, err error) {
				require.ErrorContains(t, err, "failed to check existing referrer")
				require.NotErrorIs(t, err, storage.ErrReferralConflict)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mock, db := newMockAdapter(t)
			defer db.Close()

			tc.mockResult(mock, tc.referral)
			err := adapter.SaveReferral(context.Background(), tc.referral)
			tc.assertions(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdapter_ListReferrals(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	berlin := time.FixedZone("CEST", 2*60*60)
	first := time.Date(2025, 6, 1, 11, 0, 0, 0, berlin)
	second := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(queryListReferrals)).
		WillReturnRows(sqlmock.NewRows([]string{"affiliate_id", "referred_user_id", "occurred_at"}).
			AddRow("A", "U1", first).
			AddRow("U1", "U2", second))

	events, err := adapter.ListReferrals(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "A", events[0].AffiliateID)
	require.Equal(t, "U1", events[0].ReferredUserID)
	require.Equal(t, time.UTC, events[0].OccurredAt.Location())
	require.True(t, first.Equal(events[0].OccurredAt))
	require.Equal(t, "U2", events[1].ReferredUserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_ListReferrals_RowError(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryListReferrals)).
		WillReturnRows(sqlmock.NewRows([]string{"affiliate_id", "referred_user_id", "occurred_at"}).
			AddRow("A", "U1", fixedNow).
			RowError(0, errors.New("network blip")))

	_, err := adapter.ListReferrals(context.Background())
	require.ErrorContains(t, err, "error iterating referrals")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_UpsertPlayerMetrics(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	m := commission.PlayerMetrics{
		TotalDeposit: decimal.RequireFromString("25.5"),
		TotalBets:    12,
		TotalGGR:     decimal.RequireFromString("-3.25"),
	}

	mock.ExpectExec(regexp.QuoteMeta(queryUpsertPlayerMetrics)).
		WithArgs("user-1", m.TotalDeposit, m.TotalBets, m.TotalGGR, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, adapter.UpsertPlayerMetrics(context.Background(), "user-1", m))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetPlayerMetrics(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryGetPlayerMetrics)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "total_deposit", "total_bets", "total_ggr"}).
			AddRow("user-1", "25.50", int64(3), "-10").
			AddRow("user-2", "0", int64(0), "0"))

	got, err := adapter.GetPlayerMetrics(context.Background(), []string{"user-1", "user-2", "user-3"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "25.5", got["user-1"].TotalDeposit.String())
	require.Equal(t, int64(3), got["user-1"].TotalBets)
	require.Equal(t, "-10", got["user-1"].TotalGGR.String())
	_, ok := got["user-3"]
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetPlayerMetrics_EmptyInputSkipsQuery(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	got, err := adapter.GetPlayerMetrics(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_GetPlayerMetrics_BadNumeric(t *testing.T) {
	adapter, mock, db := newMockAdapter(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryGetPlayerMetrics)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "total_deposit", "total_bets", "total_ggr"}).
			AddRow("user-1", "lots", int64(3), "0"))

	_, err := adapter.GetPlayerMetrics(context.Background(), []string{"user-1"})
	require.ErrorContains(t, err, "parse total_deposit")
}

func TestValidateSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
		WithArgs("referrals").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
		WithArgs("player_metrics").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = validateSchema(db)
	require.ErrorContains(t, err, "player_metrics table does not exist")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewAdapter_PrepareFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, table := range requiredTables {
		mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
			WithArgs(table).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	}
	mock.ExpectPrepare(regexp.QuoteMeta(querySaveReferral))
	mock.ExpectPrepare(regexp.QuoteMeta(queryOtherReferrer)).WillReturnError(errors.New("syntax error"))

	_, err = newAdapter(db)
	require.ErrorContains(t, err, "failed to prepare otherReferrer statement")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Close(t *testing.T) {
	adapter, mock, _ := newMockAdapter(t)

	mock.ExpectClose()
	require.NoError(t, adapter.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	adapter := &Adapter{db: db}

	mock.ExpectPing()
	require.NoError(t, adapter.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	require.Error(t, adapter.Ping(context.Background()))

	require.NoError(t, mock.ExpectationsWereMet())
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	adapter := &Adapter{
		db:                db,
		stmtSaveReferral:  mustPrepareStmt(t, db, mock, querySaveReferral),
		stmtOtherReferrer: mustPrepareStmt(t, db, mock, queryOtherReferrer),
		stmtListReferrals: mustPrepareStmt(t, db, mock, queryListReferrals),
		stmtUpsertMetrics: mustPrepareStmt(t, db, mock, queryUpsertPlayerMetrics),
		stmtGetMetrics:    mustPrepareStmt(t, db, mock, queryGetPlayerMetrics),
		nowFn:             func() time.Time { return fixedNow },
	}

	return adapter, mock, db
}

func mustPrepareStmt(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock, query string) *sql.Stmt {
	t.Helper()

	mock.ExpectPrepare(regexp.QuoteMeta(query))
	stmt, err := db.Prepare(query)
	require.NoError(t, err)

	return stmt
}
