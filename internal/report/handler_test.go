package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tierline-lab/tierline/internal/core/commission"
	httperr "github.com/tierline-lab/tierline/internal/core/errors"
	"github.com/tierline-lab/tierline/internal/core/hierarchy"
	storagemocks "github.com/tierline-lab/tierline/internal/mocks/storage"
)

func TestService_HandleNetwork_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	inactive := testSource()
	inactive.RuleSet[0].Active = false

	tests := []struct {
		name           string
		url            string
		source         commission.Source
		configure      func(referrals *storagemocks.ReferralStore, metrics *storagemocks.MetricsStore)
		expectedStatus int
		expectedType   string
	}{
		{
			name:   "network report returns 200",
			url:    "/v1/affiliates/network?page=1&limit=2",
			source: testSource(),
			configure: func(referrals *storagemocks.ReferralStore, metrics *storagemocks.MetricsStore) {
				referrals.EXPECT().ListReferrals(mock.Anything).Return(testReferrals(), nil).Once()
				metrics.EXPECT().GetPlayerMetrics(mock.Anything, mock.Anything).Return(testMetrics(), nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non numeric page returns 400",
			url:            "/v1/affiliates/network?page=abc",
			source:         testSource(),
			configure:      func(_ *storagemocks.ReferralStore, _ *storagemocks.MetricsStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQueryError,
		},
		{
			name:           "limit above max returns 400",
			url:            "/v1/affiliates/network?limit=501",
			source:         testSource(),
			configure:      func(_ *storagemocks.ReferralStore, _ *storagemocks.MetricsStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQueryError,
		},
		{
			name:           "bad date returns 400",
			url:            "/v1/affiliates/network?start_date=yesterday",
			source:         testSource(),
			configure:      func(_ *storagemocks.ReferralStore, _ *storagemocks.MetricsStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQueryError,
		},
		{
			name:   "unknown affiliate returns 404",
			url:    "/v1/affiliates/nobody/network",
			source: testSource(),
			configure: func(referrals *storagemocks.ReferralStore, metrics *storagemocks.MetricsStore) {
				referrals.EXPECT().ListReferrals(mock.Anything).Return(testReferrals(), nil).Once()
				metrics.EXPECT().GetPlayerMetrics(mock.Anything, mock.Anything).Return(testMetrics(), nil).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedType:   httperr.HttpAffiliateNotFound,
		},
		{
			name:   "duplicate referral returns 422",
			url:    "/v1/affiliates/network",
			source: testSource(),
			configure: func(referrals *storagemocks.ReferralStore, _ *storagemocks.MetricsStore) {
				referrals.EXPECT().ListReferrals(mock.Anything).Return([]hierarchy.ReferralEvent{
					{AffiliateID: "A", ReferredUserID: "U1", OccurredAt: at},
					{AffiliateID: "B", ReferredUserID: "U1", OccurredAt: at},
				}, nil).Once()
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedType:   httperr.HttpDataQualityError,
		},
		{
			name:           "no active rule returns 500 configuration error",
			url:            "/v1/affiliates/network",
			source:         inactive,
			configure:      func(_ *storagemocks.ReferralStore, _ *storagemocks.MetricsStore) {},
			expectedStatus: http.StatusInternalServerError,
			expectedType:   httperr.HttpConfigurationError,
		},
		{
			name:   "store error returns 500",
			url:    "/v1/affiliates/network",
			source: testSource(),
			configure: func(referrals *storagemocks.ReferralStore, _ *storagemocks.MetricsStore) {
				referrals.EXPECT().ListReferrals(mock.Anything).Return(nil, errors.New("db failure")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedType:   httperr.HttpInternalError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, referrals, metrics := newTestService(t, tc.source, nil)
			tc.configure(referrals, metrics)

			r := gin.New()
			svc.RegisterRoutes(r)

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			if resp.Code != tc.expectedStatus {
				t.Logf("unexpected response body: %s", resp.Body.String())
			}
			require.Equal(t, tc.expectedStatus, resp.Code)

			if tc.expectedType != "" {
				var body httperr.ErrorResponse
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				require.Equal(t, tc.expectedType, body.ErrorType)
			}
		})
	}
}

func TestService_HandleNetwork_Body(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc, referrals, metrics := newTestService(t, testSource(), nil)
	referrals.EXPECT().ListReferrals(mock.Anything).Return(testReferrals(), nil).Once()
	metrics.EXPECT().GetPlayerMetrics(mock.Anything, mock.Anything).Return(testMetrics(), nil).Once()

	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/v1/affiliates/network?limit=1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Status string `json:"status"`
		Data   []struct {
			AffiliateID string `json:"affiliate_id"`
			N1          uint   `json:"n1"`
			N2          uint   `json:"n2"`
			Total       uint   `json:"total"`
			CPAPaid     string `json:"cpa_paid"`
			TotalPaid   string `json:"total_paid"`
		} `json:"data"`
		Pagination Pagination `json:"pagination"`
		Debug      struct {
			TotalPolicy string `json:"total_policy"`
			CacheHit    bool   `json:"cache_hit"`
		} `json:"debug"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	require.Equal(t, "success", body.Status)
	require.Len(t, body.Data, 1)
	require.Equal(t, "A", body.Data[0].AffiliateID)
	require.Equal(t, uint(2), body.Data[0].N1)
	require.Equal(t, uint(3), body.Data[0].Total)
	require.Equal(t, "70", body.Data[0].CPAPaid)
	require.Equal(t, Pagination{Page: 1, Pages: 3, Total: 3, Limit: 1}, body.Pagination)
	require.Equal(t, "full_network", body.Debug.TotalPolicy)
	require.False(t, body.Debug.CacheHit)
}

func TestService_HandleAffiliate_DataQualityDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	svc, referrals, _ := newTestService(t, testSource(), nil)
	referrals.EXPECT().ListReferrals(mock.Anything).Return([]hierarchy.ReferralEvent{
		{AffiliateID: "A", ReferredUserID: "U1", OccurredAt: at},
		{AffiliateID: "B", ReferredUserID: "U1", OccurredAt: at},
	}, nil).Once()

	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/v1/affiliates/A/network", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	var body struct {
		ErrorType string `json:"error_type"`
		Details   struct {
			ReferredUserID string   `json:"referred_user_id"`
			AffiliateIDs   []string `json:"affiliate_ids"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, httperr.HttpDataQualityError, body.ErrorType)
	require.Equal(t, "U1", body.Details.ReferredUserID)
	require.Equal(t, []string{"A", "B"}, body.Details.AffiliateIDs)
}
