package errors

const (
	HttpInternalError         = "internal_error"
	HttpInvalidJsonError      = "invalid_json"
	HttpInvalidQueryError     = "invalid_query"
	HttpDataQualityError      = "data_quality_error"
	HttpConfigurationError    = "configuration_error"
	HttpAffiliateNotFound     = "affiliate_not_found"
	HttpReferralConflictError = "referral_conflict"
)

// ErrorResponse is the error response body shared by every endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
