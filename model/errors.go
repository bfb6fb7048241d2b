package model

import (
	"errors"
	"net/http"

	"github.com/Scalingo/sclng-repo-ranker/ranking"
)

// reason codes returned by services, the error message is the code itself
const (
	CodeRateLimitReached = "RATE_LIMIT_REACHED"
	CodeRateLimiterError = "RATE_LIMITER_ERROR"
	CodeInvalidDataFound = "INVALID_DATA_FOUND"
	CodeFetchError       = "FETCH_ERROR"
	CodeInvalidRecord    = "INVALID_RECORD"
	CodeInvalidBody      = "INVALID_BODY"
	CodeInvalidQuery     = "INVALID_QUERY"
	CodeGenericError     = "GENERIC_ERROR"
)

const internalErrorMessage = "internal server error. contact our support with the reason code for assistance"

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func NewAPIError(errReason error) APIError {
	if errReason == nil {
		return APIError{Code: CodeGenericError, Message: internalErrorMessage}
	}

	var invalidRecordErr *ranking.InvalidRecordError
	if errors.As(errReason, &invalidRecordErr) {
		return APIError{
			Code:    CodeInvalidRecord,
			Message: "some repositories cannot be ranked. check stargazers_count and updated_at of the listed records",
			Details: invalidRecordErr.Records,
		}
	}

	switch errReason.Error() {
	case CodeRateLimitReached:
		return APIError{
			Code:    CodeRateLimitReached,
			Message: "github rate limit reached. consider using a token to increase the limit or wait few minutes and try again",
		}

	case CodeInvalidBody:
		return APIError{
			Code:    CodeInvalidBody,
			Message: "request body must be a JSON array of repository objects",
		}

	case CodeInvalidQuery:
		return APIError{
			Code:    CodeInvalidQuery,
			Message: "invalid search filters. minStars must be a positive integer",
		}

	case CodeRateLimiterError, CodeInvalidDataFound, CodeFetchError:
		return APIError{
			Code:    errReason.Error(),
			Message: internalErrorMessage,
		}

	default:
		return APIError{
			Code:    CodeGenericError,
			Message: internalErrorMessage,
		}
	}
}

// StatusCode give the HTTP status matching the error code
func (e APIError) StatusCode() int {
	switch e.Code {
	case CodeRateLimitReached:
		return http.StatusTooManyRequests
	case CodeInvalidBody, CodeInvalidQuery:
		return http.StatusBadRequest
	case CodeInvalidRecord:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
