package model

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Scalingo/sclng-repo-ranker/ranking"
	"github.com/stretchr/testify/assert"
)

// TestNewAPIError will test the mapping of reason codes to API errors
func TestNewAPIError(t *testing.T) {
	invalid := &ranking.InvalidRecordError{Records: []ranking.InvalidRecord{{Index: 0, Reason: ranking.ReasonInvalidStars}}}

	tests := []struct {
		name           string
		err            error
		expectedCode   string
		expectedStatus int
		expectDetails  bool
	}{
		{name: "Rate limit", err: fmt.Errorf(CodeRateLimitReached), expectedCode: CodeRateLimitReached, expectedStatus: http.StatusTooManyRequests},
		{name: "Fetch error", err: fmt.Errorf(CodeFetchError), expectedCode: CodeFetchError, expectedStatus: http.StatusInternalServerError},
		{name: "Invalid data", err: fmt.Errorf(CodeInvalidDataFound), expectedCode: CodeInvalidDataFound, expectedStatus: http.StatusInternalServerError},
		{name: "Invalid body", err: fmt.Errorf(CodeInvalidBody), expectedCode: CodeInvalidBody, expectedStatus: http.StatusBadRequest},
		{name: "Invalid query", err: fmt.Errorf(CodeInvalidQuery), expectedCode: CodeInvalidQuery, expectedStatus: http.StatusBadRequest},
		{name: "Invalid record", err: invalid, expectedCode: CodeInvalidRecord, expectedStatus: http.StatusUnprocessableEntity, expectDetails: true},
		{name: "Wrapped invalid record", err: fmt.Errorf("ranking: %w", invalid), expectedCode: CodeInvalidRecord, expectedStatus: http.StatusUnprocessableEntity, expectDetails: true},
		{name: "Unknown error", err: errors.New("boom"), expectedCode: CodeGenericError, expectedStatus: http.StatusInternalServerError},
		{name: "Nil error", err: nil, expectedCode: CodeGenericError, expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := NewAPIError(tt.err)

			assert.Equal(t, tt.expectedCode, apiErr.Code)
			assert.Equal(t, tt.expectedStatus, apiErr.StatusCode())
			assert.NotEmpty(t, apiErr.Message)

			if tt.expectDetails {
				assert.Equal(t, invalid.Records, apiErr.Details)
			} else {
				assert.Nil(t, apiErr.Details)
			}
		})
	}
}
