package ranking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecord is matched by every *InvalidRecordError
var ErrInvalidRecord = errors.New("INVALID_RECORD")

const (
	ReasonInvalidStars     = "missing or non-numeric stargazers_count"
	ReasonInvalidUpdatedAt = "missing or unparsable updated_at on a tied stargazers_count"
)

// InvalidRecord identify one record that prevented the ranking
type InvalidRecord struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// InvalidRecordError is returned by Rank when some records cannot be compared
// no partial ordering is produced in that case
type InvalidRecordError struct {
	Records []InvalidRecord
}

func (e *InvalidRecordError) Error() string {
	parts := make([]string, 0, len(e.Records))
	for _, r := range e.Records {
		if r.Name != "" {
			parts = append(parts, fmt.Sprintf("#%d (%s): %s", r.Index, r.Name, r.Reason))
		} else {
			parts = append(parts, fmt.Sprintf("#%d: %s", r.Index, r.Reason))
		}
	}

	return fmt.Sprintf("%d record(s) cannot be ranked: %s", len(e.Records), strings.Join(parts, "; "))
}

func (e *InvalidRecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}
