package ranking

import (
	"fmt"
	"strings"
)

// Policy decide how records with a missing or malformed star count or update date are ranked
type Policy int

const (
	// PolicyFailFast reject the whole input when a value needed to order it is invalid
	// an invalid updated_at is only needed when the star count is tied with another record
	PolicyFailFast Policy = iota

	// PolicySortLast never fail: invalid star counts rank after every valid one
	// and invalid dates rank last among records with the same star count
	PolicySortLast
)

func (p Policy) String() string {
	switch p {
	case PolicyFailFast:
		return "fail"
	case PolicySortLast:
		return "last"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy convert a configuration value (case insensitive) to a Policy
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "fail", "failfast", "fail-fast", "":
		return PolicyFailFast, nil
	case "last", "sortlast", "sort-last":
		return PolicySortLast, nil
	default:
		return PolicyFailFast, fmt.Errorf("unknown ranking policy %q, expected fail or last", value)
	}
}
