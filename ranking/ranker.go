package ranking

import (
	"sort"
	"time"
)

// Rankable is a repository that can be ordered by popularity
// the boolean results report whether the value is present and valid
type Rankable interface {
	StarCount() (int, bool)
	LastUpdated() (time.Time, bool)
}

// named records get their name included in InvalidRecord reports
type named interface {
	Name() string
}

type sortKey struct {
	starsValid   bool
	stars        int
	updatedValid bool
	updated      time.Time
}

func keyOf(r Rankable) sortKey {
	var k sortKey
	k.stars, k.starsValid = r.StarCount()
	k.updated, k.updatedValid = r.LastUpdated()
	return k
}

// before is a lexicographic order on the key, valid values first on each level
// so it stays transitive whatever mix of invalid values is given
func (k sortKey) before(o sortKey) bool {
	if k.starsValid != o.starsValid {
		return k.starsValid
	}
	if k.starsValid && k.stars != o.stars {
		return k.stars > o.stars
	}
	if k.updatedValid != o.updatedValid {
		return k.updatedValid
	}
	if k.updatedValid {
		return k.updated.After(o.updated)
	}
	return false
}

// Less report whether a ranks before b: most stars first, then most recently updated
// invalid values rank after valid ones, as with PolicySortLast
func Less(a, b Rankable) bool {
	return keyOf(a).before(keyOf(b))
}

// Rank return a new slice holding the records ordered by star count (descending),
// ties broken by last update (most recent first). Records equal on both keys keep
// their input order. The input slice is never modified.
func Rank[T Rankable](records []T, policy Policy) ([]T, error) {
	keys := make([]sortKey, len(records))
	for i, r := range records {
		keys[i] = keyOf(r)
	}

	if policy == PolicyFailFast {
		if invalid := findInvalid(records, keys); len(invalid) > 0 {
			return nil, &InvalidRecordError{Records: invalid}
		}
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		return keys[order[i]].before(keys[order[j]])
	})

	ranked := make([]T, len(records))
	for i, idx := range order {
		ranked[i] = records[idx]
	}

	return ranked, nil
}

// findInvalid list the records that cannot be compared under PolicyFailFast
func findInvalid[T Rankable](records []T, keys []sortKey) []InvalidRecord {
	tied := make(map[int]int, len(keys))
	for _, k := range keys {
		if k.starsValid {
			tied[k.stars]++
		}
	}

	var invalid []InvalidRecord
	for i, k := range keys {
		reason := ""
		switch {
		case !k.starsValid:
			reason = ReasonInvalidStars
		case !k.updatedValid && tied[k.stars] > 1:
			reason = ReasonInvalidUpdatedAt
		default:
			continue
		}

		entry := InvalidRecord{Index: i, Reason: reason}
		if n, ok := any(records[i]).(named); ok {
			entry.Name = n.Name()
		}
		invalid = append(invalid, entry)
	}

	return invalid
}
