package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"time"
)

// largest integer a float64 holds exactly
const maxExactFloat = 1 << 53

var errRecordNotAnObject = errors.New("repository record must be a JSON object")

// RepositoryRecord is a repository metadata entry received from a caller
// only stargazers_count and updated_at are read, every other field is kept as received
// and written back unchanged when the record is encoded
type RepositoryRecord struct {
	raw json.RawMessage

	name           string
	stars          int
	starsValid     bool
	updatedAtRaw   string
	updatedAt      time.Time
	updatedAtValid bool
}

// NewRepositoryRecord build a record from a JSON object
func NewRepositoryRecord(data []byte) (RepositoryRecord, error) {
	var r RepositoryRecord
	if err := r.UnmarshalJSON(data); err != nil {
		return RepositoryRecord{}, err
	}

	return r, nil
}

// UnmarshalJSON never fails on missing or malformed ranking fields
// they are only flagged as invalid, the ranker policy decides what to do with them
func (r *RepositoryRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return errRecordNotAnObject
	}

	*r = RepositoryRecord{raw: append(json.RawMessage(nil), data...)}

	r.stars, r.starsValid = decodeStarCount(fields["stargazers_count"])

	var updatedAt string
	if v, ok := fields["updated_at"]; ok && json.Unmarshal(v, &updatedAt) == nil {
		r.updatedAtRaw = updatedAt
		r.updatedAt, r.updatedAtValid = ParseTimestamp(updatedAt)
	}

	for _, key := range []string{"full_name", "name"} {
		var name string
		if v, ok := fields[key]; ok && json.Unmarshal(v, &name) == nil && name != "" {
			r.name = name
			break
		}
	}

	return nil
}

// MarshalJSON write back the record exactly as it was received
func (r RepositoryRecord) MarshalJSON() ([]byte, error) {
	if r.raw == nil {
		return []byte("null"), nil
	}

	return r.raw, nil
}

// StarCount implements ranking.Rankable
func (r RepositoryRecord) StarCount() (int, bool) {
	return r.stars, r.starsValid
}

// LastUpdated implements ranking.Rankable
func (r RepositoryRecord) LastUpdated() (time.Time, bool) {
	return r.updatedAt, r.updatedAtValid
}

// Name return full_name (or name) when the record has one, used in error reports
func (r RepositoryRecord) Name() string {
	return r.name
}

// RawUpdatedAt return updated_at as received, empty if missing or not a string
func (r RepositoryRecord) RawUpdatedAt() string {
	return r.updatedAtRaw
}

func decodeStarCount(value json.RawMessage) (int, bool) {
	value = bytes.TrimSpace(value)
	// json.Number also accepts quoted numbers, which are not star counts
	if len(value) == 0 || value[0] == '"' {
		return 0, false
	}

	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()

	var number json.Number
	if err := dec.Decode(&number); err != nil {
		return 0, false
	}

	// accept 12 as well as 12.0, reject fractions and negative values
	if n, err := number.Int64(); err == nil {
		if n < 0 || int64(int(n)) != n {
			return 0, false
		}
		return int(n), true
	}

	f, err := number.Float64()
	if err != nil || f < 0 || f > maxExactFloat || f != math.Trunc(f) {
		return 0, false
	}

	return int(f), true
}
