package model

import "time"

type GithubRepository struct {
	ID               int64          `json:"-"` // ignored from json only used to fetch languages easily
	FullName         string         `json:"fullName"`
	Owner            string         `json:"owner"`
	Repository       string         `json:"repository"`
	Licence          *string        `json:"licence,omitempty"` // licence can be nil for some repositories without licence
	StargazersCount  *int           `json:"stargazersCount"`
	UpdatedAt        *time.Time     `json:"updatedAt,omitempty"`
	MostUsedLanguage *string        `json:"-"`
	Languages        map[string]int `json:"languages"`
}

// StarCount implements ranking.Rankable
func (r GithubRepository) StarCount() (int, bool) {
	if r.StargazersCount == nil || *r.StargazersCount < 0 {
		return 0, false
	}

	return *r.StargazersCount, true
}

// LastUpdated implements ranking.Rankable
func (r GithubRepository) LastUpdated() (time.Time, bool) {
	if r.UpdatedAt == nil || r.UpdatedAt.IsZero() {
		return time.Time{}, false
	}

	return *r.UpdatedAt, true
}

// Name is used by the ranker to identify the repository in error reports
func (r GithubRepository) Name() string {
	return r.FullName
}

type GithubRepositoryLanguages struct {
	RepositoryID int64
	Languages    map[string]int
}
