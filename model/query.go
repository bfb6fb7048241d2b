package model

import (
	"strconv"
	"strings"
)

type SearchQuery struct {
	Owner    string `form:"owner"`
	License  string `form:"license"`
	Language string `form:"language"`
	Topic    string `form:"topic"`
	MinStars int    `form:"minStars" binding:"min=0"`
}

// ToGithubQuery build the q parameter of the github search API
func (params SearchQuery) ToGithubQuery(filterPublicRepositories bool) string {
	qualifiers := make([]string, 0, 6)

	if filterPublicRepositories {
		qualifiers = append(qualifiers, "is:public")
	}

	for _, q := range []struct{ key, value string }{
		{"owner", params.Owner},
		{"license", params.License},
		{"language", params.Language},
		{"topic", params.Topic},
	} {
		if v := strings.TrimSpace(q.value); v != "" {
			qualifiers = append(qualifiers, q.key+":"+v)
		}
	}

	if params.MinStars > 0 {
		qualifiers = append(qualifiers, "stars:>="+strconv.Itoa(params.MinStars))
	}

	return strings.Join(qualifiers, " ")
}
