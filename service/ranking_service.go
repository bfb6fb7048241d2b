package service

import (
	"errors"

	"github.com/Scalingo/sclng-repo-ranker/config"
	"github.com/Scalingo/sclng-repo-ranker/model"
	"github.com/Scalingo/sclng-repo-ranker/ranking"
	log "github.com/sirupsen/logrus"
)

type RankingService interface {
	RankRepositories(records []model.RepositoryRecord) ([]model.RepositoryRecord, error)
}

type rankingService struct {
	policy ranking.Policy
}

func NewRankingService(config config.Config) RankingService {
	return rankingService{
		policy: config.RankingPolicy(),
	}
}

// RankRepositories order records supplied by a caller, see ranking.Rank
// the returned slice is new, records are not modified
func (s rankingService) RankRepositories(records []model.RepositoryRecord) ([]model.RepositoryRecord, error) {
	log.WithFields(log.Fields{
		"numberOfRepositories": len(records),
		"policy":               s.policy.String(),
	}).Debug("rank repositories by stars and last update")

	ranked, err := ranking.Rank(records, s.policy)

	if err != nil {
		var invalidErr *ranking.InvalidRecordError
		if errors.As(err, &invalidErr) {
			for _, r := range invalidErr.Records {
				log.WithFields(log.Fields{
					"index":  r.Index,
					"name":   r.Name,
					"reason": r.Reason,
				}).Info("repository cannot be ranked")
			}
		}

		return nil, err
	}

	return ranked, nil
}
