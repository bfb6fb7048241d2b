package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Scalingo/sclng-repo-ranker/config"
	"github.com/Scalingo/sclng-repo-ranker/model"
	"github.com/Scalingo/sclng-repo-ranker/ranking"
	"github.com/google/go-github/v66/github"

	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"

	"golang.org/x/time/rate"
)

type GithubService interface {
	FetchLastHundredRepositories(ctx context.Context, searchQuery model.SearchQuery) ([]model.GithubRepository, error)
	GetRepositoriesLanguages(ctx context.Context, repos []model.GithubRepository) ([]model.GithubRepository, error)
	FetchLanguagesForSingleRepository(ctx context.Context, r model.GithubRepository, swg *sizedwaitgroup.SizedWaitGroup, ch chan<- model.GithubRepositoryLanguages) error

	HandleRequestErrors(err error) error
}

type githubService struct {
	githubClient      *github.Client
	githubRateLimiter *rate.Limiter
	config            config.Config
	rankingPolicy     ranking.Policy
}

// we have two github request with different rate limit
// but the search limit is higher, so we limit to the ListLanguages
// ListLanguages rate limit = 60 calls per hour for non-authenticated and 5000 calls for authenticated
// Search = 30 calls per minute = 1800 calls per hour
func NewGithubService(config config.Config, githubClient *github.Client, rateLimiter *rate.Limiter) GithubService {
	return githubService{
		githubClient:      githubClient,
		githubRateLimiter: rateLimiter,
		config:            config,
		rankingPolicy:     config.RankingPolicy(),
	}
}

func (s githubService) FetchLastHundredRepositories(ctx context.Context, searchQuery model.SearchQuery) ([]model.GithubRepository, error) {
	if !s.githubRateLimiter.Allow() {
		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return []model.GithubRepository{}, fmt.Errorf(model.CodeRateLimitReached)
	}

	log.WithFields(log.Fields{
		"owner":    searchQuery.Owner,
		"licence":  searchQuery.License,
		"language": searchQuery.Language,
	}).Info("fetch 100 most starred repositories from github with filters")

	// search repositories that match the query filters
	// github already sorts by stars, the local ranking adds the updated_at tie-break
	repos, _, err := s.githubClient.Search.Repositories(
		ctx,
		searchQuery.ToGithubQuery(true),
		&github.SearchOptions{
			Sort:  "stars",
			Order: "desc",
			ListOptions: github.ListOptions{
				Page:    1,
				PerPage: 100,
			},
		},
	)

	if err != nil {
		return []model.GithubRepository{}, s.HandleRequestErrors(err)
	}

	// build output format for each repo
	repositoriesAggregated := make([]model.GithubRepository, 0, len(repos.Repositories))

	for _, r := range repos.Repositories {

		if r == nil || r.FullName == nil || r.Owner == nil || r.Owner.Login == nil || r.Name == nil {
			log.WithFields(log.Fields{
				"repositoryID": r.GetID(),
			}).Debug("repository found with invalid information. skipped")

			return []model.GithubRepository{}, fmt.Errorf(model.CodeInvalidDataFound)
		}

		repositoryAggregated := model.GithubRepository{
			ID:               r.GetID(),
			FullName:         *r.FullName,
			Owner:            *r.Owner.Login,
			Repository:       *r.Name,
			StargazersCount:  r.StargazersCount,
			MostUsedLanguage: r.Language,
		}

		if r.UpdatedAt != nil {
			updatedAt := r.UpdatedAt.Time
			repositoryAggregated.UpdatedAt = &updatedAt
		}

		// extract licence info
		// licence can be null or empty for some repositories
		if r.License != nil {
			repositoryAggregated.Licence = r.License.Key
		}

		repositoriesAggregated = append(repositoriesAggregated, repositoryAggregated)
	}

	// count number of repositories where the languages are available for loading
	// if there is not enought request on rate limiter to load all of them, return an error here
	// this avoid to load the languages not completly
	reposWithLanguagesToLoad := 0

	for _, r := range repositoriesAggregated {
		if r.MostUsedLanguage != nil {
			reposWithLanguagesToLoad += 1
		}
	}

	if !s.githubRateLimiter.AllowN(time.Now(), reposWithLanguagesToLoad) {
		log.WithField("repositoriesToLoad", reposWithLanguagesToLoad).Warning("not enought requests in rate limiter to load languages for all repositories")
		return []model.GithubRepository{}, fmt.Errorf(model.CodeRateLimitReached)
	}

	log.WithFields(log.Fields{
		"numberOfRepositories": reposWithLanguagesToLoad,
	}).Debug("will load languages from all repositories found with main language available")

	repositoriesAggregated, err = s.GetRepositoriesLanguages(ctx, repositoriesAggregated)

	// err already is a reason code from HandleRequestErrors
	if err != nil {
		log.WithError(err).Error("unable to get repositories languages")
		return []model.GithubRepository{}, err
	}

	ranked, err := ranking.Rank(repositoriesAggregated, s.rankingPolicy)

	if err != nil {
		log.WithError(err).Error("github returned repositories that cannot be ranked")
		return []model.GithubRepository{}, err
	}

	return ranked, nil
}

// GetRepositoriesLanguages will fetch the languages used for each repository in parameters
// this function use wait groups to parallelize the requests for each repository
func (s githubService) GetRepositoriesLanguages(ctx context.Context, repos []model.GithubRepository) ([]model.GithubRepository, error) {
	swg := sizedwaitgroup.New(s.config.Tasks.MaxParallelTasksAllowed)

	// one result per repository, languages are assigned once all tasks are finished
	results := make(chan model.GithubRepositoryLanguages, len(repos))
	errs := make(chan error, len(repos))

	for _, r := range repos {

		// the main language is nil when github found no language at all
		// ListLanguages would return an empty map, so the request is skipped to save rate limit
		if r.MostUsedLanguage == nil {
			log.WithFields(log.Fields{
				"repositoryID": r.ID,
			}).Debug("repository without most used language. skipped from loading languages list")

			results <- model.GithubRepositoryLanguages{RepositoryID: r.ID, Languages: map[string]int{}}
		} else {
			swg.Add()
			go func(r model.GithubRepository) {
				if err := s.FetchLanguagesForSingleRepository(ctx, r, &swg, results); err != nil {
					errs <- err
				}
			}(r)
		}
	}

	log.Debug("waiting for all threads for loading repositories to be finished")
	swg.Wait()
	log.Debug("all threads for loading repositories languages finished")

	close(results)
	close(errs)

	// report the first failure, a partial languages list is never returned
	if err := <-errs; err != nil {
		return repos, err
	}

	langMap := make(map[int64]map[string]int)
	for result := range results {
		langMap[result.RepositoryID] = result.Languages
	}

	for i := range repos {
		if lang, found := langMap[repos[i].ID]; found {
			repos[i].Languages = lang
		}
	}

	return repos, nil
}

// FetchLanguagesForSingleRepository get the languages for a specific repository
// It will add the results to a channel and use a goroutine
// note: we are not checking the rate limit in this function, because done in the parent function
func (s githubService) FetchLanguagesForSingleRepository(ctx context.Context, r model.GithubRepository, swg *sizedwaitgroup.SizedWaitGroup, ch chan<- model.GithubRepositoryLanguages) error {
	defer swg.Done()

	log.WithFields(log.Fields{
		"repositoryID":     r.ID,
		"mostUsedLanguage": r.MostUsedLanguage,
	}).Debug("fetch languages for repository")

	res, _, err := s.githubClient.Repositories.ListLanguages(ctx, r.Owner, r.Repository)

	if err != nil {
		return s.HandleRequestErrors(err)
	}

	ch <- model.GithubRepositoryLanguages{RepositoryID: r.ID, Languages: res}
	return nil
}

// HandleRequestErrors manage errors including github rate limit errors at the same location
// If error is a rate limit error, this function will update the local rate limiter to consume all available requests
// this can help us to keep the local rate limiter up to date
func (s githubService) HandleRequestErrors(err error) error {
	if _, ok := err.(*github.RateLimitError); ok {
		if remaining := int(s.githubRateLimiter.Tokens()); remaining > 0 && !s.githubRateLimiter.AllowN(time.Now(), remaining) {
			return fmt.Errorf(model.CodeRateLimiterError)
		}

		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return fmt.Errorf(model.CodeRateLimitReached)
	}

	log.WithError(err).Error("error catched when fetching data from github")
	return fmt.Errorf(model.CodeFetchError)
}
