package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Scalingo/sclng-repo-ranker/config"
	"github.com/Scalingo/sclng-repo-ranker/model"
	"github.com/Scalingo/sclng-repo-ranker/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	log "github.com/sirupsen/logrus"
)

type APIController interface {
	GetRepositories(ctx *gin.Context)
	RankRepositories(ctx *gin.Context)
	Health(ctx *gin.Context)
}

type apiController struct {
	githubService  service.GithubService
	rankingService service.RankingService
	config         config.Config
}

func NewAPIController(config config.Config, githubService service.GithubService, rankingService service.RankingService) APIController {
	return apiController{
		githubService:  githubService,
		rankingService: rankingService,
		config:         config,
	}
}

func (s apiController) GetRepositories(c *gin.Context) {
	var searchQuery model.SearchQuery
	if err := c.ShouldBindQuery(&searchQuery); err != nil {
		log.WithError(err).Debug("invalid search filters")
		c.JSON(http.StatusBadRequest, model.NewAPIError(fmt.Errorf(model.CodeInvalidQuery)))
		return
	}

	// execute the request
	repos, err := s.githubService.FetchLastHundredRepositories(c.Request.Context(), searchQuery)
	if err != nil {
		apiErr := model.NewAPIError(err)
		c.JSON(apiErr.StatusCode(), apiErr)
		return
	}

	c.JSON(http.StatusOK, repos)
}

// RankRepositories order the JSON array of repositories given in the body
// fields other than stargazers_count and updated_at are returned as received
func (s apiController) RankRepositories(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.API.MaxBodyBytes)

	var records []model.RepositoryRecord
	if err := c.ShouldBindBodyWith(&records, binding.JSON); err != nil || records == nil || !singleJSONValue(c) {
		log.WithError(err).Debug("unable to decode repositories to rank")
		c.JSON(http.StatusBadRequest, model.NewAPIError(fmt.Errorf(model.CodeInvalidBody)))
		return
	}

	ranked, err := s.rankingService.RankRepositories(records)
	if err != nil {
		apiErr := model.NewAPIError(err)
		c.JSON(apiErr.StatusCode(), apiErr)
		return
	}

	c.JSON(http.StatusOK, ranked)
}

// singleJSONValue report whether the bound body holds nothing after its first JSON value
// the gin JSON binding stops decoding at the end of the first value
func singleJSONValue(c *gin.Context) bool {
	cached, ok := c.Get(gin.BodyBytesKey)
	if !ok {
		return false
	}

	body, ok := cached.([]byte)
	if !ok {
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(body))

	var first json.RawMessage
	if err := dec.Decode(&first); err != nil {
		return false
	}

	var trailing json.RawMessage
	return errors.Is(dec.Decode(&trailing), io.EOF)
}

func (s apiController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
