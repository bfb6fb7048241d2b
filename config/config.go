package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/CIDgravity/snakelet"
	"github.com/Scalingo/sclng-repo-ranker/ranking"
)

// config structure
type Config struct {
	API     APIConfig     `mapstructure:"API"`
	Github  GithubConfig  `mapstructure:"GITHUB"`
	Tasks   TasksConfig   `mapstructure:"TASKS"`
	Ranking RankingConfig `mapstructure:"RANKING"`
	Logs    LogsConfig    `mapstructure:"LOGS"`
}

type APIConfig struct {
	ListenPort   string `mapstructure:"ListenPort"`
	MaxBodyBytes int64  `mapstructure:"MaxBodyBytes"` // limit for POST /repos/rank payloads
}

type GithubConfig struct {
	Token string `mapstructure:"Token"` // optional, raise the rate limit from 60 to 5000 requests per hour
}

type TasksConfig struct {
	MaxParallelTasksAllowed int `mapstructure:"MaxParallelTasksAllowed"`
}

type RankingConfig struct {
	InvalidValuePolicy string `mapstructure:"InvalidValuePolicy"` // fail | last - case insensitive
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug | trace - case insensitive
	OutputLogsAsJSON bool   `mapstructure:"OutputLogsAsJson"`
	ReportCaller     bool   `mapstructure:"ReportCaller"` // add the calling function and file to each entry
}

// Load
func Load() (*Config, error) {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))

	if err != nil {
		return nil, err
	}

	// check config file exists
	configFilePath := dir + "/config/config.toml"

	if _, err := os.Stat(configFilePath); errors.Is(err, os.ErrNotExist) {
		if _, err := os.Stat("config/config.toml"); errors.Is(err, os.ErrNotExist) {
			return nil, err
		} else {
			configFilePath = "config/config.toml"
		}
	}

	return LoadFile(configFilePath)
}

// LoadFile load defaults, then the given TOML file, then validate the result
func LoadFile(configFilePath string) (*Config, error) {
	cfg := GetDefault()

	if _, err := snakelet.InitAndLoad(cfg, configFilePath); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		API: APIConfig{
			ListenPort:   "5000",
			MaxBodyBytes: 1 << 20,
		},
		Tasks: TasksConfig{
			MaxParallelTasksAllowed: 8,
		},
		Ranking: RankingConfig{
			InvalidValuePolicy: ranking.PolicyFailFast.String(),
		},
		Logs: LogsConfig{
			Level:            "debug",
			OutputLogsAsJSON: false,
			ReportCaller:     false,
		},
	}
}

// Validate check values that would only fail later at runtime
func (c Config) Validate() error {
	if c.API.ListenPort == "" {
		return errors.New("API.ListenPort must be set")
	}

	if c.API.MaxBodyBytes <= 0 {
		return fmt.Errorf("API.MaxBodyBytes must be positive, got %d", c.API.MaxBodyBytes)
	}

	if c.Tasks.MaxParallelTasksAllowed <= 0 {
		return fmt.Errorf("TASKS.MaxParallelTasksAllowed must be positive, got %d", c.Tasks.MaxParallelTasksAllowed)
	}

	if _, err := ranking.ParsePolicy(c.Ranking.InvalidValuePolicy); err != nil {
		return fmt.Errorf("RANKING.InvalidValuePolicy: %w", err)
	}

	return nil
}

// RankingPolicy return the parsed policy, Validate guarantee it is known
func (c Config) RankingPolicy() ranking.Policy {
	policy, _ := ranking.ParsePolicy(c.Ranking.InvalidValuePolicy)
	return policy
}
