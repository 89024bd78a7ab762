package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hanstudy/ingest/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Article body extraction policy"`
	Pull       PullConfig       `yaml:"pull" json:"pull" jsonschema:"description=Provider pulling policy"`
	Search     SearchConfig     `yaml:"search" json:"search" jsonschema:"description=Keyword search provider credentials"`
	Health     HealthConfig     `yaml:"health" json:"health" jsonschema:"description=Source health tracking policy"`

	SourcesFile string                    `yaml:"sources_file" json:"sources_file" jsonschema:"description=Optional YAML file with source definitions, appended to sources"`
	Sources     []domain.SourceDefinition `yaml:"sources" json:"sources" jsonschema:"description=Source registry"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen        string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	AdminUser     string        `yaml:"admin_user" json:"admin_user" jsonschema:"default=admin,description=Admin user for trigger endpoints"`
	AdminPassword string        `yaml:"admin_password" json:"admin_password" jsonschema:"description=Admin password for trigger endpoints, admin endpoints disabled if empty"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn" json:"dsn" jsonschema:"default=file:ingest.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=1h,description=Connection maximum lifetime"`
}

// ScheduleConfig holds scheduler settings
type ScheduleConfig struct {
	RunOnStart bool `yaml:"run_on_start" json:"run_on_start" jsonschema:"default=false,description=Poll every enabled source once on start"`
}

// HostMarker points the extractor at the article container of a known host
type HostMarker struct {
	Host    string `yaml:"host" json:"host" jsonschema:"required,description=Host name as in article URL"`
	Pattern string `yaml:"pattern" json:"pattern" jsonschema:"required,description=Regular expression matching the article container in raw HTML"`
}

// ExtractionConfig holds article body extraction policy
type ExtractionConfig struct {
	Timeout            time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=8s,description=Article page fetch timeout"`
	UserAgent          string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; Ingest/1.0),description=User agent for article fetches"`
	MaxBodyChars       int           `yaml:"max_body_chars" json:"max_body_chars" jsonschema:"default=12000,description=Extracted body cap in characters"`
	MinBodyChars       int           `yaml:"min_body_chars" json:"min_body_chars" jsonschema:"default=80,description=Shorter extraction results fall back to feed text"`
	UsableMinChars     int           `yaml:"usable_min_chars" json:"usable_min_chars" jsonschema:"default=180,description=Minimum length of usable text"`
	UsableMinSentences int           `yaml:"usable_min_sentences" json:"usable_min_sentences" jsonschema:"default=2,description=Minimum sentence boundaries of usable text"`
	MarkerBefore       int           `yaml:"marker_before" json:"marker_before" jsonschema:"default=1500,description=Characters taken before a host marker"`
	MarkerAfter        int           `yaml:"marker_after" json:"marker_after" jsonschema:"default=32000,description=Characters taken after a host marker"`
	Readability        *bool         `yaml:"readability" json:"readability" jsonschema:"default=true,description=Enable readability extraction stage"`
	HostMarkers        []HostMarker  `yaml:"host_markers" json:"host_markers" jsonschema:"description=Extra host markers, appended to built-in ones"`
}

// ReadabilityEnabled reports if readability stage is on, defaults to true
func (e ExtractionConfig) ReadabilityEnabled() bool {
	return e.Readability == nil || *e.Readability
}

// PullConfig holds provider pulling policy
type PullConfig struct {
	ProviderTimeout time.Duration `yaml:"provider_timeout" json:"provider_timeout" jsonschema:"default=10s,description=Provider and feed request timeout"`
	RSSItemLimit    int           `yaml:"rss_item_limit" json:"rss_item_limit" jsonschema:"default=25,description=Maximum items taken from one feed"`
	SearchDisplay   int           `yaml:"search_display" json:"search_display" jsonschema:"default=10,description=Results requested per search query"`
	SearchQueries   []string      `yaml:"search_queries" json:"search_queries" jsonschema:"description=Default search queries for sources without their own"`
	WikiSampleSize  int           `yaml:"wiki_sample_size" json:"wiki_sample_size" jsonschema:"default=1,description=Default pages sampled per day"`
	WikiMemberLimit int           `yaml:"wiki_member_limit" json:"wiki_member_limit" jsonschema:"default=200,description=Category members listed per poll"`
	BodyWorkers     int           `yaml:"body_workers" json:"body_workers" jsonschema:"default=5,description=Concurrent article body fetches per poll"`
	UserAgent       string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Ingest/1.0,description=User agent for provider requests"`
}

// SearchConfig holds keyword search credentials, search sources pull nothing without both
type SearchConfig struct {
	ClientID     string `yaml:"client_id" json:"client_id" jsonschema:"description=Search API client id (env SEARCH_CLIENT_ID)"`
	ClientSecret string `yaml:"client_secret" json:"client_secret" jsonschema:"description=Search API client secret (env SEARCH_CLIENT_SECRET)"`
}

// HealthConfig holds health tracking policy
type HealthConfig struct {
	DegradeThreshold int `yaml:"degrade_threshold" json:"degrade_threshold" jsonschema:"default=3,minimum=1,description=Consecutive failures marking a source degraded"`
	MaxAttempts      int `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=10,minimum=1,description=Attempts to apply a health update on write conflicts"`
}

// defaultSearchQueries are broad queries used when neither source nor config define any
var defaultSearchQueries = []string{"한국어", "교육", "문화", "사회"}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.SourcesFile != "" {
		srcs, err := loadSources(cfg.SourcesFile)
		if err != nil {
			return nil, fmt.Errorf("load sources: %w", err)
		}
		cfg.Sources = append(cfg.Sources, srcs...)
	}

	cfg.SetDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// loadSources reads a YAML list of source definitions
func loadSources(path string) ([]domain.SourceDefinition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from config
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var srcs []domain.SourceDefinition
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &srcs); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	return srcs, nil
}

// SetDefaults fills zero values with defaults
func (c *Config) SetDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.AdminUser == "" {
		c.Server.AdminUser = "admin"
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:ingest.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = time.Hour
	}

	// extraction
	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 8 * time.Second
	}
	if c.Extraction.UserAgent == "" {
		c.Extraction.UserAgent = "Mozilla/5.0 (compatible; Ingest/1.0)"
	}
	if c.Extraction.MaxBodyChars == 0 {
		c.Extraction.MaxBodyChars = 12000
	}
	if c.Extraction.MinBodyChars == 0 {
		c.Extraction.MinBodyChars = 80
	}
	if c.Extraction.UsableMinChars == 0 {
		c.Extraction.UsableMinChars = 180
	}
	if c.Extraction.UsableMinSentences == 0 {
		c.Extraction.UsableMinSentences = 2
	}
	if c.Extraction.MarkerBefore == 0 {
		c.Extraction.MarkerBefore = 1500
	}
	if c.Extraction.MarkerAfter == 0 {
		c.Extraction.MarkerAfter = 32000
	}

	// pull
	if c.Pull.ProviderTimeout == 0 {
		c.Pull.ProviderTimeout = 10 * time.Second
	}
	if c.Pull.RSSItemLimit == 0 {
		c.Pull.RSSItemLimit = 25
	}
	if c.Pull.SearchDisplay == 0 {
		c.Pull.SearchDisplay = 10
	}
	if len(c.Pull.SearchQueries) == 0 {
		c.Pull.SearchQueries = append([]string(nil), defaultSearchQueries...)
	}
	if c.Pull.WikiSampleSize == 0 {
		c.Pull.WikiSampleSize = 1
	}
	if c.Pull.WikiMemberLimit == 0 {
		c.Pull.WikiMemberLimit = 200
	}
	if c.Pull.BodyWorkers == 0 {
		c.Pull.BodyWorkers = 5
	}
	if c.Pull.UserAgent == "" {
		c.Pull.UserAgent = "Ingest/1.0"
	}

	// search credentials may come straight from environment
	if c.Search.ClientID == "" {
		c.Search.ClientID = os.Getenv("SEARCH_CLIENT_ID")
	}
	if c.Search.ClientSecret == "" {
		c.Search.ClientSecret = os.Getenv("SEARCH_CLIENT_SECRET")
	}

	// health
	if c.Health.DegradeThreshold == 0 {
		c.Health.DegradeThreshold = 3
	}
	if c.Health.MaxAttempts == 0 {
		c.Health.MaxAttempts = 10
	}

	// sources
	for i := range c.Sources {
		if c.Sources[i].PollMinutes == 0 {
			c.Sources[i].PollMinutes = 60
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Extraction.Timeout < 100*time.Millisecond {
		return fmt.Errorf("extraction timeout must be at least 100ms")
	}
	if cfg.Pull.ProviderTimeout < 100*time.Millisecond {
		return fmt.Errorf("pull provider_timeout must be at least 100ms")
	}
	if cfg.Pull.RSSItemLimit < 1 {
		return fmt.Errorf("pull.rss_item_limit must be at least 1")
	}
	if cfg.Pull.BodyWorkers < 1 {
		return fmt.Errorf("pull.body_workers must be at least 1")
	}
	if cfg.Health.DegradeThreshold < 1 {
		return fmt.Errorf("health.degrade_threshold must be at least 1")
	}
	if cfg.Extraction.MinBodyChars < 0 || cfg.Extraction.UsableMinChars < 0 {
		return fmt.Errorf("extraction length limits must be non-negative")
	}
	for _, m := range cfg.Extraction.HostMarkers {
		if m.Host == "" {
			return fmt.Errorf("extraction host marker without host")
		}
		if _, err := regexp.Compile(m.Pattern); err != nil {
			return fmt.Errorf("extraction host marker %s: %w", m.Host, err)
		}
	}

	seen := make(map[string]bool, len(cfg.Sources))
	for i, s := range cfg.Sources {
		if s.Key == "" {
			return fmt.Errorf("source #%d: key is required", i)
		}
		if seen[s.Key] {
			return fmt.Errorf("source %s: duplicate key", s.Key)
		}
		seen[s.Key] = true
		if err := s.Type.Validate(); err != nil {
			return fmt.Errorf("source %s: %w", s.Key, err)
		}
		u, err := url.Parse(s.Endpoint)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("source %s: endpoint must be an absolute http(s) URL", s.Key)
		}
		if s.PollMinutes < 1 {
			return fmt.Errorf("source %s: poll_minutes must be at least 1", s.Key)
		}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// SearchEnabled reports if both search credentials are set
func (c *Config) SearchEnabled() bool {
	return c.Search.ClientID != "" && c.Search.ClientSecret != ""
}

// GetAdminCredentials returns admin user and password of trigger endpoints
func (c *Config) GetAdminCredentials() (user, password string) {
	return c.Server.AdminUser, c.Server.AdminPassword
}
