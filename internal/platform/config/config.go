package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWikiAPIURL   = "https://en.wikipedia.org/w/api.php"
	DefaultWikiRESTURL  = "https://en.wikipedia.org/api/rest_v1"
	DefaultWikiPageURL  = "https://en.wikipedia.org/wiki/"
	DefaultShareBaseURL = "https://wikigo.app/"
	DefaultListenAddr   = ":8080"
	DefaultHTTPTimeout  = 10 * time.Second
	DefaultSummaryTTL   = 24 * time.Hour
	DefaultUserAgent    = "wikigo/1.0 (https://github.com/wikigo/wikigo)"
)

type Config struct {
	DataDir      string        `yaml:"data_dir"`
	DBPath       string        `yaml:"db_path"`
	PostgresDSN  string        `yaml:"postgres_dsn"`
	WikiAPIURL   string        `yaml:"wiki_api_url"`
	WikiRESTURL  string        `yaml:"wiki_rest_url"`
	WikiPageURL  string        `yaml:"wiki_page_url"`
	UserAgent    string        `yaml:"user_agent"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	SummaryTTL   time.Duration `yaml:"summary_ttl"`
	ShareBaseURL string        `yaml:"share_base_url"`
	ListenAddr   string        `yaml:"listen_addr"`
	LogFile      string        `yaml:"log_file"`
}

type LoadOptions struct {
	// ConfigPath is an optional YAML file; a missing file is an error only
	// when the path was given explicitly.
	ConfigPath string
	DataDir    string
	// EnvFile defaults to ".env" in the working directory.
	EnvFile string
}

// Load resolves configuration from defaults, the YAML file, .env, WIKIGO_*
// variables and finally the explicit options, in that order.
func Load(opts LoadOptions) (Config, error) {
	cfg := Defaults()
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}

	explicit := opts.ConfigPath != ""
	path := opts.ConfigPath
	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	if err := mergeFile(&cfg, path, explicit); err != nil {
		return Config{}, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}

	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "wikigo.db")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "wikigo.log")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Defaults() Config {
	dataDir := ".wikigo"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".wikigo")
	}
	return Config{
		DataDir:      dataDir,
		WikiAPIURL:   DefaultWikiAPIURL,
		WikiRESTURL:  DefaultWikiRESTURL,
		WikiPageURL:  DefaultWikiPageURL,
		UserAgent:    DefaultUserAgent,
		HTTPTimeout:  DefaultHTTPTimeout,
		SummaryTTL:   DefaultSummaryTTL,
		ShareBaseURL: DefaultShareBaseURL,
		ListenAddr:   DefaultListenAddr,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.WikiAPIURL == "" || c.WikiRESTURL == "" {
		return fmt.Errorf("wiki api urls are required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.SummaryTTL <= 0 {
		return fmt.Errorf("summary ttl must be positive")
	}
	return nil
}

// UsePostgres reports whether the hosted database replaces local SQLite.
func (c Config) UsePostgres() bool {
	return strings.TrimSpace(c.PostgresDSN) != ""
}

func (c Config) PreferencesPath() string {
	return filepath.Join(c.DataDir, "preferences.yaml")
}

func (c Config) JournalDir() string {
	return filepath.Join(c.DataDir, "runs")
}

func mergeFile(cfg *Config, path string, explicit bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(payload, cfg); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}

func mergeEnv(cfg *Config) error {
	strs := map[string]*string{
		"WIKIGO_DATA_DIR":       &cfg.DataDir,
		"WIKIGO_DB_PATH":        &cfg.DBPath,
		"WIKIGO_POSTGRES_DSN":   &cfg.PostgresDSN,
		"WIKIGO_WIKI_API_URL":   &cfg.WikiAPIURL,
		"WIKIGO_WIKI_REST_URL":  &cfg.WikiRESTURL,
		"WIKIGO_WIKI_PAGE_URL":  &cfg.WikiPageURL,
		"WIKIGO_USER_AGENT":     &cfg.UserAgent,
		"WIKIGO_SHARE_BASE_URL": &cfg.ShareBaseURL,
		"WIKIGO_LISTEN_ADDR":    &cfg.ListenAddr,
		"WIKIGO_LOG_FILE":       &cfg.LogFile,
	}
	for key, target := range strs {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}
	if cfg.PostgresDSN == "" {
		if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
			cfg.PostgresDSN = v
		}
	}
	durations := map[string]*time.Duration{
		"WIKIGO_HTTP_TIMEOUT": &cfg.HTTPTimeout,
		"WIKIGO_SUMMARY_TTL":  &cfg.SummaryTTL,
	}
	for key, target := range durations {
		v, ok := os.LookupEnv(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		*target = d
	}
	return nil
}
