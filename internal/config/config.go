package config

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/readme-cards/internal/upstream"
)

// Config holds runtime settings. Sources are applied in order:
// defaults, JSON file (-c or CONFIG), flags, environment variables.
type Config struct {
	ServerAddress   string
	StatsURL        string
	TopLangsURL     string
	UpstreamTimeout time.Duration
	RequestTimeout  time.Duration
	CacheTTL        time.Duration
	AssetsDir       string
	LogLevel        string
	ConfigPath      string
}

type fileConfig struct {
	ServerAddress   string `json:"server_address"`
	StatsURL        string `json:"stats_url"`
	TopLangsURL     string `json:"top_langs_url"`
	UpstreamTimeout string `json:"upstream_timeout"`
	RequestTimeout  string `json:"request_timeout"`
	CacheTTL        string `json:"cache_ttl"`
	AssetsDir       string `json:"assets_dir"`
	LogLevel        string `json:"log_level"`
}

func NewConfig() *Config {
	cfg := &Config{
		ServerAddress:   ":3000",
		StatsURL:        upstream.DefaultStatsURL,
		TopLangsURL:     upstream.DefaultTopLangsURL,
		UpstreamTimeout: 10 * time.Second,
		RequestTimeout:  30 * time.Second,
		CacheTTL:        0,
		AssetsDir:       "",
		LogLevel:        "info",
	}

	flag.StringVar(&cfg.ConfigPath, "c", "", "Path to JSON config file")
	flag.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "HTTP server address (e.g. localhost:3000)")
	flag.StringVar(&cfg.StatsURL, "s", cfg.StatsURL, "Upstream stats card URL")
	flag.StringVar(&cfg.TopLangsURL, "t", cfg.TopLangsURL, "Upstream top languages card URL")
	flag.DurationVar(&cfg.UpstreamTimeout, "upstream-timeout", cfg.UpstreamTimeout, "Timeout for a single upstream request")
	flag.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "Timeout for handling an incoming request (0 disables)")
	flag.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "How long upstream cards are cached in memory (0 disables)")
	flag.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "Directory with extra *.svg decorations")
	flag.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "Log level (debug, info, warn, error)")

	flag.Parse()

	if envConfig := os.Getenv("CONFIG"); envConfig != "" {
		cfg.ConfigPath = envConfig
	}

	if cfg.ConfigPath != "" {
		setFlags := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) {
			setFlags[f.Name] = true
		})
		if err := cfg.applyFile(cfg.ConfigPath, setFlags); err != nil {
			log.Warn().Err(err).Str("path", cfg.ConfigPath).Msg("Failed to load config file")
		}
	}

	if envServerAddress := os.Getenv("SERVER_ADDRESS"); envServerAddress != "" {
		cfg.ServerAddress = envServerAddress
	}

	if envStatsURL := os.Getenv("STATS_URL"); envStatsURL != "" {
		cfg.StatsURL = envStatsURL
	}

	if envTopLangsURL := os.Getenv("TOP_LANGS_URL"); envTopLangsURL != "" {
		cfg.TopLangsURL = envTopLangsURL
	}

	setDurationFromEnv(&cfg.UpstreamTimeout, "UPSTREAM_TIMEOUT")
	setDurationFromEnv(&cfg.RequestTimeout, "REQUEST_TIMEOUT")
	setDurationFromEnv(&cfg.CacheTTL, "UPSTREAM_CACHE_TTL")

	if envAssetsDir := os.Getenv("ASSETS_DIR"); envAssetsDir != "" {
		cfg.AssetsDir = envAssetsDir
	}

	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}

	return cfg
}

// applyFile copies values from the JSON file at path into fields whose flag
// was not given on the command line.
func (cfg *Config) applyFile(path string, setFlags map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return err
	}

	setString := func(dst *string, value, flagName string) {
		if value != "" && !setFlags[flagName] {
			*dst = value
		}
	}
	setDuration := func(dst *time.Duration, value, flagName string) {
		if value == "" || setFlags[flagName] {
			return
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Warn().Err(err).Str("key", flagName).Msg("Ignoring invalid duration in config file")
			return
		}
		*dst = d
	}

	setString(&cfg.ServerAddress, fc.ServerAddress, "a")
	setString(&cfg.StatsURL, fc.StatsURL, "s")
	setString(&cfg.TopLangsURL, fc.TopLangsURL, "t")
	setDuration(&cfg.UpstreamTimeout, fc.UpstreamTimeout, "upstream-timeout")
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout, "request-timeout")
	setDuration(&cfg.CacheTTL, fc.CacheTTL, "cache-ttl")
	setString(&cfg.AssetsDir, fc.AssetsDir, "assets")
	setString(&cfg.LogLevel, fc.LogLevel, "l")

	return nil
}

func setDurationFromEnv(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Err(err).Str("env", key).Msg("Ignoring invalid duration")
		return
	}
	*dst = d
}
