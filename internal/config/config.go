// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Rules  RulesConfig  `yaml:"rules" mapstructure:"rules"`
	Parser ParserConfig `yaml:"parser" mapstructure:"parser"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DSN         string `yaml:"dsn" mapstructure:"dsn"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// RulesConfig configures the remote parser-rule endpoint. An empty endpoint
// disables the fetch entirely.
type RulesConfig struct {
	Endpoint    string `yaml:"endpoint" mapstructure:"endpoint"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ParserConfig configures parsing behavior. The minimum-score cutoffs are
// caller policy applied after parsing; the engine itself never filters.
type ParserConfig struct {
	MinScoreOCR           int `yaml:"min_score_ocr" mapstructure:"min_score_ocr"`
	MinScoreArchive       int `yaml:"min_score_archive" mapstructure:"min_score_archive"`
	MaxConcurrentSegments int `yaml:"max_concurrent_segments" mapstructure:"max_concurrent_segments"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INTAKE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "intake.db")
	v.SetDefault("rules.timeout_secs", 10)
	v.SetDefault("parser.min_score_ocr", 10)
	v.SetDefault("parser.min_score_archive", 20)
	v.SetDefault("parser.max_concurrent_segments", 8)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for the given run mode.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Parser.MaxConcurrentSegments < 1 || c.Parser.MaxConcurrentSegments > 64 {
		problems = append(problems, "parser.max_concurrent_segments must be between 1 and 64")
	}
	if c.Parser.MinScoreOCR < 0 || c.Parser.MinScoreOCR > 100 {
		problems = append(problems, "parser.min_score_ocr must be between 0 and 100")
	}
	if c.Parser.MinScoreArchive < 0 || c.Parser.MinScoreArchive > 100 {
		problems = append(problems, "parser.min_score_archive must be between 0 and 100")
	}

	switch mode {
	case "parse":
		// No additional requirements: parsing degrades to defaults without
		// a rule endpoint and runs without a store.
	case "store":
		if c.Store.Driver == "postgres" && c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required for the postgres driver")
		}
		if c.Store.Driver == "sqlite" && c.Store.DSN == "" {
			problems = append(problems, "store.dsn is required for the sqlite driver")
		}
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
