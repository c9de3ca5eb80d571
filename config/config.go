package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

const (
	EnvProduction = "production"

	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type HTTPConfig struct {
	Port         string        `validate:"required,numeric"`
	BaseURL      string        `validate:"required,url"` // used by chromedp to load the catalog page
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`
}

type MoySkladConfig struct {
	BaseURL   string        `validate:"required,url"`
	Token     string        // checked at request time so /test can report it
	Timeout   time.Duration `validate:"gt=0"`
	PageLimit int           `validate:"gt=0,lte=1000"`
}

type NKConfig struct {
	BaseURL string        `validate:"required,url"`
	APIKey  string
	Timeout time.Duration `validate:"gt=0"`
}

type DBConfig struct {
	Driver string `validate:"oneof=pgx sqlite"`
	DSN    string `validate:"required"`
}

type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn error"`
	Format string `validate:"oneof=text json"`
	File   string
}

type Config struct {
	Env           string
	HTTP          HTTPConfig
	MoySklad      MoySkladConfig
	NK            NKConfig
	DB            DBConfig
	Log           LogConfig
	ChromePath    string
	CatalogConfig string // path to a catalog settings YAML, empty = embedded defaults
}

var validate = validator.New()

// Load builds the config from the loader values, applying defaults and validating the result
func Load(loader Loader) (*Config, error) {
	envs, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config values: %w", err)
	}

	port := strings.TrimPrefix(getOrDefault(envs["PORT"], "8080"), ":")

	cfg := &Config{
		Env: getOrDefault(envs["ENV"], "development"),
		HTTP: HTTPConfig{
			Port:         port,
			BaseURL:      strings.TrimSuffix(getOrDefault(envs["BASE_URL"], "http://localhost:"+port), "/"),
			ReadTimeout:  getEnvAsDuration("HTTP_READ_TIMEOUT", envs["HTTP_READ_TIMEOUT"], 30*time.Second),
			WriteTimeout: getEnvAsDuration("HTTP_WRITE_TIMEOUT", envs["HTTP_WRITE_TIMEOUT"], 120*time.Second),
		},
		MoySklad: MoySkladConfig{
			BaseURL:   strings.TrimSuffix(getOrDefault(envs["MS_BASE_URL"], "https://api.moysklad.ru/api/remap/1.2"), "/"),
			Token:     strings.TrimSpace(envs["MS_TOKEN"]),
			Timeout:   getEnvAsDuration("MS_TIMEOUT", envs["MS_TIMEOUT"], 30*time.Second),
			PageLimit: getEnvAsInt("MS_PAGE_LIMIT", envs["MS_PAGE_LIMIT"], 1000),
		},
		NK: NKConfig{
			BaseURL: strings.TrimSuffix(getOrDefault(envs["NC_BASE_URL"], "https://апи.национальный-каталог.рф"), "/"),
			APIKey:  strings.TrimSpace(envs["NC_API_KEY"]),
			Timeout: getEnvAsDuration("NC_TIMEOUT", envs["NC_TIMEOUT"], 30*time.Second),
		},
		DB: buildDBConfig(envs),
		Log: LogConfig{
			Level:  strings.ToLower(getOrDefault(envs["LOG_LEVEL"], "info")),
			Format: strings.ToLower(getOrDefault(envs["LOG_FORMAT"], "text")),
			File:   envs["LOG_FILE"],
		},
		ChromePath:    envs["CHROME_PATH"],
		CatalogConfig: envs["CATALOG_CONFIG"],
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildDBConfig prefers DATABASE_URL, then the DB_* parts (Postgres),
// and falls back to a local SQLite file
func buildDBConfig(envs map[string]string) DBConfig {
	if connStr := envs["DATABASE_URL"]; connStr != "" {
		return DBConfig{Driver: DriverPostgres, DSN: connStr}
	}

	host, user, dbname := envs["DB_HOST"], envs["DB_USER"], envs["DB_NAME"]
	if host != "" && user != "" && dbname != "" {
		port := getOrDefault(envs["DB_PORT"], "5432")
		sslmode := getOrDefault(envs["DB_SSLMODE"], "disable")
		return DBConfig{
			Driver: DriverPostgres,
			DSN: fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
				host, port, user, envs["DB_PASSWORD"], dbname, sslmode),
		}
	}

	return DBConfig{Driver: DriverSQLite, DSN: getOrDefault(envs["SQLITE_PATH"], "nk-catalog.db")}
}

func getOrDefault(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

func getEnvAsDuration(key, strValue string, defaultValue time.Duration) time.Duration {
	if strValue == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("⚠️  config: forbidden value %q for %s, using default %v", strValue, key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsInt(key, strValue string, defaultValue int) int {
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("⚠️  config: forbidden value %q for %s, using default %v", strValue, key, defaultValue)
		return defaultValue
	}
	return value
}
