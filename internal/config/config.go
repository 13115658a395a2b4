package config

import (
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/plaza/internal/columns"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the market-study map service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Port: The port the HTTP server listens on.
// - Sheet: Preferred workbook sheet holding the unit rows.
// - CacheSize: How many parsed studies are kept in memory.
// - MaxUploadMB: Upper bound for uploaded workbook size.
// - UnitPriceStat: Statistic used for the per-development unit price (median or mean).
// - ShutdownTimeout: Grace period for in-flight requests on shutdown.
// - Places: Place search provider settings.
// - Database: Optional PostgreSQL settings for the study history.
// - Columns: Ordered column resolution rules.
type Config struct {
	Env             string         `mapstructure:"env"`
	Port            int            `mapstructure:"http.port"`
	Sheet           string         `mapstructure:"sheet"`
	CacheSize       int            `mapstructure:"cache_size"`
	MaxUploadMB     int            `mapstructure:"max_upload_mb"`
	UnitPriceStat   string         `mapstructure:"unit_price_stat"`
	ShutdownTimeout time.Duration  `mapstructure:"shutdown_timeout"`
	Places          PlacesConfig   `mapstructure:"places"`
	Database        PostgresConfig `mapstructure:"postgres"`
	Columns         []columns.Rule `mapstructure:"columns"`
}

// PlacesConfig selects and configures the place search provider.
type PlacesConfig struct {
	Provider  string `mapstructure:"provider"`   // google, nominatim or none
	APIKey    string `mapstructure:"key"`        // API key, required for google
	RateLimit int    `mapstructure:"rate_limit"` // Requests per second for google
	Language  string `mapstructure:"language"`   // Preferred result language
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// Enabled reports whether a database host was configured.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// DSN returns the PostgreSQL connection URL.
func (p PostgresConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.Name,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// bindings maps configuration keys to the environment variables that set them.
var bindings = map[string]string{
	"config":            "PLAZA_CONFIG",
	"env":               "PLAZA_ENV",
	"http.port":         "PLAZA_HTTP_PORT",
	"sheet":             "PLAZA_SHEET",
	"cache_size":        "PLAZA_CACHE_SIZE",
	"max_upload_mb":     "PLAZA_MAX_UPLOAD_MB",
	"unit_price_stat":   "PLAZA_UNIT_PRICE_STAT",
	"shutdown_timeout":  "PLAZA_SHUTDOWN_TIMEOUT",
	"places.provider":   "PLAZA_PLACES_PROVIDER",
	"places.key":        "PLAZA_PLACES_KEY",
	"places.rate_limit": "PLAZA_PLACES_RATE_LIMIT",
	"places.language":   "PLAZA_PLACES_LANGUAGE",
	"postgres.host":     "DB_HOST",
	"postgres.port":     "DB_PORT",
	"postgres.user":     "DB_USERNAME",
	"postgres.password": "DB_PASSWORD",
	"postgres.db_name":  "DB_NAME",
	"postgres.sslmode":  "DB_SSLMODE",
}

var defaults = map[string]any{
	"env":               "production",
	"http.port":         "8080",
	"sheet":             "EEMM",
	"cache_size":        "16",
	"max_upload_mb":     "32",
	"unit_price_stat":   "median",
	"shutdown_timeout":  "10s",
	"places.provider":   "none",
	"places.rate_limit": "10",
	"places.language":   "es",
	"postgres.port":     "5432",
	"postgres.sslmode":  "disable",
}

// MustLoad reads the optional .env file, the optional YAML file named by PLAZA_CONFIG and
// the environment, in increasing order of precedence. It panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	port, err := strconv.Atoi(v.GetString("http.port"))
	if err != nil {
		panic("failed to parse port for http server from configuration")
	}

	cacheSize, err := strconv.Atoi(v.GetString("cache_size"))
	if err != nil || cacheSize < 1 {
		panic("failed to parse cache size from configuration, must be a positive integer")
	}

	maxUpload, err := strconv.Atoi(v.GetString("max_upload_mb"))
	if err != nil || maxUpload < 1 {
		panic("failed to parse max upload size from configuration, must be a positive integer")
	}

	rateLimit, err := strconv.Atoi(v.GetString("places.rate_limit"))
	if err != nil {
		panic("failed to parse places rate limit from configuration, must be an integer types")
	}

	shutdown, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil {
		panic("failed to parse shutdown timeout from configuration")
	}

	rules := columns.DefaultRules()
	if v.IsSet("columns") {
		rules = nil
		if err = v.UnmarshalKey("columns", &rules); err != nil {
			panic("failed to parse column rules from configuration")
		}
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            port,
		Sheet:           v.GetString("sheet"),
		CacheSize:       cacheSize,
		MaxUploadMB:     maxUpload,
		UnitPriceStat:   v.GetString("unit_price_stat"),
		ShutdownTimeout: shutdown,
		Places: PlacesConfig{
			Provider:  v.GetString("places.provider"),
			APIKey:    v.GetString("places.key"),
			RateLimit: rateLimit,
			Language:  v.GetString("places.language"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
			SSLMode:  v.GetString("postgres.sslmode"),
		},
		Columns: rules,
	}
}
