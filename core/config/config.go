package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hr-dashboard-api/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	GoogleAPI GoogleAPIConfig `mapstructure:"google"`
	Holiday   HolidayConfig   `mapstructure:"holiday"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Security  SecurityConfig  `mapstructure:"security"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	Timezone string `mapstructure:"timezone"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// GoogleAPIConfig holds the service-account style credentials used for the shared
// company calendar. All three of ClientID, ClientSecret and RefreshToken must be set
// for the integration to be considered connected.
type GoogleAPIConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token"`
	CalendarID   string `mapstructure:"calendar_id"`
	TokenURL     string `mapstructure:"token_url"`
	APIEndpoint  string `mapstructure:"api_endpoint"`
}

type HolidayConfig struct {
	Keywords []string `mapstructure:"keywords"`
}

type RateLimitConfig struct {
	MaxRequests int `mapstructure:"max_requests"`
	WindowSecs  int `mapstructure:"window_seconds"`
}

type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Init loads .env (if present), config.yaml (if present) and the environment.
func Init() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Env lists arrive as a single comma separated string.
	cfg.Holiday.Keywords = splitList(cfg.Holiday.Keywords)
	cfg.Security.AllowedOrigins = splitList(cfg.Security.AllowedOrigins)

	Set(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "hr-dashboard-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.timezone", constants.DefaultTimezone)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "hr_dashboard")
	v.SetDefault("database.ssl_mode", constants.DatabaseSSLMode)

	v.SetDefault("jwt.issuer", "hr-dashboard")

	v.SetDefault("google.calendar_id", constants.DefaultCalendarID)
	v.SetDefault("google.token_url", "https://oauth2.googleapis.com/token")

	v.SetDefault("holiday.keywords", []string{"holiday", "libur"})

	v.SetDefault("rate_limit.max_requests", constants.RateLimitMaxRequests)
	v.SetDefault("rate_limit.window_seconds", int(constants.RateLimitWindow.Seconds()))
}

func bindEnv(v *viper.Viper) {
	bindings := map[string]string{
		"app.env":                   "APP_ENV",
		"app.log_level":             "LOG_LEVEL",
		"app.timezone":              "APP_TIMEZONE",
		"server.host":               "SERVER_HOST",
		"server.port":               "SERVER_PORT",
		"database.host":             "DB_HOST",
		"database.port":             "DB_PORT",
		"database.user":             "DB_USER",
		"database.password":         "DB_PASSWORD",
		"database.name":             "DB_NAME",
		"database.ssl_mode":         "DB_SSL_MODE",
		"redis.addr":                "REDIS_ADDR",
		"redis.password":            "REDIS_PASSWORD",
		"redis.db":                  "REDIS_DB",
		"jwt.secret":                "JWT_SECRET",
		"jwt.issuer":                "JWT_ISSUER",
		"google.client_id":          "GOOGLE_CLIENT_ID",
		"google.client_secret":      "GOOGLE_CLIENT_SECRET",
		"google.refresh_token":      "GOOGLE_REFRESH_TOKEN",
		"google.calendar_id":        "GOOGLE_CALENDAR_ID",
		"google.token_url":          "GOOGLE_TOKEN_URL",
		"google.api_endpoint":       "GOOGLE_API_ENDPOINT",
		"holiday.keywords":          "HOLIDAY_KEYWORDS",
		"rate_limit.max_requests":   "RATE_LIMIT_MAX_REQUESTS",
		"rate_limit.window_seconds": "RATE_LIMIT_WINDOW_SECONDS",
		"security.allowed_origins":  "ALLOWED_ORIGINS",
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, env)
	}
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

// Get returns the loaded config and panics if Init was never called.
func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config not initialized")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

// IsConnected reports whether every credential the Google integration needs is present.
func (g GoogleAPIConfig) IsConnected() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RefreshToken != ""
}

func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
