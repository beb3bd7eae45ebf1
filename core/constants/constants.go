package constants

import "time"

// Database
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 10
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Context keys
const (
	ContextTokenData = "token_data"
	ContextRequestID = "request_id"
)

const HeaderRequestID = "X-Request-ID"

// Roles
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Redis keys
const (
	RedisKeyRateLimit = "ratelimit:"
)

// Rate limiting
const (
	RateLimitWindow        = time.Minute
	RateLimitMaxRequests   = 120
	RateLimitSweepInterval = 5 * time.Minute
	RateLimitEntryMaxAge   = 60 * time.Minute
)

const (
	DefaultTimeout        = 10 * time.Second
	DefaultCalendarID     = "primary"
	DefaultTimezone       = "Asia/Jakarta"
	DefaultPageSize       = 20
	MaxPageSize           = 100
	GoogleEventMaxResults = 2500
	MaxEventWindow        = 400 * 24 * time.Hour
)

// Calendar colors
const (
	ColorHoliday = "#dc2626"
	ColorGoogle  = "#2563eb"
	ColorLocal   = "#16a34a"
)
