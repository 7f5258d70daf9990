package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Tracking TrackingConfig `mapstructure:"tracking" validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret signs access tokens; 32 characters minimum.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the access token lifetime. Defaults to 15.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost is the bcrypt cost factor used when hashing passwords.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// TrackingConfig contains the carrier lookup client settings.
type TrackingConfig struct {
	// BaseURL is the carrier tracking API endpoint.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// APIKey authenticates against the carrier API. Optional: some
	// carrier environments (and the local stub) are unauthenticated.
	APIKey string `mapstructure:"api_key"`

	// TimeoutSeconds bounds each carrier request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=0"`

	// Cache configures the optional Redis lookup cache for anonymous
	// searches. Left empty, lookups always go to the carrier.
	Cache CacheConfig `mapstructure:"cache"`
}

// CacheConfig contains the Redis lookup cache settings.
type CacheConfig struct {
	RedisAddr     string `mapstructure:"redis_addr"     validate:"omitempty,hostname_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"       validate:"gte=0"`
	TTLSeconds    int    `mapstructure:"ttl_seconds"    validate:"gte=0"`
}

// Enabled reports whether the lookup cache is configured.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}
