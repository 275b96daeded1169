package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App          AppConfig          `envPrefix:"STREAMIFY_APP_" yaml:"app"`
	Server       ServerConfig       `envPrefix:"STREAMIFY_SERVER_" yaml:"server"`
	Log          LogConfig          `envPrefix:"STREAMIFY_LOG_" yaml:"log"`
	Database     DatabaseConfig     `envPrefix:"STREAMIFY_DB_" yaml:"database"`
	Session      SessionConfig      `envPrefix:"STREAMIFY_SESSION_" yaml:"session"`
	Mail         MailConfig         `envPrefix:"STREAMIFY_MAIL_" yaml:"mail"`
	Auth         AuthConfig         `envPrefix:"STREAMIFY_AUTH_" yaml:"auth"`
	OTP          OTPConfig          `envPrefix:"STREAMIFY_OTP_" yaml:"otp"`
	TOTP         TOTPConfig         `envPrefix:"STREAMIFY_TOTP_" yaml:"totp"`
	JWT          JWTConfig          `envPrefix:"STREAMIFY_JWT_" yaml:"jwt"`
	Media        MediaConfig        `envPrefix:"STREAMIFY_MEDIA_" yaml:"media"`
	RateLimit    RateLimitConfig    `envPrefix:"STREAMIFY_RATELIMIT_" yaml:"ratelimit"`
	Subscription SubscriptionConfig `envPrefix:"STREAMIFY_SUBSCRIPTION_" yaml:"subscription"`
}

type AppConfig struct {
	Name string `env:"NAME" envDefault:"Streamify" yaml:"name"`
	URL  string `env:"URL" envDefault:"http://localhost:8080" yaml:"url"`
}

type ServerConfig struct {
	Host string `env:"HOST" envDefault:"localhost" yaml:"host"`
	Port string `env:"PORT" envDefault:"8080" yaml:"port"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info" yaml:"level"`
	Format string `env:"FORMAT" envDefault:"json" yaml:"format"`
	Output string `env:"OUTPUT" envDefault:"stdout" yaml:"output"`
}

type DatabaseConfig struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite" yaml:"driver"`
	DSN         string `env:"DSN" envDefault:"streamify.db" yaml:"dsn"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true" yaml:"auto_migrate"`
}

type SessionConfig struct {
	Name     string        `env:"NAME" envDefault:"streamify_session" yaml:"name"`
	Store    string        `env:"STORE" envDefault:"database" yaml:"store"`
	MaxAge   time.Duration `env:"MAX_AGE" envDefault:"720h" yaml:"max_age"`
	Path     string        `env:"PATH" envDefault:"/" yaml:"path"`
	Domain   string        `env:"DOMAIN" yaml:"domain"`
	Secure   bool          `env:"SECURE" envDefault:"false" yaml:"secure"`
	HttpOnly bool          `env:"HTTP_ONLY" envDefault:"true" yaml:"http_only"`
	SameSite string        `env:"SAME_SITE" envDefault:"lax" yaml:"same_site"`
}

type MailConfig struct {
	Host        string `env:"HOST" envDefault:"localhost" yaml:"host"`
	Port        int    `env:"PORT" envDefault:"587" yaml:"port"`
	Username    string `env:"USERNAME" yaml:"username"`
	Password    string `env:"PASSWORD" yaml:"password"`
	Encryption  string `env:"ENCRYPTION" envDefault:"starttls" yaml:"encryption"`
	FromAddress string `env:"FROM_ADDRESS" envDefault:"noreply@streamify.local" yaml:"from_address"`
	FromName    string `env:"FROM_NAME" envDefault:"Streamify" yaml:"from_name"`
}

type AuthConfig struct {
	MinLength      int  `env:"MIN_LENGTH" envDefault:"8" yaml:"min_length"`
	RequireUpper   bool `env:"REQUIRE_UPPER" envDefault:"true" yaml:"require_upper"`
	RequireLower   bool `env:"REQUIRE_LOWER" envDefault:"true" yaml:"require_lower"`
	RequireNumber  bool `env:"REQUIRE_NUMBER" envDefault:"true" yaml:"require_number"`
	RequireSpecial bool `env:"REQUIRE_SPECIAL" envDefault:"false" yaml:"require_special"`
	BcryptCost     int  `env:"BCRYPT_COST" envDefault:"12" yaml:"bcrypt_cost"`
}

type OTPConfig struct {
	Expiry          time.Duration `env:"EXPIRY" envDefault:"5m" yaml:"expiry"`
	Retention       time.Duration `env:"RETENTION" envDefault:"24h" yaml:"retention"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h" yaml:"cleanup_interval"`
	CleanupEnabled  bool          `env:"CLEANUP_ENABLED" envDefault:"true" yaml:"cleanup_enabled"`
}

type TOTPConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false" yaml:"enabled"`
	Issuer  string `env:"ISSUER" envDefault:"Streamify" yaml:"issuer"`
}

type JWTConfig struct {
	SecretKey    string        `env:"SECRET_KEY" yaml:"secret_key"`
	Issuer       string        `env:"ISSUER" envDefault:"streamify" yaml:"issuer"`
	AccessExpiry time.Duration `env:"ACCESS_EXPIRY" envDefault:"15m" yaml:"access_expiry"`
}

type MediaConfig struct {
	Root string `env:"ROOT" envDefault:"media" yaml:"root"`
}

type RateLimitConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"true" yaml:"enabled"`
	Rate    int           `env:"RATE" envDefault:"10" yaml:"rate"`
	Period  time.Duration `env:"PERIOD" envDefault:"1m" yaml:"period"`
}

type SubscriptionConfig struct {
	ExpireEnabled  bool          `env:"EXPIRE_ENABLED" envDefault:"true" yaml:"expire_enabled"`
	ExpireInterval time.Duration `env:"EXPIRE_INTERVAL" envDefault:"1h" yaml:"expire_interval"`
}

// LoadConfig populates cfg from the environment (plus a .env file if
// present) and then an optional YAML file named by STREAMIFY_CONFIG.
// Pointing STREAMIFY_CONFIG at a file makes that file authoritative:
// its values override anything from the environment.
func LoadConfig(cfg *Config) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	if err := env.Parse(cfg); err != nil {
		return err
	}

	if path := os.Getenv("STREAMIFY_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	return nil
}
