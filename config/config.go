package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"casedesk-backend/storage"
)

// Config holds every environment-overridable setting of the service.
type Config struct {
	AppName   string `envconfig:"APP_NAME" default:"LMS Backend" yaml:"app_name"`
	SecretKey string `envconfig:"APP_SECRET_KEY" default:"dev-secret" yaml:"secret_key"`
	Port      string `envconfig:"PORT" default:"8080" yaml:"port"`

	AccessTokenTTLMinutes int  `envconfig:"ACCESS_TOKEN_TTL_MINUTES" default:"60" yaml:"access_token_ttl_minutes"`
	RefreshTokenTTLHours  int  `envconfig:"REFRESH_TOKEN_TTL_HOURS" default:"24" yaml:"refresh_token_ttl_hours"`
	RevokeOnRefresh       bool `envconfig:"REVOKE_ON_REFRESH" default:"false" yaml:"revoke_on_refresh"`

	DefaultAdminEmail    string `envconfig:"DEFAULT_ADMIN_EMAIL" default:"admin@example.com" yaml:"default_admin_email"`
	DefaultAdminPassword string `envconfig:"DEFAULT_ADMIN_PASSWORD" yaml:"default_admin_password"`

	StorageType        string `envconfig:"STORAGE_TYPE" default:"local" yaml:"storage_type"`
	StorageBucket      string `envconfig:"STORAGE_BUCKET" default:"./uploads" yaml:"storage_bucket"`
	AWSS3Bucket        string `envconfig:"AWS_S3_BUCKET" yaml:"aws_s3_bucket"`
	AWSRegion          string `envconfig:"AWS_REGION" default:"us-east-1" yaml:"aws_region"`
	AWSAccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" yaml:"aws_access_key_id"`
	AWSSecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" yaml:"aws_secret_access_key"`
	AWSS3Endpoint      string `envconfig:"AWS_S3_ENDPOINT" yaml:"aws_s3_endpoint"`

	LogEnv   string `envconfig:"LOG_ENV" default:"dev" yaml:"log_env"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" yaml:"log_level"`

	AuthRateLimitPerSec  float64 `envconfig:"AUTH_RATE_LIMIT_PER_SEC" default:"5" yaml:"auth_rate_limit_per_sec"`
	AuthRateLimitBurst   int     `envconfig:"AUTH_RATE_LIMIT_BURST" default:"10" yaml:"auth_rate_limit_burst"`
	MaxMultipartMemoryMB int64   `envconfig:"MAX_MULTIPART_MEMORY_MB" default:"32" yaml:"max_multipart_memory_mb"`
}

// Load reads the given .env files (default ".env") when present and then
// processes the environment into a Config.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.SecretKey) == "" {
		errs = append(errs, errors.New("APP_SECRET_KEY must not be empty"))
	}
	if c.AccessTokenTTLMinutes <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL_MINUTES must be positive"))
	}
	if c.RefreshTokenTTLHours <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_TTL_HOURS must be positive"))
	}
	switch storage.StorageType(c.StorageType) {
	case storage.StorageTypeLocal:
	case storage.StorageTypeS3:
		if c.AWSS3Bucket == "" {
			errs = append(errs, errors.New("AWS_S3_BUCKET is required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_TYPE %q", c.StorageType))
	}
	return errors.Join(errs...)
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMinutes) * time.Minute
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLHours) * time.Hour
}

// MaxMultipartMemory is the in-memory threshold handed to gin for multipart forms.
func (c *Config) MaxMultipartMemory() int64 {
	return c.MaxMultipartMemoryMB << 20
}

// StorageConfig maps the storage settings onto the storage package.
func (c *Config) StorageConfig() storage.StorageConfig {
	return storage.StorageConfig{
		Type:         storage.StorageType(c.StorageType),
		LocalPath:    c.StorageBucket,
		S3Bucket:     c.AWSS3Bucket,
		S3Region:     c.AWSRegion,
		S3Endpoint:   c.AWSS3Endpoint,
		AWSAccessKey: c.AWSAccessKeyID,
		AWSSecretKey: c.AWSSecretAccessKey,
	}
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "***"
	}
	c.SecretKey = mask(c.SecretKey)
	c.DefaultAdminPassword = mask(c.DefaultAdminPassword)
	c.AWSSecretAccessKey = mask(c.AWSSecretAccessKey)
	return c
}
