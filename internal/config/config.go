package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is everything cmd/server needs to wire the API.
type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	AllowOrigins []string

	CommentStore  string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	Email Email

	MailchimpAPIKey       string
	MailchimpServerPrefix string
	MailchimpAudienceID   string

	GitHubUsername string
	GitHubToken    string
	GitHubCacheTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	S3 S3
}

type Email struct {
	Mode         string
	From         string
	FromName     string
	Recipient    string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
}

type S3 struct {
	Endpoint       string
	PublicEndpoint string
	Region         string
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
	GalleryPrefix  string
}

// Enabled reports whether enough is set to talk to a bucket.
func (s S3) Enabled() bool {
	return s.Endpoint != "" && s.Bucket != ""
}

// Load reads Config from the environment.
func Load() (*Config, error) {
	var errs []error
	duration := func(key string, def time.Duration) time.Duration {
		d, err := GetDurationOrDefault(key, def)
		errs = append(errs, err)
		return d
	}
	integer := func(key string, def int) int {
		n, err := GetIntOrDefault(key, def)
		errs = append(errs, err)
		return n
	}
	boolean := func(key string, def bool) bool {
		b, err := GetBoolOrDefault(key, def)
		errs = append(errs, err)
		return b
	}

	cfg := &Config{
		Port:         GetEnvOrDefault("PORT", "8080"),
		ReadTimeout:  duration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: duration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  duration("SERVER_IDLE_TIMEOUT", time.Minute),
		AllowOrigins: GetListOrDefault("CORS_ALLOW_ORIGINS", []string{"*"}),

		CommentStore:  GetEnvOrDefault("COMMENT_STORE", "mongo"),
		MongoURI:      GetEnvOrDefault("MONGODB_URI", ""),
		MongoDatabase: GetEnvOrDefault("MONGODB_DATABASE", "portfolioCluster"),
		DatabaseURL:   GetEnvOrDefault("DATABASE_URL", ""),

		Email: Email{
			Mode:         GetEnvOrDefault("EMAIL_MODE", "resend"),
			From:         GetEnvOrDefault("EMAIL_FROM", "onboarding@resend.dev"),
			FromName:     GetEnvOrDefault("EMAIL_FROM_NAME", "Portfolio Contact Form"),
			Recipient:    GetEnvOrDefault("CONTACT_RECIPIENT", ""),
			ResendAPIKey: GetEnvOrDefault("RESEND_API_KEY", ""),
			SMTPHost:     GetEnvOrDefault("SMTP_HOST", ""),
			SMTPPort:     integer("SMTP_PORT", 587),
			SMTPUser:     GetEnvOrDefault("SMTP_USER", ""),
			SMTPPassword: GetEnvOrDefault("SMTP_PASSWORD", ""),
		},

		MailchimpAPIKey:       GetEnvOrDefault("MAILCHIMP_API_KEY", ""),
		MailchimpServerPrefix: GetEnvOrDefault("MAILCHIMP_API_SERVER_PREFIX", ""),
		MailchimpAudienceID:   GetEnvOrDefault("MAILCHIMP_AUDIENCE_ID", ""),

		GitHubUsername: GetEnvOrDefault("GITHUB_USERNAME", ""),
		GitHubToken:    GetEnvOrDefault("GITHUB_PAT", ""),
		GitHubCacheTTL: duration("GITHUB_CACHE_TTL", time.Hour),

		RedisAddr:     GetEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword: GetEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       integer("REDIS_DB", 0),

		S3: S3{
			Endpoint:       GetEnvOrDefault("S3_ENDPOINT", ""),
			PublicEndpoint: GetEnvOrDefault("S3_PUBLIC_ENDPOINT", ""),
			Region:         GetEnvOrDefault("S3_REGION", "us-east-1"),
			AccessKey:      GetEnvOrDefault("S3_ACCESS_KEY", ""),
			SecretKey:      GetEnvOrDefault("S3_SECRET_KEY", ""),
			Bucket:         GetEnvOrDefault("S3_BUCKET", ""),
			UseSSL:         boolean("S3_USE_SSL", false),
			GalleryPrefix:  GetEnvOrDefault("S3_GALLERY_PREFIX", "gallery/"),
		},
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CommentStore {
	case "mongo", "mongodb":
		return ValidateEnv([]string{"MONGODB_URI"})
	case "postgres", "postgresql":
		return ValidateEnv([]string{"DATABASE_URL"})
	case "memory":
		return nil
	default:
		return fmt.Errorf("COMMENT_STORE: unknown backend %q", c.CommentStore)
	}
}
