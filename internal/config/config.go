package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBDriver string
	DBDSN    string

	JWTSecret     string
	JWTExpiresMin int
	AdminEmail    string

	FrontendBaseURL string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	KafkaBrokers []string

	StorageDriver string
	UploadDir     string
	PublicBaseURL string
	S3Bucket      string
	S3Region      string
	S3Key         string
	S3Secret      string
	S3Endpoint    string
	S3URL         string
}

// Load reads the environment. Call godotenv first if a .env file should apply.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRES_MIN", 10080)
	v.SetDefault("ADMIN_EMAIL", "adminkareskillhive@klu.ac.in")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:5173")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CACHE_TTL_SEC", 60)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("PUBLIC_BASE_URL", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_KEY", "")
	v.SetDefault("S3_SECRET", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_URL", "")

	cfg := Config{
		AppPort:         v.GetString("APP_PORT"),
		AppEnv:          strings.ToLower(v.GetString("APP_ENV")),
		DBDriver:        strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:           v.GetString("DB_DSN"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTExpiresMin:   v.GetInt("JWT_EXPIRES_MIN"),
		AdminEmail:      strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_EMAIL"))),
		FrontendBaseURL: v.GetString("FRONTEND_BASE_URL"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		CacheTTL:        time.Duration(v.GetInt("CACHE_TTL_SEC")) * time.Second,
		KafkaBrokers:    splitList(v.GetString("KAFKA_BROKERS")),
		StorageDriver:   strings.ToLower(v.GetString("STORAGE_DRIVER")),
		UploadDir:       v.GetString("UPLOAD_DIR"),
		PublicBaseURL:   v.GetString("PUBLIC_BASE_URL"),
		S3Bucket:        v.GetString("S3_BUCKET"),
		S3Region:        v.GetString("S3_REGION"),
		S3Key:           v.GetString("S3_KEY"),
		S3Secret:        v.GetString("S3_SECRET"),
		S3Endpoint:      v.GetString("S3_ENDPOINT"),
		S3URL:           v.GetString("S3_URL"),
	}

	if cfg.JWTSecret == "" {
		return cfg, errors.New("missing env: JWT_SECRET")
	}
	if cfg.DBDSN == "" {
		return cfg, errors.New("missing env: DB_DSN")
	}
	// the session cookie needs credentialed CORS, which rules out a wildcard
	origins := splitList(cfg.FrontendBaseURL)
	if len(origins) == 0 {
		return cfg, errors.New("missing env: FRONTEND_BASE_URL")
	}
	for _, o := range origins {
		if o == "*" {
			return cfg, errors.New("FRONTEND_BASE_URL cannot be \"*\" with credentialed CORS")
		}
	}
	if cfg.JWTExpiresMin <= 0 {
		cfg.JWTExpiresMin = 10080
	}
	return cfg, nil
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}

// CORSOrigins is FRONTEND_BASE_URL as a comma list, as the cors middleware expects.
func (c Config) CORSOrigins() string {
	return strings.Join(splitList(c.FrontendBaseURL), ", ")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
