package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
}

type DatabaseConfig struct {
	DSN string `yaml:"url"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	TTL    int    `yaml:"ttl"` // access token lifetime, minutes
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	From         string `yaml:"from"`
	BaseURL      string `yaml:"base_url"` // frontend base URL for links in mail
	Enabled      bool   `yaml:"enabled"`
}

type StorageConfig struct {
	Type         string `yaml:"type"`           // local, s3, cloudflare_r2
	BasePath     string `yaml:"base_path"`      // for local storage
	BaseURL      string `yaml:"base_url"`       // public URL base
	Bucket       string `yaml:"bucket"`         // for S3/R2
	Region       string `yaml:"region"`         // for S3
	AccessKey    string `yaml:"access_key"`     // for S3/R2
	SecretKey    string `yaml:"secret_key"`     // for S3/R2
	Endpoint     string `yaml:"endpoint"`       // for R2 or custom S3
	UseSSL       bool   `yaml:"use_ssl"`        // for S3/R2
	SignedURLTTL int    `yaml:"signed_url_ttl"` // seconds
	CallTimeout  int    `yaml:"call_timeout"`   // seconds, per storage call
}

type UploadConfig struct {
	MaxSize      int64    `yaml:"max_size"`      // bytes
	AllowedTypes []string `yaml:"allowed_types"` // MIME types
}

type NotificationsConfig struct {
	RetentionDays int `yaml:"retention_days"` // read-notification purge window
}

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	JWT           JWTConfig           `yaml:"jwt"`
	Email         EmailConfig         `yaml:"email"`
	Storage       StorageConfig       `yaml:"storage"`
	Upload        UploadConfig        `yaml:"upload"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

var AppConfig *Config

// LoadConfig reads config.yaml unless DATABASE_URL is set, in which
// case the whole configuration comes from environment variables (test
// and container deployments). A .env file is honored when present.
func LoadConfig() {
	var cfg Config

	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Storage.Type = envOr("STORAGE_TYPE", "local")
	cfg.Storage.BasePath = envOr("STORAGE_BASE_PATH", "./uploads")
	cfg.Storage.BaseURL = envOr("STORAGE_BASE_URL", "/api/v1/files")
	cfg.Storage.Bucket = os.Getenv("STORAGE_BUCKET")
	cfg.Storage.Region = os.Getenv("STORAGE_REGION")
	cfg.Storage.AccessKey = os.Getenv("STORAGE_ACCESS_KEY")
	cfg.Storage.SecretKey = os.Getenv("STORAGE_SECRET_KEY")
	cfg.Storage.Endpoint = os.Getenv("STORAGE_ENDPOINT")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Storage.SignedURLTTL == 0 {
		cfg.Storage.SignedURLTTL = 3600
	}
	if cfg.Storage.CallTimeout == 0 {
		cfg.Storage.CallTimeout = 15
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		}
	}
	if cfg.Notifications.RetentionDays == 0 {
		cfg.Notifications.RetentionDays = 90
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
