package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	Import ImportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for the upload archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// MaxFileBytes is MaxFileSizeMB in bytes.
func (s *S3Config) MaxFileBytes() int64 {
	return s.MaxFileSizeMB * 1024 * 1024
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ImportConfig holds bulk import settings.
type ImportConfig struct {
	SubmitTimeout  time.Duration `mapstructure:"submit_timeout"`
	MaxRows        int           `mapstructure:"max_rows"`
	ArchiveUploads bool          `mapstructure:"archive_uploads"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
}

// Load reads configuration from environment variables with the PETLEDGER_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PETLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.cors_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "petledger")
	v.SetDefault("db.password", "petledger_secret")
	v.SetDefault("db.name", "petledger_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "petledger-imports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Import defaults
	v.SetDefault("import.submit_timeout", "60s")
	v.SetDefault("import.max_rows", 10000)
	v.SetDefault("import.archive_uploads", true)
	v.SetDefault("import.session_ttl", "1h")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "PETLEDGER_SERVER_PORT",
		"server.read_timeout":    "PETLEDGER_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "PETLEDGER_SERVER_WRITE_TIMEOUT",
		"server.environment":     "PETLEDGER_SERVER_ENVIRONMENT",
		"server.cors_origins":    "PETLEDGER_SERVER_CORS_ORIGINS",
		"db.host":                "PETLEDGER_DB_HOST",
		"db.port":                "PETLEDGER_DB_PORT",
		"db.user":                "PETLEDGER_DB_USER",
		"db.password":            "PETLEDGER_DB_PASSWORD",
		"db.name":                "PETLEDGER_DB_NAME",
		"db.sslmode":             "PETLEDGER_DB_SSLMODE",
		"db.max_open":            "PETLEDGER_DB_MAX_OPEN",
		"db.max_idle":            "PETLEDGER_DB_MAX_IDLE",
		"s3.region":              "PETLEDGER_S3_REGION",
		"s3.bucket":              "PETLEDGER_S3_BUCKET",
		"s3.endpoint":            "PETLEDGER_S3_ENDPOINT",
		"s3.access_key":          "PETLEDGER_S3_ACCESS_KEY",
		"s3.secret_key":          "PETLEDGER_S3_SECRET_KEY",
		"s3.max_file_size_mb":    "PETLEDGER_S3_MAX_FILE_SIZE_MB",
		"log.level":              "PETLEDGER_LOG_LEVEL",
		"log.format":             "PETLEDGER_LOG_FORMAT",
		"import.submit_timeout":  "PETLEDGER_IMPORT_SUBMIT_TIMEOUT",
		"import.max_rows":        "PETLEDGER_IMPORT_MAX_ROWS",
		"import.archive_uploads": "PETLEDGER_IMPORT_ARCHIVE_UPLOADS",
		"import.session_ttl":     "PETLEDGER_IMPORT_SESSION_TTL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PETLEDGER_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PETLEDGER_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		CORSOrigins:  splitList(v.GetString("server.cors_origins")),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Import = ImportConfig{
		SubmitTimeout:  v.GetDuration("import.submit_timeout"),
		MaxRows:        v.GetInt("import.max_rows"),
		ArchiveUploads: v.GetBool("import.archive_uploads"),
		SessionTTL:     v.GetDuration("import.session_ttl"),
	}

	if cfg.Import.SubmitTimeout <= 0 {
		return nil, fmt.Errorf("import.submit_timeout must be positive, got %s", cfg.Import.SubmitTimeout)
	}
	if cfg.Import.MaxRows < 0 {
		return nil, fmt.Errorf("import.max_rows must not be negative, got %d", cfg.Import.MaxRows)
	}

	return cfg, nil
}

// splitList splits a comma-separated setting, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
