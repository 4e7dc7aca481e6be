package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"enertika/internal/logger"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	Upload    UploadConfig
	Match     MatchConfig
	Migration MigrationConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
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

// S3Config holds object storage settings for archived originals.
// An empty Bucket disables archival.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// UploadConfig bounds the files accepted by the ingestion endpoints.
type UploadConfig struct {
	MaxPDFSizeMB int64 `mapstructure:"max_pdf_size_mb"`
	MaxXMLSizeMB int64 `mapstructure:"max_xml_size_mb"`
	MaxFiles     int   `mapstructure:"max_files"`
}

// MaxPDFBytes returns the PDF size limit in bytes.
func (u *UploadConfig) MaxPDFBytes() int64 { return u.MaxPDFSizeMB * 1024 * 1024 }

// MaxXMLBytes returns the XML size limit in bytes.
func (u *UploadConfig) MaxXMLBytes() int64 { return u.MaxXMLSizeMB * 1024 * 1024 }

// MatchConfig holds invoice-to-voucher matching settings.
type MatchConfig struct {
	Tolerance decimal.Decimal
}

// MigrationConfig holds settings for the legacy spreadsheet import.
type MigrationConfig struct {
	SystemUserName string `mapstructure:"system_user_name"`
	Timezone       string `mapstructure:"timezone"`
}

// Location returns the import timezone, falling back to UTC when it cannot be loaded.
func (m *MigrationConfig) Location() *time.Location {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoggerConfig converts the log section for logger.Setup.
func (c *Config) LoggerConfig() logger.LogConfig {
	cfg := logger.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	if c.Log.Output != "" {
		cfg.Output = c.Log.Output
	}
	return cfg
}

// Load reads an optional .env file and then configuration from environment
// variables with the ENERTIKA_ prefix.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ENERTIKA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "enertika")
	v.SetDefault("db.password", "enertika_secret")
	v.SetDefault("db.name", "enertika_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	// Upload defaults
	v.SetDefault("upload.max_pdf_size_mb", 20)
	v.SetDefault("upload.max_xml_size_mb", 10)
	v.SetDefault("upload.max_files", 200)

	// Matching and migration defaults
	v.SetDefault("match.tolerance", "0.50")
	v.SetDefault("migration.system_user_name", "sistema")
	v.SetDefault("migration.timezone", "America/Mexico_City")

	envBindings := map[string]string{
		"server.port":                "ENERTIKA_SERVER_PORT",
		"server.read_timeout":        "ENERTIKA_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "ENERTIKA_SERVER_WRITE_TIMEOUT",
		"server.environment":         "ENERTIKA_SERVER_ENVIRONMENT",
		"server.allowed_origins":     "ENERTIKA_SERVER_ALLOWED_ORIGINS",
		"db.host":                    "ENERTIKA_DB_HOST",
		"db.port":                    "ENERTIKA_DB_PORT",
		"db.user":                    "ENERTIKA_DB_USER",
		"db.password":                "ENERTIKA_DB_PASSWORD",
		"db.name":                    "ENERTIKA_DB_NAME",
		"db.sslmode":                 "ENERTIKA_DB_SSLMODE",
		"db.max_open":                "ENERTIKA_DB_MAX_OPEN",
		"db.max_idle":                "ENERTIKA_DB_MAX_IDLE",
		"s3.region":                  "ENERTIKA_S3_REGION",
		"s3.bucket":                  "ENERTIKA_S3_BUCKET",
		"s3.endpoint":                "ENERTIKA_S3_ENDPOINT",
		"s3.access_key":              "ENERTIKA_S3_ACCESS_KEY",
		"s3.secret_key":              "ENERTIKA_S3_SECRET_KEY",
		"s3.presign_expiry":          "ENERTIKA_S3_PRESIGN_EXPIRY",
		"log.level":                  "ENERTIKA_LOG_LEVEL",
		"log.format":                 "ENERTIKA_LOG_FORMAT",
		"log.output":                 "ENERTIKA_LOG_OUTPUT",
		"upload.max_pdf_size_mb":     "ENERTIKA_UPLOAD_MAX_PDF_SIZE_MB",
		"upload.max_xml_size_mb":     "ENERTIKA_UPLOAD_MAX_XML_SIZE_MB",
		"upload.max_files":           "ENERTIKA_UPLOAD_MAX_FILES",
		"match.tolerance":            "ENERTIKA_MATCH_TOLERANCE",
		"migration.system_user_name": "ENERTIKA_MIGRATION_SYSTEM_USER_NAME",
		"migration.timezone":         "ENERTIKA_MIGRATION_TIMEZONE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it unless ENERTIKA_SERVER_PORT is explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("ENERTIKA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:           serverPort,
		ReadTimeout:    v.GetDuration("server.read_timeout"),
		WriteTimeout:   v.GetDuration("server.write_timeout"),
		Environment:    v.GetString("server.environment"),
		AllowedOrigins: splitList(v.GetString("server.allowed_origins")),
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
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}
	cfg.Upload = UploadConfig{
		MaxPDFSizeMB: v.GetInt64("upload.max_pdf_size_mb"),
		MaxXMLSizeMB: v.GetInt64("upload.max_xml_size_mb"),
		MaxFiles:     v.GetInt("upload.max_files"),
	}

	tolerance, err := decimal.NewFromString(v.GetString("match.tolerance"))
	if err != nil {
		return nil, fmt.Errorf("invalid match.tolerance %q: %w", v.GetString("match.tolerance"), err)
	}
	cfg.Match = MatchConfig{Tolerance: tolerance}

	cfg.Migration = MigrationConfig{
		SystemUserName: v.GetString("migration.system_user_name"),
		Timezone:       v.GetString("migration.timezone"),
	}

	return cfg, nil
}

// splitList splits a comma-separated setting, dropping blank items.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
