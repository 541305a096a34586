package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string   `yaml:"port" env:"PORT"`
		Mode           string   `yaml:"mode" env:"SERVER_MODE"`
		StoragePath    string   `yaml:"storage_path" env:"UPLOAD_DIR"`
		MaxUploadMB    int64    `yaml:"max_upload_mb" env:"MAX_UPLOAD_MB"`
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret" env:"JWT_SECRET"`
		Expiration string `yaml:"expiration" env:"JWT_EXPIRE"`
		Issuer     string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		BcryptCost    int    `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
		AdminEmail    string `yaml:"admin_email" env:"ADMIN_EMAIL"`
		AdminPassword string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
	} `yaml:"auth"`

	Drive struct {
		CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_CREDENTIALS_FILE"`
		CredentialsJSON string `yaml:"credentials_json" env:"GOOGLE_CREDENTIALS_JSON"`
		FolderID        string `yaml:"folder_id" env:"GOOGLE_DRIVE_FOLDER_ID"`
	} `yaml:"drive"`

	Geolocation struct {
		Endpoint string `yaml:"endpoint" env:"GEOLOCATION_ENDPOINT"`
		Timeout  string `yaml:"timeout" env:"GEOLOCATION_TIMEOUT"`
	} `yaml:"geolocation"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables.
// Values from the process environment win over .env, which wins over the YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration. Secrets have no defaults.
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"
	config.Server.MaxUploadMB = 10
	config.Server.AllowedOrigins = []string{"http://localhost:3000"}

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.DBName = "coaching_center"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.Expiration = "24h"
	config.JWT.Issuer = "coaching-center"

	config.Auth.BcryptCost = 10

	config.Geolocation.Endpoint = "http://ip-api.com/json/"
	config.Geolocation.Timeout = "5s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	expiry, err := time.ParseDuration(config.JWT.Expiration)
	if err != nil {
		return fmt.Errorf("invalid JWT expiration format: %w", err)
	}
	if expiry <= 0 {
		return fmt.Errorf("JWT expiration must be positive")
	}

	if config.Auth.BcryptCost < 4 || config.Auth.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31")
	}

	if (config.Auth.AdminEmail == "") != (config.Auth.AdminPassword == "") {
		return fmt.Errorf("admin email and admin password must be configured together")
	}

	if len(config.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed CORS origin is required")
	}

	if config.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}

	if _, err := time.ParseDuration(config.Geolocation.Timeout); err != nil {
		return fmt.Errorf("invalid geolocation timeout format: %w", err)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// TokenLifetime returns the parsed JWT lifetime. The value is validated at load time.
func (c *Config) TokenLifetime() time.Duration {
	d, _ := time.ParseDuration(c.JWT.Expiration)
	return d
}

// DriveConfigured reports whether Google Drive credentials were supplied.
func (c *Config) DriveConfigured() bool {
	return c.Drive.CredentialsFile != "" || c.Drive.CredentialsJSON != ""
}

// AdminSeedConfigured reports whether a default administrator should be ensured at startup.
func (c *Config) AdminSeedConfigured() bool {
	return c.Auth.AdminEmail != "" && c.Auth.AdminPassword != ""
}
