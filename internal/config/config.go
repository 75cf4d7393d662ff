package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides.
// CLAIMLEDGER_SERVER__PORT=9090 overrides server.port.
const EnvPrefix = "CLAIMLEDGER_"

// Config represents the top-level configuration for the claim ledger.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Storage    StorageConfig    `koanf:"storage"`
	Ledger     LedgerConfig     `koanf:"ledger"`
	Intake     IntakeConfig     `koanf:"intake"`
	Extraction ExtractionConfig `koanf:"extraction"`
	Fraud      FraudConfig      `koanf:"fraud"`
	Notify     NotifyConfig     `koanf:"notify"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
	// MaxConnections caps concurrent connections; 0 means unlimited.
	MaxConnections int      `koanf:"max_connections"`
	CORSOrigins    []string `koanf:"cors_origins"`
}

// Addr is the listen address.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type DatabaseConfig struct {
	Type         string         `koanf:"type"` // memory | postgres | dynamodb
	DSN          string         `koanf:"dsn"`
	MaxOpenConns int            `koanf:"max_open_conns"`
	MaxIdleConns int            `koanf:"max_idle_conns"`
	AutoMigrate  bool           `koanf:"auto_migrate"`
	DynamoDB     DynamoDBConfig `koanf:"dynamodb"`
}

type DynamoDBConfig struct {
	Region      string `koanf:"region"`
	Endpoint    string `koanf:"endpoint"`
	ClaimsTable string `koanf:"claims_table"`
	TopicsTable string `koanf:"topics_table"`
}

type StorageConfig struct {
	Backend     string   `koanf:"backend"` // filesystem | s3
	UploadDir   string   `koanf:"upload_dir"`
	URLPrefix   string   `koanf:"url_prefix"`
	MaxInlineMB int      `koanf:"max_inline_mb"`
	S3          S3Config `koanf:"s3"`
}

type S3Config struct {
	Bucket   string `koanf:"bucket"`
	Region   string `koanf:"region"`
	Endpoint string `koanf:"endpoint"`
	Prefix   string `koanf:"prefix"`
	// PublicURL replaces presigned download URLs when set.
	PublicURL  string        `koanf:"public_url"`
	PresignTTL time.Duration `koanf:"presign_ttl"`
}

type LedgerConfig struct {
	DefaultCustomerID string `koanf:"default_customer_id"`
}

type IntakeConfig struct {
	Workers int `koanf:"workers"`
}

type ExtractionConfig struct {
	Enabled bool `koanf:"enabled"`
	// APIKey falls back to GEMINI_API_KEY.
	APIKey        string        `koanf:"api_key"`
	BaseURL       string        `koanf:"base_url"`
	Model         string        `koanf:"model"`
	VisionModel   string        `koanf:"vision_model"`
	Timeout       time.Duration `koanf:"timeout"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	Burst         int           `koanf:"burst"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
}

type FraudConfig struct {
	// Endpoint of the model server. Empty disables scoring.
	Endpoint    string        `koanf:"endpoint"`
	ColumnsPath string        `koanf:"columns_path"`
	Threshold   float64       `koanf:"threshold"`
	Timeout     time.Duration `koanf:"timeout"`
}

type NotifyConfig struct {
	// SMTPHost empty means decisions are only logged.
	SMTPHost  string        `koanf:"smtp_host"`
	SMTPPort  int           `koanf:"smtp_port"`
	From      string        `koanf:"from"`
	Username  string        `koanf:"username"`
	Password  string        `koanf:"password"`
	Recipient string        `koanf:"recipient"`
	Timeout   time.Duration `koanf:"timeout"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}
	if c.Server.MaxConnections < 0 {
		return fmt.Errorf("server.max_connections must be >= 0")
	}

	switch c.Database.Type {
	case "memory":
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0")
		}
		if c.Database.MaxIdleConns <= 0 {
			return fmt.Errorf("database.max_idle_conns must be > 0")
		}
	case "dynamodb":
		if c.Database.DynamoDB.ClaimsTable == "" || c.Database.DynamoDB.TopicsTable == "" {
			return fmt.Errorf("database.dynamodb.claims_table and topics_table are required for dynamodb")
		}
	default:
		return fmt.Errorf("unsupported database.type %q (must be memory, postgres or dynamodb)", c.Database.Type)
	}

	switch c.Storage.Backend {
	case "filesystem":
		if strings.TrimSpace(c.Storage.UploadDir) == "" {
			return fmt.Errorf("storage.upload_dir is required")
		}
		if !strings.HasPrefix(c.Storage.URLPrefix, "/") {
			return fmt.Errorf("storage.url_prefix %q must start with /", c.Storage.URLPrefix)
		}
	case "s3":
		if strings.TrimSpace(c.Storage.S3.Bucket) == "" {
			return fmt.Errorf("storage.s3.bucket is required for the s3 backend")
		}
		if c.Storage.S3.PresignTTL <= 0 || c.Storage.S3.PresignTTL > 7*24*time.Hour {
			return fmt.Errorf("storage.s3.presign_ttl must be in (0, 168h]")
		}
	default:
		return fmt.Errorf("unsupported storage.backend %q (must be filesystem or s3)", c.Storage.Backend)
	}
	if c.Storage.MaxInlineMB <= 0 {
		return fmt.Errorf("storage.max_inline_mb must be > 0")
	}

	if strings.TrimSpace(c.Ledger.DefaultCustomerID) == "" {
		return fmt.Errorf("ledger.default_customer_id is required")
	}
	if c.Intake.Workers <= 0 {
		return fmt.Errorf("intake.workers must be > 0")
	}

	if c.Extraction.Enabled && c.Extraction.APIKey == "" {
		return fmt.Errorf("extraction.api_key (or GEMINI_API_KEY) is required when extraction is enabled")
	}
	if c.Extraction.Timeout <= 0 {
		return fmt.Errorf("extraction.timeout must be > 0")
	}
	if c.Extraction.RatePerSecond < 0 {
		return fmt.Errorf("extraction.rate_per_second must be >= 0")
	}

	if c.Fraud.Threshold <= 0 || c.Fraud.Threshold > 1 {
		return fmt.Errorf("fraud.threshold must be in (0, 1], got %v", c.Fraud.Threshold)
	}
	if c.Fraud.Timeout <= 0 {
		return fmt.Errorf("fraud.timeout must be > 0")
	}

	if c.Notify.SMTPHost != "" && (c.Notify.SMTPPort <= 0 || c.Notify.SMTPPort > 65535) {
		return fmt.Errorf("invalid notify.smtp_port %d", c.Notify.SMTPPort)
	}
	if c.Notify.Timeout <= 0 {
		return fmt.Errorf("notify.timeout must be > 0")
	}

	return nil
}

// Load loads defaults, then the given file, then environment variables, and
// validates the result.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":                    8000,
		"server.host":                    "0.0.0.0",
		"server.max_body_size_mb":        50,
		"server.mode":                    "release",
		"server.max_connections":         0,
		"server.cors_origins":            []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174", "http://127.0.0.1:5174"},
		"database.type":                  "memory",
		"database.dsn":                   "",
		"database.max_open_conns":        25,
		"database.max_idle_conns":        25,
		"database.auto_migrate":          true,
		"database.dynamodb.claims_table": "claimledger-claims",
		"database.dynamodb.topics_table": "claimledger-topics",
		"storage.backend":                "filesystem",
		"storage.upload_dir":             "./uploads",
		"storage.url_prefix":             "/uploads",
		"storage.max_inline_mb":          5,
		"storage.s3.presign_ttl":         "24h",
		"ledger.default_customer_id":     "anonymous",
		"intake.workers":                 4,
		"extraction.enabled":             true,
		"extraction.base_url":            "",
		"extraction.model":               "",
		"extraction.vision_model":        "",
		"extraction.timeout":             "30s",
		"extraction.rate_per_second":     2.0,
		"extraction.burst":               4,
		"extraction.cache_ttl":           "10m",
		"fraud.endpoint":                 "",
		"fraud.columns_path":             "",
		"fraud.threshold":                0.05,
		"fraud.timeout":                  "10s",
		"notify.smtp_port":               587,
		"notify.timeout":                 "10s",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Extraction.APIKey == "" {
		cfg.Extraction.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	// Without a key the service still runs and files claims with baseline records.
	if cfg.Extraction.Enabled && cfg.Extraction.APIKey == "" {
		cfg.Extraction.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
