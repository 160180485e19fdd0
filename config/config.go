package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Redis      RedisConfig      `yaml:"redis"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	ParcelDesk ParcelDeskConfig `yaml:"parceldesk"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type KafkaConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	StatusChangedTopicName string `yaml:"status_changed_topic_name"`
}

type RedisConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type ParcelDeskConfig struct {
	HTTPAddr           string `yaml:"http_addr"`
	GRPCAddr           string `yaml:"grpc_addr"`
	KafkaConsumerGroup string `yaml:"kafka_consumer_group"`
	SnapshotTTLSeconds int    `yaml:"snapshot_ttl_seconds"`

	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`

	UploadDir      string `yaml:"upload_dir"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	MaxImportRows  int    `yaml:"max_import_rows"`

	LoginRateLimitPerMinute  int `yaml:"login_rate_limit_per_minute"`
	LookupRateLimitPerMinute int `yaml:"lookup_rate_limit_per_minute"`

	AllowedOrigins []string `yaml:"allowed_origins"`

	// Seed admin, created on startup when no admin with this e-mail exists.
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
	AdminName     string `yaml:"admin_name"`

	NotifierHTTPAddr string `yaml:"notifier_http_addr"`
	SnowflakeNode    int64  `yaml:"snowflake_node"`
}

// MaxImportRowsLimit keeps one contacts INSERT under Postgres' 65535 bind
// parameters (three per row).
const MaxImportRowsLimit = 65535 / 3

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	config.Defaults()
	return &config, nil
}

// Defaults fills zero values with the settings used in local docker compose.
func (c *Config) Defaults() {
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Kafka.StatusChangedTopicName == "" {
		c.Kafka.StatusChangedTopicName = "tracking.status_changed"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}

	p := &c.ParcelDesk
	if p.HTTPAddr == "" {
		p.HTTPAddr = ":8080"
	}
	if p.GRPCAddr == "" {
		p.GRPCAddr = ":50051"
	}
	if p.KafkaConsumerGroup == "" {
		p.KafkaConsumerGroup = "track-notifier"
	}
	if p.SnapshotTTLSeconds <= 0 {
		p.SnapshotTTLSeconds = 600
	}
	if p.TokenTTLMinutes <= 0 {
		p.TokenTTLMinutes = 12 * 60
	}
	if p.UploadDir == "" {
		p.UploadDir = os.TempDir()
	}
	if p.MaxUploadBytes <= 0 {
		p.MaxUploadBytes = 10 << 20
	}
	if p.MaxImportRows <= 0 {
		p.MaxImportRows = 10_000
	}
	if p.MaxImportRows > MaxImportRowsLimit {
		p.MaxImportRows = MaxImportRowsLimit
	}
	if p.LoginRateLimitPerMinute <= 0 {
		p.LoginRateLimitPerMinute = 10
	}
	if p.LookupRateLimitPerMinute <= 0 {
		p.LookupRateLimitPerMinute = 60
	}
	if p.NotifierHTTPAddr == "" {
		p.NotifierHTTPAddr = ":8082"
	}
	if p.SnowflakeNode <= 0 {
		p.SnowflakeNode = 1
	}
}

func (c *Config) PostgresConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.Username, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.DBName, c.Database.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c *Config) KafkaBrokers() []string {
	return []string{fmt.Sprintf("%s:%d", c.Kafka.Host, c.Kafka.Port)}
}
