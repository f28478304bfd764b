// Package config loads the process configuration: defaults, then an
// optional YAML file, then PRESSROOM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "PRESSROOM_CONFIG"

var defaultConfigPaths = []string{
	"pressroom.yaml",
	"pressroom.yml",
	"/etc/pressroom/config.yaml",
}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	S3       S3Config       `koanf:"s3"`
	Content  ContentConfig  `koanf:"content"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type AuthConfig struct {
	// JWTSecret signs session tokens; required, no default.
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
	// BootstrapAdminUser/Password seed the first admin when the admins
	// table is empty, since provisioning is otherwise admin-only.
	BootstrapAdminUser     string `koanf:"bootstrap_admin_user"`
	BootstrapAdminPassword string `koanf:"bootstrap_admin_password"`
}

type S3Config struct {
	Bucket    string        `koanf:"bucket"`
	Region    string        `koanf:"region"`
	Endpoint  string        `koanf:"endpoint"`
	AccessKey string        `koanf:"access_key"`
	SecretKey string        `koanf:"secret_key"`
	KeyPrefix string        `koanf:"key_prefix"`
	URLTTL    time.Duration `koanf:"url_ttl"`
}

// Enabled reports whether upload-URL issuance is configured at all.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

type ContentConfig struct {
	// DefaultAuthorImage is used when a post is created without one.
	DefaultAuthorImage string `koanf:"default_author_image"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{Path: "pressroom.db"},
		Auth:     AuthConfig{TokenTTL: 2 * time.Hour},
		S3: S3Config{
			Region:    "eu-north-1",
			KeyPrefix: "uploads",
			URLTTL:    5 * time.Minute,
		},
		Content: ContentConfig{
			DefaultAuthorImage: "https://pressroom-content.s3.eu-north-1.amazonaws.com/author.png",
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds the configuration in three layers: struct defaults, an
// optional YAML file, and environment variables (highest priority,
// PRESSROOM_AUTH_JWT_SECRET -> auth.jwt_secret).
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("PRESSROOM_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret is required")
	}
	if c.Database.Path == "" {
		return errors.New("config: database.path is required")
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransform maps PRESSROOM_AUTH_TOKEN_TTL to auth.token_ttl. The
// first underscore separates the section; the rest stays joined.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "PRESSROOM_"))
	return strings.Replace(s, "_", ".", 1)
}
