package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
// Priority: ENV > YAML file > defaults.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Ollama    OllamaConfig    `yaml:"ollama"`
	Generator GeneratorConfig `yaml:"generator"`
	Auth      AuthConfig      `yaml:"auth"`
	CORS      CORSConfig      `yaml:"cors"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"          env:"SERVER_HOST"          env-default:"0.0.0.0"`
	Port         int           `yaml:"port"          env:"SERVER_PORT"          env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"SERVER_READ_TIMEOUT"  env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"180s"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"     env:"DB_HOST"     env-default:"localhost"`
	Port     string `yaml:"port"     env:"DB_PORT"     env-default:"5432"`
	User     string `yaml:"user"     env:"DB_USER"     env-default:"voca_user"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-default:"voca_password"`
	Name     string `yaml:"name"     env:"DB_NAME"     env-default:"voca_gen"`
	SSLMode  string `yaml:"sslmode"  env:"DB_SSLMODE"  env-default:"disable"`
}

type OllamaConfig struct {
	URL     string        `yaml:"url"     env:"OLLAMA_URL"     env-default:"http://localhost:11434"`
	Timeout time.Duration `yaml:"timeout" env:"OLLAMA_TIMEOUT" env-default:"120s"`
}

// GeneratorConfig selects the text-generation backend and the commands
// document holding the prompt templates.
type GeneratorConfig struct {
	Backend        string `yaml:"backend"         env:"GENERATOR_BACKEND"  env-default:"ollama"`
	AnthropicModel string `yaml:"anthropic_model" env:"ANTHROPIC_MODEL"    env-default:"claude-opus-4-5-20251101"`
	CommandsPath   string `yaml:"commands_path"   env:"COMMANDS_PATH"      env-default:"commands.yaml"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-default:"voca-gen-staging-signing-key-2026"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"72h"`
}

type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// Load reads configuration from CONFIG_PATH (fallback "./config.yaml")
// plus environment variables. A missing file is not an error unless the
// path was set explicitly.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}
