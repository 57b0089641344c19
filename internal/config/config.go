package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingAccessSecret = errors.New("ACCESS_SECRET is not set")

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type AuthConfig struct {
	AccessSecret       []byte
	TokenTTL           time.Duration
	RateLimitPerMinute int
}

type LogConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// InitViper reads app.yaml from the working directory on top of defaults.
func InitViper() error {
	viper.SetDefault("app.port", "8000")
	viper.SetDefault("app.mode", "release")
	viper.SetDefault("client.origin", "http://localhost:3000")
	viper.SetDefault("auth.token-ttl", "168h")
	viper.SetDefault("auth.rate-limit-per-minute", 30)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("cache.ttl", "1h")

	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}

func DBConfigFromEnv() DBConfig {
	return DBConfig{
		Username: os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		DBName:   os.Getenv("POSTGRES_DATABASE"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
}

func AuthConfigFromEnv() (AuthConfig, error) {
	secret := os.Getenv("ACCESS_SECRET")
	if secret == "" {
		return AuthConfig{}, ErrMissingAccessSecret
	}

	return AuthConfig{
		AccessSecret:       []byte(secret),
		TokenTTL:           viper.GetDuration("auth.token-ttl"),
		RateLimitPerMinute: viper.GetInt("auth.rate-limit-per-minute"),
	}, nil
}

func LogConfigFromViper() LogConfig {
	return LogConfig{
		Level:      viper.GetString("log.level"),
		Path:       viper.GetString("log.path"),
		MaxSizeMB:  viper.GetInt("log.max-size-mb"),
		MaxBackups: viper.GetInt("log.max-backups"),
		MaxAgeDays: viper.GetInt("log.max-age-days"),
	}
}
