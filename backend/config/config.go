package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPath      string
	JWTSecret   string
	ServerPort  string
	LogMode     string
	Timezone    string
	CORSOrigins string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "learning_tracker")
	v.SetDefault("DB_PATH", "data/learntrack.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("TIMEZONE", "")
	v.SetDefault("CORS_ORIGINS", "*")

	cfg := &Config{
		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		DBName:      v.GetString("DB_NAME"),
		DBPath:      v.GetString("DB_PATH"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		ServerPort:  v.GetString("SERVER_PORT"),
		LogMode:     v.GetString("LOG_MODE"),
		Timezone:    v.GetString("TIMEZONE"),
		CORSOrigins: v.GetString("CORS_ORIGINS"),
	}

	switch cfg.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// AuthEnabled reports whether API requests must carry a signed token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Location is the timezone used to split activity into calendar days.
// An empty Timezone means the process's local time.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
