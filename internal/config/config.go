package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Revasall/TO-DO-List-project/internal/models"
)

type Config struct {
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	SERVER_PORT int
	LOG_LEVEL   string

	JWT_SECRET     string
	REFRESH_SECRET string

	ACCESS_TOKEN_TTL_MIN   int
	REFRESH_TOKEN_TTL_DAYS int

	KAFKA_ADDRESS string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:     EnvDefault("DB_HOST", "localhost"),
		DB_PORT:     EnvDefault("DB_PORT", "5432"),
		DB_USER:     EnvDefault("DB_USER", "postgres"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_NAME:     EnvDefault("DB_NAME", "todo_list"),

		SERVER_PORT: EnvIntDefault("SERVER_PORT", 8080),
		LOG_LEVEL:   EnvDefault("LOG_LEVEL", "info"),

		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),

		ACCESS_TOKEN_TTL_MIN:   EnvIntDefault("ACCESS_TOKEN_TTL_MIN", 30),
		REFRESH_TOKEN_TTL_DAYS: EnvIntDefault("REFRESH_TOKEN_TTL_DAYS", 30),

		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
	}

	MustNonEmpty(config.JWT_SECRET, "JWT_SECRET")

	// A dedicated refresh secret is optional; without one both token
	// kinds are signed with the same key.
	if config.REFRESH_SECRET == "" {
		config.REFRESH_SECRET = config.JWT_SECRET
	}

	return config, nil
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.ACCESS_TOKEN_TTL_MIN) * time.Minute
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.REFRESH_TOKEN_TTL_DAYS) * 24 * time.Hour
}

func InitDB(c *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return nil, fmt.Errorf("не удалось выполнить миграцию: %w", err)
	}
	return db, nil
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
