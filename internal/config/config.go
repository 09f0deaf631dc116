package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	// MaxResumesPerRequest sizes the request body limit.
	MaxResumesPerRequest = 20
	// MaxFileSizeLimit keeps BodyLimit within a 32-bit int.
	MaxFileSizeLimit = 100 << 20
	formOverhead     = 1 << 20
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	LLM      LLMConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type LLMConfig struct {
	Provider        string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	GeminiAPIKey    string
	GeminiModel     string
	StripCodeFences bool
}

type StorageConfig struct {
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_screener"),
		},
		LLM: LLMConfig{
			Provider:        strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4"),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			StripCodeFences: getEnvAsBool("MODEL_STRIP_CODE_FENCES", false),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

// Validate reports configuration the process cannot start without.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required")
		}
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %q", c.LLM.Provider)
	}

	if c.Storage.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize)
	}
	if c.Storage.MaxFileSize > MaxFileSizeLimit {
		return fmt.Errorf("MAX_FILE_SIZE must be at most %d bytes, got %d", MaxFileSizeLimit, c.Storage.MaxFileSize)
	}

	return nil
}

// ModelName returns the model id of the configured provider.
func (c *Config) ModelName() string {
	if c.LLM.Provider == ProviderGemini {
		return c.LLM.GeminiModel
	}
	return c.LLM.OpenAIModel
}

// BodyLimit is the largest accepted request body: MaxResumesPerRequest files
// of MAX_FILE_SIZE plus room for the job description. Call after Validate.
func (c *Config) BodyLimit() int {
	return int(c.Storage.MaxFileSize)*MaxResumesPerRequest + formOverhead
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
