package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Worker    WorkerConfig
	Scoring   ScoringConfig
	Retrieval RetrievalConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey  string
	Timeout time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency      int
	RetryMaxAttempts int
}

// ScoringConfig carries the composite-score policy. The weights and
// thresholds are deliberate policy knobs, not hardcoded truths.
type ScoringConfig struct {
	SkillsWeight        float64
	ExperienceWeight    float64
	EducationWeight     float64
	StrongFitThreshold  int
	PartialFitThreshold int
}

type RetrievalConfig struct {
	TopK         int
	ChunkSize    int
	ChunkOverlap int
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
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ats_engine"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "ats_resume_chunks"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", "30s"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:      getEnvAsInt("WORKER_CONCURRENCY", 3),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 2),
		},
		Scoring: ScoringConfig{
			SkillsWeight:        getEnvAsFloat("SKILLS_WEIGHT", 0.5),
			ExperienceWeight:    getEnvAsFloat("EXPERIENCE_WEIGHT", 0.3),
			EducationWeight:     getEnvAsFloat("EDUCATION_WEIGHT", 0.2),
			StrongFitThreshold:  getEnvAsInt("STRONG_FIT_THRESHOLD", 80),
			PartialFitThreshold: getEnvAsInt("PARTIAL_FIT_THRESHOLD", 55),
		},
		Retrieval: RetrievalConfig{
			TopK:         getEnvAsInt("RETRIEVAL_TOP_K", 5),
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 100),
		},
	}
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

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
