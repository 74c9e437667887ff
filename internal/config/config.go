package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Server    ServerConfig
	Sanctions SanctionsConfig
	Output    OutputConfig
	RulesFile string
	LogLevel  string
}

type DBConfig struct {
	DBPath string // Путь к файлу SQLite
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type KafkaConfig struct {
	Brokers         []string
	ScreeningTopic  string
	RequestTopic    string
	ConsumerGroupID string
}

type ServerConfig struct {
	HTTPPort int
	GRPCPort int
}

// SanctionsConfig описывает внешние источники санкционных списков
type SanctionsConfig struct {
	URL            string
	File           string
	RefreshMinutes int
}

type OutputConfig struct {
	ReportsDir string
	ExportDir  string
}

func Load() *Config {
	// Загружаем .env файл, если он существует
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		DB: DBConfig{
			DBPath: getEnv("DB_PATH", "./data/kyc_screening.db"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Brokers:         getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
			ScreeningTopic:  getEnv("KAFKA_SCREENING_TOPIC", "kyc.screenings.completed"),
			RequestTopic:    getEnv("KAFKA_REQUEST_TOPIC", "kyc.screenings.requested"),
			ConsumerGroupID: getEnv("KAFKA_CONSUMER_GROUP", "kyc-screening-group"),
		},
		Server: ServerConfig{
			HTTPPort: getEnvAsInt("HTTP_PORT", 8080),
			GRPCPort: getEnvAsInt("GRPC_PORT", 50051),
		},
		Sanctions: SanctionsConfig{
			URL:            getEnv("SANCTIONS_URL", ""),
			File:           getEnv("SANCTIONS_FILE", ""),
			RefreshMinutes: getEnvAsInt("SANCTIONS_REFRESH_MINUTES", 0),
		},
		Output: OutputConfig{
			ReportsDir: getEnv("REPORTS_DIR", "./reports"),
			ExportDir:  getEnv("EXPORT_DIR", "./exports"),
		},
		RulesFile: getEnv("RULES_FILE", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList разбирает список через запятую (например, KAFKA_BROKERS=a:9092,b:9092)
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
