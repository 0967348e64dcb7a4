package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Log       Log
	Database  Database
	Inference Inference
	Redis     Redis
	Minio     Minio
	Kafka     Kafka
	Tracing   Tracing
	RateLimit RateLimit
	SeedFile  string
}

type Server struct {
	Port           string
	Mode           string
	AllowedOrigins []string
}

type Log struct {
	Level string
	File  string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string `json:"-"`
	Name     string
	SSLMode  string
}

// Inference configures the captioning backend and the bound applied to each call.
type Inference struct {
	Provider     string
	OllamaURL    string
	OllamaModel  string
	GeminiApiKey string `json:"-"`
	GeminiModel  string
	Timeout      time.Duration
	MaxAttempts  int
	RetryDelay   time.Duration
}

type Redis struct {
	Addr     string
	Password string `json:"-"`
	DB       int
	TTL      time.Duration
}

type Minio struct {
	Endpoint  string
	AccessKey string
	SecretKey string `json:"-"`
	Bucket    string
	UseSSL    bool
}

type Kafka struct {
	Brokers      []string
	ResultsTopic string
}

type Tracing struct {
	Enabled           bool
	CollectorEndpoint string
}

type RateLimit struct {
	MaxRequests int
	Window      time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")

	v.SetDefault("INFERENCE_PROVIDER", "ollama")
	v.SetDefault("OLLAMA_URL", "http://localhost:11434/api/generate")
	v.SetDefault("OLLAMA_MODEL", "llava:7b")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("INFERENCE_TIMEOUT", "30s")
	v.SetDefault("INFERENCE_MAX_ATTEMPTS", 1)
	v.SetDefault("INFERENCE_RETRY_DELAY", "500ms")

	v.SetDefault("QUESTION_CACHE_TTL", "5m")
	v.SetDefault("MINIO_BUCKET", "drawings")
	v.SetDefault("KAFKA_RESULTS_TOPIC", "result.graded")
	v.SetDefault("TRACING_COLLECTOR_ENDPOINT", "http://localhost:14268/api/traces")

	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 30)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.Mode = v.GetString("GIN_MODE")
	config.Server.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	config.Log.Level = v.GetString("LOG_LEVEL")
	config.Log.File = v.GetString("LOG_FILE")

	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")

	config.Inference.Provider = strings.ToLower(v.GetString("INFERENCE_PROVIDER"))
	config.Inference.OllamaURL = v.GetString("OLLAMA_URL")
	config.Inference.OllamaModel = v.GetString("OLLAMA_MODEL")
	config.Inference.GeminiApiKey = v.GetString("GEMINI_API_KEY")
	config.Inference.GeminiModel = v.GetString("GEMINI_MODEL")
	config.Inference.Timeout = v.GetDuration("INFERENCE_TIMEOUT")
	config.Inference.MaxAttempts = v.GetInt("INFERENCE_MAX_ATTEMPTS")
	config.Inference.RetryDelay = v.GetDuration("INFERENCE_RETRY_DELAY")
	if config.Inference.MaxAttempts < 1 {
		config.Inference.MaxAttempts = 1
	}

	config.Redis.Addr = v.GetString("REDIS_ADDR")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")
	config.Redis.TTL = v.GetDuration("QUESTION_CACHE_TTL")

	config.Minio.Endpoint = v.GetString("MINIO_ENDPOINT")
	config.Minio.AccessKey = v.GetString("MINIO_ACCESS_KEY")
	config.Minio.SecretKey = v.GetString("MINIO_SECRET_KEY")
	config.Minio.Bucket = v.GetString("MINIO_BUCKET")
	config.Minio.UseSSL = v.GetBool("MINIO_USE_SSL")

	config.Kafka.Brokers = splitList(v.GetString("KAFKA_BROKERS"))
	config.Kafka.ResultsTopic = v.GetString("KAFKA_RESULTS_TOPIC")

	config.Tracing.Enabled = v.GetBool("TRACING_ENABLED")
	config.Tracing.CollectorEndpoint = v.GetString("TRACING_COLLECTOR_ENDPOINT")

	config.RateLimit.MaxRequests = v.GetInt("RATE_LIMIT_MAX_REQUESTS")
	config.RateLimit.Window = v.GetDuration("RATE_LIMIT_WINDOW")

	config.SeedFile = v.GetString("SEED_FILE")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}

// splitList turns a comma separated env value into a trimmed slice without empty items.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
