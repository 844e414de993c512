package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Embedding EmbeddingConfig
	Matching  MatchingConfig
	Ranking   RankingConfig
	Cache     CacheConfig
	Chat      ChatConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	MigrationsDir  string
	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
}

type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

type EmbeddingConfig struct {
	GeminiAPIKey string
	Model        string
}

type MatchingConfig struct {
	SimilarityThreshold float64
	RequiredWeight      float64
	PreferredWeight     float64
}

type RankingConfig struct {
	Limit int
}

type CacheConfig struct {
	Capacity int
	TTL      time.Duration
}

type ChatConfig struct {
	GeminiAPIKey     string
	GeminiModel      string
	OpenAIAPIKey     string
	OpenAIModel      string
	WatsonxURL       string
	WatsonxToken     string
	WatsonxProjectID string
	WatsonxModel     string

	CallTimeout       time.Duration
	HistoryLimit      int
	FailureThreshold  int
	Cooldown          time.Duration
	RetrySameProvider bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optString := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		v := opt(key)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return n
	}
	optFloat := func(key string, def float64) float64 {
		v := opt(key)
		if v == "" {
			return def
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return def
		}
		return f
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		v := opt(key)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return def
		}
		return d
	}
	optBool := func(key string, def bool) bool {
		v := opt(key)
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         opt("DB_PORT"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE"),
		MigrationsDir:  optString("DB_MIGRATIONS_DIR", "migrations"),
		ConnectTimeout: optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:   int32(optInt("DB_POOL_MIN_CONNS", 0)),
	}

	cfg.Redis = RedisConfig{
		Addr:     opt("REDIS_ADDR"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDuration("REDIS_EMBEDDING_TTL", 24*time.Hour),
	}

	cfg.Embedding = EmbeddingConfig{
		GeminiAPIKey: opt("GEMINI_API_KEY"),
		Model:        opt("EMBEDDING_MODEL"),
	}

	cfg.Matching = MatchingConfig{
		SimilarityThreshold: optFloat("MATCH_SIMILARITY_THRESHOLD", 0.65),
		RequiredWeight:      optFloat("MATCH_REQUIRED_WEIGHT", 0.7),
		PreferredWeight:     optFloat("MATCH_PREFERRED_WEIGHT", 0.3),
	}

	cfg.Ranking = RankingConfig{
		Limit: optInt("RANKING_LIMIT", 10),
	}

	cfg.Cache = CacheConfig{
		Capacity: optInt("REC_CACHE_CAPACITY", 1024),
		TTL:      optDuration("REC_CACHE_TTL", 5*time.Minute),
	}

	cfg.Chat = ChatConfig{
		GeminiAPIKey:      opt("GEMINI_API_KEY"),
		GeminiModel:       opt("CHAT_GEMINI_MODEL"),
		OpenAIAPIKey:      opt("OPENAI_API_KEY"),
		OpenAIModel:       opt("CHAT_OPENAI_MODEL"),
		WatsonxURL:        opt("WATSONX_URL"),
		WatsonxToken:      opt("WATSONX_TOKEN"),
		WatsonxProjectID:  opt("WATSONX_PROJECT_ID"),
		WatsonxModel:      opt("WATSONX_MODEL"),
		CallTimeout:       optDuration("CHAT_CALL_TIMEOUT", 10*time.Second),
		HistoryLimit:      optInt("CHAT_HISTORY_LIMIT", 10),
		FailureThreshold:  optInt("CHAT_FAILURE_THRESHOLD", 3),
		Cooldown:          optDuration("CHAT_BREAKER_COOLDOWN", 60*time.Second),
		RetrySameProvider: optBool("CHAT_RETRY_SAME_PROVIDER", false),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}
