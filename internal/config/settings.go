package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the runtime view of the configuration. Every field has a default in
// environmentVariables.go and can be overridden with a CLAIMAPI_ prefixed env var,
// a .env file in the working directory or a command line flag.
type Settings struct {
	IsProd      bool
	Environment string
	ListenAddr  string
	AuthToken   string

	RedisAddr     string
	RedisPassword string
	RedisFallback bool

	RateLimitWindow   time.Duration
	RateLimitMax      int64
	RateLimitFailOpen bool

	MaxBatchSize int
	MaxFileSize  int64

	CPUWorkers      int64
	MinCPUWorkers   int64
	CPUQueueLimit   int
	DocumentTimeout time.Duration
	ClaimDeadline   time.Duration

	LLMProviders    []string
	GeminiAPIKey    string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	LLMRequestsRate float64
	LLMBurst        int

	BackupBackend   string
	BackupBucket    string
	AWSRegion       string
	AWSEndpointURL  string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioUseSSL     bool
	NameSimilarity  float64
	MinTextLength   int
	LowConfidence   float64
	ValidationClock func() time.Time
}

// SetDefaults registers every key with its default so env overrides resolve.
func SetDefaults() {
	viper.SetDefault("is_prod", IS_PROD)
	viper.SetDefault("environment", Environment)
	viper.SetDefault("listen_addr", ServerListenAddr)
	viper.SetDefault("auth_token", "")

	viper.SetDefault("redis_addr", RedisAddr)
	viper.SetDefault("redis_password", "")
	viper.SetDefault("redis_fallback", FALLBACK_REDIS_TO_INTERNALSTORE)

	viper.SetDefault("rate_limit_window", RateLimitWindow)
	viper.SetDefault("rate_limit_max", RateLimitMaxRequests)
	viper.SetDefault("rate_limit_fail_open", RateLimitFailOpen)

	viper.SetDefault("max_batch_size", MaxBatchSize)
	viper.SetDefault("max_file_size", MaxFileSize)

	viper.SetDefault("cpu_workers", MaxWorkerCount)
	viper.SetDefault("min_cpu_workers", MinWorkerCount)
	viper.SetDefault("cpu_queue_limit", CPUQueueLimit)
	viper.SetDefault("document_timeout", DocumentTimeout)
	viper.SetDefault("claim_deadline", ClaimDeadline)

	viper.SetDefault("llm_providers", LLMProviderGemini+","+LLMProviderOpenAI)
	viper.SetDefault("gemini_api_key", "")
	viper.SetDefault("gemini_model", GeminiModelName)
	viper.SetDefault("openai_api_key", "")
	viper.SetDefault("openai_model", OpenAIModelName)
	viper.SetDefault("openai_base_url", "")
	viper.SetDefault("llm_requests_per_sec", LLMRequestsPerSec)
	viper.SetDefault("llm_burst", LLMBurst)

	viper.SetDefault("backup_backend", BackupBackendNone)
	viper.SetDefault("backup_bucket", BackupBucket)
	viper.SetDefault("aws_region", AWSRegion)
	viper.SetDefault("aws_endpoint_url", "")
	viper.SetDefault("minio_endpoint", MinioEndpoint)
	viper.SetDefault("minio_access_key", "")
	viper.SetDefault("minio_secret_key", "")
	viper.SetDefault("minio_use_ssl", false)

	viper.SetDefault("name_similarity_threshold", NameSimilarityThreshold)
	viper.SetDefault("min_text_length", MinTextLength)
	viper.SetDefault("low_confidence", LowConfidence)
}

// InitViper wires env lookups and the optional .env file.
func InitViper() {
	SetDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() //the file is optional
}

func Load() Settings {
	return Settings{
		IsProd:      viper.GetBool("is_prod"),
		Environment: viper.GetString("environment"),
		ListenAddr:  viper.GetString("listen_addr"),
		AuthToken:   viper.GetString("auth_token"),

		RedisAddr:     viper.GetString("redis_addr"),
		RedisPassword: viper.GetString("redis_password"),
		RedisFallback: viper.GetBool("redis_fallback"),

		RateLimitWindow:   viper.GetDuration("rate_limit_window"),
		RateLimitMax:      viper.GetInt64("rate_limit_max"),
		RateLimitFailOpen: viper.GetBool("rate_limit_fail_open"),

		MaxBatchSize: viper.GetInt("max_batch_size"),
		MaxFileSize:  viper.GetInt64("max_file_size"),

		CPUWorkers:      viper.GetInt64("cpu_workers"),
		MinCPUWorkers:   viper.GetInt64("min_cpu_workers"),
		CPUQueueLimit:   viper.GetInt("cpu_queue_limit"),
		DocumentTimeout: viper.GetDuration("document_timeout"),
		ClaimDeadline:   viper.GetDuration("claim_deadline"),

		LLMProviders:    splitList(viper.GetString("llm_providers")),
		GeminiAPIKey:    viper.GetString("gemini_api_key"),
		GeminiModel:     viper.GetString("gemini_model"),
		OpenAIAPIKey:    viper.GetString("openai_api_key"),
		OpenAIModel:     viper.GetString("openai_model"),
		OpenAIBaseURL:   viper.GetString("openai_base_url"),
		LLMRequestsRate: viper.GetFloat64("llm_requests_per_sec"),
		LLMBurst:        viper.GetInt("llm_burst"),

		BackupBackend:  strings.ToLower(viper.GetString("backup_backend")),
		BackupBucket:   viper.GetString("backup_bucket"),
		AWSRegion:      viper.GetString("aws_region"),
		AWSEndpointURL: viper.GetString("aws_endpoint_url"),
		MinioEndpoint:  viper.GetString("minio_endpoint"),
		MinioAccessKey: viper.GetString("minio_access_key"),
		MinioSecretKey: viper.GetString("minio_secret_key"),
		MinioUseSSL:    viper.GetBool("minio_use_ssl"),

		NameSimilarity:  viper.GetFloat64("name_similarity_threshold"),
		MinTextLength:   viper.GetInt("min_text_length"),
		LowConfidence:   viper.GetFloat64("low_confidence"),
		ValidationClock: time.Now,
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(strings.ToLower(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
