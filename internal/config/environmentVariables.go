package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, the rate limiter counts in memory
	TRACE_ID_KEY                    = "traceId"
	ServiceVersion                  = "1.0.0"
	Environment                     = "development"
	EnvPrefix                       = "CLAIMAPI"

	//rate limiting - fixed window per client
	RateLimitWindow      = 60 * time.Second
	RateLimitMaxRequests = 5
	RateLimitFailOpen    = false
	RateLimitKeyPrefix   = "ratelimit:"
	CounterSweepInterval = RateLimitWindow

	//request limits
	MaxBatchSize      = 3
	MaxFileSize       = 5 << 20 //5mb
	MultipartOverhead = 1 << 20 //boundaries and part headers on top of the files

	//cpu pool
	MaxWorkerCount    int64 = 4
	MinWorkerCount    int64 = 1
	IdleWorkerTimeout       = 1 * time.Minute
	CPUQueueLimit           = 64

	//pipeline
	DocumentTimeout    = 45 * time.Second
	ClaimDeadline      = 0 * time.Second //0 disables the whole-claim deadline
	PageExtractTimeout = 10 * time.Second
	MinTextLength      = 50 //below this the text path counts as a scan
	MinClassifyLength  = 10
	LowConfidence      = 0.5
	VisionMaxPages     = 5

	//per-label truncation of the text sent to the models
	ClassificationTextLimit = 10000
	BillTextLimit           = 8000
	DischargeTextLimit      = 15000
	IDCardTextLimit         = 5000

	//validation
	NameSimilarityThreshold = 0.85
	FutureBillTolerance     = 24 * time.Hour
	Adjudicator             = "ClaimAPI Adjudication Engine"

	//serverTimeouts
	ReadTimeout            = 30 * time.Second
	WriteTimeout           = 120 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"
	APIPrefix        = "/api/v1"

	//llm
	LLMProviderGemini         = "gemini"
	LLMProviderOpenAI         = "openai"
	GeminiModelName           = "gemini-2.5-flash"
	OpenAIModelName           = "gpt-4o-mini"
	ModelTemperature  float32 = 0.0
	LLMRequestsPerSec         = 5
	LLMBurst                  = 5
	LLMCallTimeout            = 30 * time.Second

	//outbound connection pool
	MaxIdleConns        = 20
	MaxIdleConnsPerHost = 10
	IdleConnTimeout     = 90 * time.Second

	//backup
	BackupBackendNone  = "none"
	BackupBackendS3    = "s3"
	BackupBackendMinio = "minio"
	BackupKeyPrefix    = "surecheck/uploads"
	BackupTimeout      = 30 * time.Second
	AWSRegion          = "us-east-1"
	MinioEndpoint      = "localhost:9000"
	BackupBucket       = "claim-documents"

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisRateLimitStore = 0
)
