package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// StoreBackend selects the event log backing: "dynamo" or "memory".
	StoreBackend string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	ArchiveBucket string // empty disables S3 archival on prune
	SNSTopicARN   string // empty disables the event mirror

	JWTPublicKeyPath  string
	JWTPrivateKeyPath string
	JWTExpiry         time.Duration

	ReminderLookahead time.Duration // deadline window for reminder eligibility
	FreshnessWindow   time.Duration // stockist request-feed trailing window
	RetentionAge      time.Duration // prune notifications older than this

	AllowedOrigins []string
}

// DynamoTables holds the DynamoDB table name for each stored collection.
type DynamoTables struct {
	NotificationLog string
	Requests        string
	Orders          string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		StoreBackend: getEnv("STORE_BACKEND", "dynamo"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			NotificationLog: getEnv("DYNAMO_TABLE_NOTIFICATION_LOG", "notification_log"),
			Requests:        getEnv("DYNAMO_TABLE_REQUESTS", "requests"),
			Orders:          getEnv("DYNAMO_TABLE_ORDERS", "orders"),
		},

		ArchiveBucket: getEnv("ARCHIVE_BUCKET", ""),
		SNSTopicARN:   getEnv("SNS_TOPIC_ARN", ""),

		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,

		ReminderLookahead: time.Duration(getEnvInt("REMINDER_LOOKAHEAD_DAYS", 7)) * 24 * time.Hour,
		FreshnessWindow:   time.Duration(getEnvInt("FRESHNESS_WINDOW_DAYS", 7)) * 24 * time.Hour,
		RetentionAge:      time.Duration(getEnvInt("RETENTION_DAYS", 90)) * 24 * time.Hour,

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
