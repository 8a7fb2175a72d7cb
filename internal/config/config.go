package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string
	// Locale selects the message catalog for client-facing error text.
	Locale language.Tag
	// PublicBaseURL is used to build links sent to users (e-mail verification).
	PublicBaseURL string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration
	VerifyTokenExpiry time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion      string
	AllowedOrigins []string // CORS allowed origins

	VNPay    VNPay
	ImageGen ImageGen

	GoogleClientID string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	Shops         string
	AccessTokens  string
	Customers     string
	Products      string
	Orders        string
	Feedbacks     string
	Payments      string
	ImageRequests string
	Counters      string
}

// VNPay holds merchant credentials for the VNPay payment gateway.
type VNPay struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

// ImageGen configures the image-generation provider.
type ImageGen struct {
	URL          string
	APIKey       string
	DefaultModel string
	Timeout      time.Duration
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:       getEnv("APP_PORT", "3000"),
		AppEnv:        getEnv("APP_ENV", "development"),
		Locale:        getEnvLocale("APP_LOCALE", language.Vietnamese),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),

		AWSRegion:      getEnv("AWS_REGION", "ap-southeast-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Shops:         getEnv("DYNAMO_TABLE_SHOPS", "shops"),
			AccessTokens:  getEnv("DYNAMO_TABLE_ACCESS_TOKENS", "access_tokens"),
			Customers:     getEnv("DYNAMO_TABLE_CUSTOMERS", "customers"),
			Products:      getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
			Orders:        getEnv("DYNAMO_TABLE_ORDERS", "orders"),
			Feedbacks:     getEnv("DYNAMO_TABLE_FEEDBACKS", "feedbacks"),
			Payments:      getEnv("DYNAMO_TABLE_PAYMENTS", "payments"),
			ImageRequests: getEnv("DYNAMO_TABLE_IMAGE_REQUESTS", "image_requests"),
			Counters:      getEnv("DYNAMO_TABLE_COUNTERS", "counters"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "shop-assistant-files"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         getEnvDuration("JWT_EXPIRY", 7*24*time.Hour),
		VerifyTokenExpiry: getEnvDuration("VERIFY_TOKEN_EXPIRY", 24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion:      getEnv("SNS_REGION", "ap-southeast-1"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),

		VNPay: VNPay{
			TmnCode:    getEnv("VNPAY_TMN_CODE", ""),
			HashSecret: getEnv("VNPAY_HASH_SECRET", ""),
			PayURL:     getEnv("VNPAY_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
			ReturnURL:  getEnv("VNPAY_RETURN_URL", "http://localhost:3000/v1/payments/vnpay/return"),
		},
		ImageGen: ImageGen{
			URL:          getEnv("IMAGEGEN_URL", "https://api.openai.com/v1/images/generations"),
			APIKey:       getEnv("IMAGEGEN_API_KEY", ""),
			DefaultModel: getEnv("IMAGEGEN_DEFAULT_MODEL", "dall-e-3"),
			Timeout:      getEnvDuration("IMAGEGEN_TIMEOUT", 60*time.Second),
		},

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),
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

// getEnvDuration accepts Go duration strings ("15m") or a bare number of hours.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n := getEnvInt(key, -1); n >= 0 {
		return time.Duration(n) * time.Hour
	}
	return fallback
}

func getEnvLocale(key string, fallback language.Tag) language.Tag {
	if v := os.Getenv(key); v != "" {
		if tag, err := language.Parse(v); err == nil {
			return tag
		}
	}
	return fallback
}
