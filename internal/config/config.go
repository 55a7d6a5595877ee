package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr string
	Env  string

	StoreDriver string
	DatabaseURL string
	MongoURI    string
	MongoDB     string

	RedisAddr     string
	RedisPassword string

	JWTSecret         string
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	TokenTTL          time.Duration

	CORSOrigins []string

	S3Bucket        string
	S3PublicBaseURL string
	S3Endpoint      string
	AWSRegion       string
	AWSAccessKeyID  string
	AWSSecretKey    string
	CartDir         string

	StatusPermissive bool
	ShippingFee      float64
}

// Load reads configuration from environment variables, after loading a .env
// file when one is present.
func Load() Config {
	_ = godotenv.Load()

	addr := os.Getenv("ADDR")
	if addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "4000"
		}
		addr = ":" + port
	}

	return Config{
		Addr:              addr,
		Env:               getenv("APP_ENV", "development"),
		StoreDriver:       strings.ToLower(getenv("STORE_DRIVER", DriverMemory)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MongoURI:          getenv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:           getenv("MONGODB_DB", "arix"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		TokenTTL:          4 * time.Hour,
		CORSOrigins:       splitList(getenv("CORS_ORIGIN", "http://localhost:3000,http://localhost:3001")),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
		S3Endpoint:        os.Getenv("AWS_S3_ENDPOINT"),
		AWSRegion:         getenv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:    os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:      os.Getenv("AWS_SECRET_ACCESS_KEY"),
		CartDir:           os.Getenv("CART_DIR"),
		StatusPermissive:  parseBool(os.Getenv("ORDER_STATUS_PERMISSIVE")),
		ShippingFee:       parseFloat(os.Getenv("SHIPPING_FEE"), 80),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}

func parseFloat(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
