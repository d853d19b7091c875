package config

import (
	"os"
	"strconv"
	"strings"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	StoreDriver string
	FSRoot      string
	SQLitePath  string
	StorageKey  string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool

	// empty keys use the default AWS credentials chain
	S3AccessKeyID     string
	S3SecretAccessKey string

	CanvasWidth     int
	CanvasHeight    int
	HistoryCapacity int

	LogFile     string
	LogLevel    string
	MetricsAddr string
}

// DefaultStorageKey is the fixed key the plan is saved under.
const DefaultStorageKey = "cityMapConstructor_data"

// Load reads configuration from CITYMAP_* environment variables.
func Load() *Config {
	return &Config{
		StoreDriver:       getEnv("CITYMAP_STORE_DRIVER", "fs"),
		FSRoot:            getEnv("CITYMAP_FS_ROOT", defaultDataDir()),
		SQLitePath:        getEnv("CITYMAP_SQLITE_PATH", "citymap.db"),
		StorageKey:        getEnv("CITYMAP_STORAGE_KEY", DefaultStorageKey),
		S3Bucket:          getEnv("CITYMAP_S3_BUCKET", ""),
		S3Region:          getEnv("CITYMAP_S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("CITYMAP_S3_ENDPOINT", ""),
		S3PathStyle:       getEnvAsBool("CITYMAP_S3_PATH_STYLE", false),
		S3AccessKeyID:     getEnv("CITYMAP_S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("CITYMAP_S3_SECRET_ACCESS_KEY", ""),
		CanvasWidth:       getEnvAsInt("CITYMAP_CANVAS_WIDTH", 800),
		CanvasHeight:      getEnvAsInt("CITYMAP_CANVAS_HEIGHT", 600),
		HistoryCapacity:   getEnvAsInt("CITYMAP_HISTORY", 50),
		LogFile:           getEnv("CITYMAP_LOG_FILE", ""),
		LogLevel:          getEnv("CITYMAP_LOG_LEVEL", "info"),
		MetricsAddr:       getEnv("CITYMAP_METRICS_ADDR", ""),
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "citymap"
	}
	return "./citymap-data"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
