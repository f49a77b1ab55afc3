package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"league-recon/internal/resolve/model"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string
	DBPath       string

	// engine thresholds; the single place they are configured
	AutoThreshold    float64
	ReviewThreshold  float64
	WeakThreshold    float64
	ClusterThreshold float64
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8083"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	def := model.DefaultThresholds()
	return Config{
		Host:             getenv("HOST", "127.0.0.1"),
		Port:             port,
		AllowOrigins:     origins,
		LogLevel:         getenv("LOG_LEVEL", "info"),
		MaxUploadMB:      mb,
		LogFile:          getenv("LOG_FILE", "logs/league-recon.log"),
		DBPath:           getenv("DB_PATH", "league-recon.db"),
		AutoThreshold:    getfloat("AUTO_THRESHOLD", def.Auto),
		ReviewThreshold:  getfloat("REVIEW_THRESHOLD", def.Review),
		WeakThreshold:    getfloat("WEAK_THRESHOLD", def.Weak),
		ClusterThreshold: getfloat("CLUSTER_THRESHOLD", 0.85),
	}
}

// Thresholds bundles the configured cutoffs for the classifier.
func (c Config) Thresholds() model.Thresholds {
	return model.Thresholds{Auto: c.AutoThreshold, Review: c.ReviewThreshold, Weak: c.WeakThreshold}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
