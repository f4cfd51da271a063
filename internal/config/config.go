package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string
	TablesFile   string        // optional TOML override for the machine tables
	CacheTTL     time.Duration // snapshot cache time-to-live
	SourceURL    string        // published spreadsheet export, optional
	SourceHeader int           // 1-based header row of the source export
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8084"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "64"))
	ttlSec, _ := strconv.Atoi(getenv("CACHE_TTL_SECONDS", "120"))
	hdr, _ := strconv.Atoi(getenv("SOURCE_HEADER_ROW", "1"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         port,
		AllowOrigins: origins,
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxUploadMB:  mb,
		LogFile:      getenv("LOG_FILE", "logs/planboard-service.log"),
		TablesFile:   getenv("TABLES_FILE", ""),
		CacheTTL:     time.Duration(ttlSec) * time.Second,
		SourceURL:    getenv("SOURCE_URL", ""),
		SourceHeader: hdr,
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
