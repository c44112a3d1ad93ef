package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BindAddress string
	TLSDomains  string // e.g. "example.com,example2.com"
	DebugMode   bool
	Gzip        bool
	CORSOrigins string // comma separated, applies to /api only

	DatabaseURL string // Postgres, used unless MySQLDSN or SQLiteFile is set
	MySQLDSN    string
	SQLiteFile  string

	SessionSecret string
	SessionStore  string // "cookie" or "db"

	PostsPerPage  int
	IndexCacheTTL time.Duration

	MediaDir      string
	MediaURL      string
	ImageMaxWidth int

	// S3 is used for uploaded images when S3Bucket is set
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PathStyle bool
}

func Default() *Config {
	return &Config{
		BindAddress:   "0.0.0.0:8080",
		DebugMode:     false,
		Gzip:          true,
		CORSOrigins:   "*",
		DatabaseURL:   "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable",
		SessionSecret: "secret_key_change_me",
		SessionStore:  "cookie",
		PostsPerPage:  10,
		IndexCacheTTL: 20 * time.Second,
		MediaDir:      "./media",
		MediaURL:      "/media",
		ImageMaxWidth: 960,
		S3Region:      "us-east-1",
	}
}

// Load reads the environment on top of Default. Call it after godotenv.Load.
func Load() *Config {
	c := Default()
	readEnvString("BIND_ADDRESS", &c.BindAddress)
	if port := os.Getenv("PORT"); port != "" {
		c.BindAddress = ":" + port
	}
	readEnvString("TLS_DOMAINS", &c.TLSDomains)
	readEnvBool("DEBUG_MODE", &c.DebugMode)
	readEnvBool("GZIP", &c.Gzip)
	readEnvString("CORS_ORIGINS", &c.CORSOrigins)
	readEnvString("DATABASE_URL", &c.DatabaseURL)
	readEnvString("MYSQL_DSN", &c.MySQLDSN)
	readEnvString("SQLITE_FILE", &c.SQLiteFile)
	readEnvString("SESSION_SECRET", &c.SessionSecret)
	readEnvString("SESSION_STORE", &c.SessionStore)
	readEnvInt("POSTS_PER_PAGE", &c.PostsPerPage)
	readEnvDuration("INDEX_CACHE_TTL", &c.IndexCacheTTL)
	readEnvString("MEDIA_DIR", &c.MediaDir)
	readEnvString("MEDIA_URL", &c.MediaURL)
	readEnvInt("IMAGE_MAX_WIDTH", &c.ImageMaxWidth)
	readEnvString("S3_BUCKET", &c.S3Bucket)
	readEnvString("S3_REGION", &c.S3Region)
	readEnvString("S3_ENDPOINT", &c.S3Endpoint)
	readEnvString("S3_ACCESS_KEY", &c.S3AccessKey)
	readEnvString("S3_SECRET_KEY", &c.S3SecretKey)
	readEnvBool("S3_PATH_STYLE", &c.S3PathStyle)
	return c
}

// Driver returns the database driver name selected by the configuration.
func (c *Config) Driver() (driver, dsn string) {
	switch {
	case c.MySQLDSN != "":
		return "mysql", c.MySQLDSN
	case c.SQLiteFile != "":
		return "sqlite", c.SQLiteFile
	}
	return "postgres", c.DatabaseURL
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}

func readEnvDuration(name string, value *time.Duration) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return
	}
	*value = d
}
