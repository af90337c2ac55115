package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the application's configuration values.
type Config struct {
	AppName  string `json:"appname"`
	AppEnv   string `json:"appenv"`
	AppPort  uint16 `json:"appport"`
	GinMode  string `json:"ginmode"`
	LogLevel string `json:"log_level"`

	DBDriver       string        `json:"dbdriver"`
	DBHost         string        `json:"dbhost"`
	DBPort         uint16        `json:"dbport"`
	DBName         string        `json:"dbname"`
	DBUSER         string        `json:"dbuser"`
	DBPass         string        `json:"-"`
	DBTimeout      time.Duration `json:"db_timeout"`
	DBMaxOpenConns int           `json:"db_max_open_conns"`

	JWTSecret        string        `json:"-"`
	SessionTTL       time.Duration `json:"session_ttl"`
	AllowAdminSignup bool          `json:"allow_admin_signup"`
	SeedAdminEmail   string        `json:"seed_admin_email"`
	SeedAdminPass    string        `json:"-"`
	CORSOrigins      []string      `json:"cors_origins"`

	RedisAddr string `json:"redis_addr"`
	RedisPass string `json:"-"`
	RedisDB   int    `json:"redis_db"`

	MongoURI      string `json:"mongodb_uri"`
	MongoDatabase string `json:"mongodb_database"`

	MedicinesPath  string `json:"medicines_path"`
	MaxReportBytes int64  `json:"max_report_bytes"`

	SMTPHost string `json:"smtp_host"`
	SMTPPort int    `json:"smtp_port"`
	SMTPUser string `json:"smtp_user"`
	SMTPPass string `json:"-"`
	SMTPFrom string `json:"smtp_from"`

	SentryDSN   string `json:"-"`
	GeoIPDBPath string `json:"geoip_db_path"`
}

var config *Config
var once sync.Once

// IsTest reports whether the process runs under APPENV=test.
func (c *Config) IsTest() bool {
	return c != nil && c.AppEnv == "test"
}

// Load reads the optional .env file and then the environment. A missing .env is not an error;
// values already present in the environment take precedence over the file.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	return &Config{
		AppName:  getEnv("APPNAME", "healthsync-rx"),
		AppEnv:   getEnv("APPENV", "development"),
		AppPort:  uint16(getEnvInt("APPPORT", 8080)),
		GinMode:  getEnv("GINMODE", "release"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:       strings.ToLower(getEnv("DBDRIVER", "mysql")),
		DBHost:         getEnv("DBHOST", "localhost"),
		DBPort:         uint16(getEnvInt("DBPORT", 3306)),
		DBName:         getEnv("DBNAME", "healthsync"),
		DBUSER:         getEnv("DBUSER", "root"),
		DBPass:         os.Getenv("DBPASS"),
		DBTimeout:      time.Duration(getEnvInt("DB_TIMEOUT_MS", 5000)) * time.Millisecond,
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),

		JWTSecret:        os.Getenv("JWTSECRET"),
		SessionTTL:       time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*7)) * time.Hour,
		AllowAdminSignup: getEnvBool("ALLOW_ADMIN_SIGNUP", false),
		SeedAdminEmail:   os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPass:    os.Getenv("SEED_ADMIN_PASSWORD"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: os.Getenv("REDIS_PASS"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "healthsync"),

		MedicinesPath:  getEnv("MEDICINES_PATH", "data/medicines.json"),
		MaxReportBytes: int64(getEnvInt("MAX_REPORT_BYTES", 10<<20)),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: os.Getenv("SMTP_FROM"),

		SentryDSN:   os.Getenv("SENTRY_DSN"),
		GeoIPDBPath: os.Getenv("GEOIP_DB_PATH"),
	}
}

// LoadConfig returns the process-wide Config, loading it on first use.
func LoadConfig() *Config {
	once.Do(func() {
		config = Load()
	})
	return config
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Dialector picks the gorm driver for cfg.DBDriver. APPENV=test always yields in-memory SQLite.
func Dialector(cfg *Config) (gorm.Dialector, error) {
	if cfg.IsTest() {
		dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", cfg.AppName, time.Now().UnixNano())
		return sqlite.Open(dsn), nil
	}

	switch cfg.DBDriver {
	case "mysql", "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBPort, cfg.DBUSER, cfg.DBPass, cfg.DBName)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBName), nil
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}
}

// ConnectDatabase opens the pooled database handle shared by the whole process.
// gormLogger may be nil to keep gorm's default logger.
func ConnectDatabase(cfg *Config, gormLogger logger.Interface) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{TranslateError: true}
	if gormLogger != nil {
		gcfg.Logger = gormLogger
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.IsTest() || cfg.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.DBMaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
