package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	AdminSeed    AdminSeedConfig
	LoginLimit   LoginRateLimitConfig
	IntakeLimit  IntakeRateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Cloudinary   CloudinaryConfig
	Upload       UploadConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PRINTSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"PRINTSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PRINTSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRINTSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"PRINTSHOP_DB_DSN"`

	LegacyHost     string `envconfig:"PRINTSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"PRINTSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRINTSHOP_DB_USER"`
	LegacyPassword string `envconfig:"PRINTSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRINTSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRINTSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRINTSHOP_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PRINTSHOP_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"PRINTSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRINTSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRINTSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRINTSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"PRINTSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRINTSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRINTSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRINTSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRINTSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRINTSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRINTSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PRINTSHOP_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PRINTSHOP_JWT_ISSUER" default:"printshop-api"`
	ExpirationMinutes int    `envconfig:"PRINTSHOP_JWT_EXPIRATION_MINUTES" default:"720"`
	SessionTTLMinutes int    `envconfig:"PRINTSHOP_SESSION_TTL_MINUTES" default:"1440"`
}

// SessionTTL returns the admin session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PRINTSHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PRINTSHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PRINTSHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PRINTSHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PRINTSHOP_ARGON_KEY_LEN" default:"32"`
}

// AdminSeedConfig controls the bootstrap admin created at startup when the
// users table has no matching account.
type AdminSeedConfig struct {
	Email    string `envconfig:"PRINTSHOP_ADMIN_EMAIL"`
	Password string `envconfig:"PRINTSHOP_ADMIN_PASSWORD"`
}

type LoginRateLimitConfig struct {
	Window     time.Duration `envconfig:"PRINTSHOP_LOGIN_RATE_LIMIT_WINDOW" default:"1m"`
	EmailLimit int           `envconfig:"PRINTSHOP_LOGIN_RATE_LIMIT_EMAIL_LIMIT" default:"5"`
	IPLimit    int           `envconfig:"PRINTSHOP_LOGIN_RATE_LIMIT_IP_LIMIT" default:"20"`
}

// IntakeRateLimitConfig throttles the public quote and review submission forms.
type IntakeRateLimitConfig struct {
	Window  time.Duration `envconfig:"PRINTSHOP_INTAKE_RATE_LIMIT_WINDOW" default:"5m"`
	IPLimit int           `envconfig:"PRINTSHOP_INTAKE_RATE_LIMIT_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PRINTSHOP_AUTO_MIGRATE" default:"false"`
	SeedCatalog bool `envconfig:"PRINTSHOP_SEED_CATALOG" default:"true"`
}

type CloudinaryConfig struct {
	CloudName string `envconfig:"CLOUDINARY_CLOUD_NAME" required:"true"`
	APIKey    string `envconfig:"CLOUDINARY_API_KEY" required:"true"`
	APISecret string `envconfig:"CLOUDINARY_API_SECRET" required:"true"`
	// UploadTimeout bounds a single attachment transfer; a hung upload blocks
	// the whole intake request otherwise.
	UploadTimeout time.Duration `envconfig:"CLOUDINARY_UPLOAD_TIMEOUT" default:"60s"`
}

type UploadConfig struct {
	MaxQuoteFiles    int   `envconfig:"PRINTSHOP_MAX_QUOTE_FILES" default:"5"`
	MaxQuoteFileMB   int64 `envconfig:"PRINTSHOP_MAX_QUOTE_FILE_MB" default:"15"`
	MaxImageUploadMB int64 `envconfig:"PRINTSHOP_MAX_IMAGE_UPLOAD_MB" default:"10"`
}

type CORSConfig struct {
	// AllowedOrigins is a comma-separated list of frontend origins.
	AllowedOrigins []string `envconfig:"PRINTSHOP_FRONTEND_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		"PRINTSHOP_DB_HOST": db.LegacyHost,
		"PRINTSHOP_DB_USER": db.LegacyUser,
		"PRINTSHOP_DB_NAME": db.LegacyName,
	}
	for _, env := range []string{"PRINTSHOP_DB_HOST", "PRINTSHOP_DB_USER", "PRINTSHOP_DB_NAME"} {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either PRINTSHOP_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
