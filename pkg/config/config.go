package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	Engine       EngineConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"CAMPUSMKT_APP_ENV" required:"true"`
	Port         string `envconfig:"CAMPUSMKT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CAMPUSMKT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAMPUSMKT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CAMPUSMKT_DB_DSN"`
	Driver string `envconfig:"CAMPUSMKT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CAMPUSMKT_DB_HOST"`
	LegacyPort     int    `envconfig:"CAMPUSMKT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CAMPUSMKT_DB_USER"`
	LegacyPassword string `envconfig:"CAMPUSMKT_DB_PASSWORD"`
	LegacyName     string `envconfig:"CAMPUSMKT_DB_NAME"`
	LegacySSLMode  string `envconfig:"CAMPUSMKT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CAMPUSMKT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CAMPUSMKT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CAMPUSMKT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CAMPUSMKT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CAMPUSMKT_REDIS_URL"`
	Address      string        `envconfig:"CAMPUSMKT_REDIS_ADDR"`
	Password     string        `envconfig:"CAMPUSMKT_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAMPUSMKT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAMPUSMKT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CAMPUSMKT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CAMPUSMKT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAMPUSMKT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAMPUSMKT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint has been configured. When it has
// not, the API falls back to the in-process rate limiter.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"CAMPUSMKT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CAMPUSMKT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CAMPUSMKT_JWT_EXPIRATION_MINUTES" default:"60"`
}

// RateLimitConfig carries the sliding-window budgets for actor actions.
type RateLimitConfig struct {
	OfferWindow  time.Duration `envconfig:"CAMPUSMKT_RATE_LIMIT_OFFER_WINDOW" default:"5m"`
	OfferLimit   int           `envconfig:"CAMPUSMKT_RATE_LIMIT_OFFER_LIMIT" default:"5"`
	ReviewWindow time.Duration `envconfig:"CAMPUSMKT_RATE_LIMIT_REVIEW_WINDOW" default:"1m"`
	ReviewLimit  int           `envconfig:"CAMPUSMKT_RATE_LIMIT_REVIEW_LIMIT" default:"3"`
	ReportWindow time.Duration `envconfig:"CAMPUSMKT_RATE_LIMIT_REPORT_WINDOW" default:"1m"`
	ReportLimit  int           `envconfig:"CAMPUSMKT_RATE_LIMIT_REPORT_LIMIT" default:"3"`
}

// EngineConfig holds lifecycle-engine policy knobs.
type EngineConfig struct {
	ViewDedupWindow     time.Duration `envconfig:"CAMPUSMKT_VIEW_DEDUP_WINDOW" default:"24h"`
	RecommendationLimit int           `envconfig:"CAMPUSMKT_RECOMMENDATION_LIMIT" default:"4"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CAMPUSMKT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CAMPUSMKT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
