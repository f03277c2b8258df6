package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "GARAGEHUB"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "GARAGEHUB_DB_DSN"
	EnvDBHost = "GARAGEHUB_DB_HOST"
	EnvDBUser = "GARAGEHUB_DB_USER"
	EnvDBName = "GARAGEHUB_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Settlement   SettlementConfig
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
	if err := cfg.Settlement.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GARAGEHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"GARAGEHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GARAGEHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GARAGEHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GARAGEHUB_DB_DSN"`
	Driver string `envconfig:"GARAGEHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GARAGEHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"GARAGEHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GARAGEHUB_DB_USER"`
	LegacyPassword string `envconfig:"GARAGEHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"GARAGEHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"GARAGEHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GARAGEHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GARAGEHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GARAGEHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GARAGEHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GARAGEHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GARAGEHUB_REDIS_ADDR"`
	Password     string        `envconfig:"GARAGEHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"GARAGEHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GARAGEHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GARAGEHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GARAGEHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GARAGEHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GARAGEHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"GARAGEHUB_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"GARAGEHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"GARAGEHUB_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"GARAGEHUB_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GARAGEHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GARAGEHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GARAGEHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GARAGEHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GARAGEHUB_ARGON_KEY_LEN" default:"32"`
}

// SettlementConfig tunes the profit-attribution subsystem.
type SettlementConfig struct {
	DefaultCommissionRate string `envconfig:"GARAGEHUB_DEFAULT_COMMISSION_RATE" default:"30.0"`
	LeaderboardLimit      int    `envconfig:"GARAGEHUB_LEADERBOARD_LIMIT" default:"10"`
}

// DefaultRate returns the configured platform commission percentage.
func (s SettlementConfig) DefaultRate() decimal.Decimal {
	rate, err := decimal.NewFromString(s.DefaultCommissionRate)
	if err != nil {
		return decimal.NewFromInt(30)
	}
	return rate
}

func (s SettlementConfig) validate() error {
	rate, err := decimal.NewFromString(s.DefaultCommissionRate)
	if err != nil {
		return fmt.Errorf("invalid default commission rate %q: %w", s.DefaultCommissionRate, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("default commission rate %s out of range [0,100]", rate)
	}
	if s.LeaderboardLimit <= 0 {
		return fmt.Errorf("leaderboard limit must be positive")
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GARAGEHUB_AUTO_MIGRATE" default:"false"`
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
