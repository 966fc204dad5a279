package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Database   Database
	Limiter    Limiter
	Auth       AuthConfig
	OTP        OTPConfig
	SMTP       SMTPConfig
	Email      EmailConfig
	Attendance AttendanceConfig
	Signature  SignatureConfig
	Cache      Cache
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	CORSDomains    []string      `env:"HTTP_CORS_DOMAINS" env-default:"" env-description:"allowed origins, empty allows all"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT        JWTConfig
	BcryptCost int `env:"AUTH_BCRYPT_COST" env-default:"10"`
}

type JWTConfig struct {
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"24h"`
	SigningKey     string        `env:"JWT_SIGNING_KEY" env-required:"true"`
}

// OTPConfig drives the one-time code lifecycle: code shape, expiry,
// brute-force budget and resend throttling.
type OTPConfig struct {
	CodeLength     int           `env:"OTP_CODE_LENGTH" env-default:"6"`
	TTL            time.Duration `env:"OTP_TTL" env-default:"5m"`
	MaxAttempts    int           `env:"OTP_MAX_ATTEMPTS" env-default:"5"`
	ResendCooldown time.Duration `env:"OTP_RESEND_COOLDOWN" env-default:"60s"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" env-required:"true"`
	Port int    `env:"SMTP_PORT" env-required:"true"`
	From string `env:"SMTP_FROM" env-required:"true"`
	Pass string `env:"SMTP_PASS" env-required:"true"`
}

type EmailConfig struct {
	Enabled    bool   `env:"EMAIL_ENABLED" env-default:"false"`
	AdminEmail string `env:"EMAIL_ADMIN" env-default:"" env-description:"address notified about late/absent staff"`
	Templates  EmailTemplates
}

type EmailTemplates struct {
	Verification string `env:"EMAIL_TEMPLATE_VERIFICATION" env-default:"verification.html"`
	Reminder     string `env:"EMAIL_TEMPLATE_REMINDER" env-default:"reminder.html"`
}

// AttendanceConfig holds the working-day boundaries the schedulers use.
// Times are wall-clock strings ("HH:MM" or "HH:MM:SS") in TimeZone.
type AttendanceConfig struct {
	CheckInTime  string `env:"ATTENDANCE_CHECKIN_TIME" env-default:"09:00:00"`
	CheckOutTime string `env:"ATTENDANCE_CHECKOUT_TIME" env-default:"17:00:00"`
	TimeZone     string `env:"ATTENDANCE_TIMEZONE" env-default:"Local"`
}

type SignatureConfig struct {
	Enabled bool          `env:"SIGNATURE_ENABLED" env-default:"false"`
	KeyFile string        `env:"SIGNATURE_KEY_FILE" env-default:"client.key"`
	Window  time.Duration `env:"SIGNATURE_WINDOW" env-default:"30s"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
