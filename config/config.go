package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/utils"

	"github.com/caarlos0/env/v11"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"4000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBRetries   int    `env:"DB_RETRIES" envDefault:"15"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"72h"`

	AWSRegion     string `env:"AWS_REGION" envDefault:"ap-south-1"`
	S3Region      string `env:"S3_REGION"`
	S3Bucket      string `env:"S3_BUCKET"`
	CloudFrontURL string `env:"CLOUDFRONT_URL"`
	SESEmail      string `env:"SES_EMAIL"`
	SNSFCMArn     string `env:"SNS_FCM_ARN"`
	Rekognition   bool   `env:"REKOGNITION_ENABLED" envDefault:"false"`

	RedisURL         string        `env:"REDIS_URL"`
	CatalogCacheTTL  time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"10m"`
	TelegramBotToken string        `env:"TELEGRAM_BOT_TOKEN"`

	LoginRatePerMin int           `env:"LOGIN_RATE_PER_MIN" envDefault:"10"`
	ReminderTick    time.Duration `env:"REMINDER_TICK" envDefault:"1m"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.Logger().Debugw("no .env file loaded", "error", err)
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.S3Region == "" {
		cfg.S3Region = cfg.AWSRegion
	}
	return cfg, nil
}

// Validate checks what the HTTP server cannot run without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET not set")
	}
	return nil
}

func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBDriver == "sqlite" {
		return "fitness.db"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres", "":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

// OpenDB connects with capped exponential backoff, pinging after each open.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	dial, err := dialector(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	attempts := cfg.DBRetries
	if attempts < 1 {
		attempts = 1
	}

	var db *gorm.DB
	for i := 1; i <= attempts; i++ {
		db, err = gorm.Open(dial, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					utils.Logger().Infow("database connected", "driver", cfg.DBDriver, "attempt", i)
					return db, nil
				}
			} else {
				err = dbErr
			}
		}

		utils.Logger().Warnw("database connect failed", "attempt", i, "error", err)
		if i == attempts {
			break
		}
		wait := time.Duration(1<<uint(i-1)) * time.Second
		if wait > 10*time.Second {
			wait = 10 * time.Second
		}
		time.Sleep(wait)
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
