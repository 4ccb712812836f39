package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	Mongo MongoConfig
	JWT   JWTConfig
	Mail  MailConfig
	Kafka KafkaConfig
	Log   LogConfig
}

type AppConfig struct {
	Env  string
	Port string
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type MailConfig struct {
	ServiceURL   string
	Timeout      time.Duration
	ContactInbox string
}

type KafkaConfig struct {
	Brokers    []string
	OrderTopic string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env (when present) and the process environment. Environment
// variables win over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("MAIL_TIMEOUT", "10s")
	v.SetDefault("CONTACT_INBOX", "contact@fashionstore.local")
	v.SetDefault("KAFKA_ORDER_TOPIC", "orders.events")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Port: v.GetString("PORT"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("MONGO_URI"),
			Database:       v.GetString("DB_NAME"),
			ConnectTimeout: v.GetDuration("MONGO_CONNECT_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
		},
		Mail: MailConfig{
			ServiceURL:   strings.TrimRight(v.GetString("MAIL_SERVICE_URL"), "/"),
			Timeout:      v.GetDuration("MAIL_TIMEOUT"),
			ContactInbox: v.GetString("CONTACT_INBOX"),
		},
		Kafka: KafkaConfig{
			Brokers:    splitCSV(v.GetString("KAFKA_BROKERS")),
			OrderTopic: v.GetString("KAFKA_ORDER_TOPIC"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Mongo.URI == "" {
		errs = append(errs, errors.New("MONGO_URI is required"))
	}
	if c.Mongo.Database == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive, got %s", c.JWT.TTL))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
