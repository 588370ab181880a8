package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Arguments struct {
	ListenAddr  string        `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseDSN string        `env:"DATABASE_DSN" envDefault:""`
	JWTSecret   string        `env:"JWT_SECRET" envDefault:"secret"`
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"10m"`
	LoginRate   float64       `env:"LOGIN_RATE" envDefault:"5"`
	SeedFile    string        `env:"SEED_FILE" envDefault:""`
	PinCost     int           `env:"PIN_COST" envDefault:"10"`
	AMQPURL     string        `env:"AMQP_URL" envDefault:""`
	Exchange    string        `env:"AMQP_EXCHANGE" envDefault:"bankist.ledger"`
}

// ServerConfig модель настроек сервера
type ServerConfig struct {
	ListenAddr  string
	LogLevel    string
	JWTSecret   string
	DatabaseDSN string
	// SessionTTL - время жизни сессии и токена
	SessionTTL time.Duration
	// LoginRate - допустимое число попыток входа в секунду с одного адреса
	LoginRate float64
}

// BankConfig модель настроек справочника счетов
type BankConfig struct {
	// SeedFile - файл с начальными счетами, пусто - встроенный набор
	SeedFile string
	// PinCost - стоимость bcrypt для хэшей пин-кодов
	PinCost int
}

// EventsConfig модель настроек публикации событий по счетам
type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

// Config модель настроек сервиса
type Config struct {
	Server ServerConfig
	Bank   BankConfig
	Events EventsConfig
}

func NewConfig() Config {
	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server   = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		DSN      = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN, empty - in-memory storage")
		secret   = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		ttl      = pflag.DurationP("session_ttl", "t", args.SessionTTL, "Session lifetime")
		rate     = pflag.Float64P("login_rate", "r", args.LoginRate, "Login attempts per second per client")
		seed     = pflag.StringP("seed", "f", args.SeedFile, "JSON file with initial accounts")
		pinCost  = pflag.IntP("pin_cost", "c", args.PinCost, "bcrypt cost for pin hashes")
		amqpURL  = pflag.StringP("amqp", "q", args.AMQPURL, "AMQP URL for ledger events, empty - disabled")
		exchange = pflag.StringP("exchange", "e", args.Exchange, "AMQP exchange for ledger events")
	)
	pflag.Parse()

	return Config{
		Server: ServerConfig{
			ListenAddr:  *server,
			LogLevel:    *logLevel,
			DatabaseDSN: *DSN,
			JWTSecret:   *secret,
			SessionTTL:  *ttl,
			LoginRate:   *rate,
		},
		Bank: BankConfig{
			SeedFile: *seed,
			PinCost:  *pinCost,
		},
		Events: EventsConfig{
			AMQPURL:  *amqpURL,
			Exchange: *exchange,
		},
	}
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  "localhost:8080",
			LogLevel:    "info",
			DatabaseDSN: "",
			JWTSecret:   "secret",
			SessionTTL:  10 * time.Minute,
			LoginRate:   5,
		},
		Bank: BankConfig{
			PinCost: bcrypt.MinCost,
		},
		Events: EventsConfig{
			Exchange: "bankist.ledger",
		},
	}
}

// Validate - проверка настроек, все ошибки собираются в одну
func (c Config) Validate() error {
	var errs []string

	if _, err := zap.ParseAtomicLevel(c.Server.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("invalid log level '%s'", c.Server.LogLevel))
	}
	if c.Server.JWTSecret == "" {
		errs = append(errs, "JWT secret cannot be empty")
	}
	if c.Server.SessionTTL < 0 {
		errs = append(errs, fmt.Sprintf("invalid session ttl %v: must not be negative", c.Server.SessionTTL))
	}
	if c.Server.LoginRate <= 0 {
		errs = append(errs, fmt.Sprintf("invalid login rate %v: must be positive", c.Server.LoginRate))
	}
	if c.Bank.PinCost < bcrypt.MinCost || c.Bank.PinCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Sprintf("invalid pin cost %d: must be between %d and %d", c.Bank.PinCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Events.AMQPURL != "" {
		if parsed, err := url.Parse(c.Events.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.Events.Exchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
