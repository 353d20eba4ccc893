package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

const dotEnvFile = ".env"

// Config рантайм конфиг для hotelkit
//
// Конфигурирование:
// - LOG_LEVEL или flag -l
// - LOG_FILE или flag -log-file
// - LOCALE или flag -locale
// - CURRENCY или flag -currency
// - DRAFT_STORE_PATH или flag -store (пусто: черновики только в памяти)
// - DRAFT_QUOTA_BYTES или flag -quota
// - AUTOSAVE_INTERVAL или flag -autosave
type Config struct {
	LogLevel         string        `env:"LOG_LEVEL" env-default:"info"`
	LogFile          string        `env:"LOG_FILE"`
	Locale           string        `env:"LOCALE" env-default:"en-IN"`
	Currency         string        `env:"CURRENCY" env-default:"INR"`
	DraftStorePath   string        `env:"DRAFT_STORE_PATH"`
	DraftQuotaBytes  int           `env:"DRAFT_QUOTA_BYTES" env-default:"5242880"`
	AutoSaveInterval time.Duration `env:"AUTOSAVE_INTERVAL" env-default:"30s"`
}

// Validate отделяем ошибки конфига от ошибок работы команд
func (c Config) Validate() error {
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL/-l is invalid: %w", err)
	}
	if _, err := currency.ParseISO(c.Currency); err != nil {
		return fmt.Errorf("CURRENCY/-currency is invalid: %w", err)
	}
	if c.AutoSaveInterval <= 0 {
		return fmt.Errorf("AUTOSAVE_INTERVAL/-autosave must be > 0")
	}
	if c.DraftQuotaBytes < 0 {
		return fmt.Errorf("DRAFT_QUOTA_BYTES/-quota must be >= 0")
	}
	return nil
}

// Load подхватывает .env, читает env через cleanenv, затем поверх применяет флаги.
// Приоритет работы: flags > env > .env > default.
// Вторым значением возвращаются позиционные аргументы (команда и её параметры).
func Load(args []string) (Config, []string, error) {
	var cfg Config

	// .env не переопределяет уже выставленные переменные
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, nil, fmt.Errorf("read %s: %w", dotEnvFile, err)
	}

	// смотрим env и env-default
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, nil, fmt.Errorf("read env: %w", err)
	}

	// flags поверх env
	fs := flag.NewFlagSet("hotelkit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (LOG_LEVEL)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "rotated log file, stderr when empty (LOG_FILE)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "display locale (LOCALE)")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "ISO currency code (CURRENCY)")
	fs.StringVar(&cfg.DraftStorePath, "store", cfg.DraftStorePath, "sqlite file for drafts (DRAFT_STORE_PATH)")
	fs.IntVar(&cfg.DraftQuotaBytes, "quota", cfg.DraftQuotaBytes, "in-memory draft quota in bytes (DRAFT_QUOTA_BYTES)")
	fs.DurationVar(&cfg.AutoSaveInterval, "autosave", cfg.AutoSaveInterval, "autosave period (AUTOSAVE_INTERVAL)")

	if err := fs.Parse(args); err != nil {
		return Config{}, nil, fmt.Errorf("parse flags: %w", err)
	}

	return cfg, fs.Args(), nil
}
