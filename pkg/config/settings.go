package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/csvbind/pkg/logger"
	"github.com/dmitrymomot/csvbind/pkg/seen"
)

// Unique store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Settings drives the csvcheck command.
type Settings struct {
	// Locale selects the message language; an empty value means the
	// bundle default.
	Locale      string `env:"CSVBIND_LOCALE" envDefault:"en"`
	MessagesDir string `env:"CSVBIND_MESSAGES_DIR"`

	LogLevel  string `env:"CSVBIND_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"CSVBIND_LOG_FORMAT" envDefault:"text"`

	Groups                []string `env:"CSVBIND_GROUPS" envSeparator:","`
	IgnoreWriteValidation bool     `env:"CSVBIND_IGNORE_WRITE_VALIDATION" envDefault:"false"`
	SkipHeader            bool     `env:"CSVBIND_SKIP_HEADER" envDefault:"true"`
	Concurrency           int      `env:"CSVBIND_CONCURRENCY" envDefault:"4"`

	UniqueStore string `env:"CSVBIND_UNIQUE_STORE" envDefault:"memory"`
	Redis       seen.RedisConfig
}

// Validate reports every invalid field at once.
func (s Settings) Validate() error {
	var errs []error

	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if _, err := logger.ParseFormat(s.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("log format: %w", err))
	}
	switch strings.ToLower(s.UniqueStore) {
	case StoreMemory, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unique store %q: must be %q or %q", s.UniqueStore, StoreMemory, StoreRedis))
	}
	if s.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency %d: must be positive", s.Concurrency))
	}

	if len(errs) > 0 {
		return errors.Join(ErrInvalidSettings, errors.Join(errs...))
	}
	return nil
}

// LoggerOptions translates the log settings. Call Validate first;
// invalid values fall back to the logger defaults.
func (s Settings) LoggerOptions() []logger.Option {
	var opts []logger.Option
	if lvl, err := logger.ParseLevel(s.LogLevel); err == nil {
		opts = append(opts, logger.WithLevel(lvl))
	}
	if f, err := logger.ParseFormat(s.LogFormat); err == nil {
		opts = append(opts, logger.WithFormat(f))
	}
	return opts
}

// UsesRedis reports whether the unique side-table lives in redis.
func (s Settings) UsesRedis() bool {
	return strings.EqualFold(s.UniqueStore, StoreRedis)
}
