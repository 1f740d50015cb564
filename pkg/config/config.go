// Package config はサービスの設定を環境変数と .env ファイルから読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"github.com/shouni/ok-face-mixer/pkg/generator"
	"github.com/shouni/ok-face-mixer/pkg/imgutil"
	"github.com/shouni/ok-face-mixer/pkg/logging"
)

// Config はサービス全体の設定です。
type Config struct {
	Addr      string `env:"OKFACE_ADDR,default=0.0.0.0:8000"`
	StaticDir string `env:"OKFACE_STATIC_DIR,default=./ok-face-mixer-web/dist"`

	LogLevel  string `env:"OKFACE_LOG_LEVEL,default=debug"`
	LogFormat string `env:"OKFACE_LOG_FORMAT,default=text"`

	Generator string `env:"OKFACE_GENERATOR,default=face"`
	ImageSize int    `env:"OKFACE_IMAGE_SIZE,default=128"`
	GIFColors int    `env:"OKFACE_GIF_COLORS,default=256"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel   string        `env:"OKFACE_GEMINI_MODEL,default=gemini-2.5-flash-image"`
	GeminiTimeout time.Duration `env:"OKFACE_GEMINI_TIMEOUT,default=20s"`

	ReadTimeout     time.Duration `env:"OKFACE_READ_TIMEOUT,default=10s"`
	WriteTimeout    time.Duration `env:"OKFACE_WRITE_TIMEOUT,default=30s"`
	ShutdownTimeout time.Duration `env:"OKFACE_SHUTDOWN_TIMEOUT,default=15s"`

	MetricsEnabled bool `env:"OKFACE_METRICS_ENABLED,default=true"`
}

// Load は Decode の結果を検証して返します。
func Load(envFile string) (*Config, error) {
	cfg, err := Decode(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode は envFile（空なら カレントディレクトリの .env）を読み込んだ後、環境変数から設定を組み立てます。
// 既に設定されている環境変数は .env で上書きされません。値の検証は行わないため、
// フラグなどで上書きした後に Validate を呼んでください。
func Decode(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}
	return &cfg, nil
}

// Validate は設定値の組み合わせを検証します。
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("OKFACE_ADDR must be set")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != logging.FormatText && c.LogFormat != logging.FormatJSON {
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if !slices.Contains(generator.Backends(), c.Generator) {
		return fmt.Errorf("invalid generator %q (want one of %v)", c.Generator, generator.Backends())
	}
	if c.ImageSize < generator.MinImageSize || c.ImageSize > generator.MaxImageSize {
		return fmt.Errorf("image size %d is out of range [%d, %d]", c.ImageSize, generator.MinImageSize, generator.MaxImageSize)
	}
	if c.GIFColors < imgutil.MinGIFColors || c.GIFColors > imgutil.DefaultGIFColors {
		return fmt.Errorf("gif colors %d is out of range [%d, %d]", c.GIFColors, imgutil.MinGIFColors, imgutil.DefaultGIFColors)
	}
	if c.Generator == generator.BackendGemini {
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini generator")
		}
		if c.GeminiTimeout <= 0 || c.GeminiTimeout >= c.WriteTimeout {
			return fmt.Errorf("OKFACE_GEMINI_TIMEOUT %s must be positive and shorter than OKFACE_WRITE_TIMEOUT %s", c.GeminiTimeout, c.WriteTimeout)
		}
	}
	return nil
}
