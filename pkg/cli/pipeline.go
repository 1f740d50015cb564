package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/spf13/cobra"

	"github.com/shouni/ok-face-mixer/pkg/config"
	"github.com/shouni/ok-face-mixer/pkg/generator"
	"github.com/shouni/ok-face-mixer/pkg/imgutil"
	"github.com/shouni/ok-face-mixer/pkg/logging"
	"github.com/shouni/ok-face-mixer/pkg/mixer"
)

// stringFlags はフラグ名から上書き先の設定フィールドへの対応です。
type stringFlags map[string]func(cfg *config.Config) *string

// loadConfig は設定を読み込み、明示的に指定されたフラグで上書きしてから検証します。
func loadConfig(cmd *cobra.Command, overrides stringFlags) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Decode(envFile)
	if err != nil {
		return nil, err
	}

	for name, field := range overrides {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*field(cfg) = v
		}
	}
	if f := cmd.Flags().Lookup("size"); f != nil && f.Changed {
		cfg.ImageSize, _ = cmd.Flags().GetInt("size")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging はプロセス全体のロガーを一度だけ設定します。
func setupLogging(cfg *config.Config, w io.Writer) error {
	logger, err := logging.New(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// newMixer は設定に従ってジェネレーターとエンコーダーを組み立てます。
func newMixer(ctx context.Context, cfg *config.Config) (*mixer.Mixer, error) {
	opts := generator.Options{
		Backend:       cfg.Generator,
		Size:          cfg.ImageSize,
		GeminiModel:   cfg.GeminiModel,
		GeminiTimeout: cfg.GeminiTimeout,
	}

	if cfg.Generator == generator.BackendGemini {
		client, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.GeminiAPIKey})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		opts.GeminiClient = client
	}

	gen, err := generator.New(opts)
	if err != nil {
		return nil, err
	}
	slog.Debug("generator ready", "backend", cfg.Generator, "size", cfg.ImageSize)

	return mixer.New(gen, imgutil.NewGIFEncoder(cfg.GIFColors))
}
