// Package mixer は検証済みの MixRequest から画像を生成し、ワイヤーフォーマットにエンコードするまでをつなぎます。
package mixer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/shouni/ok-face-mixer/pkg/domain"
	"github.com/shouni/ok-face-mixer/pkg/generator"
)

var (
	// ErrGeneration は画像生成の失敗（パニックや nil 画像を含む）を表します。
	ErrGeneration = errors.New("image generation failed")
	// ErrEncoding は生成済み画像のエンコードの失敗を表します。
	ErrEncoding = errors.New("image encoding failed")
)

// Encoder は画像をバイナリのペイロードに変換します。
type Encoder interface {
	Encode(img image.Image) (*domain.EncodedPayload, error)
}

// Mixer は生成とエンコードを 1 回ずつ実行するパイプラインです。状態を持たず、並行に呼び出せます。
type Mixer struct {
	generator generator.SmileGenerator
	encoder   Encoder
}

// New は依存関係を注入して Mixer を作成します。
func New(gen generator.SmileGenerator, enc Encoder) (*Mixer, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if enc == nil {
		return nil, fmt.Errorf("encoder is required")
	}
	return &Mixer{generator: gen, encoder: enc}, nil
}

// Mix は req の画像を生成してエンコードします。
// 返すエラーは ErrGeneration または ErrEncoding のどちらかをラップしています。
func (m *Mixer) Mix(ctx context.Context, req domain.MixRequest) (*domain.EncodedPayload, error) {
	img, err := m.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "writing image to gif bytes", "left", req.Left, "right", req.Right)
	payload, err := m.encoder.Encode(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return payload, nil
}

func (m *Mixer) generate(ctx context.Context, req domain.MixRequest) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("%w: panic: %v", ErrGeneration, r)
		}
	}()

	img, err = m.generator.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: generator returned no image", ErrGeneration)
	}
	return img, nil
}
