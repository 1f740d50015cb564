package server

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shouni/ok-face-mixer/pkg/domain"
	"github.com/shouni/ok-face-mixer/pkg/generator"
	"github.com/shouni/ok-face-mixer/pkg/imgutil"
	"github.com/shouni/ok-face-mixer/pkg/logging"
	"github.com/shouni/ok-face-mixer/pkg/mixer"
)

// --- Mocks ---

type mockMixer struct {
	mixFunc func(ctx context.Context, req domain.MixRequest) (*domain.EncodedPayload, error)
	calls   int
}

func (m *mockMixer) Mix(ctx context.Context, req domain.MixRequest) (*domain.EncodedPayload, error) {
	m.calls++
	if m.mixFunc != nil {
		return m.mixFunc(ctx, req)
	}
	return &domain.EncodedPayload{Data: []byte("GIF89a"), MimeType: domain.GIFMimeType}, nil
}

type generatorFunc func(ctx context.Context, req domain.MixRequest) (image.Image, error)

func (f generatorFunc) Generate(ctx context.Context, req domain.MixRequest) (image.Image, error) {
	return f(ctx, req)
}

type encoderFunc func(img image.Image) (*domain.EncodedPayload, error)

func (f encoderFunc) Encode(img image.Image) (*domain.EncodedPayload, error) {
	return f(img)
}

// newRealMixer は本番と同じ FaceGenerator と GIFEncoder を使う Mixer を返すヘルパー
func newRealMixer(t *testing.T) *mixer.Mixer {
	t.Helper()
	gen, err := generator.NewFaceGenerator(generator.DefaultImageSize)
	require.NoError(t, err)
	m, err := mixer.New(gen, imgutil.NewGIFEncoder(imgutil.DefaultGIFColors))
	require.NoError(t, err)
	return m
}

// captureLogs はテスト中だけ既定のロガーをバッファに向けるヘルパー
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	logger, err := logging.New(buf, "debug", logging.FormatText)
	require.NoError(t, err)

	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}
