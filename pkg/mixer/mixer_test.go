package mixer

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/ok-face-mixer/pkg/domain"
	"github.com/shouni/ok-face-mixer/pkg/generator"
	"github.com/shouni/ok-face-mixer/pkg/imgutil"
)

func TestNew(t *testing.T) {
	_, err := New(nil, &mockEncoder{})
	assert.ErrorContains(t, err, "generator is required")

	_, err = New(&mockGenerator{}, nil)
	assert.ErrorContains(t, err, "encoder is required")
}

func TestMixer_Mix(t *testing.T) {
	ctx := context.Background()
	req := domain.MixRequest{Left: domain.SmileOK, Right: domain.SmileGrin}

	t.Run("生成とエンコードに成功するとペイロードを返すこと", func(t *testing.T) {
		var got domain.MixRequest
		gen := &mockGenerator{generateFunc: func(_ context.Context, r domain.MixRequest) (image.Image, error) {
			got = r
			return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
		}}
		m, err := New(gen, &mockEncoder{})
		require.NoError(t, err)

		payload, err := m.Mix(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, req, got)
		assert.Equal(t, domain.GIFMimeType, payload.MimeType)
	})

	t.Run("生成エラーはErrGenerationでラップされエンコードしないこと", func(t *testing.T) {
		cause := errors.New("model offline")
		enc := &mockEncoder{}
		m, _ := New(&mockGenerator{generateFunc: func(context.Context, domain.MixRequest) (image.Image, error) {
			return nil, cause
		}}, enc)

		_, err := m.Mix(ctx, req)
		assert.ErrorIs(t, err, ErrGeneration)
		assert.ErrorIs(t, err, cause)
		assert.Zero(t, enc.calls)
	})

	t.Run("生成中のパニックはErrGenerationに変換されること", func(t *testing.T) {
		m, _ := New(&mockGenerator{generateFunc: func(context.Context, domain.MixRequest) (image.Image, error) {
			panic("boom")
		}}, &mockEncoder{})

		var err error
		assert.NotPanics(t, func() { _, err = m.Mix(ctx, req) })
		assert.ErrorIs(t, err, ErrGeneration)
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("nil画像はErrGenerationになること", func(t *testing.T) {
		m, _ := New(&mockGenerator{generateFunc: func(context.Context, domain.MixRequest) (image.Image, error) {
			return nil, nil
		}}, &mockEncoder{})

		_, err := m.Mix(ctx, req)
		assert.ErrorIs(t, err, ErrGeneration)
	})

	t.Run("エンコードエラーはErrEncodingでラップされること", func(t *testing.T) {
		cause := errors.New("palette exploded")
		m, _ := New(&mockGenerator{}, &mockEncoder{encodeFunc: func(image.Image) (*domain.EncodedPayload, error) {
			return nil, cause
		}})

		_, err := m.Mix(ctx, req)
		assert.ErrorIs(t, err, ErrEncoding)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrGeneration)
	})

	t.Run("不正な画像をGIFEncoderに渡すとErrEncodingになること", func(t *testing.T) {
		m, _ := New(&mockGenerator{generateFunc: func(context.Context, domain.MixRequest) (image.Image, error) {
			return image.NewRGBA(image.Rectangle{}), nil
		}}, imgutil.NewGIFEncoder(imgutil.DefaultGIFColors))

		_, err := m.Mix(ctx, req)
		assert.ErrorIs(t, err, ErrEncoding)
		assert.ErrorIs(t, err, imgutil.ErrEmptyImage)
	})

	t.Run("実際のジェネレーターとエンコーダーで同じ組は同じバイト列になること", func(t *testing.T) {
		gen, err := generator.NewFaceGenerator(generator.DefaultImageSize)
		require.NoError(t, err)
		m, err := New(gen, imgutil.NewGIFEncoder(imgutil.DefaultGIFColors))
		require.NoError(t, err)

		a, err := m.Mix(ctx, req)
		require.NoError(t, err)
		b, err := m.Mix(ctx, req)
		require.NoError(t, err)

		assert.True(t, imgutil.IsGIF(a.Data))
		assert.Equal(t, a.Data, b.Data)
	})
}
