package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/ok-face-mixer/pkg/domain"
)

// テスト用のダミー画像（w×h の赤い矩形）を作成するヘルパー
func createDummyImage(t *testing.T, w, h int) *image.RGBA {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	return img
}

func TestGIFEncoder_Encode(t *testing.T) {
	t.Run("RGBA画像をGIFにエンコードできること", func(t *testing.T) {
		payload, err := NewGIFEncoder(DefaultGIFColors).Encode(createDummyImage(t, 10, 8))
		require.NoError(t, err)

		assert.Equal(t, domain.GIFMimeType, payload.MimeType)
		assert.True(t, IsGIF(payload.Data), "missing GIF magic header")

		decoded, err := gif.Decode(bytes.NewReader(payload.Data))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 10, 8), decoded.Bounds())
	})

	t.Run("同じ画像は同じバイト列になること", func(t *testing.T) {
		enc := &GIFEncoder{}
		img := createDummyImage(t, 16, 16)

		a, err := enc.Encode(img)
		require.NoError(t, err)
		b, err := enc.Encode(img)
		require.NoError(t, err)
		assert.Equal(t, a.Data, b.Data)
	})

	t.Run("nilや空の画像はErrEmptyImageを返すこと", func(t *testing.T) {
		enc := &GIFEncoder{}

		_, err := enc.Encode(nil)
		assert.ErrorIs(t, err, ErrEmptyImage)

		_, err = enc.Encode(image.NewRGBA(image.Rect(0, 0, 0, 5)))
		assert.ErrorIs(t, err, ErrEmptyImage)
	})

	t.Run("エンコーダーの失敗はErrEncodeでラップされること", func(t *testing.T) {
		// GIF は一辺 65535 ピクセルまでしか扱えない
		tooWide := image.NewGray(image.Rect(0, 0, 1<<16, 1))

		_, err := (&GIFEncoder{}).Encode(tooWide)
		assert.ErrorIs(t, err, ErrEncode)
	})

	t.Run("範囲外の色数は既定値に丸められること", func(t *testing.T) {
		for _, n := range []int{-1, 0, 1, 1000} {
			payload, err := NewGIFEncoder(n).Encode(createDummyImage(t, 4, 4))
			require.NoError(t, err, "colors=%d", n)
			assert.True(t, IsGIF(payload.Data))

			want, err := NewGIFEncoder(DefaultGIFColors).Encode(createDummyImage(t, 4, 4))
			require.NoError(t, err)
			assert.Equal(t, want.Data, payload.Data, "colors=%d", n)
		}
	})

	t.Run("下限の色数はそのまま使われること", func(t *testing.T) {
		payload, err := NewGIFEncoder(MinGIFColors).Encode(createDummyImage(t, 4, 4))
		require.NoError(t, err)
		assert.True(t, IsGIF(payload.Data))
	})
}

func TestIsGIF(t *testing.T) {
	assert.True(t, IsGIF([]byte("GIF89a...")))
	assert.True(t, IsGIF([]byte("GIF87a")))
	assert.False(t, IsGIF([]byte("GIF8")))
	assert.False(t, IsGIF(nil))

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, createDummyImage(t, 2, 2)))
	assert.False(t, IsGIF(buf.Bytes()))
}
