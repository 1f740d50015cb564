package imgutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"

	"github.com/shouni/ok-face-mixer/pkg/domain"
)

var (
	// ErrEmptyImage は nil または面積ゼロの画像が渡された場合のエラーです。
	ErrEmptyImage = errors.New("image is empty")
	// ErrEncode は GIF エンコーダー内部の失敗を表します。
	ErrEncode = errors.New("gif encode failed")
)

// GIF パレットの色数の範囲です。DefaultGIFColors は上限も兼ねます。
const (
	MinGIFColors     = 2
	DefaultGIFColors = 256
)

var gifMagics = [][]byte{[]byte("GIF87a"), []byte("GIF89a")}

// GIFEncoder は画像をメモリ上のバッファに GIF としてエンコードします。
// ディスクへの書き込みは行いません。
type GIFEncoder struct {
	// NumColors はパレットの色数です。MinGIFColors から DefaultGIFColors の範囲外の値は 256 として扱われます。
	NumColors int
}

// NewGIFEncoder は指定した色数で GIFEncoder を作成します。
func NewGIFEncoder(numColors int) *GIFEncoder {
	return &GIFEncoder{NumColors: numColors}
}

// Encode は img を GIF にエンコードし、Content-Type と組にして返します。
func (e *GIFEncoder) Encode(img image.Image) (*domain.EncodedPayload, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	colors := e.NumColors
	if colors < MinGIFColors || colors > DefaultGIFColors {
		colors = DefaultGIFColors
	}

	buf := new(bytes.Buffer)
	if err := gif.Encode(buf, img, &gif.Options{NumColors: colors}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return &domain.EncodedPayload{
		Data:     buf.Bytes(),
		MimeType: domain.GIFMimeType,
	}, nil
}

// IsGIF はデータが GIF のマジックヘッダーで始まるかを返します。
func IsGIF(data []byte) bool {
	for _, m := range gifMagics {
		if bytes.HasPrefix(data, m) {
			return true
		}
	}
	return false
}
