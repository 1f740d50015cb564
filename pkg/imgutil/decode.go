package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Decode は画像データ（PNG, JPEG, GIF, WebP, BMP）をデコードし、検出したフォーマット名とともに返します。
func Decode(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

// Fit は画像を size × size の正方形キャンバスに、縦横比を保ったまま中央寄せで縮小・拡大します。
// 余白は src の左上のピクセル色で埋めます。
func Fit(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	b := src.Bounds()
	if b.Empty() || size <= 0 {
		return dst
	}

	draw.Draw(dst, dst.Bounds(), image.NewUniform(src.At(b.Min.X, b.Min.Y)), image.Point{}, draw.Src)

	w, h := size, size
	if b.Dx() > b.Dy() {
		h = max(1, size*b.Dy()/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, size*b.Dx()/b.Dy())
	}
	x0 := (size - w) / 2
	y0 := (size - h) / 2

	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), src, b, draw.Src, nil)
	return dst
}
