package generator

import (
	"context"
	"image"

	"github.com/shouni/ok-face-mixer/pkg/domain"
)

// SmileGenerator は左右のスマイルから 1 枚の画像を合成する窓口です。
// 返す画像は呼び出したリクエストだけが所有し、他のリクエストと共有されません。
type SmileGenerator interface {
	Generate(ctx context.Context, req domain.MixRequest) (image.Image, error)
}
