package generator

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// ベジェ曲線で円を近似するための係数
const kappa = 0.5522847

type point struct{ x, y float32 }

// painter は 0〜1 の正規化座標で図形を塗るための小さなヘルパーです。
// ラスタライザはリクエスト内で使い回し、図形ごとにリセットします。
type painter struct {
	dst  *image.RGBA
	z    *vector.Rasterizer
	size float32
}

func newPainter(size int) *painter {
	return &painter{
		dst:  image.NewRGBA(image.Rect(0, 0, size, size)),
		z:    vector.NewRasterizer(size, size),
		size: float32(size),
	}
}

func (p *painter) clear(c color.Color) {
	draw.Draw(p.dst, p.dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// fill は path で描いた 1 つの閉じた図形を c で塗ります。
// 図形ごとにリセットするので、重なった図形の巻き方向が打ち消し合うことはありません。
func (p *painter) fill(c color.Color, path func(z *vector.Rasterizer)) {
	b := p.dst.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
	path(p.z)
	p.z.Draw(p.dst, b, image.NewUniform(c), image.Point{})
}

func (p *painter) ellipse(c color.Color, cx, cy, rx, ry float32) {
	cx, cy, rx, ry = cx*p.size, cy*p.size, rx*p.size, ry*p.size
	kx, ky := rx*kappa, ry*kappa
	p.fill(c, func(z *vector.Rasterizer) {
		z.MoveTo(cx+rx, cy)
		z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
		z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
		z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
		z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
		z.ClosePath()
	})
}

func (p *painter) disc(c color.Color, cx, cy, r float32) {
	p.ellipse(c, cx, cy, r, r)
}

func (p *painter) polygon(c color.Color, pts []point) {
	if len(pts) < 3 {
		return
	}
	p.fill(c, func(z *vector.Rasterizer) {
		z.MoveTo(pts[0].x*p.size, pts[0].y*p.size)
		for _, pt := range pts[1:] {
			z.LineTo(pt.x*p.size, pt.y*p.size)
		}
		z.ClosePath()
	})
}

// stroke は折れ線を幅 width の丸い端点付きの線として描きます。
func (p *painter) stroke(c color.Color, pts []point, width float32) {
	half := width / 2
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		dx, dy := b.x-a.x, b.y-a.y
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		p.polygon(c, []point{
			{a.x + nx, a.y + ny},
			{b.x + nx, b.y + ny},
			{b.x - nx, b.y - ny},
			{a.x - nx, a.y - ny},
		})
	}
	for _, pt := range pts {
		p.disc(c, pt.x, pt.y, half)
	}
}

// quadCurve は 2 次ベジェ曲線を n 分割した点列を返します。
func quadCurve(from, ctrl, to point, n int) []point {
	pts := make([]point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float32(i) / float32(n)
		u := 1 - t
		pts = append(pts, point{
			x: u*u*from.x + 2*u*t*ctrl.x + t*t*to.x,
			y: u*u*from.y + 2*u*t*ctrl.y + t*t*to.y,
		})
	}
	return pts
}
