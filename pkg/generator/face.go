package generator

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/shouni/ok-face-mixer/pkg/domain"
)

var (
	backgroundColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
	faceColor       = color.RGBA{0xff, 0xcc, 0x33, 0xff}
	inkColor        = color.RGBA{0x3d, 0x2b, 0x1f, 0xff}
	whiteColor      = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

type eyeStyle uint8

const (
	eyeDot eyeStyle = iota
	eyeArc
	eyeLine
	eyeWide
)

type mouthStyle uint8

const (
	mouthCurve mouthStyle = iota
	mouthOpen
	mouthRound
)

// faceStyle は 1 種類のスマイルの顔パーツです。座標はすべてキャンバスに対する比率です。
type faceStyle struct {
	leftEye, rightEye eyeStyle
	mouth             mouthStyle
	// bend > 0 で口角が上がる
	bend float32
	// tilt > 0 で右の口角だけが上がる
	tilt float32
	// brows > 0 で眉を描き、値は内側の持ち上がり量
	brows     float32
	browsFlat bool
}

var faceStyles = map[domain.SmileKind]faceStyle{
	domain.SmileOK:        {leftEye: eyeDot, rightEye: eyeArc, mouth: mouthCurve, bend: 0.08},
	domain.SmileSmile:     {leftEye: eyeDot, rightEye: eyeDot, mouth: mouthCurve, bend: 0.12},
	domain.SmileGrin:      {leftEye: eyeArc, rightEye: eyeArc, mouth: mouthOpen, bend: 0.12},
	domain.SmileSad:       {leftEye: eyeDot, rightEye: eyeDot, mouth: mouthCurve, bend: -0.08, brows: 0.04},
	domain.SmileNeutral:   {leftEye: eyeDot, rightEye: eyeDot, mouth: mouthCurve},
	domain.SmileSurprised: {leftEye: eyeWide, rightEye: eyeWide, mouth: mouthRound, brows: 0.01, browsFlat: true},
	domain.SmileSmirk:     {leftEye: eyeLine, rightEye: eyeLine, mouth: mouthCurve, bend: 0.03, tilt: 0.07},
}

const (
	eyeY       = 0.40
	leftEyeX   = 0.35
	rightEyeX  = 0.65
	mouthY     = 0.66
	mouthHalfW = 0.18
	lineWidth  = 0.035
)

// FaceGenerator は左右のスマイルを手続き的に描いて合成する決定的なジェネレーターです。
// 左半分は Left の顔、右半分は Right の顔から取るため、左右の順序を区別します。
type FaceGenerator struct {
	size int
}

// NewFaceGenerator は size × size のキャンバスに描く FaceGenerator を作成します。
func NewFaceGenerator(size int) (*FaceGenerator, error) {
	if err := validSize(size); err != nil {
		return nil, err
	}
	return &FaceGenerator{size: size}, nil
}

// Size はキャンバスの一辺のピクセル数です。
func (g *FaceGenerator) Size() int { return g.size }

// Generate は req の左右の顔を半分ずつ合成した画像を返します。
// 有効な SmileKind に対しては失敗しません。
func (g *FaceGenerator) Generate(_ context.Context, req domain.MixRequest) (image.Image, error) {
	if !req.Left.Valid() || !req.Right.Valid() {
		return nil, fmt.Errorf("cannot draw %s/%s: %w", req.Left, req.Right, domain.ErrUnknownSmileName)
	}

	left := g.renderFace(req.Left)
	if req.Left == req.Right {
		return left, nil
	}
	right := g.renderFace(req.Right)

	half := g.size / 2
	dst := image.NewRGBA(image.Rect(0, 0, g.size, g.size))
	draw.Draw(dst, image.Rect(0, 0, half, g.size), left, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(half, 0, g.size, g.size), right, image.Pt(half, 0), draw.Src)
	return dst, nil
}

func (g *FaceGenerator) renderFace(kind domain.SmileKind) *image.RGBA {
	style := faceStyles[kind]
	p := newPainter(g.size)

	p.clear(backgroundColor)
	p.disc(inkColor, 0.5, 0.5, 0.46)
	p.disc(faceColor, 0.5, 0.5, 0.43)

	drawEye(p, style.leftEye, leftEyeX)
	drawEye(p, style.rightEye, rightEyeX)
	if style.brows != 0 {
		drawBrows(p, style)
	}
	drawMouth(p, style)

	return p.dst
}

func drawEye(p *painter, style eyeStyle, x float32) {
	y := float32(eyeY)
	switch style {
	case eyeDot:
		p.ellipse(inkColor, x, y, 0.045, 0.065)
	case eyeArc:
		p.stroke(inkColor, quadCurve(point{x - 0.06, y + 0.02}, point{x, y - 0.07}, point{x + 0.06, y + 0.02}, 12), 0.03)
	case eyeLine:
		p.stroke(inkColor, []point{{x - 0.06, y}, {x + 0.06, y}}, 0.03)
	case eyeWide:
		p.disc(inkColor, x, y, 0.085)
		p.disc(whiteColor, x, y, 0.07)
		p.disc(inkColor, x, y, 0.035)
	}
}

func drawBrows(p *painter, style faceStyle) {
	by := float32(eyeY - 0.11)
	if style.browsFlat {
		by -= 0.03
		p.stroke(inkColor, []point{{leftEyeX - 0.06, by}, {leftEyeX + 0.06, by}}, 0.025)
		p.stroke(inkColor, []point{{rightEyeX - 0.06, by}, {rightEyeX + 0.06, by}}, 0.025)
		return
	}
	// 内側（顔の中心寄り）を持ち上げる
	p.stroke(inkColor, []point{{leftEyeX - 0.07, by}, {leftEyeX + 0.06, by - style.brows}}, 0.025)
	p.stroke(inkColor, []point{{rightEyeX - 0.06, by - style.brows}, {rightEyeX + 0.07, by}}, 0.025)
}

func drawMouth(p *painter, style faceStyle) {
	from := point{0.5 - mouthHalfW, mouthY - style.bend}
	to := point{0.5 + mouthHalfW, mouthY - style.bend - style.tilt}
	ctrl := point{0.5, mouthY + style.bend}

	switch style.mouth {
	case mouthCurve:
		p.stroke(inkColor, quadCurve(from, ctrl, to, 20), lineWidth)
	case mouthOpen:
		// 上辺は直線、下辺は曲線の D 字型
		bottom := quadCurve(from, point{ctrl.x, ctrl.y + style.bend}, to, 20)
		p.polygon(inkColor, bottom)
		teeth := quadCurve(from, point{ctrl.x, from.y + 0.06}, to, 20)
		p.polygon(whiteColor, teeth)
	case mouthRound:
		p.ellipse(inkColor, 0.5, mouthY+0.02, 0.07, 0.09)
	}
}
