package generator

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/ok-face-mixer/pkg/domain"
	"github.com/shouni/ok-face-mixer/pkg/imgutil"
)

const geminiSystemPrompt = "You draw flat, emoji style yellow faces with thick dark outlines on a plain white background. " +
	"Always output exactly one square image and never add text, captions or borders."

var smileDescriptions = map[domain.SmileKind]string{
	domain.SmileOK:        "a calm 'OK' face: one dot eye, one closed happy eye and a gentle smile",
	domain.SmileSmile:     "a classic smile: dot eyes and a wide curved smile",
	domain.SmileGrin:      "a big grin: closed happy eyes and an open mouth showing teeth",
	domain.SmileSad:       "a sad face: dot eyes, worried eyebrows and a frown",
	domain.SmileNeutral:   "a neutral face: dot eyes and a straight mouth",
	domain.SmileSurprised: "a surprised face: wide round eyes, raised eyebrows and a round open mouth",
	domain.SmileSmirk:     "a smirk: flat half-closed eyes and a lopsided smile raised on one side",
}

// GeminiGenerator は Gemini の画像モデルに左右のスマイルを混ぜた顔を描かせるジェネレーターです。
// 同じ組には同じシードを渡しますが、出力の完全な再現性はモデルに依存します。
type GeminiGenerator struct {
	aiClient gemini.GenerativeModel
	model    string
	size     int
	timeout  time.Duration
}

// NewGeminiGenerator は GeminiGenerator を初期化するのだ。
func NewGeminiGenerator(aiClient gemini.GenerativeModel, model string, size int) (*GeminiGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (gemini.GenerativeModel) is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if err := validSize(size); err != nil {
		return nil, err
	}

	return &GeminiGenerator{
		aiClient: aiClient,
		model:    model,
		size:     size,
		timeout:  DefaultGeminiTimeout,
	}, nil
}

// Generate は Gemini に画像生成をリクエストし、結果をキャンバスサイズに合わせて返すのだ。
func (g *GeminiGenerator) Generate(ctx context.Context, req domain.MixRequest) (image.Image, error) {
	if !req.Left.Valid() || !req.Right.Valid() {
		return nil, fmt.Errorf("cannot draw %s/%s: %w", req.Left, req.Right, domain.ErrUnknownSmileName)
	}

	seed := pairSeed(req)
	slog.DebugContext(ctx, "Geminiにスマイル画像をリクエストします", "model", g.model, "left", req.Left, "right", req.Right, "seed", seed)

	// 1 リクエスト 1 回の呼び出しに収める
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	parts := []*genai.Part{{Text: buildPrompt(req)}}
	opts := gemini.GenerateOptions{
		SystemPrompt: geminiSystemPrompt,
		AspectRatio:  "1:1",
		Seed:         &seed,
	}

	resp, err := g.aiClient.GenerateWithParts(callCtx, g.model, parts, opts)
	if err != nil {
		return nil, fmt.Errorf("Geminiスマイル生成エラー: %w", err)
	}

	out, err := parseToImageData(resp)
	if err != nil {
		return nil, err
	}

	img, format, err := imgutil.Decode(out.Data)
	if err != nil {
		return nil, fmt.Errorf("Geminiの画像をデコードできませんでした (%s): %w", out.MimeType, err)
	}
	slog.DebugContext(ctx, "Geminiの画像をデコードしました", "format", format, "bounds", img.Bounds().String())

	return imgutil.Fit(img, g.size), nil
}

func buildPrompt(req domain.MixRequest) string {
	return fmt.Sprintf(
		"Draw one single face whose left half is %s, and whose right half is %s. "+
			"Blend both halves into one coherent face split down the vertical middle.",
		smileDescriptions[req.Left], smileDescriptions[req.Right],
	)
}
