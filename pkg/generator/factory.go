package generator

import (
	"fmt"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// Options は New に渡すバックエンドの設定です。
type Options struct {
	Backend string
	Size    int

	// Gemini バックエンドでのみ使用します。
	GeminiClient  gemini.GenerativeModel
	GeminiModel   string
	GeminiTimeout time.Duration
}

// New は Backend の名前に応じた SmileGenerator を作成します。空の Backend は face として扱います。
func New(opts Options) (SmileGenerator, error) {
	size := opts.Size
	if size == 0 {
		size = DefaultImageSize
	}

	var (
		gen SmileGenerator
		err error
	)
	switch opts.Backend {
	case "", BackendFace:
		gen, err = NewFaceGenerator(size)
	case BackendGemini:
		var g *GeminiGenerator
		g, err = NewGeminiGenerator(opts.GeminiClient, opts.GeminiModel, size)
		if err == nil {
			if opts.GeminiTimeout > 0 {
				g.timeout = opts.GeminiTimeout
			}
			gen = g
		}
	default:
		return nil, fmt.Errorf("unknown generator backend %q (want one of %v)", opts.Backend, Backends())
	}
	if err != nil {
		// 型付き nil をインターフェースに包まない
		return nil, err
	}
	return gen, nil
}
