package generator

import (
	"errors"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ErrNoImageData は Gemini の応答に画像が含まれていない場合のエラーです。
var ErrNoImageData = errors.New("no image data in Gemini response")

// imageData は Gemini の応答から取り出した画像のバイト列です。
type imageData struct {
	Data     []byte
	MimeType string
}

// parseToImageData は Gemini のレスポンスを解析して最初の画像パーツを返します。
func parseToImageData(resp *gemini.Response) (*imageData, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした: %w", ErrNoImageData)
	}

	// 最初の候補 (Candidate) のみを利用する
	candidate := resp.RawResponse.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &imageData{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("画像生成が異常終了しました (FinishReason: %s): %w", candidate.FinishReason, ErrNoImageData)
	}

	return nil, ErrNoImageData
}
