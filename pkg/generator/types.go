package generator

import "time"

const (
	BackendFace   = "face"
	BackendGemini = "gemini"

	DefaultImageSize = 128
	MinImageSize     = 32
	MaxImageSize     = 1024

	DefaultGeminiModel = "gemini-2.5-flash-image"
	// DefaultGeminiTimeout はクライアントの再試行の初回待機（30 秒）より短くし、呼び出しを 1 回に収めます。
	DefaultGeminiTimeout = 20 * time.Second
)

// Backends は設定で指定できるバックエンド名の一覧です。
func Backends() []string {
	return []string{BackendFace, BackendGemini}
}
