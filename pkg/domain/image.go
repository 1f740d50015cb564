package domain

// GIFMimeType はミックス画像のレスポンスで宣言する Content-Type です。
const GIFMimeType = "image/gif"

// EncodedPayload はエンコード済みの画像データとその MIME タイプです。
// リクエストごとに一度だけ生成され、レスポンスボディとして書き出された後は破棄されます。
type EncodedPayload struct {
	Data     []byte
	MimeType string
}
