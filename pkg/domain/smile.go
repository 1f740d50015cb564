package domain

// SmileKind は認識済みのスマイルの種類です。
// ゼロ値は有効な種類ではなく、ParseSmileKind から返されることもありません。
type SmileKind uint8

const (
	SmileOK SmileKind = iota + 1
	SmileSmile
	SmileGrin
	SmileSad
	SmileNeutral
	SmileSurprised
	SmileSmirk
)

// 宣言順。SmileKinds と ParseSmileKind の両方で共有します。
var smileNames = [...]string{
	SmileOK:        "ok",
	SmileSmile:     "smile",
	SmileGrin:      "grin",
	SmileSad:       "sad",
	SmileNeutral:   "neutral",
	SmileSurprised: "surprised",
	SmileSmirk:     "smirk",
}

// ParseSmileKind は名前から SmileKind を解決します。
// 名前は大文字小文字を区別し、小文字のみを受け付けます。
func ParseSmileKind(name string) (SmileKind, error) {
	for i, n := range smileNames {
		if n != "" && n == name {
			return SmileKind(i), nil
		}
	}
	return 0, ErrUnknownSmileName
}

// SmileKinds はすべての SmileKind を宣言順で返します。呼び出しごとに新しいスライスです。
func SmileKinds() []SmileKind {
	kinds := make([]SmileKind, 0, len(smileNames)-1)
	for i := range smileNames {
		if k := SmileKind(i); k.Valid() {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Valid は k が認識済みの種類であるかを返します。
func (k SmileKind) Valid() bool {
	return k > 0 && int(k) < len(smileNames)
}

func (k SmileKind) String() string {
	if !k.Valid() {
		return "invalid"
	}
	return smileNames[k]
}

// Side はクエリパラメータの左右を表します。
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// RawSmile はクエリから受け取ったままの 1 パラメータです。
// Present はキー自体が存在したかどうかを表し、空文字の値とは区別されます。
type RawSmile struct {
	Value   string
	Present bool
}

// MixRequest は検証済みの左右のスマイルの組です。リクエストスコープでのみ使われます。
type MixRequest struct {
	Left  SmileKind
	Right SmileKind
}

// ParseMixRequest は左右の両方を必ず解析し、失敗をすべて集めて返します。
// 片側が失敗しても、もう片側の検証は省略しません。
func ParseMixRequest(left, right RawSmile) (MixRequest, error) {
	l, lErr := parseSide(SideLeft, left)
	r, rErr := parseSide(SideRight, right)

	var failures []*SmileNameError
	for _, err := range []*SmileNameError{lErr, rErr} {
		if err != nil {
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		return MixRequest{}, &ValidationError{Failures: failures}
	}

	return MixRequest{Left: l, Right: r}, nil
}

func parseSide(side Side, raw RawSmile) (SmileKind, *SmileNameError) {
	if !raw.Present {
		return 0, &SmileNameError{Side: side, Err: ErrMissingSmileName}
	}
	kind, err := ParseSmileKind(raw.Value)
	if err != nil {
		return 0, &SmileNameError{Side: side, Value: raw.Value, Err: err}
	}
	return kind, nil
}
