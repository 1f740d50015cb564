// Package server は HTTP の入口です。クエリの検証、画像のミックス、レスポンスへの対応付けを行います。
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shouni/ok-face-mixer/pkg/domain"
	"github.com/shouni/ok-face-mixer/pkg/metrics"
	"github.com/shouni/ok-face-mixer/pkg/mixer"
)

// クライアントに返す固定のメッセージ。内部のエラー内容は含めません。
const (
	MsgInvalidSmileName = "invalid smile name"
	MsgGenerationFailed = "failed to generate result image"
	MsgEncodingFailed   = "failed to convert result image to bytes"
)

const (
	paramLeft  = "left"
	paramRight = "right"
)

// ImageMixer は検証済みのリクエストからエンコード済みの画像を作ります。
type ImageMixer interface {
	Mix(ctx context.Context, req domain.MixRequest) (*domain.EncodedPayload, error)
}

// MixImageHandler は GET /api/mix_image.gif を処理します。
type MixImageHandler struct {
	mixer   ImageMixer
	metrics *metrics.Metrics
}

// NewMixImageHandler は MixImageHandler を作成します。m が nil の場合はメトリクスを記録しません。
func NewMixImageHandler(mx ImageMixer, m *metrics.Metrics) *MixImageHandler {
	return &MixImageHandler{mixer: mx, metrics: m}
}

func (h *MixImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	left, right := rawSmile(query, paramLeft), rawSmile(query, paramRight)
	slog.DebugContext(ctx, "processing smile", "left", left.Value, "right", right.Value)

	req, err := domain.ParseMixRequest(left, right)
	if err != nil {
		LogValidationError(ctx, err)
		h.record(metrics.OutcomeInvalid, 0)
		writeText(w, http.StatusBadRequest, MsgInvalidSmileName)
		return
	}

	payload, err := h.mixer.Mix(ctx, req)
	if err != nil {
		if errors.Is(err, mixer.ErrGeneration) {
			slog.ErrorContext(ctx, "image generation error", "left", req.Left, "right", req.Right, "error", err)
			h.record(metrics.OutcomeGenerationError, 0)
			writeText(w, http.StatusInternalServerError, MsgGenerationFailed)
			return
		}
		slog.ErrorContext(ctx, "image write error", "left", req.Left, "right", req.Right, "error", err)
		h.record(metrics.OutcomeEncodingError, 0)
		writeText(w, http.StatusInternalServerError, MsgEncodingFailed)
		return
	}

	h.record(metrics.OutcomeOK, len(payload.Data))
	writeImage(w, payload)
}

func (h *MixImageHandler) record(outcome string, size int) {
	if h.metrics != nil {
		h.metrics.RecordMix(outcome, size)
	}
}

// rawSmile はクエリのキーの有無と最初の値を取り出します。
func rawSmile(query map[string][]string, key string) domain.RawSmile {
	values, ok := query[key]
	if !ok || len(values) == 0 {
		return domain.RawSmile{}
	}
	return domain.RawSmile{Value: values[0], Present: true}
}

// LogValidationError は失敗した側をすべて個別にログに残します。
func LogValidationError(ctx context.Context, err error) {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		slog.WarnContext(ctx, "smile validation error", "error", err)
		return
	}
	for _, f := range ve.Failures {
		slog.WarnContext(ctx, string(f.Side)+" smile creating error", "value", f.Value, "missing", errors.Is(f, domain.ErrMissingSmileName), "error", f.Err)
	}
}

func writeImage(w http.ResponseWriter, payload *domain.EncodedPayload) {
	h := w.Header()
	h.Set("Content-Type", payload.MimeType)
	h.Set("Content-Length", strconv.Itoa(len(payload.Data)))
	h.Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload.Data); err != nil {
		slog.Debug("failed to write image response", "error", err)
	}
}

// writeText は末尾に改行を付けずに本文をそのまま書き出します。
func writeText(w http.ResponseWriter, status int, msg string) {
	h := w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Content-Length", strconv.Itoa(len(msg)))
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// SmilesResponse は GET /api/smiles のレスポンスです。
type SmilesResponse struct {
	Smiles []string `json:"smiles"`
}

// SmilesHandler は認識済みのスマイル名の一覧を返します。
func SmilesHandler(w http.ResponseWriter, r *http.Request) {
	kinds := domain.SmileKinds()
	resp := SmilesResponse{Smiles: make([]string, len(kinds))}
	for i, k := range kinds {
		resp.Smiles[i] = k.String()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.WarnContext(r.Context(), "failed to write smiles response", "error", err)
	}
}

// HealthCheckHandler は常に 200 OK を返します。
func HealthCheckHandler(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "OK")
}
