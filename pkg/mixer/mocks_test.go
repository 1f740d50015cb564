package mixer

import (
	"context"
	"image"

	"github.com/shouni/ok-face-mixer/pkg/domain"
)

// --- Mocks ---

type mockGenerator struct {
	generateFunc func(ctx context.Context, req domain.MixRequest) (image.Image, error)
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.MixRequest) (image.Image, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type mockEncoder struct {
	encodeFunc func(img image.Image) (*domain.EncodedPayload, error)
	calls      int
}

func (m *mockEncoder) Encode(img image.Image) (*domain.EncodedPayload, error) {
	m.calls++
	if m.encodeFunc != nil {
		return m.encodeFunc(img)
	}
	return &domain.EncodedPayload{Data: []byte("GIF89a"), MimeType: domain.GIFMimeType}, nil
}
