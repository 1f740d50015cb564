package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/ok-face-mixer/pkg/domain"
)

func TestSeedUtils(t *testing.T) {
	t.Run("pairSeed: 同じ組は同じシード、左右を入れ替えると別のシードになるのだ", func(t *testing.T) {
		a := domain.MixRequest{Left: domain.SmileGrin, Right: domain.SmileSad}
		b := domain.MixRequest{Left: domain.SmileSad, Right: domain.SmileGrin}

		assert.Equal(t, pairSeed(a), pairSeed(a))
		assert.NotEqual(t, pairSeed(a), pairSeed(b))
		assert.GreaterOrEqual(t, pairSeed(a), int64(0))
	})
}

func TestValidSize(t *testing.T) {
	assert.NoError(t, validSize(DefaultImageSize))
	assert.NoError(t, validSize(MinImageSize))
	assert.NoError(t, validSize(MaxImageSize))
	assert.Error(t, validSize(MinImageSize-1))
	assert.Error(t, validSize(MaxImageSize+1))
}
