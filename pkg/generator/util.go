package generator

import (
	"fmt"
	"hash/fnv"

	"github.com/shouni/ok-face-mixer/pkg/domain"
)

// pairSeed は左右の組から順序を区別した安定したシード値を求めます。
func pairSeed(req domain.MixRequest) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s", req.Left, req.Right)
	return int64(h.Sum64() & 0x7fffffff)
}

func validSize(size int) error {
	if size < MinImageSize || size > MaxImageSize {
		return fmt.Errorf("image size %d is out of range [%d, %d]", size, MinImageSize, MaxImageSize)
	}
	return nil
}
