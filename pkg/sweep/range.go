package sweep

import (
	"fmt"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

// Default sweep bounds.
const (
	DefaultKMin  = 1
	DefaultKMax  = 50
	DefaultKStep = 4
)

// KRange returns kmin, kmin+kstep, ... up to but excluding kmax.
func KRange(kmin, kmax, kstep int) ([]int, error) {
	switch {
	case kstep <= 0:
		return nil, core.WrapError("KRange", fmt.Errorf("%w: step %d must be positive", core.ErrInvalidRange, kstep))
	case kmin < 1:
		return nil, core.WrapError("KRange", fmt.Errorf("%w: start %d must be at least 1", core.ErrInvalidRange, kmin))
	case kmin >= kmax:
		return nil, core.WrapError("KRange", fmt.Errorf("%w: [%d, %d) is empty", core.ErrInvalidRange, kmin, kmax))
	}

	ks := make([]int, 0, (kmax-kmin+kstep-1)/kstep)
	for k := kmin; k < kmax; k += kstep {
		ks = append(ks, k)
	}
	return ks, nil
}

// DefaultRange returns KRange(DefaultKMin, DefaultKMax, DefaultKStep).
func DefaultRange() []int {
	ks, _ := KRange(DefaultKMin, DefaultKMax, DefaultKStep)
	return ks
}
