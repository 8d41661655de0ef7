package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

func TestKRange(t *testing.T) {
	tests := []struct {
		name              string
		kmin, kmax, kstep int
		want              []int
	}{
		{name: "step 3", kmin: 1, kmax: 10, kstep: 3, want: []int{1, 4, 7}},
		{name: "stop is exclusive", kmin: 1, kmax: 7, kstep: 3, want: []int{1, 4}},
		{name: "single", kmin: 5, kmax: 6, kstep: 10, want: []int{5}},
		{name: "step 1", kmin: 2, kmax: 5, kstep: 1, want: []int{2, 3, 4}},
		{name: "demo sweep", kmin: 1, kmax: 201, kstep: 20, want: []int{1, 21, 41, 61, 81, 101, 121, 141, 161, 181}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KRange(tt.kmin, tt.kmax, tt.kstep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKRangeInvalid(t *testing.T) {
	tests := []struct {
		name              string
		kmin, kmax, kstep int
	}{
		{name: "zero step", kmin: 1, kmax: 10, kstep: 0},
		{name: "negative step", kmin: 1, kmax: 10, kstep: -2},
		{name: "empty", kmin: 10, kmax: 10, kstep: 1},
		{name: "reversed", kmin: 10, kmax: 1, kstep: 1},
		{name: "k below one", kmin: 0, kmax: 10, kstep: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := KRange(tt.kmin, tt.kmax, tt.kstep)
			assert.ErrorIs(t, err, core.ErrInvalidRange)
		})
	}
}

func TestDefaultRange(t *testing.T) {
	ks := DefaultRange()
	require.Len(t, ks, 13)
	assert.Equal(t, 1, ks[0])
	assert.Equal(t, 49, ks[len(ks)-1])
}
