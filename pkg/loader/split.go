package loader

import (
	"fmt"
	"math/rand/v2"

	"github.com/BoyarinO/dataroot2/pkg/core"
	"github.com/BoyarinO/dataroot2/pkg/data"
)

// TrainTestSplit shuffles ds with rng and cuts it into a training part of
// int(n*trainRatio) points and a test part with the rest. Only the shape of
// ds is checked, so NaN features marking missing values reach the imputer.
func TrainTestSplit(ds data.Dataset, trainRatio float64, rng *rand.Rand) (train, test data.Dataset, err error) {
	if err := ds.ValidateShape(); err != nil {
		return data.Dataset{}, data.Dataset{}, err
	}
	if trainRatio <= 0 || trainRatio >= 1 {
		return data.Dataset{}, data.Dataset{}, fmt.Errorf("loader: train ratio %v outside (0, 1)", trainRatio)
	}

	n := ds.Len()
	nTrain := int(float64(n) * trainRatio)
	if nTrain == 0 || nTrain == n {
		return data.Dataset{}, data.Dataset{}, core.WrapError("TrainTestSplit",
			fmt.Errorf("%w: ratio %v of %d points leaves one side empty", core.ErrEmptyInput, trainRatio, n))
	}

	indices := rng.Perm(n)
	return ds.Subset(indices[:nTrain]), ds.Subset(indices[nTrain:]), nil
}
