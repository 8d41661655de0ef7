package sweep

import (
	"gonum.org/v1/gonum/stat"

	"github.com/BoyarinO/dataroot2/pkg/core"
)

// Summary condenses a sweep into its best k and the spread of accuracies.
type Summary struct {
	BestK        int
	BestAccuracy float64
	MeanAccuracy float64
	StdAccuracy  float64
	Evaluated    int
	TotalElapsed float64 // seconds
}

// Summarize picks the k with the highest accuracy (the smallest such k on
// ties) and the population mean and standard deviation of all accuracies.
func Summarize(results []Result) (Summary, error) {
	if len(results) == 0 {
		return Summary{}, core.WrapError("Summarize", core.ErrEmptyInput)
	}

	accs := make([]float64, len(results))
	s := Summary{BestK: results[0].K, BestAccuracy: results[0].Accuracy, Evaluated: len(results)}
	for i, r := range results {
		accs[i] = r.Accuracy
		s.TotalElapsed += r.Elapsed.Seconds()
		if r.Accuracy > s.BestAccuracy || (r.Accuracy == s.BestAccuracy && r.K < s.BestK) {
			s.BestK, s.BestAccuracy = r.K, r.Accuracy
		}
	}
	s.MeanAccuracy, s.StdAccuracy = stat.PopMeanStdDev(accs, nil)
	return s, nil
}
