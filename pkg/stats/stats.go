package stats

// Counts returns how often each label occurs in x.
func Counts(x []int) map[int]int {
	counts := make(map[int]int, len(x))
	for _, v := range x {
		counts[v]++
	}
	return counts
}

// Mode returns the most frequent value in the slice. When several values are
// equally frequent the smallest of them wins, so the result does not depend
// on the order of x. An empty slice returns 0.
func Mode(x []int) int {
	if len(x) == 0 {
		return 0
	}
	maxCount := 0
	mode := 0
	for v, n := range Counts(x) {
		if n > maxCount || (n == maxCount && v < mode) {
			maxCount = n
			mode = v
		}
	}
	return mode
}
