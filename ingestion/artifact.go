package ingestion

import "math"

// Artifact is the immutable result of a successful ingestion run, naming
// the two output file paths exactly as configured.
type Artifact struct {
	TrainedFilePath string `json:"trained_file_path"`
	TestFilePath    string `json:"test_file_path"`
}

// splitSizes returns the train and test row counts for n rows at the given
// test ratio, matching the splitter's ceil cut.
func splitSizes(n int, ratio float64) (train, test int) {
	test = int(math.Ceil(float64(n) * ratio))
	return n - test, test
}
