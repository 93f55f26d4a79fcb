// Package checksum hashes frame contents so two sequences can be compared
// frame by frame without diffing bytes directly.
//
// # Example Usage
//
//	calculator := checksum.New()
//	sum, err := calculator.CalculateReader(f)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
