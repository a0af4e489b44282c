package ports

import "time"

// Metrics records extraction statistics.
type Metrics interface {
	// ObserveExtraction records one completed extraction run.
	ObserveExtraction(backend string, written, skipped int, elapsed time.Duration)

	// ObserveFailure records a run that ended with an error.
	ObserveFailure(backend string)

	// ObserveFallback records a parallel request that fell back to sequential.
	ObserveFallback()
}
