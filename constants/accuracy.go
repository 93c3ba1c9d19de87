package constants

// Accuracy bounds for extracted events (percent).
const (
	MinAccuracy     = 0.0
	MaxAccuracy     = 100.0
	DefaultAccuracy = 100.0

	// LowAccuracyThreshold marks events that should be flagged as uncertain.
	// accuracy == threshold is NOT low.
	LowAccuracyThreshold = 80.0
)
