package student

import "time"

// PerformanceWindow is how far back performance records are aggregated.
const PerformanceWindow = 30 * 24 * time.Hour

// LibraryWeeks converts the window's total library hours into a weekly figure.
const LibraryWeeks = 4

// The newer half must differ from the older half by more than 5% to count as a trend.
const (
	TrendUpperRatio = 1.05
	TrendLowerRatio = 0.95
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)
