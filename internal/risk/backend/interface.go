package backend

import "context"

// Model is an opaque binary classifier with a declared feature order.
type Model interface {
	Version() string
	FeatureNames() []string
	// Probability returns the positive-class probability for x, laid out in FeatureNames order.
	Probability(ctx context.Context, x []float64) (float64, error)
}

// Attributor explains a prediction as signed per-feature contributions.
type Attributor interface {
	Attribute(ctx context.Context, x []float64) ([]Attribution, error)
}
