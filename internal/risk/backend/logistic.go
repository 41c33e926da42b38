package backend

import (
	"context"
	"fmt"
	"math"
)

// Logistic scores standardized features with a linear model and a sigmoid link.
// Its attributions are exact additive contributions in log-odds space.
type Logistic struct {
	a Artifact
}

var (
	_ Model      = &Logistic{}
	_ Attributor = &Logistic{}
)

func NewLogistic(a Artifact) (*Logistic, error) {
	n := len(a.FeatureNames)
	if n == 0 {
		return nil, fmt.Errorf("%w: no features declared", ErrInvalidArtifact)
	}
	if len(a.Weights) != n {
		return nil, fmt.Errorf("%w: %d weights for %d features", ErrInvalidArtifact, len(a.Weights), n)
	}
	if a.Means != nil && len(a.Means) != n {
		return nil, fmt.Errorf("%w: %d means for %d features", ErrInvalidArtifact, len(a.Means), n)
	}
	if a.Scales != nil && len(a.Scales) != n {
		return nil, fmt.Errorf("%w: %d scales for %d features", ErrInvalidArtifact, len(a.Scales), n)
	}

	seen := make(map[string]struct{}, n)
	for i, name := range a.FeatureNames {
		if name == "" {
			return nil, fmt.Errorf("%w: empty feature name at %d", ErrInvalidArtifact, i)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, name)
		}
		seen[name] = struct{}{}
		if a.Scales != nil && a.Scales[i] == 0 {
			return nil, fmt.Errorf("%w: zero scale for %q", ErrInvalidArtifact, name)
		}
	}

	if a.Version == "" {
		a.Version = DefaultVersion
	}
	a.FeatureNames = append([]string(nil), a.FeatureNames...)
	return &Logistic{a: a}, nil
}

func (m *Logistic) Version() string {
	return m.a.Version
}

func (m *Logistic) FeatureNames() []string {
	return append([]string(nil), m.a.FeatureNames...)
}

func (m *Logistic) Probability(ctx context.Context, x []float64) (float64, error) {
	terms, err := m.terms(x)
	if err != nil {
		return 0, err
	}

	z := m.a.Intercept
	for _, t := range terms {
		z += t
	}
	return sigmoid(z), nil
}

func (m *Logistic) Attribute(ctx context.Context, x []float64) ([]Attribution, error) {
	terms, err := m.terms(x)
	if err != nil {
		return nil, err
	}

	out := make([]Attribution, len(terms))
	for i, t := range terms {
		out[i] = Attribution{Feature: m.a.FeatureNames[i], Value: t}
	}
	return out, nil
}

// terms returns w_i * z_i for each feature.
func (m *Logistic) terms(x []float64) ([]float64, error) {
	if len(x) != len(m.a.Weights) {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrFeatureMismatch, len(x), len(m.a.Weights))
	}

	out := make([]float64, len(x))
	for i, v := range x {
		if m.a.Means != nil {
			v -= m.a.Means[i]
		}
		if m.a.Scales != nil {
			v /= m.a.Scales[i]
		}
		out[i] = m.a.Weights[i] * v
	}
	return out, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
