package backend

import "time"

// Attribution is the signed contribution of one feature to a prediction.
type Attribution struct {
	Feature string
	Value   float64
}

// Artifact is the on-disk form of a logistic model.
type Artifact struct {
	Version      string    `json:"version"`
	FeatureNames []string  `json:"feature_names"`
	Intercept    float64   `json:"intercept"`
	Weights      []float64 `json:"weights"`
	Means        []float64 `json:"means,omitempty"`
	Scales       []float64 `json:"scales,omitempty"`
}

// Loaded is one immutable snapshot of the active backend.
type Loaded struct {
	Model      Model
	Attributor Attributor
	Source     string
	LoadedAt   time.Time
}

// RemoteConfig configures a scorer reached over HTTP.
type RemoteConfig struct {
	URL          string
	Timeout      time.Duration
	FeatureNames []string
	Version      string
}

type remoteRequest struct {
	Features map[string]float64 `json:"features"`
	Order    []string           `json:"order"`
}

type remoteResponse struct {
	Probability  *float64           `json:"probability"`
	Attributions map[string]float64 `json:"attributions,omitempty"`
	Version      string             `json:"version,omitempty"`
}
