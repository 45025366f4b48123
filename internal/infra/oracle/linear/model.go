package linear

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/yanqian/betterrest/internal/domain/bedtime"
)

// Kind is the artifact kind handled by this package.
const Kind = "linear"

// Artifact is the on-disk form of a trained linear sleep model.
type Artifact struct {
	Name         string    `yaml:"name"`
	Version      string    `yaml:"version"`
	Kind         string    `yaml:"kind"`
	Features     []string  `yaml:"features"`
	Output       string    `yaml:"output"`
	Intercept    float64   `yaml:"intercept"`
	Coefficients []float64 `yaml:"coefficients"`
}

// Model predicts actual sleep seconds as intercept + coefficients·features.
type Model struct {
	name         string
	version      string
	intercept    float64
	coefficients []float64
}

// Decode parses and validates a YAML artifact. Unknown fields are rejected so typos fail loudly.
func Decode(data []byte) (*Model, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("oracle artifact is empty")
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var artifact Artifact
	if err := decoder.Decode(&artifact); err != nil {
		return nil, fmt.Errorf("parse oracle artifact: %w", err)
	}
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return &Model{
		name:         artifact.Name,
		version:      artifact.Version,
		intercept:    artifact.Intercept,
		coefficients: slices.Clone(artifact.Coefficients),
	}, nil
}

// Validate checks that the artifact matches the estimator's feature schema.
func (a Artifact) Validate() error {
	if kind := strings.TrimSpace(a.Kind); kind != Kind {
		return fmt.Errorf("unsupported oracle kind %q", kind)
	}
	if !slices.Equal(a.Features, bedtime.FeatureNames) {
		return fmt.Errorf("oracle features %v do not match %v", a.Features, bedtime.FeatureNames)
	}
	if a.Output != bedtime.OutputName {
		return fmt.Errorf("oracle output %q does not match %q", a.Output, bedtime.OutputName)
	}
	if len(a.Coefficients) != len(a.Features) {
		return fmt.Errorf("oracle has %d coefficients for %d features", len(a.Coefficients), len(a.Features))
	}
	if !finite(a.Intercept) {
		return errors.New("oracle intercept must be finite")
	}
	for i, c := range a.Coefficients {
		if !finite(c) {
			return fmt.Errorf("oracle coefficient %d must be finite", i)
		}
	}
	return nil
}

// Predict implements bedtime.Oracle.
func (m *Model) Predict(_ context.Context, features bedtime.Features) (float64, error) {
	return m.intercept + floats.Dot(m.coefficients, features.Vector()), nil
}

// Version reports "<name>@<version>".
func (m *Model) Version() string {
	switch {
	case m.name == "":
		return m.version
	case m.version == "":
		return m.name
	default:
		return m.name + "@" + m.version
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

var _ bedtime.Oracle = (*Model)(nil)
