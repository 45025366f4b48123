package linear

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/betterrest/internal/domain/bedtime"
)

const validArtifact = `
name: sleep-calculator
version: "2022.08"
kind: linear
features: [wake, estimatedSleep, coffee]
output: actualSleep
intercept: -1200
coefficients: [0.01, 3600, 900]
`

func TestDecodeAndPredict(t *testing.T) {
	model, err := Decode([]byte(validArtifact))
	require.NoError(t, err)
	require.Equal(t, "sleep-calculator@2022.08", model.Version())

	got, err := model.Predict(context.Background(), bedtime.Features{Wake: 25200, EstimatedSleep: 8, Coffee: 1})
	require.NoError(t, err)
	require.InDelta(t, 28752.0, got, 1e-9)
}

func TestDecodeDrivesEstimator(t *testing.T) {
	model, err := Decode([]byte(validArtifact))
	require.NoError(t, err)

	rec, err := bedtime.Estimate(context.Background(), staticSource{model}, bedtime.DefaultInput(), bedtime.Clock12h)
	require.NoError(t, err)
	require.Equal(t, "11:00 PM", rec.Bedtime)
	require.Equal(t, "sleep-calculator@2022.08", rec.ModelVersion)
}

func TestDecodeRejectsSchemaMismatch(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"unknown field":  validArtifact + "bias: 3\n",
		"wrong kind":     "kind: tree\nfeatures: [wake, estimatedSleep, coffee]\noutput: actualSleep\ncoefficients: [1, 1, 1]\n",
		"wrong order":    "kind: linear\nfeatures: [coffee, wake, estimatedSleep]\noutput: actualSleep\ncoefficients: [1, 1, 1]\n",
		"wrong output":   "kind: linear\nfeatures: [wake, estimatedSleep, coffee]\noutput: sleep\ncoefficients: [1, 1, 1]\n",
		"short weights":  "kind: linear\nfeatures: [wake, estimatedSleep, coffee]\noutput: actualSleep\ncoefficients: [1, 1]\n",
		"infinite value": "kind: linear\nfeatures: [wake, estimatedSleep, coffee]\noutput: actualSleep\ncoefficients: [1, .inf, 1]\n",
		"not yaml":       "{{{",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw))
			require.Error(t, err)
		})
	}
}

type staticSource struct {
	oracle bedtime.Oracle
}

func (s staticSource) Load(context.Context) (bedtime.Oracle, error) {
	return s.oracle, nil
}
