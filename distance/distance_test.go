package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 32},
		{"Zero", []float32{0, 0, 0}, []float32{0, 0, 0}, 0},
		{"Mixed", []float32{1, -1, 2}, []float32{1, 1, -2}, -4},
		{"Empty", []float32{}, []float32{}, 0},
		{"Single", []float32{2}, []float32{3}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Dot(tt.a, tt.b), 1e-9)
			assert.InDelta(t, -tt.expected, NegativeDot(tt.a, tt.b), 1e-9)
		})
	}
}

func TestL2(t *testing.T) {
	tests := []struct {
		name    string
		a, b    []float32
		squared float64
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 27},
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"Mixed", []float32{1, -1}, []float32{-1, 1}, 8}, // (1 - -1)^2 + (-1 - 1)^2
		{"Empty", []float32{}, []float32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.squared, SquaredL2(tt.a, tt.b), 1e-9)
			assert.InDelta(t, math.Sqrt(tt.squared), L2(tt.a, tt.b), 1e-9)
		})
	}

	t.Run("Symmetric", func(t *testing.T) {
		a := []float32{0.9, 0.1, 0, 0}
		b := []float32{0.85, 0.15, 0, 0}
		assert.Equal(t, L2(a, b), L2(b, a))
	})
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 2.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 2.0, Cosine([]float32{0, 0}, []float32{1, 0}))
}

func TestMetric(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "L2", MetricL2.String())
		assert.Equal(t, "Cosine", MetricCosine.String())
		assert.Equal(t, "Dot", MetricDot.String())
		assert.Equal(t, "Unknown(99)", Metric(99).String())
	})

	t.Run("Parse", func(t *testing.T) {
		for _, m := range []Metric{MetricL2, MetricCosine, MetricDot} {
			got, err := ParseMetric(m.String())
			require.NoError(t, err)
			assert.Equal(t, m, got)
		}

		got, err := ParseMetric("")
		require.NoError(t, err)
		assert.Equal(t, MetricL2, got)

		_, err = ParseMetric("hamming")
		assert.Error(t, err)
	})

	t.Run("Provider", func(t *testing.T) {
		f, err := Provider(MetricL2)
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt(27), f([]float32{1, 2, 3}, []float32{4, 5, 6}), 1e-9)

		f, err = Provider(MetricDot)
		require.NoError(t, err)
		assert.InDelta(t, -32.0, f([]float32{1, 2, 3}, []float32{4, 5, 6}), 1e-9)

		f, err = Provider(MetricCosine)
		require.NoError(t, err)
		assert.NotNil(t, f)

		_, err = Provider(Metric(99))
		assert.Error(t, err)
	})
}
