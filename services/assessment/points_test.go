package assessment_test

import (
	"testing"

	"learnly/services/assessment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBudget(t *testing.T) {
	tests := []struct {
		name   string
		budget float64
		n      int
		want   []float64
	}{
		{name: "single question takes everything", budget: 10, n: 1, want: []float64{10}},
		{name: "even split", budget: 10, n: 2, want: []float64{5, 5}},
		{name: "remainder goes to the first questions", budget: 10, n: 3, want: []float64{4, 3, 3}},
		{name: "four questions", budget: 10, n: 4, want: []float64{3, 3, 2, 2}},
		{name: "six questions", budget: 10, n: 6, want: []float64{2, 2, 2, 2, 1, 1}},
		{name: "more questions than points", budget: 10, n: 12, want: []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0}},
		{name: "fractional budget splits at cents", budget: 7.5, n: 2, want: []float64{3.75, 3.75}},
		{name: "fractional with remainder", budget: 0.1, n: 3, want: []float64{0.04, 0.03, 0.03}},
		{name: "zero questions", budget: 10, n: 0, want: nil},
		{name: "negative count", budget: 10, n: -1, want: nil},
		{name: "zero budget", budget: 0, n: 3, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, assessment.SplitBudget(tc.budget, tc.n))
		})
	}
}

// The values must always sum to exactly the budget and never differ by
// more than one point, whatever the question count.
func TestSplitBudgetInvariants(t *testing.T) {
	const budget = 10.0
	for n := 1; n <= 50; n++ {
		points := assessment.SplitBudget(budget, n)
		require.Len(t, points, n)

		sum := 0.0
		min, max := points[0], points[0]
		for _, p := range points {
			sum += p
			if p < min {
				min = p
			}
			if p > max {
				max = p
			}
		}
		assert.InDelta(t, budget, sum, 1e-9, "n=%d", n)
		assert.LessOrEqual(t, max-min, 1.0, "n=%d", n)
	}
}
