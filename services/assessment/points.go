package assessment

import "math"

// SplitBudget distributes a fixed point budget across n questions. Each
// question receives budget/n; when the division is not exact the first
// budget mod n questions (in order-index order) take the ceiling value and
// the rest the floor, so the values always sum to exactly the budget.
// Integer budgets split into integer points; fractional budgets split at
// cent resolution. Returns nil when n <= 0.
func SplitBudget(budget float64, n int) []float64 {
	if n <= 0 || budget <= 0 {
		return nil
	}

	if budget == math.Trunc(budget) {
		b := int(budget)
		floor := b / n
		rem := b % n
		out := make([]float64, n)
		for i := range out {
			v := floor
			if i < rem {
				v++
			}
			out[i] = float64(v)
		}
		return out
	}

	cents := int(math.Round(budget * 100))
	floor := cents / n
	rem := cents % n
	out := make([]float64, n)
	for i := range out {
		v := floor
		if i < rem {
			v++
		}
		out[i] = float64(v) / 100
	}
	return out
}
