// SPDX-License-Identifier: EPL-2.0

package testutil

import "testing"

func TestSumSquares(t *testing.T) {
	t.Parallel()

	if got := SumSquares([]float64{0.6, 0.8}); got < 1-Eps || got > 1+Eps {
		t.Errorf("SumSquares() = %v, want 1", got)
	}
	if got := SumSquares(nil); got != 0 {
		t.Errorf("SumSquares(nil) = %v, want 0", got)
	}
}

func TestMaxAbsDiff(t *testing.T) {
	t.Parallel()

	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if d != 1 {
		t.Errorf("MaxAbsDiff() = %v, want 1", d)
	}

	if _, err := MaxAbsDiff([]float64{1}, nil); err == nil {
		t.Error("MaxAbsDiff() error = nil, want length mismatch")
	}
}
