// SPDX-License-Identifier: EPL-2.0

package vbap

import (
	"fmt"
	"math"
	"slices"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// Solve returns the un-normalized gains g with basis * g = target, where the
// columns of basis are speaker unit vectors. basis is given as rows and must
// be square with the dimension of target.
func Solve(basis [][]float64, target []float64) ([]float64, error) {
	n := len(target)
	if len(basis) != n {
		return nil, fmt.Errorf("vbap: basis has %d rows, target has %d components", len(basis), n)
	}

	a := mat.NewDense(n, n, nil)
	for r, row := range basis {
		if len(row) != n {
			return nil, fmt.Errorf("vbap: basis row %d has %d columns, want %d", r, len(row), n)
		}
		a.SetRow(r, row)
	}

	var g mat.VecDense
	if err := g.SolveVec(a, mat.NewVecDense(n, slices.Clone(target))); err != nil {
		speakers := make([]int, n)
		for i := range speakers {
			speakers[i] = i
		}
		return nil, &SingularBasisError{Speakers: speakers, Err: err}
	}
	return slices.Clone(g.RawVector().Data), nil
}

// Normalize scales gains in place so that their squares sum to volNorm, the
// equal-power panning law. A zero volNorm or an all-zero gain vector yields
// silence.
func Normalize(gains []float64, volNorm float64) {
	power := vecmath.DotProduct(gains, gains)
	if volNorm == 0 || power == 0 {
		clear(gains)
		return
	}
	vecmath.ScaleBlockInPlace(gains, math.Sqrt(volNorm/power))
}

// normalizeRegion is Normalize for the gains of an active region. It works on
// the region's fixed-size array so the real-time path does not allocate.
func normalizeRegion(r *ActiveRegion, volNorm float64) {
	var power float64
	for i := range r.Size {
		power += r.Gains[i] * r.Gains[i]
	}
	if volNorm == 0 || power == 0 {
		r.Gains = [3]float64{}
		return
	}
	scale := math.Sqrt(volNorm / power)
	for i := range r.Size {
		r.Gains[i] *= scale
	}
}
