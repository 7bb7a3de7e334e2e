package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// AddRowVector adds row (shape [1, cols]) to every row of m in place.
//
// This is the explicit form of "broadcast add over the batch axis":
// m[i, j] += row[0, j] for every i.
func AddRowVector(m *mat.Dense, row mat.Matrix) error {
	got, _, err := BroadcastShapes(Of(m), Of(row))
	if err != nil {
		return err
	}
	if rr, _ := row.Dims(); rr != 1 || !got.Equal(Of(m)) {
		return fmt.Errorf("cannot broadcast %v over rows of %v", Of(row), Of(m))
	}

	r, _ := m.Dims()
	bias := mat.Row(nil, 0, row)
	for i := range r {
		floats.Add(m.RawRowView(i), bias)
	}
	return nil
}

// SumRows reduces m over the batch axis, keeping the rank: [rows, cols] → [1, cols].
func SumRows(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(1, c, nil)
	acc := out.RawRowView(0)
	row := make([]float64, c)
	for i := range r {
		mat.Row(row, i, m)
		floats.Add(acc, row)
	}
	return out
}

// Clone returns a freshly allocated copy of m.
func Clone(m mat.Matrix) *mat.Dense {
	return mat.DenseCopyOf(m)
}

// ApplyInPlace sets m[i, j] = f(m[i, j]) for every element.
func ApplyInPlace(m *mat.Dense, f func(v float64) float64) {
	r, _ := m.Dims()
	for i := range r {
		row := m.RawRowView(i)
		for j, v := range row {
			row[j] = f(v)
		}
	}
}
