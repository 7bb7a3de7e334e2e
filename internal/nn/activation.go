package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// The derivative is taken as 0 at x = 0.
//
// Example:
//
//	relu := nn.NewReLU()
//	output, err := relu.Forward(input) // All negative values become 0
type ReLU struct {
	input *mat.Dense
}

// NewReLU creates a new ReLU activation module.
func NewReLU() *ReLU {
	return &ReLU{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU) Forward(input *mat.Dense) (*mat.Dense, error) {
	r.input = nil
	if input == nil || input.IsEmpty() {
		return nil, &ShapeError{Op: "ReLU.Forward", Details: "empty input batch"}
	}
	r.input = tensor.Clone(input)

	output := tensor.Clone(input)
	tensor.ApplyInPlace(output, func(v float64) float64 {
		return max(v, 0)
	})
	return output, nil
}

// Backward returns a new matrix equal to gradOutput with every position
// zeroed where the cached input was <= 0. gradOutput is not modified.
func (r *ReLU) Backward(gradOutput *mat.Dense) (*mat.Dense, error) {
	if r.input == nil {
		return nil, &OrderingError{Op: "ReLU.Backward"}
	}
	want := tensor.Of(r.input)
	if gradOutput == nil || gradOutput.IsEmpty() || !tensor.Of(gradOutput).Equal(want) {
		return nil, &ShapeError{Op: "ReLU.Backward", Want: want, Got: shapeOrNil(gradOutput)}
	}

	gradInput := tensor.Clone(gradOutput)
	rows, _ := gradInput.Dims()
	for i := range rows {
		mask := r.input.RawRowView(i)
		row := gradInput.RawRowView(i)
		for j := range row {
			if mask[j] <= 0 {
				row[j] = 0
			}
		}
	}
	return gradInput, nil
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU) Parameters() []*Parameter {
	return []*Parameter{}
}
