package nn

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W + b
// where:
//   - x is the input batch with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias row with shape [1, out_features], broadcast over the batch
//   - y is the output with shape [batch_size, out_features]
//
// Weights are initialized from N(0, scale²) with scale DefaultInitScale.
// Biases are initialized to zeros.
//
// Example:
//
//	layer := nn.NewLinear(4, 16)
//	output, err := layer.Forward(input) // [N, 4] -> [N, 16]
type Linear struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter // [in_features, out_features]
	bias        *Parameter // [1, out_features]

	input *mat.Dense // cached by Forward
}

// LinearOption configures NewLinear.
type LinearOption func(*linearConfig)

type linearConfig struct {
	scale  float64
	src    rand.Source
	xavier bool
}

// WithInitScale sets the standard deviation of the weight initialization.
func WithInitScale(scale float64) LinearOption {
	return func(c *linearConfig) {
		c.scale = scale
	}
}

// WithSource sets the random source used to initialize weights.
func WithSource(src rand.Source) LinearOption {
	return func(c *linearConfig) {
		c.src = src
	}
}

// WithXavierInit switches weight initialization to Glorot uniform.
// The init scale is ignored.
func WithXavierInit() LinearOption {
	return func(c *linearConfig) {
		c.xavier = true
	}
}

// NewLinear creates a new Linear layer.
//
// Parameters:
//   - inFeatures: Number of input features
//   - outFeatures: Number of output features
//   - opts: Initialization options
//
// Panics if either dimension is not positive.
func NewLinear(inFeatures, outFeatures int, opts ...LinearOption) *Linear {
	if err := (tensor.Shape{inFeatures, outFeatures}).Validate(); err != nil {
		panic(fmt.Sprintf("NewLinear: %v", err))
	}

	cfg := linearConfig{scale: DefaultInitScale}
	for _, opt := range opts {
		opt(&cfg)
	}

	var w *mat.Dense
	if cfg.xavier {
		w = Xavier(inFeatures, outFeatures, cfg.src)
	} else {
		w = Normal(inFeatures, outFeatures, cfg.scale, cfg.src)
	}

	return &Linear{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      NewParameter("weight", w, Weight),
		bias:        NewParameter("bias", Zeros(1, outFeatures), Bias),
	}
}

// Forward computes x @ W + b and caches a copy of x.
//
// Returns a *ShapeError if input is not [N, in_features]. The cache from
// an earlier batch is dropped either way.
func (l *Linear) Forward(input *mat.Dense) (*mat.Dense, error) {
	l.input = nil

	if input == nil || input.IsEmpty() {
		return nil, &ShapeError{Op: "Linear.Forward", Details: "empty input batch"}
	}
	n, d := input.Dims()
	if d != l.inFeatures {
		return nil, &ShapeError{Op: "Linear.Forward", Want: tensor.Shape{n, l.inFeatures}, Got: tensor.Shape{n, d}}
	}

	var output mat.Dense
	output.Mul(input, l.weight.Value())
	if err := tensor.AddRowVector(&output, l.bias.Value()); err != nil {
		return nil, fmt.Errorf("Linear.Forward: %w", err)
	}

	l.input = tensor.Clone(input)
	return &output, nil
}

// Backward computes parameter gradients and the input gradient:
//
//	dW = xᵀ @ grad
//	db = sum of grad over the batch axis, shape [1, out_features]
//	dx = grad @ Wᵀ
//
// Returns an *OrderingError before the first Forward and a *ShapeError if
// gradOutput is not [N, out_features] for the cached batch size N.
func (l *Linear) Backward(gradOutput *mat.Dense) (*mat.Dense, error) {
	if l.input == nil {
		return nil, &OrderingError{Op: "Linear.Backward"}
	}
	n, _ := l.input.Dims()
	want := tensor.Shape{n, l.outFeatures}
	if gradOutput == nil || gradOutput.IsEmpty() || !tensor.Of(gradOutput).Equal(want) {
		return nil, &ShapeError{Op: "Linear.Backward", Want: want, Got: shapeOrNil(gradOutput)}
	}

	var gradWeight mat.Dense
	gradWeight.Mul(l.input.T(), gradOutput)
	l.weight.SetGrad(&gradWeight)
	l.bias.SetGrad(tensor.SumRows(gradOutput))

	var gradInput mat.Dense
	gradInput.Mul(gradOutput, l.weight.Value().T())
	return &gradInput, nil
}

// Parameters returns [weight, bias].
func (l *Linear) Parameters() []*Parameter {
	return []*Parameter{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear) OutFeatures() int {
	return l.outFeatures
}

func shapeOrNil(m *mat.Dense) tensor.Shape {
	if m == nil || m.IsEmpty() {
		return tensor.Shape{0, 0}
	}
	return tensor.Of(m)
}
