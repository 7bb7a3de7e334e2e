// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/nn"
)

// Module interface defines the common interface for all neural network modules.
type Module = nn.Module

// Parameter represents a trainable parameter in a neural network.
type Parameter = nn.Parameter

// Kind classifies a parameter as Weight (decayed) or Bias (not decayed).
type Kind = nn.Kind

// Parameter kinds.
const (
	Weight = nn.Weight
	Bias   = nn.Bias
)

// NewParameter creates a new parameter with the given name, value and kind.
func NewParameter(name string, value *mat.Dense, kind Kind) *Parameter {
	return nn.NewParameter(name, value, kind)
}

// ParameterMap returns a module's parameters keyed by name.
func ParameterMap(m Module) map[string]*Parameter {
	return nn.ParameterMap(m)
}

// GradientMap returns a module's current gradients keyed by parameter name.
func GradientMap(m Module) map[string]*mat.Dense {
	return nn.GradientMap(m)
}

// Errors

// ShapeError reports inputs whose dimensions are incompatible.
type ShapeError = nn.ShapeError

// OrderingError reports Backward called before Forward.
type OrderingError = nn.OrderingError

// Sentinel errors matched with errors.Is.
var (
	ErrShape    = nn.ErrShape
	ErrOrdering = nn.ErrOrdering
)

// Layers

// Linear represents a fully connected (dense) layer.
type Linear = nn.Linear

// LinearOption configures NewLinear.
type LinearOption = nn.LinearOption

// DefaultInitScale is the default standard deviation of Linear weights.
const DefaultInitScale = nn.DefaultInitScale

// NewLinear creates a new linear layer with N(0, 0.01²) weights and zero bias.
//
// Example:
//
//	layer := nn.NewLinear(4, 16, nn.WithSource(rand.NewPCG(1, 2)))
func NewLinear(inFeatures, outFeatures int, opts ...LinearOption) *Linear {
	return nn.NewLinear(inFeatures, outFeatures, opts...)
}

// WithInitScale sets the standard deviation of the weight initialization.
func WithInitScale(scale float64) LinearOption {
	return nn.WithInitScale(scale)
}

// WithSource sets the random source used to initialize weights.
func WithSource(src rand.Source) LinearOption {
	return nn.WithSource(src)
}

// WithXavierInit switches weight initialization to Glorot uniform.
func WithXavierInit() LinearOption {
	return nn.WithXavierInit()
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU = nn.ReLU

// NewReLU creates a new ReLU activation layer.
func NewReLU() *ReLU {
	return nn.NewReLU()
}

// Loss Functions

// CrossEntropyLoss represents softmax + cross-entropy for classification.
type CrossEntropyLoss = nn.CrossEntropyLoss

// LossOption configures NewCrossEntropyLoss.
type LossOption = nn.LossOption

// NewCrossEntropyLoss creates a new cross-entropy loss function.
//
// Example:
//
//	criterion := nn.NewCrossEntropyLoss()
//	loss, err := criterion.Loss(scores, oneHot)
func NewCrossEntropyLoss(opts ...LossOption) *CrossEntropyLoss {
	return nn.NewCrossEntropyLoss(opts...)
}

// WithEpsilon sets the floor added to probabilities inside the logarithm.
func WithEpsilon(eps float64) LossOption {
	return nn.WithEpsilon(eps)
}

// Softmax computes the numerically stable row-wise softmax of scores.
func Softmax(scores mat.Matrix) *mat.Dense {
	return nn.Softmax(scores)
}

// Accuracy computes the fraction of rows whose argmax matches the one-hot target.
func Accuracy(scores, target *mat.Dense) (float64, error) {
	return nn.Accuracy(scores, target)
}

// Sequential

// Sequential represents a sequential container of modules.
type Sequential = nn.Sequential

// NewSequential creates a new sequential container owning its own module list.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(4, 16),
//	    nn.NewReLU(),
//	    nn.NewLinear(16, 3),
//	)
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// Initialization

// Normal creates a [rows, cols] matrix drawn from N(0, scale²).
func Normal(rows, cols int, scale float64, src rand.Source) *mat.Dense {
	return nn.Normal(rows, cols, scale, src)
}

// Xavier creates a [fanIn, fanOut] matrix drawn from the Glorot uniform distribution.
func Xavier(fanIn, fanOut int, src rand.Source) *mat.Dense {
	return nn.Xavier(fanIn, fanOut, src)
}

// Zeros creates a [rows, cols] matrix filled with zeros.
func Zeros(rows, cols int) *mat.Dense {
	return nn.Zeros(rows, cols)
}
