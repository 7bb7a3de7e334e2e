// Package nn implements the neural network building blocks of mlp.
//
// This package provides:
//   - Module interface: forward/backward contract for every layer
//   - Parameter: trainable values with their gradients
//   - Linear: fully connected layer
//   - ReLU: rectified linear activation
//   - Sequential: container for stacking layers
//   - CrossEntropyLoss: softmax + cross-entropy for classification
//
// Gradients are derived by hand per layer. Each layer caches the input of
// its last Forward call and consumes it in Backward, so Forward must run on
// a batch before Backward runs on the gradient for that batch.
package nn

import (
	"gonum.org/v1/gonum/mat"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build a network:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(4, 16),
//	    nn.NewReLU(),
//	    nn.NewLinear(16, 3),
//	)
//
// Modules are not safe for concurrent use.
type Module interface {
	// Forward computes the output of the module for a batch [N, in]
	// and caches whatever Backward needs.
	Forward(input *mat.Dense) (*mat.Dense, error)

	// Backward receives the gradient of the loss w.r.t. the last Forward
	// output and returns the gradient w.r.t. that Forward's input. Parameter
	// gradients are overwritten as a side effect.
	//
	// Returns an *OrderingError if Forward has never been called.
	Backward(gradOutput *mat.Dense) (*mat.Dense, error)

	// Parameters returns all trainable parameters of this module.
	//
	// Returns an empty slice for modules without trainable parameters
	// (e.g., activation functions).
	Parameters() []*Parameter
}

// ParameterMap returns the module's parameters keyed by name.
func ParameterMap(m Module) map[string]*Parameter {
	params := m.Parameters()
	out := make(map[string]*Parameter, len(params))
	for _, p := range params {
		out[p.Name()] = p
	}
	return out
}

// GradientMap returns the module's current gradients keyed by parameter name.
//
// Parameters whose gradient has not been computed yet are omitted.
func GradientMap(m Module) map[string]*mat.Dense {
	params := m.Parameters()
	out := make(map[string]*mat.Dense, len(params))
	for _, p := range params {
		if g := p.Grad(); g != nil {
			out[p.Name()] = g
		}
	}
	return out
}
