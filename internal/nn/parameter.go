package nn

import (
	"gonum.org/v1/gonum/mat"
)

// Kind classifies a parameter for regularization purposes.
type Kind int

const (
	// Weight parameters receive weight decay.
	Weight Kind = iota
	// Bias parameters are never decayed.
	Bias
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Weight:
		return "weight"
	case Bias:
		return "bias"
	default:
		return "unknown"
	}
}

// Parameter represents a trainable parameter in a neural network.
//
// The value is owned by the module that created it and is updated in place
// by an optimizer. The gradient has the same shape as the value and is
// replaced on every backward pass.
//
// Example:
//
//	weight := nn.NewParameter("weight", mat.NewDense(4, 3, nil), nn.Weight)
//	w := weight.Value()
//	grad := weight.Grad() // nil until the first backward pass
type Parameter struct {
	name  string     // Parameter name (e.g., "weight", "bias")
	kind  Kind       // Weight or Bias
	value *mat.Dense // The parameter values
	grad  *mat.Dense // Gradient (computed during backward pass)
}

// NewParameter creates a new trainable parameter.
//
// The value should be initialized before creating the Parameter.
// Gradient will be set by the owning module's backward pass.
func NewParameter(name string, value *mat.Dense, kind Kind) *Parameter {
	return &Parameter{
		name:  name,
		kind:  kind,
		value: value,
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Kind returns whether this is a weight or a bias.
func (p *Parameter) Kind() Kind {
	return p.kind
}

// Value returns the parameter matrix. Mutating it mutates the parameter.
func (p *Parameter) Value() *mat.Dense {
	return p.value
}

// Grad returns the gradient matrix.
//
// Returns nil if no gradient has been computed yet (before backward pass).
func (p *Parameter) Grad() *mat.Dense {
	return p.grad
}

// SetGrad sets the gradient matrix.
func (p *Parameter) SetGrad(grad *mat.Dense) {
	p.grad = grad
}

// ZeroGrad clears the gradient so optimizers skip this parameter until
// the next backward pass.
func (p *Parameter) ZeroGrad() {
	p.grad = nil
}
