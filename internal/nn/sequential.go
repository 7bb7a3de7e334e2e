package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input. Backward walks the
// modules in reverse order, threading the gradient back to the input.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(4, 16),
//	    nn.NewReLU(),
//	    nn.NewLinear(16, 3),
//	)
//
//	scores, err := model.Forward(input)
//
// Sequential holds no cache of its own; Backward relies on every module
// having seen the matching Forward.
type Sequential struct {
	modules []Module
}

// NewSequential creates a new Sequential container.
//
// The modules are copied into a slice owned by the container, so later
// changes to the caller's slice do not affect it.
func NewSequential(modules ...Module) *Sequential {
	owned := make([]Module, len(modules))
	copy(owned, modules)
	return &Sequential{
		modules: owned,
	}
}

// Forward applies all modules in sequence.
//
// Returns the output of the last module, or the first error wrapped with
// the index of the module that produced it.
func (s *Sequential) Forward(input *mat.Dense) (*mat.Dense, error) {
	output := input

	for i, module := range s.modules {
		var err error
		output, err = module.Forward(output)
		if err != nil {
			return nil, fmt.Errorf("module %d forward: %w", i, err)
		}
	}

	return output, nil
}

// Backward applies all modules' Backward in reverse order and returns the
// gradient w.r.t. the pipeline's input.
func (s *Sequential) Backward(gradOutput *mat.Dense) (*mat.Dense, error) {
	grad := gradOutput

	for i := len(s.modules) - 1; i >= 0; i-- {
		var err error
		grad, err = s.modules[i].Backward(grad)
		if err != nil {
			return nil, fmt.Errorf("module %d backward: %w", i, err)
		}
	}

	return grad, nil
}

// Parameters returns all trainable parameters from all modules, in module order.
func (s *Sequential) Parameters() []*Parameter {
	params := []*Parameter{}

	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}

	return params
}

// NamedParameters returns every parameter keyed by "<module index>.<name>"
// (e.g., "0.weight", "0.bias", "2.weight") to avoid name collisions.
func (s *Sequential) NamedParameters() map[string]*Parameter {
	named := make(map[string]*Parameter)

	for i, module := range s.modules {
		for _, p := range module.Parameters() {
			named[fmt.Sprintf("%d.%s", i, p.Name())] = p
		}
	}

	return named
}

// Add appends a module to the sequence.
//
// This allows building models incrementally:
//
//	model := nn.NewSequential()
//	model.Add(nn.NewLinear(4, 16))
//	model.Add(nn.NewReLU())
//	model.Add(nn.NewLinear(16, 3))
func (s *Sequential) Add(module Module) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Module(index int) Module {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// Modules returns a copy of the module list.
func (s *Sequential) Modules() []Module {
	out := make([]Module, len(s.modules))
	copy(out, s.modules)
	return out
}
