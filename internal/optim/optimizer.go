// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: gradient descent with weight decay and optional momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers hold the modules they update, not a snapshot of their
// parameters, so modules appended to a Sequential after the optimizer was
// created are picked up on the next Step.
//
// Example usage:
//
//	optimizer, err := optim.NewSGD([]nn.Module{model}, optim.SGDConfig{LR: 0.1, WeightDecay: 1e-4})
//
//	for epoch := range epochs {
//	    scores, _ := model.Forward(x)
//	    loss, _ := criterion.Loss(scores, y)
//	    grad, _ := criterion.Backward(y)
//	    model.Backward(grad)
//	    optimizer.Step()
//	}
package optim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/tensor"
)

// ErrInvalidConfig is returned for negative or NaN hyperparameters.
var ErrInvalidConfig = errors.New("invalid optimizer config")

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - ZeroGrad: Clear gradients before next iteration
//   - GetLR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step updates every parameter that has a gradient, in place.
	// Parameters without a gradient are skipped.
	Step()

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// forEachParameter calls fn for every parameter of every module that
// currently holds a gradient.
func forEachParameter(modules []nn.Module, fn func(p *nn.Parameter, grad *mat.Dense)) {
	for _, module := range modules {
		for _, param := range module.Parameters() {
			grad := param.Grad()
			if grad == nil {
				// Parameter didn't participate in a backward pass, skip
				continue
			}
			if !tensor.Of(grad).Equal(tensor.Of(param.Value())) {
				panic(fmt.Sprintf("optim: gradient shape %v does not match parameter %q shape %v",
					tensor.Of(grad), param.Name(), tensor.Of(param.Value())))
			}
			fn(param, grad)
		}
	}
}

// effectiveGradient returns grad + weightDecay * value for weight
// parameters and a copy of grad otherwise. The stored gradient is not modified.
func effectiveGradient(param *nn.Parameter, grad *mat.Dense, weightDecay float64) *mat.Dense {
	eff := tensor.Clone(grad)
	if weightDecay != 0 && param.Kind() == nn.Weight {
		var decay mat.Dense
		decay.Scale(weightDecay, param.Value())
		eff.Add(eff, &decay)
	}
	return eff
}

// zeroGrad clears the gradients of every parameter in modules.
func zeroGrad(modules []nn.Module) {
	for _, module := range modules {
		for _, param := range module.Parameters() {
			param.ZeroGrad()
		}
	}
}

// checkLR rejects learning rates that would stall or reverse an update.
func checkLR(lr float64) error {
	if err := checkHyper("learning rate", lr); err != nil {
		return err
	}
	if lr == 0 {
		return fmt.Errorf("%w: learning rate must be positive", ErrInvalidConfig)
	}
	return nil
}

func checkHyper(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidConfig, name, v)
	}
	return nil
}
