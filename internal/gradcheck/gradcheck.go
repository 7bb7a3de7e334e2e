// Package gradcheck compares analytic parameter gradients with central
// finite-difference estimates.
package gradcheck

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/nn"
)

// DefaultStep is the perturbation used for central differences.
const DefaultStep = 1e-5

// ErrNoGradient is returned by CheckParameter when the parameter has no
// analytic gradient to compare against.
var ErrNoGradient = errors.New("parameter has no gradient")

// LossFunc re-runs the forward pass and the loss with the current
// parameter values.
type LossFunc func() (float64, error)

// Numerical estimates d loss / d p for every entry of p with the central
// formula (f(x+h) - f(x-h)) / 2h.
//
// Each entry of p is perturbed in place and restored before moving on, so
// p holds its original values when Numerical returns, including on error.
func Numerical(f LossFunc, p *mat.Dense, step float64) (*mat.Dense, error) {
	if step <= 0 {
		step = DefaultStep
	}
	rows, cols := p.Dims()
	grad := mat.NewDense(rows, cols, nil)
	settings := &fd.Settings{Formula: fd.Central, Step: step}

	for i := range rows {
		for j := range cols {
			old := p.At(i, j)
			var firstErr error
			d := fd.Derivative(func(x float64) float64 {
				p.Set(i, j, x)
				loss, err := f()
				if err != nil && firstErr == nil {
					firstErr = err
				}
				return loss
			}, old, settings)
			p.Set(i, j, old)

			if firstErr != nil {
				return nil, fmt.Errorf("entry (%d, %d): %w", i, j, firstErr)
			}
			grad.Set(i, j, d)
		}
	}

	return grad, nil
}

// RelativeError returns ‖a − b‖ / (‖a‖ + ‖b‖) using Frobenius norms.
// Two all-zero matrices have relative error 0.
func RelativeError(a, b mat.Matrix) float64 {
	denom := mat.Norm(a, 2) + mat.Norm(b, 2)
	if denom == 0 {
		return 0
	}
	var diff mat.Dense
	diff.Sub(a, b)
	return mat.Norm(&diff, 2) / denom
}

// CheckParameter returns the relative error between param's analytic
// gradient and its numerical estimate under f.
//
// The analytic gradient must be computed by a backward pass before calling
// CheckParameter; f must only run forward passes.
func CheckParameter(f LossFunc, param *nn.Parameter, step float64) (float64, error) {
	analytic := param.Grad()
	if analytic == nil {
		return 0, fmt.Errorf("%s: %w", param.Name(), ErrNoGradient)
	}
	analytic = mat.DenseCopyOf(analytic)

	numeric, err := Numerical(f, param.Value(), step)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", param.Name(), err)
	}
	return RelativeError(analytic, numeric), nil
}
