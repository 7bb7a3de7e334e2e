package optim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/nn"
)

// Adam implements the Adam optimizer with bias correction.
//
// Update rule:
//
//	g = grad + weight_decay * param   (weight parameters only)
//	m = β1 * m + (1 - β1) * g
//	v = β2 * v + (1 - β2) * g²
//	m̂ = m / (1 - β1^t)
//	v̂ = v / (1 - β2^t)
//	param = param - lr * m̂ / (√v̂ + ε)
type Adam struct {
	modules     []nn.Module
	lr          float64
	beta1       float64
	beta2       float64
	eps         float64
	weightDecay float64
	t           int                          // Timestep for bias correction
	m           map[*nn.Parameter]*mat.Dense // First moment estimates
	v           map[*nn.Parameter]*mat.Dense // Second moment estimates
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR          float64    // Learning rate (default: 0.001)
	Betas       [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps         float64    // Term for numerical stability (default: 1e-8)
	WeightDecay float64    // L2 coefficient applied to weight parameters (0 disables decay)
}

// NewAdam creates a new Adam optimizer. Zero fields take their defaults.
func NewAdam(modules []nn.Module, config AdamConfig) (*Adam, error) {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	for name, v := range map[string]float64{
		"learning rate": config.LR,
		"beta1":         config.Betas[0],
		"beta2":         config.Betas[1],
		"epsilon":       config.Eps,
		"weight decay":  config.WeightDecay,
	} {
		if err := checkHyper(name, v); err != nil {
			return nil, err
		}
	}
	if config.Betas[0] >= 1 || config.Betas[1] >= 1 {
		return nil, fmt.Errorf("%w: betas must be < 1, got %v", ErrInvalidConfig, config.Betas)
	}

	owned := make([]nn.Module, len(modules))
	copy(owned, modules)

	return &Adam{
		modules:     owned,
		lr:          config.LR,
		beta1:       config.Betas[0],
		beta2:       config.Betas[1],
		eps:         config.Eps,
		weightDecay: config.WeightDecay,
		m:           make(map[*nn.Parameter]*mat.Dense),
		v:           make(map[*nn.Parameter]*mat.Dense),
	}, nil
}

// Step performs a single optimization step.
func (a *Adam) Step() {
	a.t++

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	forEachParameter(a.modules, func(param *nn.Parameter, grad *mat.Dense) {
		g := effectiveGradient(param, grad, a.weightDecay)
		rows, cols := g.Dims()

		m, ok := a.m[param]
		if !ok {
			m = mat.NewDense(rows, cols, nil)
			a.m[param] = m
		}
		v, ok := a.v[param]
		if !ok {
			v = mat.NewDense(rows, cols, nil)
			a.v[param] = v
		}

		value := param.Value()
		for i := range rows {
			for j := range cols {
				gij := g.At(i, j)

				// Biased first and second moment estimates
				mij := a.beta1*m.At(i, j) + (1.0-a.beta1)*gij
				vij := a.beta2*v.At(i, j) + (1.0-a.beta2)*gij*gij
				m.Set(i, j, mij)
				v.Set(i, j, vij)

				mHat := mij / biasCorrection1
				vHat := vij / biasCorrection2
				value.Set(i, j, value.At(i, j)-a.lr*mHat/(math.Sqrt(vHat)+a.eps))
			}
		}
	})
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.modules)
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate. Invalid rates are rejected as in SGD.SetLR.
func (a *Adam) SetLR(lr float64) error {
	if err := checkLR(lr); err != nil {
		return err
	}
	a.lr = lr
	return nil
}
