package optim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/nn"
)

// SGD implements gradient descent with L2 weight decay and optional momentum.
//
// Update rule without momentum:
//
//	g = grad + weight_decay * param   (weight parameters only)
//	param = param - lr * g
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + g
//	param = param - lr * velocity
//
// Bias parameters are never decayed.
//
// Example:
//
//	optimizer, err := optim.NewSGD([]nn.Module{model}, optim.DefaultSGDConfig())
//	...
//	optimizer.Step()
type SGD struct {
	modules     []nn.Module
	lr          float64
	weightDecay float64
	momentum    float64
	velocities  map[*nn.Parameter]*mat.Dense
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR          float64 // Learning rate (0 means DefaultLR)
	WeightDecay float64 // L2 coefficient applied to weight parameters (0 disables decay)
	Momentum    float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// Default SGD hyperparameters.
const (
	DefaultLR          = 0.01
	DefaultWeightDecay = 1e-4
)

// DefaultSGDConfig returns LR 0.01, weight decay 1e-4 and no momentum.
func DefaultSGDConfig() SGDConfig {
	return SGDConfig{
		LR:          DefaultLR,
		WeightDecay: DefaultWeightDecay,
	}
}

// Validate checks that all hyperparameters are finite and in range.
func (c SGDConfig) Validate() error {
	if err := checkHyper("learning rate", c.LR); err != nil {
		return err
	}
	if err := checkHyper("weight decay", c.WeightDecay); err != nil {
		return err
	}
	if err := checkHyper("momentum", c.Momentum); err != nil {
		return err
	}
	if c.Momentum >= 1 {
		return fmt.Errorf("%w: momentum must be < 1, got %v", ErrInvalidConfig, c.Momentum)
	}
	return nil
}

// NewSGD creates a new SGD optimizer.
//
// Parameters:
//   - modules: Modules whose parameters are updated on every Step
//   - config: SGD configuration (LR, WeightDecay, Momentum)
//
// Returns an error wrapping ErrInvalidConfig for out-of-range values.
func NewSGD(modules []nn.Module, config SGDConfig) (*SGD, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.LR == 0 {
		config.LR = DefaultLR
	}

	owned := make([]nn.Module, len(modules))
	copy(owned, modules)

	return &SGD{
		modules:     owned,
		lr:          config.LR,
		weightDecay: config.WeightDecay,
		momentum:    config.Momentum,
		velocities:  make(map[*nn.Parameter]*mat.Dense),
	}, nil
}

// Step performs a single optimization step.
//
// Parameters with no gradient are skipped.
func (s *SGD) Step() {
	forEachParameter(s.modules, func(param *nn.Parameter, grad *mat.Dense) {
		update := effectiveGradient(param, grad, s.weightDecay)

		if s.momentum != 0 {
			velocity, exists := s.velocities[param]
			if !exists {
				r, c := update.Dims()
				velocity = mat.NewDense(r, c, nil)
				s.velocities[param] = velocity
			}
			velocity.Scale(s.momentum, velocity)
			velocity.Add(velocity, update)
			update = velocity
		}

		var scaled mat.Dense
		scaled.Scale(s.lr, update)
		param.Value().Sub(param.Value(), &scaled)
	})
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.modules)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training. Returns an error
// wrapping ErrInvalidConfig, and keeps the old rate, unless lr is finite
// and positive.
func (s *SGD) SetLR(lr float64) error {
	if err := checkLR(lr); err != nil {
		return err
	}
	s.lr = lr
	return nil
}

// WeightDecay returns the L2 coefficient applied to weight parameters.
func (s *SGD) WeightDecay() float64 {
	return s.weightDecay
}
