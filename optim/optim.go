// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// ErrInvalidConfig is returned for negative or NaN hyperparameters.
var ErrInvalidConfig = optim.ErrInvalidConfig

// SGD (Stochastic Gradient Descent)

// SGD represents gradient descent with weight decay and optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// Default SGD hyperparameters.
const (
	DefaultLR          = optim.DefaultLR
	DefaultWeightDecay = optim.DefaultWeightDecay
)

// DefaultSGDConfig returns LR 0.01 and weight decay 1e-4.
func DefaultSGDConfig() SGDConfig {
	return optim.DefaultSGDConfig()
}

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer, err := optim.NewSGD(
//	    []nn.Module{model},
//	    optim.SGDConfig{
//	        LR:          0.1,
//	        WeightDecay: 1e-4,
//	    },
//	)
func NewSGD(modules []nn.Module, config SGDConfig) (*SGD, error) {
	return optim.NewSGD(modules, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
func NewAdam(modules []nn.Module, config AdamConfig) (*Adam, error) {
	return optim.NewAdam(modules, config)
}
