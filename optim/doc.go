// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent with L2 weight decay and optional momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Weight decay is applied only to parameters of kind nn.Weight; biases
// are never decayed. Parameters without a gradient are skipped.
//
// # Training Loop Pattern
//
//	optimizer, err := optim.NewSGD([]nn.Module{model}, optim.DefaultSGDConfig())
//
//	for epoch := range numEpochs {
//	    scores, _ := model.Forward(x)
//	    loss, _ := criterion.Loss(scores, y)
//	    grad, _ := criterion.Backward(y)
//	    model.Backward(grad)
//	    optimizer.Step()
//	}
package optim
