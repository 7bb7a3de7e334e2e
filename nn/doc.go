// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU
//   - Loss functions: CrossEntropyLoss (softmax + cross-entropy)
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Normal, Xavier, Zeros
//
// Every layer implements Forward and a hand-derived Backward. Forward caches
// its input; Backward consumes that cache, fills the layer's parameter
// gradients and returns the gradient w.r.t. the input.
//
// # Basic Usage
//
//	model := nn.NewSequential(
//	    nn.NewLinear(4, 16),
//	    nn.NewReLU(),
//	    nn.NewLinear(16, 3),
//	)
//	criterion := nn.NewCrossEntropyLoss()
//
//	scores, err := model.Forward(x)     // [N, 3]
//	loss, err := criterion.Loss(scores, y)
//	grad, err := criterion.Backward(y)
//	_, err = model.Backward(grad)       // parameter gradients are now set
//
// # Errors
//
// Shape problems are reported as *ShapeError (errors.Is(err, ErrShape)),
// calling Backward before Forward as *OrderingError
// (errors.Is(err, ErrOrdering)).
package nn
