// Package train runs full-batch training of a Sequential model.
package train

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
)

// Config captures the knobs of a training run.
type Config struct {
	Epochs   int // Number of full-batch optimizer steps
	LogEvery int // Log every N steps (default: 10)
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 10
	}
	return nil
}

// History records the loss before every step.
type History struct {
	Losses []float64
}

// Initial returns the first recorded loss.
func (h History) Initial() float64 {
	if len(h.Losses) == 0 {
		return 0
	}
	return h.Losses[0]
}

// Final returns the last recorded loss.
func (h History) Final() float64 {
	if len(h.Losses) == 0 {
		return 0
	}
	return h.Losses[len(h.Losses)-1]
}

// Trainer wires a model, a loss and an optimizer together.
type Trainer struct {
	Model     *nn.Sequential
	Loss      *nn.CrossEntropyLoss
	Optimizer optim.Optimizer
	Logger    *slog.Logger // nil discards progress records
}

// Step runs one forward pass, loss, backward pass and optimizer update on
// the full batch. It returns the loss measured before the update.
func (t *Trainer) Step(x, target *mat.Dense) (float64, error) {
	scores, err := t.Model.Forward(x)
	if err != nil {
		return 0, fmt.Errorf("forward: %w", err)
	}
	loss, err := t.Loss.Loss(scores, target)
	if err != nil {
		return 0, fmt.Errorf("loss: %w", err)
	}
	grad, err := t.Loss.Backward(target)
	if err != nil {
		return 0, fmt.Errorf("loss backward: %w", err)
	}
	if _, err := t.Model.Backward(grad); err != nil {
		return 0, fmt.Errorf("backward: %w", err)
	}
	t.Optimizer.Step()
	return loss, nil
}

// Fit runs cfg.Epochs steps and returns the loss history. ctx is checked
// between steps only.
func (t *Trainer) Fit(ctx context.Context, cfg Config, x, target *mat.Dense) (History, error) {
	if t.Model == nil || t.Loss == nil || t.Optimizer == nil {
		return History{}, errors.New("trainer: model, loss and optimizer are required")
	}
	if err := cfg.Validate(); err != nil {
		return History{}, err
	}
	logger := t.logger()

	history := History{Losses: make([]float64, 0, cfg.Epochs)}
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return history, err
		}

		loss, err := t.Step(x, target)
		if err != nil {
			return history, fmt.Errorf("epoch %d: %w", epoch, err)
		}
		history.Losses = append(history.Losses, loss)

		if epoch%cfg.LogEvery == 0 || epoch == cfg.Epochs {
			logger.Info("train step", "epoch", epoch, "loss", loss, "lr", t.Optimizer.GetLR())
		}
	}

	return history, nil
}

// Evaluate returns the loss and accuracy of the model on a batch without
// updating any parameter.
func (t *Trainer) Evaluate(x, target *mat.Dense) (loss, accuracy float64, err error) {
	scores, err := t.Model.Forward(x)
	if err != nil {
		return 0, 0, fmt.Errorf("forward: %w", err)
	}
	loss, err = t.Loss.Loss(scores, target)
	if err != nil {
		return 0, 0, fmt.Errorf("loss: %w", err)
	}
	accuracy, err = nn.Accuracy(scores, target)
	if err != nil {
		return 0, 0, fmt.Errorf("accuracy: %w", err)
	}
	return loss, accuracy, nil
}

func (t *Trainer) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
