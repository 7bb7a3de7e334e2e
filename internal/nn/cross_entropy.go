package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/parallel"
	"github.com/born-ml/mlp/internal/tensor"
)

// DefaultLogEpsilon is added to probabilities before taking the logarithm
// so that a probability that underflows to zero yields a finite loss.
const DefaultLogEpsilon = 1e-10

// CrossEntropyLoss computes softmax + cross-entropy for multi-class
// classification.
//
// Mathematical Formulation:
//
//	p = Softmax(scores)            (row-wise, max-shifted)
//	Loss = mean_i -log(p[i, y_i] + ε)
//
// Gradient (Backward):
//
//	∂L/∂scores = (p - y_one_hot) / N
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss()
//	scores, _ := model.Forward(x)            // [batch_size, num_classes]
//	loss, err := criterion.Loss(scores, y)   // y: one-hot [batch_size, num_classes]
//	grad, err := criterion.Backward(y)
//
// Key Properties:
//   - Expects raw scores (unnormalized logits) as input
//   - Subtracts the row maximum before exponentiating to prevent overflow
//   - Targets must be one-hot; anything else is rejected with a *ShapeError
type CrossEntropyLoss struct {
	epsilon float64
	probs   *mat.Dense // cached by Loss
}

// LossOption configures NewCrossEntropyLoss.
type LossOption func(*CrossEntropyLoss)

// WithEpsilon sets the floor added inside the logarithm.
func WithEpsilon(eps float64) LossOption {
	return func(c *CrossEntropyLoss) {
		c.epsilon = eps
	}
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss(opts ...LossOption) *CrossEntropyLoss {
	c := &CrossEntropyLoss{epsilon: DefaultLogEpsilon}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Loss computes the mean cross-entropy of scores against one-hot targets
// and caches the softmax probabilities for Backward.
//
// Parameters:
//   - scores: Model outputs with shape [batch_size, num_classes]
//   - target: One-hot targets with the same shape
//
// Returns the scalar loss, or a *ShapeError for mismatched shapes or a
// target that is not one-hot. A rejected call drops the cached
// probabilities, so Backward then reports an *OrderingError.
func (c *CrossEntropyLoss) Loss(scores, target *mat.Dense) (float64, error) {
	c.probs = nil

	if scores == nil || scores.IsEmpty() {
		return 0, &ShapeError{Op: "CrossEntropyLoss.Loss", Details: "empty scores"}
	}
	if err := checkTarget("CrossEntropyLoss.Loss", tensor.Of(scores), target); err != nil {
		return 0, err
	}

	probs := Softmax(scores)

	n, _ := probs.Dims()
	total := 0.0
	for i := range n {
		class := floats.MaxIdx(target.RawRowView(i))
		total += -math.Log(probs.At(i, class) + c.epsilon)
	}

	c.probs = probs
	return total / float64(n), nil
}

// Backward returns the gradient of the last Loss w.r.t. its scores:
// (probs - target) / N.
//
// Returns an *OrderingError if Loss has not been called yet.
func (c *CrossEntropyLoss) Backward(target *mat.Dense) (*mat.Dense, error) {
	if c.probs == nil {
		return nil, &OrderingError{Op: "CrossEntropyLoss.Backward"}
	}
	if err := checkTarget("CrossEntropyLoss.Backward", tensor.Of(c.probs), target); err != nil {
		return nil, err
	}

	n, _ := c.probs.Dims()
	grad := tensor.Clone(c.probs)
	grad.Sub(grad, target)
	grad.Scale(1/float64(n), grad)
	return grad, nil
}

// Probabilities returns a copy of the softmax output cached by the last
// Loss call, or nil before the first call.
func (c *CrossEntropyLoss) Probabilities() *mat.Dense {
	if c.probs == nil {
		return nil
	}
	return tensor.Clone(c.probs)
}

// Softmax computes the row-wise softmax of scores in a numerically stable way.
//
// Formula:
//
//	Softmax(z)[i] = exp(z[i] - max(z)) / Σ exp(z[j] - max(z))
func Softmax(scores mat.Matrix) *mat.Dense {
	probs := tensor.Clone(scores)
	parallel.Rows(probs, func(_ int, row []float64) {
		floats.AddConst(-floats.Max(row), row)
		for j, v := range row {
			row[j] = math.Exp(v)
		}
		floats.Scale(1/floats.Sum(row), row)
	}, parallel.DefaultConfig())
	return probs
}

// checkTarget verifies target has the given shape and is one-hot encoded.
func checkTarget(op string, want tensor.Shape, target *mat.Dense) error {
	if target == nil || target.IsEmpty() || !tensor.Of(target).Equal(want) {
		return &ShapeError{Op: op, Want: want, Got: shapeOrNil(target)}
	}
	n, _ := target.Dims()
	for i := range n {
		hot := 0
		for _, v := range target.RawRowView(i) {
			switch v {
			case 0:
			case 1:
				hot++
			default:
				return &ShapeError{Op: op, Details: fmt.Sprintf("target row %d is not one-hot: contains %v", i, v)}
			}
		}
		if hot != 1 {
			return &ShapeError{Op: op, Details: fmt.Sprintf("target row %d is not one-hot: %d entries set", i, hot)}
		}
	}
	return nil
}

// Accuracy computes the fraction of rows whose highest score matches the
// hot class of target.
//
// Parameters:
//   - scores: Model predictions [batch_size, num_classes]
//   - target: One-hot targets [batch_size, num_classes]
//
// Returns accuracy as a float between 0 and 1.
func Accuracy(scores, target *mat.Dense) (float64, error) {
	if scores == nil || scores.IsEmpty() {
		return 0, &ShapeError{Op: "Accuracy", Details: "empty scores"}
	}
	if err := checkTarget("Accuracy", tensor.Of(scores), target); err != nil {
		return 0, err
	}

	n, _ := scores.Dims()
	correct := 0
	for i := range n {
		if floats.MaxIdx(scores.RawRowView(i)) == floats.MaxIdx(target.RawRowView(i)) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}
