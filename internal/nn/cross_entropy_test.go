package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/nn"
)

// TestCrossEntropyLoss_Forward tests the loss on a single sample.
func TestCrossEntropyLoss_Forward(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss()

	// log_softmax([2, 1])[0] = 2 - (2 + log(1 + e^-1)) = -0.31326
	scores := mat.NewDense(1, 2, []float64{2, 1})
	loss, err := criterion.Loss(scores, oneHot([]int{0}, 2))
	require.NoError(t, err)

	assert.InDelta(t, math.Log(1+math.Exp(-1)), loss, 1e-9)
}

// TestCrossEntropyLoss_Uniform checks that equal scores give log(C).
func TestCrossEntropyLoss_Uniform(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss()

	loss, err := criterion.Loss(mat.NewDense(4, 3, nil), oneHot([]int{0, 1, 2, 1}, 3))
	require.NoError(t, err)

	assert.InDelta(t, math.Log(3), loss, 1e-9)
	assert.GreaterOrEqual(t, loss, 0.0)
}

// TestCrossEntropyLoss_Batch checks the mean over samples.
func TestCrossEntropyLoss_Batch(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss()
	scores := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		3, 1, 2,
		2, 3, 1,
	})
	target := oneHot([]int{2, 0, 1}, 3)

	loss, err := criterion.Loss(scores, target)
	require.NoError(t, err)

	// Every row is a permutation of [1, 2, 3] with the target on the 3.
	want := -math.Log(math.Exp(3) / (math.Exp(1) + math.Exp(2) + math.Exp(3)))
	assert.InDelta(t, want, loss, 1e-9)
}

// TestCrossEntropyLoss_NumericalStability feeds scores that overflow a
// naive exp and a probability that underflows to zero.
func TestCrossEntropyLoss_NumericalStability(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss()
	scores := mat.NewDense(2, 3, []float64{
		1000, 999, -1000,
		-1000, 0, 1000,
	})

	loss, err := criterion.Loss(scores, oneHot([]int{2, 0}, 3))
	require.NoError(t, err)

	assert.False(t, math.IsNaN(loss) || math.IsInf(loss, 0), "loss = %v", loss)
	// Both true-class probabilities underflow to exactly 0, so the loss is -log(ε).
	assert.InDelta(t, -math.Log(nn.DefaultLogEpsilon), loss, 1e-6)

	probs := criterion.Probabilities()
	for i := range 2 {
		for _, p := range probs.RawRowView(i) {
			assert.False(t, math.IsNaN(p))
		}
	}
}

func TestCrossEntropyLoss_Epsilon(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss(nn.WithEpsilon(1e-3))

	loss, err := criterion.Loss(mat.NewDense(1, 2, []float64{0, -2000}), oneHot([]int{1}, 2))
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(1e-3), loss, 1e-9)
}

// TestCrossEntropyLoss_RowStochastic checks that probabilities are in
// [0, 1] and every row sums to 1.
func TestCrossEntropyLoss_RowStochastic(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss()
	assert.Nil(t, criterion.Probabilities(), "no probabilities before Loss")

	for _, scale := range []float64{0.01, 1, 100, 1e4} {
		scores := mat.NewDense(16, 5, nil)
		scores.Scale(scale, randomBatch(16, 5, uint64(scale*100)))

		_, err := criterion.Loss(scores, oneHot([]int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4, 0, 1, 2, 3, 4, 0}, 5))
		require.NoError(t, err)

		probs := criterion.Probabilities()
		for i := range 16 {
			row := probs.RawRowView(i)
			assert.InDelta(t, 1.0, floats.Sum(row), 1e-6, "row %d at scale %v", i, scale)
			for _, p := range row {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0)
			}
		}
	}
}

func TestCrossEntropyLoss_ProbabilitiesIsCopy(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss()
	target := oneHot([]int{0}, 2)
	_, err := criterion.Loss(mat.NewDense(1, 2, []float64{1, 0}), target)
	require.NoError(t, err)

	criterion.Probabilities().Zero()

	grad, err := criterion.Backward(target)
	require.NoError(t, err)
	assert.NotZero(t, grad.At(0, 1))
}

// TestCrossEntropyLoss_Backward checks (probs - target) / N.
func TestCrossEntropyLoss_Backward(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss()
	target := oneHot([]int{0, 2}, 3)

	_, err := criterion.Loss(mat.NewDense(2, 3, nil), target)
	require.NoError(t, err)
	grad, err := criterion.Backward(target)
	require.NoError(t, err)

	third := 1.0 / 3
	want := mat.NewDense(2, 3, []float64{
		(third - 1) / 2, third / 2, third / 2,
		third / 2, third / 2, (third - 1) / 2,
	})
	assert.True(t, mat.EqualApprox(want, grad, 1e-12), "got %v", mat.Formatted(grad))

	// Each row of the gradient sums to zero.
	for i := range 2 {
		assert.InDelta(t, 0, floats.Sum(grad.RawRowView(i)), 1e-12)
	}
}

func TestCrossEntropyLoss_BackwardBeforeLoss(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss()

	_, err := criterion.Backward(oneHot([]int{0}, 2))
	require.ErrorIs(t, err, nn.ErrOrdering)
}

// TestCrossEntropyLoss_BackwardAfterFailedLoss checks that a rejected Loss
// call does not leave the previous probabilities behind for Backward.
func TestCrossEntropyLoss_BackwardAfterFailedLoss(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss()
	target := oneHot([]int{0, 1}, 2)

	_, err := criterion.Loss(mat.NewDense(2, 2, []float64{0.1, 0.6, -0.3, 0.2}), target)
	require.NoError(t, err)

	soft := mat.NewDense(2, 2, []float64{0.5, 0.5, 0, 1})
	_, err = criterion.Loss(mat.NewDense(2, 2, nil), soft)
	require.ErrorIs(t, err, nn.ErrShape)

	grad, err := criterion.Backward(target)
	assert.ErrorIs(t, err, nn.ErrOrdering)
	assert.Nil(t, grad)
	assert.Nil(t, criterion.Probabilities())
}

func TestCrossEntropyLoss_ShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		scores *mat.Dense
		target *mat.Dense
	}{
		{"batch mismatch", mat.NewDense(3, 2, nil), oneHot([]int{0, 1}, 2)},
		{"class mismatch", mat.NewDense(2, 3, nil), oneHot([]int{0, 1}, 2)},
		{"soft labels", mat.NewDense(1, 2, nil), mat.NewDense(1, 2, []float64{0.5, 0.5})},
		{"two hot", mat.NewDense(1, 3, nil), mat.NewDense(1, 3, []float64{1, 1, 0})},
		{"all zero", mat.NewDense(1, 3, nil), mat.NewDense(1, 3, nil)},
		{"negative", mat.NewDense(1, 3, nil), mat.NewDense(1, 3, []float64{2, -1, 0})},
		{"nil target", mat.NewDense(1, 3, nil), nil},
		{"empty scores", &mat.Dense{}, oneHot([]int{0}, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nn.NewCrossEntropyLoss().Loss(tt.scores, tt.target)
			assert.ErrorIs(t, err, nn.ErrShape)
		})
	}
}

func TestCrossEntropyLoss_BackwardShapeMismatch(t *testing.T) {
	criterion := nn.NewCrossEntropyLoss()
	_, err := criterion.Loss(mat.NewDense(2, 3, nil), oneHot([]int{0, 1}, 3))
	require.NoError(t, err)

	_, err = criterion.Backward(oneHot([]int{0, 1, 2}, 3))
	assert.ErrorIs(t, err, nn.ErrShape)
}

func TestSoftmax_ShiftInvariant(t *testing.T) {
	scores := randomBatch(4, 6, 41)
	shifted := mat.DenseCopyOf(scores)
	for i := range 4 {
		floats.AddConst(float64(i*50), shifted.RawRowView(i))
	}

	assert.True(t, mat.EqualApprox(nn.Softmax(scores), nn.Softmax(shifted), 1e-12))
}

func TestAccuracy(t *testing.T) {
	scores := mat.NewDense(4, 3, []float64{
		3, 1, 0,
		0, 2, 1,
		0, 1, 2,
		5, 0, 0,
	})
	acc, err := nn.Accuracy(scores, oneHot([]int{0, 1, 2, 2}, 3))
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-12)

	_, err = nn.Accuracy(scores, oneHot([]int{0}, 3))
	assert.ErrorIs(t, err, nn.ErrShape)
}
