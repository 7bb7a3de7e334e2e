package nn_test

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/tensor"
)

// TestReLU_Forward tests ReLU forward pass.
func TestReLU_Forward(t *testing.T) {
	relu := nn.NewReLU()
	input := mat.NewDense(2, 3, []float64{
		-2, -0.5, 0,
		0.5, 2, -1,
	})

	out, err := relu.Forward(input)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	want := mat.NewDense(2, 3, []float64{
		0, 0, 0,
		0.5, 2, 0,
	})
	if !mat.Equal(want, out) {
		t.Errorf("Forward() = %v, want %v", mat.Formatted(out), mat.Formatted(want))
	}
	if input.At(0, 0) != -2 {
		t.Error("Forward modified its input")
	}
}

// TestReLU_Backward checks the mask, including the x = 0 boundary.
func TestReLU_Backward(t *testing.T) {
	relu := nn.NewReLU()
	if _, err := relu.Forward(mat.NewDense(1, 4, []float64{-1, 0, 1e-12, 3})); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	grad := mat.NewDense(1, 4, []float64{10, 20, 30, 40})
	dx, err := relu.Backward(grad)
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}

	want := []float64{0, 0, 30, 40}
	for j, v := range dx.RawRowView(0) {
		if v != want[j] {
			t.Errorf("dx[%d] = %v, want %v", j, v, want[j])
		}
	}
	if grad.At(0, 0) != 10 || grad.At(0, 1) != 20 {
		t.Error("Backward modified the caller's gradient buffer")
	}
}

// TestReLU_ShapePreservation tests that ReLU preserves shape in both directions.
func TestReLU_ShapePreservation(t *testing.T) {
	relu := nn.NewReLU()
	x := randomBatch(5, 7, 21)

	out, err := relu.Forward(x)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if !tensor.Of(out).Equal(tensor.Of(x)) {
		t.Errorf("Forward shape = %v, want %v", tensor.Of(out), tensor.Of(x))
	}

	dx, err := relu.Backward(randomBatch(5, 7, 22))
	if err != nil {
		t.Fatalf("Backward failed: %v", err)
	}
	if !tensor.Of(dx).Equal(tensor.Of(x)) {
		t.Errorf("Backward shape = %v, want %v", tensor.Of(dx), tensor.Of(x))
	}
}

func TestReLU_Errors(t *testing.T) {
	relu := nn.NewReLU()

	if _, err := relu.Backward(mat.NewDense(2, 2, nil)); !errors.Is(err, nn.ErrOrdering) {
		t.Errorf("Backward before Forward: got %v, want ErrOrdering", err)
	}
	if _, err := relu.Forward(nil); !errors.Is(err, nn.ErrShape) {
		t.Errorf("Forward(nil): got %v, want ErrShape", err)
	}

	if _, err := relu.Forward(mat.NewDense(2, 2, nil)); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if _, err := relu.Backward(mat.NewDense(2, 3, nil)); !errors.Is(err, nn.ErrShape) {
		t.Errorf("Backward with wrong shape: got %v, want ErrShape", err)
	}
}

// TestReLU_BackwardAfterFailedForward checks that a rejected batch drops the
// input cached by the previous Forward.
func TestReLU_BackwardAfterFailedForward(t *testing.T) {
	relu := nn.NewReLU()
	if _, err := relu.Forward(randomBatch(2, 3, 23)); err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if _, err := relu.Forward(&mat.Dense{}); !errors.Is(err, nn.ErrShape) {
		t.Fatalf("Forward(empty): got %v, want ErrShape", err)
	}

	if _, err := relu.Backward(mat.NewDense(2, 3, nil)); !errors.Is(err, nn.ErrOrdering) {
		t.Errorf("Backward after failed Forward: got %v, want ErrOrdering", err)
	}
}

func TestReLU_NoParameters(t *testing.T) {
	params := nn.NewReLU().Parameters()
	if params == nil {
		t.Error("Parameters() returned nil")
	}
	if len(params) != 0 {
		t.Errorf("len(Parameters()) = %d, want 0", len(params))
	}
}
