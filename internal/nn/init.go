package nn

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultInitScale is the standard deviation of Linear weight initialization.
//
// Small enough that downstream activations start far from saturation.
const DefaultInitScale = 0.01

// Normal creates a [rows, cols] matrix with values drawn from N(0, scale²).
//
// Parameters:
//   - rows, cols: Shape of the matrix
//   - scale: Standard deviation of the distribution
//   - src: Random source; nil uses a time-seeded PCG source
//
// Returns a matrix with random normal values.
func Normal(rows, cols int, scale float64, src rand.Source) *mat.Dense {
	if src == nil {
		src = newTimeSource()
	}
	dist := distuv.Normal{Mu: 0, Sigma: scale, Src: src}

	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = dist.Rand()
	}
	return mat.NewDense(rows, cols, data)
}

// Xavier creates a [fanIn, fanOut] matrix drawn from the Glorot uniform
// distribution U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
func Xavier(fanIn, fanOut int, src rand.Source) *mat.Dense {
	if src == nil {
		src = newTimeSource()
	}
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	dist := distuv.Uniform{Min: -bound, Max: bound, Src: src}

	data := make([]float64, fanIn*fanOut)
	for i := range data {
		data[i] = dist.Rand()
	}
	return mat.NewDense(fanIn, fanOut, data)
}

// Zeros creates a [rows, cols] matrix filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros(rows, cols int) *mat.Dense {
	return mat.NewDense(rows, cols, nil)
}

func newTimeSource() rand.Source {
	seed := uint64(time.Now().UnixNano())
	return rand.NewPCG(seed, seed>>1|1)
}
