// Package dataset generates synthetic classification data.
package dataset

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidConfig is returned when a generator config cannot produce data.
var ErrInvalidConfig = errors.New("invalid dataset config")

// Dataset is a feature matrix with integer class labels.
type Dataset struct {
	X       *mat.Dense // [samples, features]
	Labels  []int      // [samples], values in [0, Classes)
	Classes int
}

// OneHot returns the labels encoded as a [samples, Classes] matrix.
func (d *Dataset) OneHot() *mat.Dense {
	oh, err := OneHot(d.Labels, d.Classes)
	if err != nil {
		// Labels are produced by the generator and always in range.
		panic(err)
	}
	return oh
}

// BlobsConfig controls Blobs. Zero fields take the documented defaults.
type BlobsConfig struct {
	Samples   int        // Total number of points (default: 100)
	Features  int        // Dimensionality of each point (default: 2)
	Centers   int        // Number of blobs, one class each (default: 3)
	Std       float64    // Standard deviation of each blob (default: 1.0)
	CenterBox [2]float64 // Range the blob centers are drawn from (default: [-10, 10])
	Seed      uint64     // Seed for the PCG source
}

func (c *BlobsConfig) applyDefaults() {
	if c.Samples == 0 {
		c.Samples = 100
	}
	if c.Features == 0 {
		c.Features = 2
	}
	if c.Centers == 0 {
		c.Centers = 3
	}
	if c.Std == 0 {
		c.Std = 1.0
	}
	if c.CenterBox == [2]float64{} {
		c.CenterBox = [2]float64{-10, 10}
	}
}

// Validate checks the config after defaults are applied.
func (c BlobsConfig) Validate() error {
	switch {
	case c.Samples <= 0 || c.Features <= 0 || c.Centers <= 0:
		return fmt.Errorf("%w: samples, features and centers must be positive", ErrInvalidConfig)
	case c.Samples < c.Centers:
		return fmt.Errorf("%w: %d samples cannot cover %d centers", ErrInvalidConfig, c.Samples, c.Centers)
	case c.Std < 0:
		return fmt.Errorf("%w: std must be non-negative, got %v", ErrInvalidConfig, c.Std)
	case c.CenterBox[0] >= c.CenterBox[1]:
		return fmt.Errorf("%w: empty center box %v", ErrInvalidConfig, c.CenterBox)
	}
	return nil
}

// Blobs draws isotropic Gaussian blobs, one per class.
//
// Centers are drawn uniformly from CenterBox in every dimension. Samples are
// split as evenly as possible across centers (the first Samples%Centers
// centers get one extra point) and then shuffled.
func Blobs(cfg BlobsConfig) (*Dataset, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	box := distuv.Uniform{Min: cfg.CenterBox[0], Max: cfg.CenterBox[1], Src: rng}
	centers := mat.NewDense(cfg.Centers, cfg.Features, nil)
	for i := range cfg.Centers {
		for j := range cfg.Features {
			centers.Set(i, j, box.Rand())
		}
	}

	labels := make([]int, 0, cfg.Samples)
	for c := range cfg.Centers {
		n := cfg.Samples / cfg.Centers
		if c < cfg.Samples%cfg.Centers {
			n++
		}
		for range n {
			labels = append(labels, c)
		}
	}
	rng.Shuffle(len(labels), func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})

	noise := distuv.Normal{Mu: 0, Sigma: cfg.Std, Src: rng}
	x := mat.NewDense(cfg.Samples, cfg.Features, nil)
	for i, label := range labels {
		for j := range cfg.Features {
			x.Set(i, j, centers.At(label, j)+noise.Rand())
		}
	}

	return &Dataset{X: x, Labels: labels, Classes: cfg.Centers}, nil
}

// OneHot encodes labels as a [len(labels), classes] matrix with a single 1
// per row.
func OneHot(labels []int, classes int) (*mat.Dense, error) {
	if len(labels) == 0 || classes <= 0 {
		return nil, fmt.Errorf("%w: need at least one label and one class", ErrInvalidConfig)
	}
	out := mat.NewDense(len(labels), classes, nil)
	for i, label := range labels {
		if label < 0 || label >= classes {
			return nil, fmt.Errorf("%w: label %d at row %d out of range [0, %d)", ErrInvalidConfig, label, i, classes)
		}
		out.Set(i, label, 1)
	}
	return out, nil
}
