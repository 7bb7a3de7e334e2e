package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestBlobs_Shape(t *testing.T) {
	d, err := Blobs(BlobsConfig{Samples: 500, Features: 4, Centers: 3, Seed: 42})
	require.NoError(t, err)

	r, c := d.X.Dims()
	assert.Equal(t, 500, r)
	assert.Equal(t, 4, c)
	assert.Len(t, d.Labels, 500)
	assert.Equal(t, 3, d.Classes)

	counts := make([]int, 3)
	for _, l := range d.Labels {
		counts[l]++
	}
	assert.Equal(t, []int{167, 167, 166}, counts)
}

func TestBlobs_Defaults(t *testing.T) {
	d, err := Blobs(BlobsConfig{})
	require.NoError(t, err)

	r, c := d.X.Dims()
	assert.Equal(t, 100, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 3, d.Classes)
}

func TestBlobs_Deterministic(t *testing.T) {
	a, err := Blobs(BlobsConfig{Samples: 50, Seed: 7})
	require.NoError(t, err)
	b, err := Blobs(BlobsConfig{Samples: 50, Seed: 7})
	require.NoError(t, err)
	c, err := Blobs(BlobsConfig{Samples: 50, Seed: 8})
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.X, b.X))
	assert.Equal(t, a.Labels, b.Labels)
	assert.False(t, mat.Equal(a.X, c.X))
}

// TestBlobs_Clustered checks that points stay near their class mean.
func TestBlobs_Clustered(t *testing.T) {
	d, err := Blobs(BlobsConfig{Samples: 300, Features: 2, Centers: 3, Std: 0.5, Seed: 1})
	require.NoError(t, err)

	means := mat.NewDense(3, 2, nil)
	counts := make([]float64, 3)
	for i, l := range d.Labels {
		floats.Add(means.RawRowView(l), d.X.RawRowView(i))
		counts[l]++
	}
	for l := range 3 {
		floats.Scale(1/counts[l], means.RawRowView(l))
	}

	for i, l := range d.Labels {
		dist := floats.Distance(d.X.RawRowView(i), means.RawRowView(l), 2)
		assert.Less(t, dist, 5*0.5*2, "point %d is far from its blob", i)
	}
}

func TestBlobs_InvalidConfig(t *testing.T) {
	for _, cfg := range []BlobsConfig{
		{Samples: 2, Centers: 3},
		{Samples: -1},
		{Std: -1},
		{CenterBox: [2]float64{5, 5}},
	} {
		_, err := Blobs(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%+v", cfg)
	}
}

func TestOneHot(t *testing.T) {
	oh, err := OneHot([]int{2, 0, 1}, 3)
	require.NoError(t, err)

	want := mat.NewDense(3, 3, []float64{
		0, 0, 1,
		1, 0, 0,
		0, 1, 0,
	})
	assert.True(t, mat.Equal(want, oh))

	_, err = OneHot([]int{3}, 3)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	_, err = OneHot(nil, 3)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDataset_OneHot(t *testing.T) {
	d, err := Blobs(BlobsConfig{Samples: 10, Seed: 3})
	require.NoError(t, err)

	oh := d.OneHot()
	for i, l := range d.Labels {
		assert.Equal(t, 1.0, oh.At(i, l))
		assert.Equal(t, 1.0, floats.Sum(oh.RawRowView(i)))
	}
}
