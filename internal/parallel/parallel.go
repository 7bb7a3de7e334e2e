// Package parallel splits row-independent matrix work across goroutines.
package parallel

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Config controls how rows are split across workers.
type Config struct {
	Workers int // Number of goroutines (default: runtime.NumCPU())
	MinRows int // Below this many rows work stays on the calling goroutine (default: 64)
}

// DefaultConfig returns a config sized to the machine.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU(), MinRows: 64}
}

// For calls f(i) for every i in [0, n). Indices are split into contiguous
// chunks of at least cfg.MinRows; f must only touch state owned by index i.
func For(n int, f func(i int), cfg Config) {
	if cfg.Workers <= 1 || n < cfg.MinRows || n < 2 {
		for i := range n {
			f(i)
		}
		return
	}

	chunk := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinRows, 1)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				f(i)
			}
		}()
	}
	wg.Wait()
}

// Rows calls f with every row of m as a slice aliasing m's storage.
func Rows(m *mat.Dense, f func(i int, row []float64), cfg Config) {
	n, _ := m.Dims()
	For(n, func(i int) {
		f(i, m.RawRowView(i))
	}, cfg)
}
