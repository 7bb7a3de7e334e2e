// Package tensor provides shape helpers and the explicit broadcast and
// reduction primitives the layers build on.
//
// All data is stored in row-major gonum dense matrices: a batch is
// [N, features], a bias row is [1, features].
package tensor
