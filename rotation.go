package orrery

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// orbitalPlane returns the rotation which tilts the perifocal plane by the
// inclination and then turns it about the pole by the longitude of the node.
// Applied to (x, y, 0) it yields (x cosΩ - y cosI sinΩ, x sinΩ + y cosI cosΩ, y sinI).
func orbitalPlane(i, Ω float64) *mat64.Dense {
	var m mat64.Dense
	m.Mul(R3(-Ω), R1(-i))
	return &m
}

// toDisplay swaps the ecliptic pole into the renderer's vertical axis.
func toDisplay(v []float64) []float64 {
	return []float64{v[0], v[2], v[1]}
}
