package orrery

import (
	"math"

	"github.com/gonum/floats"
)

const (
	deg2rad = math.Pi / 180
	twoπ    = 2 * math.Pi
)

// norm returns the norm of a given vector which is supposed to be 3x1.
func norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// distance returns the Euclidean distance between two 3x1 vectors.
func distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// scaled returns a copy of v multiplied by f.
func scaled(v []float64, f float64) []float64 {
	o := make([]float64, len(v))
	copy(o, v)
	floats.Scale(f, o)
	return o
}

// wrapπ reduces an angle to [-π, π).
func wrapπ(a float64) float64 {
	a = math.Mod(a+math.Pi, twoπ)
	if a < 0 {
		a += twoπ
	}
	return a - math.Pi
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}
