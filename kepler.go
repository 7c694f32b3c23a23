package orrery

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

const (
	// KeplerTolerance is the residual |E - e sin E - M| below which the solve stops.
	KeplerTolerance = 1e-6
	// KeplerMaxIterations caps the Newton-Raphson iterations.
	KeplerMaxIterations = 100
)

// SolveKepler returns the eccentric anomaly E solving E - e sin E = M by
// safeguarded Newton-Raphson starting from E₀ = M. If the iteration cap is reached first,
// the best estimate is returned with converged set to false.
func SolveKepler(M, e float64) (E float64, converged bool) {
	E, _, converged = solveKepler(M, e, KeplerMaxIterations)
	return
}

func solveKepler(M, e float64, maxIter int) (E float64, iter int, converged bool) {
	// Iterate on the reduced mean anomaly and shift back by whole turns so that
	// the residual holds against the caller's M.
	Mr := wrapπ(M)
	turns := M - Mr
	// The root lies within e of Mr. A Newton step leaving the bracket is
	// replaced by bisection, which keeps high eccentricities from cycling.
	lo, hi := Mr-e, Mr+e
	E = Mr
	for iter = 0; iter < maxIter; iter++ {
		res := E - e*math.Sin(E) - Mr
		if math.Abs(res) < KeplerTolerance {
			return E + turns, iter, true
		}
		if res > 0 {
			hi = E
		} else {
			lo = E
		}
		E -= res / (1 - e*math.Cos(E))
		if E <= lo || E >= hi {
			E = (lo + hi) / 2
		}
	}
	converged = math.Abs(E-e*math.Sin(E)-Mr) < KeplerTolerance
	return E + turns, iter, converged
}

// OrbitalState is the ephemeral state of a body at a kernel time.
type OrbitalState struct {
	M, E, ν, r float64
	R          []float64 // position in AU, display axis order
	Iterations int
	Degraded   bool // the Kepler solve hit the iteration cap
}

// TrueAnomaly returns ν.
func (s OrbitalState) TrueAnomaly() float64 { return s.ν }

// EccentricAnomaly returns E.
func (s OrbitalState) EccentricAnomaly() float64 { return s.E }

// MeanAnomaly returns M.
func (s OrbitalState) MeanAnomaly() float64 { return s.M }

// RNorm returns the heliocentric distance in AU.
func (s OrbitalState) RNorm() float64 { return s.r }

// StateAt computes the state of the orbit at kernel time t, where the
// gravitational parameter is one and distances are in AU. It is pure.
func StateAt(o KeplerianElements, t float64) OrbitalState {
	M := o.MeanMotion() * t
	E, iter, converged := solveKepler(M, o.e, KeplerMaxIterations)
	sinE2, cosE2 := math.Sincos(E / 2)
	ν := 2 * math.Atan2(math.Sqrt(1+o.e)*sinE2, math.Sqrt(1-o.e)*cosE2)
	r := o.a * (1 - o.e*math.Cos(E))
	return OrbitalState{
		M: M, E: E, ν: ν, r: r,
		R:          positionFromAnomaly(o, ν, r, orbitalPlane(o.i, o.Ω)),
		Iterations: iter,
		Degraded:   !converged,
	}
}

// positionFromAnomaly places the body at true anomaly ν and radius r on the
// orbit, with the rotation from orbitalPlane precomputed by the caller.
func positionFromAnomaly(o KeplerianElements, ν, r float64, plane *mat64.Dense) []float64 {
	s, c := math.Sincos(ν + o.ϖ)
	return toDisplay(MxV33(plane, []float64{r * c, r * s, 0}))
}

// conicRadius returns r at true anomaly ν from the conic equation.
func conicRadius(o KeplerianElements, ν float64) float64 {
	return o.SemiParameter() / (1 + o.e*math.Cos(ν))
}

// timeOfTrueAnomaly returns the kernel time since perihelion at which the body
// reaches ν, for ν in [0, 2π].
func timeOfTrueAnomaly(o KeplerianElements, ν float64) float64 {
	sν2, cν2 := math.Sincos(ν / 2)
	E := 2 * math.Atan2(math.Sqrt(1-o.e)*sν2, math.Sqrt(1+o.e)*cν2)
	return (E - o.e*math.Sin(E)) / o.MeanMotion()
}
