package orrery

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestSolveKeplerConvergence(t *testing.T) {
	for e := 0.0; e <= 0.99; e += 0.01 {
		for M := -3 * math.Pi; M <= 3*math.Pi; M += math.Pi / 45 {
			E, converged := SolveKepler(M, e)
			if !converged {
				t.Fatalf("no convergence for M=%f e=%f", M, e)
			}
			if res := math.Abs(E - e*math.Sin(E) - M); res > KeplerTolerance {
				t.Fatalf("residual %g for M=%f e=%f", res, M, e)
			}
		}
	}
}

func TestSolveKeplerCircular(t *testing.T) {
	for _, M := range []float64{0, 0.5, math.Pi / 2, 3, 10} {
		if E, _ := SolveKepler(M, 0); !floats.EqualWithinAbs(E, M, 1e-12) {
			t.Fatalf("E=%f != M=%f for a circular orbit", E, M)
		}
	}
}

func TestSolveKeplerDegraded(t *testing.T) {
	E, iter, converged := solveKepler(2, 0.9, 1)
	if converged {
		t.Fatal("one iteration cannot meet tolerance at e=0.9")
	}
	if iter != 1 {
		t.Fatalf("expected 1 iteration, got %d", iter)
	}
	if math.IsNaN(E) || math.IsInf(E, 0) {
		t.Fatalf("degraded solve must return a finite estimate, got %f", E)
	}
	if _, iter, converged := solveKepler(0, 0.5, 1); !converged || iter != 0 {
		t.Fatal("E₀ = M = 0 is exact")
	}
}

func TestStateAtAnomalies(t *testing.T) {
	o, _ := NewKeplerianElements(1.3, 0.4, 0.1, 0.2, 0.3)
	for _, tc := range []float64{0.1, 1, 2.5, 4, 6} {
		st := StateAt(o, tc)
		if st.Degraded {
			t.Fatalf("degraded at t=%f", tc)
		}
		if !floats.EqualWithinAbs(st.MeanAnomaly(), o.MeanMotion()*tc, 1e-15) {
			t.Fatalf("M = %f", st.MeanAnomaly())
		}
		if !floats.EqualWithinAbs(st.RNorm(), norm(st.R), 1e-12) {
			t.Fatalf("|R| = %f, r = %f", norm(st.R), st.RNorm())
		}
		if !floats.EqualWithinAbs(st.RNorm(), conicRadius(o, st.TrueAnomaly()), 1e-9) {
			t.Fatalf("r=%f does not lie on the conic (%f)", st.RNorm(), conicRadius(o, st.TrueAnomaly()))
		}
	}
}

func TestTimeOfTrueAnomaly(t *testing.T) {
	o, _ := NewKeplerianElements(2, 0.6, 0, 0, 0)
	for ν := 0.0; ν < twoπ; ν += 0.1 {
		tν := timeOfTrueAnomaly(o, ν)
		st := StateAt(o, tν)
		if !anglesEqual(st.TrueAnomaly(), ν) {
			t.Fatalf("ν=%f maps to t=%f which yields ν=%f", ν, tν, st.TrueAnomaly())
		}
	}
	if tν := timeOfTrueAnomaly(o, twoπ); !floats.EqualWithinAbs(tν, o.Period(), 1e-9) {
		t.Fatalf("a full turn of ν must take one period: %f != %f", tν, o.Period())
	}
}
