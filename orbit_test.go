package orrery

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestElementsValidation(t *testing.T) {
	for _, tc := range []struct {
		name          string
		a, e, i, w, o float64
	}{
		{"negative axis", -1, 0.1, 0, 0, 0},
		{"zero axis", 0, 0.1, 0, 0, 0},
		{"parabolic", 1, 1, 0, 0, 0},
		{"hyperbolic", 1, 1.5, 0, 0, 0},
		{"negative eccentricity", 1, -0.01, 0, 0, 0},
		{"NaN inclination", 1, 0.1, math.NaN(), 0, 0},
		{"infinite node", 1, 0.1, 0, 0, math.Inf(1)},
	} {
		if _, err := NewKeplerianElements(tc.a, tc.e, tc.i, tc.w, tc.o); !errors.Is(err, ErrInvalidElements) {
			t.Fatalf("%s: expected ErrInvalidElements, got %v", tc.name, err)
		}
	}
	if err := (KeplerianElements{}).Validate(); !errors.Is(err, ErrInvalidElements) {
		t.Fatal("the zero value must be invalid")
	}
	if _, err := NewKeplerianElements(1, 0, 0, 0, 0); err != nil {
		t.Fatalf("circular orbit rejected: %s", err)
	}
	if _, err := NewKeplerianElements(2.5, 0.999, 3, -1, 7); err != nil {
		t.Fatalf("eccentric orbit rejected: %s", err)
	}
}

func TestElementsDegrees(t *testing.T) {
	oDeg, err := NewKeplerianElementsDeg(1.5, 0.2, 10, 45, 120)
	if err != nil {
		t.Fatal(err)
	}
	oRad, err := NewKeplerianElements(1.5, 0.2, math.Pi/18, math.Pi/4, 2*math.Pi/3)
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := oDeg.Equals(oRad); !ok {
		t.Fatalf("degree and radian constructors differ: %s", err)
	}
	if !floats.EqualWithinAbs(oDeg.I(), math.Pi/18, 1e-12) || !floats.EqualWithinAbs(oDeg.LongNode(), 2*math.Pi/3, 1e-12) {
		t.Fatalf("unexpected angles %s", oDeg)
	}
}

func TestElementsEquality(t *testing.T) {
	o0, _ := NewKeplerianElements(1, 0.1, 0.2, 0.3, 0.4)
	o1, _ := NewKeplerianElements(1, 0.1, 0.2, 0.3+twoπ, 0.4-twoπ)
	if ok, err := o0.Equals(o1); !ok {
		t.Fatalf("angles one turn apart should be equal: %s", err)
	}
	o2, _ := NewKeplerianElements(1.1, 0.1, 0.2, 0.3, 0.4)
	if ok, _ := o0.Equals(o2); ok {
		t.Fatal("different semi-major axes should differ")
	}
	o3, _ := NewKeplerianElements(1, 0.2, 0.2, 0.3, 0.4)
	if ok, _ := o0.Equals(o3); ok {
		t.Fatal("different eccentricities should differ")
	}
}

func TestElementsDerived(t *testing.T) {
	o, _ := NewKeplerianElements(4, 0.5, 0, 0, 0)
	if o.MeanMotion() != 1./8 {
		t.Fatalf("n = %f", o.MeanMotion())
	}
	if !floats.EqualWithinAbs(o.Period(), 16*math.Pi, 1e-12) {
		t.Fatalf("period = %f", o.Period())
	}
	if o.PeriodDays() != 8*DaysPerYear {
		t.Fatalf("period = %f days", o.PeriodDays())
	}
	if o.Periapsis() != 2 || o.Apoapsis() != 6 || o.SemiParameter() != 3 {
		t.Fatalf("apsides %f %f p=%f", o.Periapsis(), o.Apoapsis(), o.SemiParameter())
	}
	// One period in kernel time is one period in days.
	if !floats.EqualWithinAbs(kernelTimeToDays(o.Period()), o.PeriodDays(), 1e-9) {
		t.Fatal("kernel period and period in days disagree")
	}
}
