package orrery

import (
	"math"

	kitlog "github.com/go-kit/log"
)

// Default tessellation parameters.
const (
	DefaultPlanetSegments        = 5000
	DefaultBaseSegments          = 800
	DefaultMaxSegments           = 10000
	DefaultEccentricityThreshold = 0.3
	DefaultEccentricityWeight    = 5000.
	DefaultAxisThreshold         = 5. // AU
	DefaultAxisWeight            = 2000.
	DefaultMidpointThreshold     = 0.1 // display units
)

// OrbitPath is the ordered, closed sequence of display points for one revolution.
type OrbitPath struct {
	Points    [][]float64 // display units
	Epochs    []float64   // kernel time of each point since perihelion
	Policy    string
	Segments  int // before midpoint insertion
	Midpoints int
}

// Len returns the number of points.
func (p OrbitPath) Len() int {
	return len(p.Points)
}

func (p *OrbitPath) push(t float64, pt []float64) {
	p.Epochs = append(p.Epochs, t)
	p.Points = append(p.Points, pt)
}

// Tessellator discretises an orbit into a path.
type Tessellator interface {
	Tessellate(o KeplerianElements) OrbitPath
	Policy() string
}

// FixedTessellation samples the true anomaly uniformly. It suits major
// bodies whose orbits are close to circular.
type FixedTessellation struct {
	Segments int
	Scale    Scaling
}

// Policy implements the Tessellator interface.
func (f FixedTessellation) Policy() string { return "fixed" }

// Tessellate implements the Tessellator interface. The path has Segments+1
// points with the last one closing on the first.
func (f FixedTessellation) Tessellate(o KeplerianElements) OrbitPath {
	plane := orbitalPlane(o.i, o.Ω)
	path := OrbitPath{
		Points:   make([][]float64, 0, f.Segments+1),
		Epochs:   make([]float64, 0, f.Segments+1),
		Policy:   f.Policy(),
		Segments: f.Segments,
	}
	for k := 0; k <= f.Segments; k++ {
		ν := twoπ * float64(k) / float64(f.Segments)
		R := positionFromAnomaly(o, ν, conicRadius(o, ν), plane)
		path.push(timeOfTrueAnomaly(o, ν), f.Scale.Position(R))
	}
	return path
}

// AdaptiveTessellation marches time through the propagator so that samples
// bunch up near perihelion, and inserts a midpoint wherever consecutive
// samples are further apart than MidpointThreshold.
type AdaptiveTessellation struct {
	Base, Max                 int
	EccThreshold, EccWeight   float64
	AxisThreshold, AxisWeight float64
	MidpointThreshold         float64
	Propagator                Propagator
}

// NewAdaptiveTessellation returns the default adaptive policy.
func NewAdaptiveTessellation(p Propagator) AdaptiveTessellation {
	return AdaptiveTessellation{
		Base:              DefaultBaseSegments,
		Max:               DefaultMaxSegments,
		EccThreshold:      DefaultEccentricityThreshold,
		EccWeight:         DefaultEccentricityWeight,
		AxisThreshold:     DefaultAxisThreshold,
		AxisWeight:        DefaultAxisWeight,
		MidpointThreshold: DefaultMidpointThreshold,
		Propagator:        p,
	}
}

// Policy implements the Tessellator interface.
func (t AdaptiveTessellation) Policy() string { return "adaptive" }

// SegmentCount returns the number of segments before midpoint insertion.
// Eccentric and distant orbits get more segments, up to Max.
func (t AdaptiveTessellation) SegmentCount(o KeplerianElements) int {
	segments := t.Base
	if o.e > t.EccThreshold {
		segments += int(math.Floor(o.e * t.EccWeight))
	}
	if o.a > t.AxisThreshold {
		segments += int(math.Floor(o.a * t.AxisWeight))
	}
	if segments > t.Max {
		segments = t.Max
	}
	return segments
}

// Tessellate implements the Tessellator interface.
func (t AdaptiveTessellation) Tessellate(o KeplerianElements) OrbitPath {
	segments := t.SegmentCount(o)
	periodDays := o.PeriodDays()
	at := func(k float64) (float64, []float64) {
		kt := daysToKernelTime(k / float64(segments) * periodDays)
		return kt, t.Propagator.Position(o, kt)
	}
	path := OrbitPath{
		Points:   make([][]float64, 0, segments+1),
		Epochs:   make([]float64, 0, segments+1),
		Policy:   t.Policy(),
		Segments: segments,
	}
	prevT, prev := at(0)
	path.push(prevT, prev)
	for k := 1; k <= segments; k++ {
		kt, pos := at(float64(k))
		if distance(pos, prev) > t.MidpointThreshold {
			path.push(at(float64(k) - 0.5))
			path.Midpoints++
		}
		path.push(kt, pos)
		prev = pos
	}
	return path
}

// daysToKernelTime converts a duration in days to kernel time, in which a
// 1 AU orbit takes 2π.
func daysToKernelTime(days float64) float64 {
	return days * twoπ / DaysPerYear
}

// kernelTimeToDays is the inverse of daysToKernelTime.
func kernelTimeToDays(t float64) float64 {
	return t * DaysPerYear / twoπ
}

// TessellationPolicies maps each classification to its tessellation strategy.
type TessellationPolicies map[Classification]Tessellator

// DefaultTessellationPolicies returns fixed sampling for planets and
// adaptive sampling for everything else.
func DefaultTessellationPolicies(p Propagator) TessellationPolicies {
	adaptive := NewAdaptiveTessellation(p)
	return TessellationPolicies{
		ClassSun:    adaptive,
		ClassPlanet: FixedTessellation{Segments: DefaultPlanetSegments, Scale: p.Scaling()},
		ClassNEO:    adaptive,
	}
}

// For returns the tessellator of a classification.
func (tp TessellationPolicies) For(c Classification) Tessellator {
	if t, ok := tp[c]; ok {
		return t
	}
	return tp[ClassNEO]
}

// tessellate builds a path and records it.
func (tp TessellationPolicies) tessellate(c Classification, o KeplerianElements, m *Metrics, logger kitlog.Logger) OrbitPath {
	t := tp.For(c)
	path := t.Tessellate(o)
	m.observePath(path)
	logger.Log("level", "debug", "subsys", "tessellate", "class", c, "policy", t.Policy(), "segments", path.Segments, "points", path.Len(), "midpoints", path.Midpoints)
	return path
}
