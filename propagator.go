package orrery

import (
	kitlog "github.com/go-kit/log"
)

// Tick is the immutable context handed to the kernel on every frame.
type Tick struct {
	T              float64 // kernel time, supplied by the time-control collaborator
	Classification Classification
	Elements       KeplerianElements
	Color          Color
}

// Propagator places bodies in display space from their elements.
type Propagator struct {
	scale   Scaling
	logger  kitlog.Logger
	metrics *Metrics
}

// PropagatorOption configures a Propagator.
type PropagatorOption func(*Propagator)

// WithPropagatorLogger sets the logger degraded solves are reported to.
func WithPropagatorLogger(l kitlog.Logger) PropagatorOption {
	return func(p *Propagator) { p.logger = nopIfNil(l) }
}

// WithPropagatorMetrics sets the metrics degraded solves are counted in.
func WithPropagatorMetrics(m *Metrics) PropagatorOption {
	return func(p *Propagator) { p.metrics = m }
}

// NewPropagator returns a propagator using the provided scaling.
func NewPropagator(s Scaling, opts ...PropagatorOption) Propagator {
	p := Propagator{scale: s, logger: kitlog.NewNopLogger()}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Scaling returns the scaling of this propagator.
func (p Propagator) Scaling() Scaling {
	return p.scale
}

// State returns the orbital state at t and reports a degraded Kepler solve.
func (p Propagator) State(o KeplerianElements, t float64) OrbitalState {
	s := StateAt(o, t)
	p.metrics.observeSolve(s)
	if s.Degraded {
		p.logger.Log("level", "warning", "subsys", "kepler", "status", "degraded", "t", t, "M", s.M, "E", s.E, "orbit", o)
	}
	return s
}

// Position returns the display position of the body at kernel time t.
// It never fails: a degraded solve yields its best estimate.
func (p Propagator) Position(o KeplerianElements, t float64) []float64 {
	return p.scale.Position(p.State(o, t).R)
}

// PositionAt is Position driven by a frame tick.
func (p Propagator) PositionAt(tk Tick) []float64 {
	return p.Position(tk.Elements, tk.T)
}
