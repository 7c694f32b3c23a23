package main

import (
	"errors"

	"github.com/orrery-viz/orrery"
)

var errDisposed = errors.New("buffer already disposed")

// memRenderer allocates the buffers of an orbit in memory, for headless runs.
type memRenderer struct {
	live int
}

type memBuffer struct {
	owner    *memRenderer
	data     []float64
	disposed bool
}

func (b *memBuffer) Dispose() error {
	if b.disposed {
		return errDisposed
	}
	b.disposed = true
	b.data = nil
	b.owner.live--
	return nil
}

func (r *memRenderer) NewPathGeometry(points [][]float64) (orrery.GraphicsBuffer, error) {
	data := make([]float64, 0, 3*len(points))
	for _, p := range points {
		data = append(data, p...)
	}
	r.live++
	return &memBuffer{owner: r, data: data}, nil
}

func (r *memRenderer) NewLineMaterial(style orrery.LineStyle) (orrery.GraphicsBuffer, error) {
	r.live++
	return &memBuffer{owner: r, data: append(style.Color.Slice(), style.LineWidth, style.Opacity)}, nil
}
