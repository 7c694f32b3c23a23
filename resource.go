package orrery

import (
	"errors"
	"fmt"

	kitlog "github.com/go-kit/log"
	"github.com/gonum/matrix/mat64"
	"github.com/google/uuid"
)

// DefaultOrbitCapacity is the number of path instances an orbit resource holds.
const DefaultOrbitCapacity = 1

// GraphicsBuffer is a renderer allocation (geometry or material) which must
// be released exactly once.
type GraphicsBuffer interface {
	Dispose() error
}

// LineStyle describes the material of an orbit path.
type LineStyle struct {
	Color     Color
	LineWidth float64
	Opacity   float64
}

// Renderer allocates the graphics buffers of an orbit path.
type Renderer interface {
	NewPathGeometry(points [][]float64) (GraphicsBuffer, error)
	NewLineMaterial(style LineStyle) (GraphicsBuffer, error)
}

// Scene is the attach point of rendered resources.
type Scene interface {
	Add(r *OrbitResource) error
	Remove(r *OrbitResource) error
}

// OrbitResource is the owning handle of a rendered orbit path. It is never
// mutated once built; Close releases its buffers exactly once.
type OrbitResource struct {
	ID        uuid.UUID
	Body      TrackedBody
	Path      OrbitPath
	Style     LineStyle
	instances []*mat64.Dense
	geometry  GraphicsBuffer
	material  GraphicsBuffer
	released  bool
}

// Instances returns the number of path instances.
func (r *OrbitResource) Instances() int {
	return len(r.instances)
}

// InstanceTransform returns the 4x4 transform of instance i.
func (r *OrbitResource) InstanceTransform(i int) *mat64.Dense {
	return mat64.DenseCopyOf(r.instances[i])
}

// Released returns whether the buffers have been released.
func (r *OrbitResource) Released() bool {
	return r.released
}

// Close releases the geometry and material. Only the first call does any
// work; later calls return nil.
func (r *OrbitResource) Close() error {
	if r.released {
		return nil
	}
	r.released = true
	var errs []error
	for _, b := range []GraphicsBuffer{r.geometry, r.material} {
		if b == nil {
			continue
		}
		if err := b.Dispose(); err != nil {
			errs = append(errs, err)
		}
	}
	r.geometry, r.material = nil, nil
	return errors.Join(errs...)
}

func (r *OrbitResource) String() string {
	return fmt.Sprintf("orbit %s of %s (%d points, %s)", r.ID, r.Body.Name, r.Path.Len(), r.Path.Policy)
}

// OrbitManager owns the orbit resource of the currently tracked body.
// It is not safe for concurrent use.
type OrbitManager struct {
	renderer Renderer
	policies TessellationPolicies
	capacity int
	current  *OrbitResource
	logger   kitlog.Logger
	metrics  *Metrics
}

// ManagerOption configures an OrbitManager.
type ManagerOption func(*OrbitManager)

// WithPolicies sets the tessellation strategy lookup.
func WithPolicies(p TessellationPolicies) ManagerOption {
	return func(m *OrbitManager) { m.policies = p }
}

// WithCapacity sets the number of path instances per resource.
func WithCapacity(n int) ManagerOption {
	return func(m *OrbitManager) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithManagerLogger sets the logger.
func WithManagerLogger(l kitlog.Logger) ManagerOption {
	return func(m *OrbitManager) { m.logger = nopIfNil(l) }
}

// WithManagerMetrics sets the metrics.
func WithManagerMetrics(mt *Metrics) ManagerOption {
	return func(m *OrbitManager) { m.metrics = mt }
}

// NewOrbitManager returns a manager building its buffers through r.
func NewOrbitManager(r Renderer, opts ...ManagerOption) *OrbitManager {
	m := &OrbitManager{
		renderer: r,
		capacity: DefaultOrbitCapacity,
		logger:   kitlog.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	// Classifications missing from the provided policies use the defaults.
	policies := DefaultTessellationPolicies(NewPropagator(DefaultScaling(), WithPropagatorMetrics(m.metrics)))
	for c, t := range m.policies {
		if t != nil {
			policies[c] = t
		}
	}
	m.policies = policies
	return m
}

// Current returns the owned resource, or nil.
func (m *OrbitManager) Current() *OrbitResource {
	return m.current
}

// Attach builds the orbit path of target and registers it with scene,
// releasing any previously owned resource first. Invalid elements are
// rejected before anything changes.
func (m *OrbitManager) Attach(target TrackedBody, color Color, scene Scene) (*OrbitResource, error) {
	if err := target.Elements.Validate(); err != nil {
		return nil, fmt.Errorf("attaching %s: %w", target.Name, err)
	}
	m.release(scene)

	path := m.policies.tessellate(target.Classification, target.Elements, m.metrics, m.logger)
	style := LineStyle{Color: color, LineWidth: 1, Opacity: 0.9}
	if target.Classification == ClassPlanet {
		style = LineStyle{Color: color, LineWidth: 0.5, Opacity: 1}
	}
	res := &OrbitResource{ID: uuid.New(), Body: target, Path: path, Style: style}
	for i := 0; i < m.capacity; i++ {
		res.instances = append(res.instances, identity4())
	}
	var err error
	if res.geometry, err = m.renderer.NewPathGeometry(path.Points); err != nil {
		return nil, fmt.Errorf("building geometry of %s: %w", target.Name, err)
	}
	if res.material, err = m.renderer.NewLineMaterial(style); err != nil {
		m.dispose(res)
		return nil, fmt.Errorf("building material of %s: %w", target.Name, err)
	}
	if err = scene.Add(res); err != nil {
		m.dispose(res)
		return nil, fmt.Errorf("adding %s to scene: %w", target.Name, err)
	}
	m.current = res
	m.metrics.attached(1)
	m.logger.Log("level", "info", "subsys", "orbit", "status", "attached", "body", target.Name, "id", res.ID, "points", path.Len())
	return res, nil
}

// Detach removes the owned resource from scene and releases it. It is a
// no-op when nothing is attached.
func (m *OrbitManager) Detach(scene Scene) {
	m.release(scene)
}

func (m *OrbitManager) release(scene Scene) {
	if m.current == nil {
		return
	}
	res := m.current
	m.current = nil
	if err := scene.Remove(res); err != nil {
		m.logger.Log("level", "warning", "subsys", "orbit", "status", "remove failed", "id", res.ID, "err", err)
	}
	m.dispose(res)
	m.metrics.attached(0)
	m.logger.Log("level", "info", "subsys", "orbit", "status", "detached", "body", res.Body.Name, "id", res.ID)
}

// dispose closes res; failures are only logged and counted.
func (m *OrbitManager) dispose(res *OrbitResource) {
	if err := res.Close(); err != nil {
		m.metrics.disposalFailed()
		m.logger.Log("level", "debug", "subsys", "orbit", "status", "dispose failed", "id", res.ID, "err", err)
	}
}

func identity4() *mat64.Dense {
	return mat64.NewDense(4, 4, []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1})
}
