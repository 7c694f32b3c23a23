package orrery

import (
	kitlog "github.com/go-kit/log"
)

// Selection is the event emitted when a body is picked for tracking.
type Selection struct {
	Name           string
	Classification Classification
	Elements       KeplerianElements
	Color          Color
}

// Tracker serialises selection events for one scene: it owns the orbit
// manager calls and places the tracked body on every frame.
type Tracker struct {
	manager *OrbitManager
	prop    Propagator
	scene   Scene
	tracked *TrackedBody
	logger  kitlog.Logger
}

// NewTracker returns a tracker with nothing selected.
func NewTracker(m *OrbitManager, p Propagator, scene Scene, logger kitlog.Logger) *Tracker {
	return &Tracker{manager: m, prop: p, scene: scene, logger: nopIfNil(logger)}
}

// Select tracks a new body, replacing the previous one. A body whose
// elements are invalid is excluded and the error returned; the previous
// selection is kept.
func (t *Tracker) Select(s Selection) error {
	body := TrackedBody{Name: s.Name, Classification: s.Classification, Elements: s.Elements, Color: s.Color}
	if _, err := t.manager.Attach(body, s.Color, t.scene); err != nil {
		t.logger.Log("level", "warning", "subsys", "tracker", "status", "excluded", "body", s.Name, "err", err)
		return err
	}
	t.tracked = &body
	return nil
}

// SelectEntry tracks a catalog entry with the provided orbit colour.
func (t *Tracker) SelectEntry(e CatalogEntry, orbitColor Color) error {
	body, err := e.Tracked(orbitColor)
	if err != nil {
		t.logger.Log("level", "warning", "subsys", "tracker", "status", "excluded", "body", e.Name, "err", err)
		return err
	}
	return t.Select(Selection{Name: body.Name, Classification: body.Classification, Elements: body.Elements, Color: orbitColor})
}

// Deselect stops tracking and detaches the orbit.
func (t *Tracker) Deselect() {
	t.manager.Detach(t.scene)
	t.tracked = nil
}

// Current returns the tracked body, if any.
func (t *Tracker) Current() (TrackedBody, bool) {
	if t.tracked == nil {
		return TrackedBody{}, false
	}
	return *t.tracked, true
}

// Tick returns the frame context at kernel time tNow.
func (t *Tracker) Tick(tNow float64) (Tick, bool) {
	if t.tracked == nil {
		return Tick{}, false
	}
	return Tick{T: tNow, Classification: t.tracked.Classification, Elements: t.tracked.Elements, Color: t.tracked.Color}, true
}

// Frame returns the display position of the tracked body at kernel time tNow.
func (t *Tracker) Frame(tNow float64) ([]float64, bool) {
	tk, ok := t.Tick(tNow)
	if !ok {
		return nil, false
	}
	return t.prop.PositionAt(tk), true
}
