package orrery

import (
	"errors"
	"testing"

	"github.com/gonum/floats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTracker(t *testing.T) {
	Convey("Given a tracker on a Cosmographia scene", t, func() {
		prop := NewPropagator(DefaultScaling())
		scene := NewCosmoScene("test", DefaultScaling())
		m := NewOrbitManager(&testRenderer{}, WithPolicies(DefaultTessellationPolicies(prop)))
		tr := NewTracker(m, prop, scene, nil)

		Convey("With nothing selected there is no frame", func() {
			_, ok := tr.Frame(1)
			So(ok, ShouldBeFalse)
			_, ok = tr.Current()
			So(ok, ShouldBeFalse)
		})

		Convey("When selecting Earth", func() {
			So(tr.SelectEntry(Earth, Earth.Color), ShouldBeNil)

			Convey("Then the frame follows the propagator", func() {
				pos, ok := tr.Frame(0.5)
				So(ok, ShouldBeTrue)
				So(floats.Equal(pos, prop.Position(*Earth.Elements, 0.5)), ShouldBeTrue)
				tk, _ := tr.Tick(0.5)
				So(tk.Classification, ShouldEqual, ClassPlanet)
				So(len(scene.Resources()), ShouldEqual, 1)
			})

			Convey("And selecting the Sun is rejected and keeps Earth", func() {
				err := tr.SelectEntry(Sun, Sun.Color)
				So(errors.Is(err, ErrInvalidElements), ShouldBeTrue)
				body, ok := tr.Current()
				So(ok, ShouldBeTrue)
				So(body.Name, ShouldEqual, "Earth")
			})

			Convey("And selecting a NEO replaces the orbit", func() {
				body := neo("Apophis", 0.92, 0.19)
				So(tr.Select(Selection{Name: body.Name, Classification: ClassNEO, Elements: body.Elements, Color: DefaultNEOOrbitColor}), ShouldBeNil)
				res := scene.Resources()
				So(len(res), ShouldEqual, 1)
				So(res[0].Body.Name, ShouldEqual, "Apophis")
			})

			Convey("And deselecting clears the scene", func() {
				tr.Deselect()
				So(len(scene.Resources()), ShouldEqual, 0)
				_, ok := tr.Current()
				So(ok, ShouldBeFalse)
			})
		})
	})
}
