package orrery

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := DefaultConfig()

		Convey("Then it matches the display defaults", func() {
			So(cfg.Scaling, ShouldResemble, DefaultScaling())
			So(cfg.PlanetSegments, ShouldEqual, DefaultPlanetSegments)
			So(cfg.Adaptive.Base, ShouldEqual, DefaultBaseSegments)
			So(cfg.Adaptive.Max, ShouldEqual, DefaultMaxSegments)
			So(cfg.Adaptive.MidpointThreshold, ShouldEqual, DefaultMidpointThreshold)
			So(cfg.NEOOrbitColor, ShouldResemble, DefaultNEOOrbitColor)
			So(cfg.OrbitCapacity, ShouldEqual, DefaultOrbitCapacity)
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("And its policies match the default ones", func() {
			prop := NewPropagator(cfg.Scaling)
			o, _ := NewKeplerianElements(6, 0.5, 0, 0, 0)
			adaptive := cfg.Policies(prop).For(ClassNEO).(AdaptiveTessellation)
			So(adaptive.SegmentCount(o), ShouldEqual, NewAdaptiveTessellation(prop).SegmentCount(o))
			So(cfg.Policies(prop).For(ClassPlanet).Policy(), ShouldEqual, "fixed")
		})
	})

	Convey("Given a configuration file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "conf.toml")
		err := os.WriteFile(path, []byte(`
[scale]
distance = 20.0

[tessellation]
planet_segments = 360
max_segments = 2000

[orbit]
neo_color = "#ff0000"
capacity = 2
`), 0o644)
		So(err, ShouldBeNil)

		Convey("When loading it", func() {
			cfg, err := LoadConfig(path)

			Convey("Then it overrides the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Scaling.Distance, ShouldEqual, 20.0)
				So(cfg.Scaling.PlanetSize, ShouldEqual, DefaultPlanetSizeScale)
				So(cfg.PlanetSegments, ShouldEqual, 360)
				So(cfg.Adaptive.Max, ShouldEqual, 2000)
				So(cfg.NEOOrbitColor, ShouldResemble, Color{R: 1})
				So(cfg.OrbitCapacity, ShouldEqual, 2)
				path := cfg.Policies(NewPropagator(cfg.Scaling)).For(ClassPlanet).Tessellate(*Venus.Elements)
				So(path.Len(), ShouldEqual, 361)
			})
		})

		Convey("When it is found through the environment", func() {
			t.Setenv(ConfigEnv, dir)
			cfg, err := ConfigFromEnv()
			So(err, ShouldBeNil)
			So(cfg.PlanetSegments, ShouldEqual, 360)
		})
	})

	Convey("Given an invalid configuration file", t, func() {
		path := filepath.Join(t.TempDir(), "conf.toml")
		So(os.WriteFile(path, []byte("[scale]\ndistance = -1.0\n[orbit]\ncapacity = 0\n"), 0o644), ShouldBeNil)

		Convey("Then loading it fails", func() {
			_, err := LoadConfig(path)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "scale.distance")
			So(err.Error(), ShouldContainSubstring, "orbit.capacity")
		})
	})

	Convey("Given negative tessellation thresholds", t, func() {
		path := filepath.Join(t.TempDir(), "conf.toml")
		So(os.WriteFile(path, []byte("[tessellation]\nmidpoint_threshold = -0.1\naxis_threshold = 0.0\n"), 0o644), ShouldBeNil)

		Convey("Then loading it fails", func() {
			_, err := LoadConfig(path)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "tessellation.midpoint_threshold")
			So(err.Error(), ShouldContainSubstring, "tessellation.axis_threshold")
		})
	})

	Convey("Given a malformed environment override", t, func() {
		t.Setenv(ConfigEnv, "")
		t.Setenv("ORRERY_SCALE_DISTANCE", "far")

		Convey("Then the defaults are unaffected", func() {
			So(func() { DefaultConfig() }, ShouldNotPanic)
			So(DefaultConfig().Scaling, ShouldResemble, DefaultScaling())
		})

		Convey("And loading from the environment fails", func() {
			_, err := ConfigFromEnv()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "scale.distance")
		})
	})

	Convey("Given no file and no overrides", t, func() {
		t.Setenv(ConfigEnv, "")

		Convey("Then the viper defaults match the compiled-in ones", func() {
			cfg, err := ConfigFromEnv()
			So(err, ShouldBeNil)
			So(cfg, ShouldResemble, DefaultConfig())
		})
	})

	Convey("Given a missing configuration file", t, func() {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		So(err, ShouldNotBeNil)
	})
}
