package orrery

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gonum/floats"
)

func TestCosmoSceneSave(t *testing.T) {
	scale := DefaultScaling()
	scene := NewCosmoScene("test", scale)
	m := NewOrbitManager(&testRenderer{}, WithPolicies(TessellationPolicies{
		ClassPlanet: FixedTessellation{Segments: 360, Scale: scale},
		ClassNEO:    NewAdaptiveTessellation(NewPropagator(scale)),
	}))
	body, _ := Mars.Tracked(Mars.Color)
	res, err := m.Attach(body, Mars.Color, scene)
	if err != nil {
		t.Fatal(err)
	}
	if err := scene.Add(res); err == nil {
		t.Fatal("adding a resource twice should fail")
	}
	dir := filepath.Join(t.TempDir(), "out")
	epoch := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	files, err := scene.Save(dir, epoch)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected two files, got %v", files)
	}

	f, err := os.Open(files[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	states, err := ParseInterpolatedStates(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != res.Path.Len() {
		t.Fatalf("expected %d states, got %d", res.Path.Len(), len(states))
	}
	if !floats.EqualWithinAbs(states[0].JD, 2451545.0, 1e-6) {
		t.Fatalf("first record at JD %f", states[0].JD)
	}
	// Records are written with six decimals.
	if r := norm(states[0].Position) / AU; !floats.EqualWithinAbs(r, Mars.Elements.Periapsis(), 1e-6) {
		t.Fatalf("first record at %f AU, expected perihelion %f", r, Mars.Elements.Periapsis())
	}
	last := states[len(states)-1]
	if !floats.EqualWithinAbs(last.JD-states[0].JD, Mars.Elements.PeriodDays(), 1e-3) {
		t.Fatalf("records span %f days", last.JD-states[0].JD)
	}

	data, err := os.ReadFile(files[1])
	if err != nil {
		t.Fatal(err)
	}
	var catalog CgCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		t.Fatal(err)
	}
	if len(catalog.Items) != 1 || catalog.Items[0].Name != "Mars" || catalog.Items[0].Class != "planet" {
		t.Fatalf("unexpected catalog %s", data)
	}
	if err := catalog.Items[0].Trajectory.Validate(); err != nil {
		t.Fatal(err)
	}
	if catalog.Items[0].Trajectory.Source != filepath.Base(files[0]) {
		t.Fatalf("trajectory source %s", catalog.Items[0].Trajectory.Source)
	}

	m.Detach(scene)
	if len(scene.Resources()) != 0 {
		t.Fatal("detach should remove the resource")
	}
	if err := scene.Add(res); err == nil {
		t.Fatal("adding a released resource should fail")
	}
	if err := scene.Remove(res); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
}

func TestCosmoSceneSaveEclipticAxes(t *testing.T) {
	// A polar orbit whose perihelion sits a quarter turn past the node starts
	// at the ecliptic north pole and moves towards -x.
	el, err := NewKeplerianElements(1, 0, math.Pi/2, math.Pi/2, 0)
	if err != nil {
		t.Fatal(err)
	}
	scene := NewCosmoScene("polar", DefaultScaling())
	m := NewOrbitManager(&testRenderer{})
	body := TrackedBody{Name: "Polar", Classification: ClassNEO, Elements: el, Color: DefaultNEOOrbitColor}
	if _, err := m.Attach(body, DefaultNEOOrbitColor, scene); err != nil {
		t.Fatal(err)
	}
	files, err := scene.Save(t.TempDir(), time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(files[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	states, err := ParseInterpolatedStates(f)
	if err != nil {
		t.Fatal(err)
	}
	first := states[0]
	if !floats.EqualApprox(first.Position, []float64{0, 0, AU}, 1e-6) {
		t.Fatalf("first record at %v km, expected the ecliptic pole", first.Position)
	}
	if first.Velocity[0] >= 0 || math.Abs(first.Velocity[1]) > 1e-6 {
		t.Fatalf("unexpected velocity %v km/s", first.Velocity)
	}
}

func TestInterpolatedStateText(t *testing.T) {
	st := CgInterpolatedState{JD: 2451545, Position: []float64{1, 2, 3}, Velocity: []float64{-1, -2, -3}}
	states, err := ParseInterpolatedStates(strings.NewReader("# header\n" + st.ToText() + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 || states[0].JD != st.JD || !floats.Equal(states[0].Velocity, st.Velocity) {
		t.Fatalf("unexpected states %v", states)
	}
	if err := new(CgInterpolatedState).FromText([]string{"1", "2"}); err == nil {
		t.Fatal("short records should be rejected")
	}
	if _, err := ParseInterpolatedStates(strings.NewReader("1 2 3 4 5 6 x\n")); err == nil {
		t.Fatal("malformed records should be rejected")
	}
}

func TestWritePathCSV(t *testing.T) {
	path := FixedTessellation{Segments: 4, Scale: DefaultScaling()}.Tessellate(*Earth.Elements)
	var buf bytes.Buffer
	if err := WritePathCSV(&buf, path); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 6 || strings.Join(records[0], ",") != "epoch,x,y,z" {
		t.Fatalf("unexpected records %v", records)
	}
}
