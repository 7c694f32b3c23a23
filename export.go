package orrery

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// CgCatalog definition.
type CgCatalog struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Items   []*CgItems `json:"items"`
	Require []string   `json:"require,omitempty"`
}

func (c *CgCatalog) String() string {
	return c.Name + "(" + c.Version + ")"
}

// CgItems definition.
type CgItems struct {
	Class           string            `json:"class"`
	Name            string            `json:"name"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime"`
	Center          string            `json:"center"`
	TrajectoryFrame string            `json:"trajectoryFrame"`
	Trajectory      *CgTrajectory     `json:"trajectory,omitempty"`
	Label           *CgLabel          `json:"label,omitempty"`
	TrajectoryPlot  *CgTrajectoryPlot `json:"trajectoryPlot,omitempty"`
}

// CgTrajectory definition.
type CgTrajectory struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

// Validate validates a CgTrajectory.
func (t *CgTrajectory) Validate() error {
	if t.Type != "InterpolatedStates" || !strings.HasSuffix(t.Source, "xyzv") {
		return errors.New("only InterpolatedStates are currently supported in Cosmographia trajectory types")
	}
	return nil
}

// CgLabel definition.
type CgLabel struct {
	Color    []float64 `json:"color,omitempty"`
	FadeSize int       `json:"fadeSize,omitempty"`
	ShowText bool      `json:"showText,omitempty"`
}

// CgTrajectoryPlot definition.
type CgTrajectoryPlot struct {
	Color       []float64 `json:"color,omitempty"`
	LineWidth   int       `json:"lineWidth,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Lead        string    `json:"lead,omitempty"`
	Fade        int       `json:"fade,omitempty"`
	SampleCount int       `json:"sampleCount,omitempty"`
}

// CgInterpolatedState definition.
type CgInterpolatedState struct {
	JD       float64
	Position []float64
	Velocity []float64
}

// FromText initializes from text.
// The `record` parameter must be an array of seven items.
func (i *CgInterpolatedState) FromText(record []string) error {
	if len(record) != 7 {
		return fmt.Errorf("expected 7 fields, got %d", len(record))
	}
	vals := make([]float64, 7)
	for k, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return err
		}
		vals[k] = v
	}
	i.JD = vals[0]
	i.Position = vals[1:4]
	i.Velocity = vals[4:7]
	return nil
}

// ToText converts to text for written output.
func (i *CgInterpolatedState) ToText() string {
	return fmt.Sprintf("%f %f %f %f %f %f %f", i.JD, i.Position[0], i.Position[1], i.Position[2], i.Velocity[0], i.Velocity[1], i.Velocity[2])
}

// ParseInterpolatedStates reads the records of an xyzv file.
func ParseInterpolatedStates(r io.Reader) ([]*CgInterpolatedState, error) {
	var states = []*CgInterpolatedState{}
	cr := csv.NewReader(r)
	cr.Comma = ' '
	cr.Comment = '#'
	for {
		record, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		state := CgInterpolatedState{}
		if err := state.FromText(record); err != nil {
			return nil, err
		}
		states = append(states, &state)
	}
	return states, nil
}

// CosmoScene is a Scene which records the attached orbits so they can be
// saved as a Cosmographia catalog.
type CosmoScene struct {
	Name  string
	scale Scaling
	items []*OrbitResource
}

// NewCosmoScene returns an empty scene. The scaling is needed to convert
// display points back to kilometers.
func NewCosmoScene(name string, s Scaling) *CosmoScene {
	return &CosmoScene{Name: name, scale: s}
}

// Add implements the Scene interface.
func (c *CosmoScene) Add(r *OrbitResource) error {
	if r.Released() {
		return fmt.Errorf("cannot add released %s", r)
	}
	for _, item := range c.items {
		if item.ID == r.ID {
			return fmt.Errorf("%s already in scene %s", r, c.Name)
		}
	}
	c.items = append(c.items, r)
	return nil
}

// Remove implements the Scene interface.
func (c *CosmoScene) Remove(r *OrbitResource) error {
	for i, item := range c.items {
		if item.ID == r.ID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownResource, r.ID)
}

// Resources returns the registered resources in insertion order.
func (c *CosmoScene) Resources() []*OrbitResource {
	return append([]*OrbitResource(nil), c.items...)
}

// Save writes one xyzv trajectory per registered orbit and the catalog which
// references them to dir. The path epochs are counted from epoch, taken as
// the time of perihelion. It returns the paths of the written files.
func (c *CosmoScene) Save(dir string, epoch time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	epoch = epoch.UTC()
	jd0 := julian.TimeToJD(epoch)
	catalog := CgCatalog{Version: "1.0", Name: c.Name}
	var written []string
	for _, res := range c.items {
		source := fmt.Sprintf("orbit-%s.xyzv", strings.ToLower(strings.ReplaceAll(res.Body.Name, " ", "_")))
		fname := filepath.Join(dir, source)
		if err := c.writeTrajectory(fname, res, jd0, epoch); err != nil {
			return written, err
		}
		written = append(written, fname)

		days := kernelTimeToDays(res.Body.Elements.Period())
		color := res.Style.Color.Slice()
		class := "asteroid"
		if res.Body.Classification == ClassPlanet {
			class = "planet"
		}
		catalog.Items = append(catalog.Items, &CgItems{
			Class:           class,
			Name:            res.Body.Name,
			StartTime:       epoch.Format(time.RFC3339),
			EndTime:         epoch.Add(time.Duration(days * 24 * float64(time.Hour))).Format(time.RFC3339),
			Center:          "Sun",
			TrajectoryFrame: "EclipticJ2000",
			Trajectory:      &CgTrajectory{Type: "InterpolatedStates", Source: source},
			Label:           &CgLabel{Color: color, FadeSize: 1000000, ShowText: true},
			TrajectoryPlot: &CgTrajectoryPlot{Color: color, LineWidth: int(math.Max(1, math.Round(res.Style.LineWidth))),
				Duration: fmt.Sprintf("%d d", int(days)+1), Lead: "0 d", SampleCount: res.Path.Len()},
		})
	}
	fc := filepath.Join(dir, fmt.Sprintf("catalog-%s.json", c.Name))
	marsh, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return written, err
	}
	if err := os.WriteFile(fc, marsh, 0o644); err != nil {
		return written, err
	}
	return append(written, fc), nil
}

func (c *CosmoScene) writeTrajectory(fname string, res *OrbitResource, jd0 float64, epoch time.Time) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintf(f, `# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a TDB Julian date
#   Position in km
#   Velocity in km/sec
#   Orbit %s, time of perihelion (UTC): %s`, time.Now().UTC(), res.Body.Elements, epoch)
	pts := res.Path.Points
	km := make([][]float64, len(pts))
	for i, p := range pts {
		// Display points carry the pole on the second axis.
		km[i] = scaled(toDisplay(c.scale.Unscale(p)), AU)
	}
	for i := range km {
		lo, hi := i-1, i+1
		if lo < 0 {
			lo = 0
		}
		if hi >= len(km) {
			hi = len(km) - 1
		}
		V := []float64{0, 0, 0}
		if dt := kernelTimeToDays(res.Path.Epochs[hi]-res.Path.Epochs[lo]) * 86400; dt > 0 {
			for j := 0; j < 3; j++ {
				V[j] = (km[hi][j] - km[lo][j]) / dt
			}
		}
		st := CgInterpolatedState{JD: jd0 + kernelTimeToDays(res.Path.Epochs[i]), Position: km[i], Velocity: V}
		if _, err := f.WriteString("\n" + st.ToText()); err != nil {
			return err
		}
	}
	_, err = f.WriteString("\n")
	return err
}

// WritePathCSV writes the path as `epoch,x,y,z` rows, epoch in kernel time.
func WritePathCSV(w io.Writer, p OrbitPath) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"epoch", "x", "y", "z"}); err != nil {
		return err
	}
	for i, pt := range p.Points {
		rec := []string{
			strconv.FormatFloat(p.Epochs[i], 'f', 6, 64),
			strconv.FormatFloat(pt[0], 'f', 6, 64),
			strconv.FormatFloat(pt[1], 'f', 6, 64),
			strconv.FormatFloat(pt[2], 'f', 6, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
