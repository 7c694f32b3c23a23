package orrery

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/spf13/viper"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
)

// Classification is the kind of a tracked body.
type Classification uint8

const (
	// ClassSun is the central star.
	ClassSun Classification = iota + 1
	// ClassPlanet is one of the major planets.
	ClassPlanet
	// ClassNEO is a near-Earth object (asteroid, PHA or comet).
	ClassNEO
)

func (c Classification) String() string {
	switch c {
	case ClassSun:
		return "SUN"
	case ClassPlanet:
		return "PLANET"
	case ClassNEO:
		return "NEO"
	}
	return fmt.Sprintf("Classification(%d)", uint8(c))
}

// ParseClassification returns the classification from its name.
func ParseClassification(s string) (Classification, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUN":
		return ClassSun, nil
	case "PLANET":
		return ClassPlanet, nil
	case "NEO", "ASTEROID", "PHA", "COMET":
		return ClassNEO, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClassification, s)
}

// Color is an RGB colour with components in [0, 1].
type Color struct {
	R, G, B float64
}

// ParseColor reads a "#rrggbb" colour.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid colour %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %s", s, err)
	}
	return Color{float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255}, nil
}

// MustParseColor is ParseColor for literals; it panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Slice returns the colour as a three-element slice, as Cosmographia expects.
func (c Color) Slice() []float64 {
	return []float64{c.R, c.G, c.B}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5))
}

// TrackedBody is a body selected for display with its orbit.
type TrackedBody struct {
	Name           string
	Classification Classification
	Elements       KeplerianElements
	Color          Color
}

// CatalogEntry defines a body as listed in a catalog.
// Note: Elements is nil for the Sun.
type CatalogEntry struct {
	Name           string
	Designation    string
	Classification Classification
	Radius         float64 // km
	Color          Color
	TextureRef     string
	Elements       *KeplerianElements
}

// String implements the Stringer interface.
func (c CatalogEntry) String() string {
	if c.Elements == nil {
		return fmt.Sprintf("%s (%s)", c.Name, c.Classification)
	}
	return fmt.Sprintf("%s (%s) %s", c.Name, c.Classification, c.Elements)
}

// Tracked returns the entry as a body to track with the provided orbit colour.
// Bodies without elements are rejected.
func (c CatalogEntry) Tracked(orbitColor Color) (TrackedBody, error) {
	if c.Elements == nil {
		return TrackedBody{}, fmt.Errorf("%w: %s has no orbit", ErrInvalidElements, c.Name)
	}
	return TrackedBody{Name: c.Name, Classification: c.Classification, Elements: *c.Elements, Color: orbitColor}, nil
}

// DisplayRadius returns the rendered radius of the body.
func (c CatalogEntry) DisplayRadius(s Scaling) float64 {
	return s.BodyRadius(c.Radius)
}

// CatalogEntryFromString returns a built-in body from its name.
func CatalogEntryFromString(name string) (CatalogEntry, error) {
	for _, b := range Bodies() {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return CatalogEntry{}, fmt.Errorf("%w: '%s'", ErrUnknownBody, name)
}

// FindEntry looks a body up by name or designation in the provided entries.
func FindEntry(entries []CatalogEntry, name string) (CatalogEntry, error) {
	for _, b := range entries {
		if strings.EqualFold(b.Name, name) || (b.Designation != "" && strings.EqualFold(b.Designation, name)) {
			return b, nil
		}
	}
	return CatalogEntry{}, fmt.Errorf("%w: '%s'", ErrUnknownBody, name)
}

// LoadCatalog reads additional bodies from a catalog file. Each entry of the
// `bodies` array holds name, designation, class, radius (km), color, texture,
// and the elements a (AU), e, i, longPeri and longNode (degrees).
// Rows which cannot be used are logged and skipped: the valid entries are
// returned together with the joined row errors. The entries are nil only
// when the file itself cannot be read.
func LoadCatalog(path string, logger kitlog.Logger) ([]CatalogEntry, error) {
	logger = nopIfNil(logger)
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var raw struct {
		Bodies []struct {
			Name        string  `mapstructure:"name"`
			Designation string  `mapstructure:"designation"`
			Class       string  `mapstructure:"class"`
			Radius      float64 `mapstructure:"radius"`
			Color       string  `mapstructure:"color"`
			Texture     string  `mapstructure:"texture"`
			A           float64 `mapstructure:"a"`
			E           float64 `mapstructure:"e"`
			I           float64 `mapstructure:"i"`
			LongPeri    float64 `mapstructure:"longperi"`
			LongNode    float64 `mapstructure:"longnode"`
		} `mapstructure:"bodies"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decoding catalog %s: %w", path, err)
	}
	entries := make([]CatalogEntry, 0, len(raw.Bodies))
	var errs []error
	for _, b := range raw.Bodies {
		entry, err := catalogRow(b.Name, b.Designation, b.Class, b.Radius, b.Color, b.Texture, b.A, b.E, b.I, b.LongPeri, b.LongNode)
		if err != nil {
			logger.Log("level", "warning", "subsys", "catalog", "status", "skipped", "file", path, "body", b.Name, "err", err)
			errs = append(errs, fmt.Errorf("body %s: %w", b.Name, err))
			continue
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, errors.Join(errs...)
}

func catalogRow(name, designation, className string, radius float64, colorHex, texture string, a, e, i, ϖ, Ω float64) (CatalogEntry, error) {
	class, err := ParseClassification(className)
	if err != nil {
		return CatalogEntry{}, err
	}
	color := DefaultNEOOrbitColor
	if colorHex != "" {
		if color, err = ParseColor(colorHex); err != nil {
			return CatalogEntry{}, err
		}
	}
	entry := CatalogEntry{Name: name, Designation: designation, Classification: class, Radius: radius, Color: color, TextureRef: texture}
	if class != ClassSun {
		el, err := NewKeplerianElementsDeg(a, e, i, ϖ, Ω)
		if err != nil {
			return CatalogEntry{}, err
		}
		entry.Elements = &el
	}
	return entry, nil
}

// DefaultNEOOrbitColor is the orbit colour of selected NEOs.
var DefaultNEOOrbitColor = MustParseColor("#0866ff")

func mustElementsDeg(a, e, i, ϖ, Ω float64) *KeplerianElements {
	el, err := NewKeplerianElementsDeg(a, e, i, ϖ, Ω)
	if err != nil {
		panic(err)
	}
	return &el
}

// Bodies returns the built-in Sun and planets, ordered by distance.
func Bodies() []CatalogEntry {
	return []CatalogEntry{Sun, Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune}
}

/* Definitions: J2000 mean elements (a in AU, angles in degrees). */

// Sun is our closest star.
var Sun = CatalogEntry{"Sun", "", ClassSun, 695700, MustParseColor("#fdb813"), "textures/sun.jpg", nil}

// Mercury is fast.
var Mercury = CatalogEntry{"Mercury", "", ClassPlanet, 2439.7, MustParseColor("#b5b5b5"), "textures/planets/mercury.jpg", mustElementsDeg(0.38709927, 0.20563593, 7.00497902, 77.45779628, 48.33076593)}

// Venus is poisonous.
var Venus = CatalogEntry{"Venus", "", ClassPlanet, 6051.8, MustParseColor("#e8cda2"), "textures/planets/venus.jpg", mustElementsDeg(0.72333566, 0.00677672, 3.39467605, 131.60246718, 76.67984255)}

// Earth is home.
var Earth = CatalogEntry{"Earth", "", ClassPlanet, 6378.1363, MustParseColor("#2e86ab"), "textures/planets/earth.jpg", mustElementsDeg(1.00000261, 0.01671123, -0.00001531, 102.93768193, 0)}

// Mars is the vacation place.
var Mars = CatalogEntry{"Mars", "", ClassPlanet, 3396.19, MustParseColor("#c1440e"), "textures/planets/mars.jpg", mustElementsDeg(1.52371034, 0.09339410, 1.84969142, -23.94362959, 49.55953891)}

// Jupiter is big.
var Jupiter = CatalogEntry{"Jupiter", "", ClassPlanet, 71492.0, MustParseColor("#c88b3a"), "textures/planets/jupiter.jpg", mustElementsDeg(5.20288700, 0.04838624, 1.30439695, 14.72847983, 100.47390909)}

// Saturn floats and that's really cool.
var Saturn = CatalogEntry{"Saturn", "", ClassPlanet, 60268.0, MustParseColor("#e3c16f"), "textures/planets/saturn.jpg", mustElementsDeg(9.53667594, 0.05386179, 2.48599187, 92.59887831, 113.66242448)}

// Uranus is no joke.
var Uranus = CatalogEntry{"Uranus", "", ClassPlanet, 25559.0, MustParseColor("#7de2e8"), "textures/planets/uranus.jpg", mustElementsDeg(19.18916464, 0.04725744, 0.77263783, 170.95427630, 74.01692503)}

// Neptune is windy.
var Neptune = CatalogEntry{"Neptune", "", ClassPlanet, 24764.0, MustParseColor("#3f54ba"), "textures/planets/neptune.jpg", mustElementsDeg(30.06992276, 0.00859048, 1.77004347, 44.96476227, 131.78422574)}
