// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"
	"sort"
)

// RGB is a 24-bit colour.
type RGB struct{ R, G, B uint8 }

// Colormap maps t ∈ [0,1] to a colour by piecewise-linear interpolation
// between evenly spaced stops.
type Colormap struct {
	name  string
	stops []RGB
}

// Stops approximate the matplotlib palettes of the same name.
var colormaps = map[string]Colormap{
	"Blues": {name: "Blues", stops: []RGB{
		{247, 251, 255}, {198, 219, 239}, {107, 174, 214}, {33, 113, 181}, {8, 48, 107},
	}},
	"Greens": {name: "Greens", stops: []RGB{
		{247, 252, 245}, {199, 233, 192}, {116, 196, 118}, {35, 139, 69}, {0, 68, 27},
	}},
	"Reds": {name: "Reds", stops: []RGB{
		{255, 245, 240}, {252, 187, 161}, {251, 106, 74}, {203, 24, 29}, {103, 0, 13},
	}},
	"Greys": {name: "Greys", stops: []RGB{
		{255, 255, 255}, {217, 217, 217}, {150, 150, 150}, {82, 82, 82}, {0, 0, 0},
	}},
	"coolwarm": {name: "coolwarm", stops: []RGB{
		{59, 76, 192}, {141, 176, 254}, {221, 221, 221}, {244, 154, 123}, {180, 4, 38},
	}},
}

// DefaultColormap is used when HeatmapOptions.Colormap is empty.
const DefaultColormap = "Blues"

// LookupColormap returns the colormap registered under name (case-sensitive,
// as in matplotlib).
func LookupColormap(name string) (Colormap, error) {
	if name == "" {
		name = DefaultColormap
	}
	cm, ok := colormaps[name]
	if !ok {
		return Colormap{}, fmt.Errorf("%q: %w", name, ErrUnknownColormap)
	}
	return cm, nil
}

// Colormaps lists registered names in sorted order.
func Colormaps() []string {
	out := make([]string, 0, len(colormaps))
	for name := range colormaps {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Name returns the registered name.
func (c Colormap) Name() string { return c.name }

// At returns the colour for t; t is clamped to [0,1] and NaN maps to 0.
func (c Colormap) At(t float64) RGB {
	if len(c.stops) == 0 {
		return RGB{}
	}
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(c.stops)-1)
	i := int(math.Floor(pos))
	if i >= len(c.stops)-1 {
		return c.stops[len(c.stops)-1]
	}
	f := pos - float64(i)
	lo, hi := c.stops[i], c.stops[i+1]

	return RGB{lerp(lo.R, hi.R, f), lerp(lo.G, hi.G, f), lerp(lo.B, hi.B, f)}
}

// Luminance is the relative luminance in [0,1] (Rec. 709 weights).
func (c RGB) Luminance() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}
