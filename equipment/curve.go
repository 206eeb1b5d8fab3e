/*
Copyright © 2025 the PlantSim authors.
This file is part of PlantSim.

PlantSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PlantSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PlantSim.  If not, see <http://www.gnu.org/licenses/>.*/

package equipment

import (
	"fmt"
	"sort"
)

// Curve is a one-dimensional performance lookup table. Queries between
// sample points are linearly interpolated; queries outside the sample
// domain return the boundary sample value, never an extrapolation.
// The same representation serves capacity-vs-temperature,
// COP-vs-temperature, and part-load (capacity-vs-COP) lookups.
type Curve struct {
	X []float64 `json:"x" toml:"x"`
	Y []float64 `json:"y" toml:"y"`
}

// NewCurve creates a Curve from the given sample pairs, copying and
// sorting them by x. The input order is arbitrary.
func NewCurve(x, y []float64) (*Curve, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("equipment: curve has %d x samples but %d y samples", len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("equipment: curve has no samples")
	}
	c := &Curve{
		X: append([]float64(nil), x...),
		Y: append([]float64(nil), y...),
	}
	sort.Sort(&curveSorter{c})
	return c, nil
}

type curveSorter struct{ c *Curve }

func (s *curveSorter) Len() int           { return len(s.c.X) }
func (s *curveSorter) Less(i, j int) bool { return s.c.X[i] < s.c.X[j] }
func (s *curveSorter) Swap(i, j int) {
	s.c.X[i], s.c.X[j] = s.c.X[j], s.c.X[i]
	s.c.Y[i], s.c.Y[j] = s.c.Y[j], s.c.Y[i]
}

// normalize sorts the curve samples in place. It is applied after
// decoding a curve from a library document, where sample order is
// not guaranteed.
func (c *Curve) normalize() error {
	if len(c.X) != len(c.Y) {
		return fmt.Errorf("equipment: curve has %d x samples but %d y samples", len(c.X), len(c.Y))
	}
	if len(c.X) == 0 {
		return fmt.Errorf("equipment: curve has no samples")
	}
	sort.Sort(&curveSorter{c})
	return nil
}

// Value returns the interpolated value at x, clamped to the curve's
// boundary samples.
func (c *Curve) Value(x float64) float64 {
	n := len(c.X)
	if x <= c.X[0] {
		return c.Y[0]
	}
	if x >= c.X[n-1] {
		return c.Y[n-1]
	}
	// Index of the first sample >= x; x lies in (X[i-1], X[i]].
	i := sort.SearchFloat64s(c.X, x)
	x0, x1 := c.X[i-1], c.X[i]
	y0, y1 := c.Y[i-1], c.Y[i]
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

// Values interpolates the curve at each element of x, storing the
// results in dst. dst must be the same length as x.
func (c *Curve) Values(dst, x []float64) {
	if len(dst) != len(x) {
		panic(fmt.Errorf("equipment: destination length %d != query length %d", len(dst), len(x)))
	}
	for i, xi := range x {
		dst[i] = c.Value(xi)
	}
}

// Min returns the smallest x sample of the curve.
func (c *Curve) Min() float64 { return c.X[0] }

// Max returns the largest x sample of the curve.
func (c *Curve) Max() float64 { return c.X[len(c.X)-1] }

// MaxYPoint returns the sample pair with the largest y value.
// For a part-load curve this is the operating point with the highest
// COP, i.e. the point of least waste heat.
func (c *Curve) MaxYPoint() (x, y float64) {
	x, y = c.X[0], c.Y[0]
	for i := 1; i < len(c.Y); i++ {
		if c.Y[i] > y {
			x, y = c.X[i], c.Y[i]
		}
	}
	return x, y
}
