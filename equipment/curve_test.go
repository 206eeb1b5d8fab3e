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
	"math"
	"reflect"
	"testing"
)

const curveTolerance = 1e-10

func TestCurveSortsSamples(t *testing.T) {
	c, err := NewCurve([]float64{10, -10, 0}, []float64{3, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	wantX := []float64{-10, 0, 10}
	wantY := []float64{1, 2, 3}
	if !reflect.DeepEqual(c.X, wantX) || !reflect.DeepEqual(c.Y, wantY) {
		t.Errorf("have (%v, %v), want (%v, %v)", c.X, c.Y, wantX, wantY)
	}
}

func TestCurveValue(t *testing.T) {
	c, err := NewCurve([]float64{-10, 0, 10}, []float64{1, 2, 4})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, want float64
	}{
		{-20, 1},  // clamped below the domain
		{-10, 1},  // boundary sample
		{-5, 1.5}, // interpolated
		{0, 2},
		{5, 3},
		{10, 4},
		{25, 4}, // clamped above the domain
	}
	for _, test := range tests {
		if v := c.Value(test.x); math.Abs(v-test.want) > curveTolerance {
			t.Errorf("Value(%g) = %g, want %g", test.x, v, test.want)
		}
	}
}

func TestCurveValues(t *testing.T) {
	c, err := NewCurve([]float64{0, 10}, []float64{0, 100})
	if err != nil {
		t.Fatal(err)
	}
	x := []float64{-1, 5, 11}
	dst := make([]float64, len(x))
	c.Values(dst, x)
	want := []float64{0, 50, 100}
	for i := range want {
		if math.Abs(dst[i]-want[i]) > curveTolerance {
			t.Errorf("Values()[%d] = %g, want %g", i, dst[i], want[i])
		}
	}
}

func TestCurveMaxYPoint(t *testing.T) {
	c, err := NewCurve([]float64{100, 200, 300, 400}, []float64{2.0, 3.5, 3.1, 2.4})
	if err != nil {
		t.Fatal(err)
	}
	x, y := c.MaxYPoint()
	if x != 200 || y != 3.5 {
		t.Errorf("MaxYPoint() = (%g, %g), want (200, 3.5)", x, y)
	}
	if c.Min() != 100 || c.Max() != 400 {
		t.Errorf("domain = [%g, %g], want [100, 400]", c.Min(), c.Max())
	}
}

func TestCurveErrors(t *testing.T) {
	if _, err := NewCurve([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("mismatched sample lengths should fail")
	}
	if _, err := NewCurve(nil, nil); err == nil {
		t.Error("empty curve should fail")
	}
}
