/*
 * histo_test.go, part of goimodfit.
 *
 *
 * Copyright 2024 The goimodfit authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package histo

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestHisto(Te *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	D := NewData([]float64{0, 1, 2, 3, 4, 8}, rawdata)
	expected := []float64{2, 6, 2, 7, 9}
	for i, v := range D.View() {
		if v != expected[i] {
			Te.Errorf("bin %d: %f, expected %f", i, v, expected[i])
		}
	}
	if D.Total() != 26 || D.Sum() != 26 {
		Te.Errorf("unexpected total %d or sum %f", D.Total(), D.Sum())
	}
	if rawdata[0] != 1 || rawdata[1] != 6 {
		Te.Error("raw data modified")
	}
	D.Normalize()
	D.AddData(2.5, 100)
	if D.Total() != 27 || !D.Normalized() {
		Te.Errorf("unexpected total %d after adding data", D.Total())
	}
	if f := D.Above(4); math.Abs(f-9.0/27) > 1e-9 {
		Te.Errorf("fraction above 4 is %f, expected %f", f, 9.0/27)
	}
	j, err := json.Marshal(D)
	if err != nil || !strings.Contains(string(j), `"total":27`) {
		Te.Errorf("unexpected JSON %s (%v)", j, err)
	}
}

func TestDividers(Te *testing.T) {
	d := Dividers(0, 1, 4)
	if len(d) != 5 || d[0] != 0 || d[2] != 0.5 || d[4] <= 1 {
		Te.Errorf("unexpected dividers %v", d)
	}
	D := NewData(d, []float64{0, 0.3, 1})
	if D.Total() != 3 || D.View()[3] != 1 {
		Te.Errorf("maximum not counted: %v", D.View())
	}
}

func TestAddDivider(Te *testing.T) {
	d := []float64{0, 1, 2, 3}
	cases := []struct {
		x        float64
		expected []float64
	}{
		{1.5, []float64{0, 1, 1.5, 2, 3}},
		{0.2, []float64{0, 0.2, 1, 2, 3}},
		{2, []float64{0, 1, 2, 3}},
		{-1, []float64{0, 1, 2, 3}},
		{3, []float64{0, 1, 2, 3}},
	}
	for _, c := range cases {
		got := AddDivider(d, c.x)
		if len(got) != len(c.expected) {
			Te.Errorf("adding %f: got %v, expected %v", c.x, got, c.expected)
			continue
		}
		for i := range got {
			if got[i] != c.expected[i] {
				Te.Errorf("adding %f: got %v, expected %v", c.x, got, c.expected)
				break
			}
		}
	}
	if d[2] != 2 || len(d) != 4 {
		Te.Errorf("dividers modified: %v", d)
	}
	//with the cutoff as a divider, Above counts exactly the values at or above it.
	raw := []float64{0.1, 0.4, 0.5, 0.6, 0.9, 1}
	H := NewData(AddDivider(Dividers(0.1, 1, 2), 0.5), raw)
	if f := H.Above(0.5); math.Abs(f-4.0/6) > 1e-9 {
		Te.Errorf("fraction at or above 0.5 is %f, expected %f", f, 4.0/6)
	}
}
