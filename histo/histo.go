/*
 * histo.go, part of goimodfit.
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

//Package histo contains simple 1D histograms, used to look at the density
//distribution of maps.
package histo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a histogram. Values outside the dividers are not counted.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

//Dividers returns the n+1 dividers of n equal bins spanning [min, max]. The
//last divider is moved slightly up, so max falls in the last bin.
func Dividers(min, max float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	if max <= min {
		max = min + 1
	}
	d := make([]float64, n+1)
	floats.Span(d, min, max)
	d[n] += (max - min) * 1e-9
	return d
}

//AddDivider returns a copy of the sorted dividers with x added as a
//divider, if x falls strictly between the first and last of them
//and is not already a divider.
func AddDivider(dividers []float64, x float64) []float64 {
	ret := make([]float64, len(dividers), len(dividers)+1)
	copy(ret, dividers)
	if len(ret) < 2 || x <= ret[0] || x >= ret[len(ret)-1] {
		return ret
	}
	i := sort.SearchFloat64s(ret, x)
	if ret[i] == x {
		return ret
	}
	ret = append(ret, 0)
	copy(ret[i+1:], ret[i:])
	ret[i] = x
	return ret
}

//NewData returns a new histogram from the dividers and rawdata given.
//rawdata can be nil. In that case, an empty histogram is created.
//rawdata is not modified.
func NewData(dividers []float64, rawdata []float64) *Data {
	d := new(Data)
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(rawdata)
	}
	return d
}

//MarshalJSON encodes the histogram as a JSON object.
func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

//String prints a -hopefully- pretty string representation of
//the histogram, one bin per line.
func (D *Data) String() string {
	ret := []string{fmt.Sprintf("Normalized: %v, TotalData: %d", D.normalized, D.total)}
	max := 0.0
	if len(D.histo) > 0 {
		max = floats.Max(D.histo)
	}
	for i, v := range D.histo {
		bar := 0
		if max > 0 {
			bar = int(40 * v / max)
		}
		ret = append(ret, fmt.Sprintf("%10.4g %10.4g %9.3f %s", D.dividers[i], D.dividers[i+1], v, strings.Repeat("#", bar)))
	}
	return strings.Join(ret, "\n")
}

//AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	for _, v := range point {
		//the bin j covers [dividers[j], dividers[j+1])
		j := sort.SearchFloat64s(D.dividers, v)
		if j < len(D.dividers) && D.dividers[j] == v {
			j++
		}
		if j == 0 || j == len(D.dividers) {
			continue
		}
		D.histo[j-1]++
		D.total++
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

//Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize normalizes the histogram.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize un-normalizes the histogram.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

//Total returns the number of values counted in the histogram.
func (D *Data) Total() int {
	return D.total
}

//View returns the bins of the histogram. The slice is not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

//Sum returns the sum of all the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//Above returns the fraction of the counted values in the bins that start at or above cutoff.
func (D *Data) Above(cutoff float64) float64 {
	if D.total == 0 {
		return 0
	}
	var s float64
	for i, v := range D.histo {
		if D.dividers[i] >= cutoff {
			s += v
		}
	}
	if D.normalized {
		return s
	}
	return s / float64(D.total)
}

//ReHisto refills the histogram with rawdata, which is not modified.
func (D *Data) ReHisto(rawdata []float64) {
	data := make([]float64, len(rawdata))
	copy(data, rawdata)
	sort.Float64s(data)
	//stat.Histogram panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(data, D.dividers[len(D.dividers)-1])
	mini := sort.SearchFloat64s(data, D.dividers[0])
	data = data[mini:maxi]
	D.normalized = false
	D.total = len(data)
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
}
