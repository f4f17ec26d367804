/*
 * histogram.go, part of goimodfit.
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

//Package mapplot draws plots that help choosing imodfit parameters from a density map.
package mapplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicHistPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Density"
	p.Y.Label.Text = "Voxels"
	p.Add(plotter.NewGrid())
	return p
}

//Histogram plots the distribution of the densities in data, using bins bins, with a vertical
//line marking cutoff. The plot is saved to plotname, whose extension (.png, .svg, .pdf...)
//selects the format.
func Histogram(data []float64, bins int, cutoff float64, title, plotname string) error {
	if len(data) == 0 {
		return fmt.Errorf("Histogram: no data to plot")
	}
	if bins <= 0 {
		bins = 100
	}
	p := basicHistPlot(title)
	h, err := plotter.NewHist(plotter.Values(data), bins)
	if err != nil {
		return fmt.Errorf("Histogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 90, G: 120, B: 200, A: 255}
	p.Add(h)
	//the cutoff line spans the highest bin.
	var top float64
	for _, b := range h.Bins {
		if b.Weight > top {
			top = b.Weight
		}
	}
	l, err := plotter.NewLine(plotter.XYs{{X: cutoff, Y: 0}, {X: cutoff, Y: top}})
	if err != nil {
		return fmt.Errorf("Histogram: %w", err)
	}
	l.LineStyle.Width = vg.Points(1.5)
	l.LineStyle.Color = color.RGBA{R: 200, A: 255}
	p.Add(l)
	p.Legend.Add(fmt.Sprintf("cutoff %.4g", cutoff), l)
	//here I intentionally shadow err.
	if err := p.Save(6*vg.Inch, 4*vg.Inch, plotname); err != nil {
		return fmt.Errorf("Histogram: %w", err)
	}
	return nil
}
