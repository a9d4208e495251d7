/*
 * profile.go, part of molequle.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

//Package chemplot produces the plots shown by MoleQule: reaction energy
//profiles and shelf life vs. temperature curves. It uses the gonum plot library.
package chemplot

import (
	"fmt"

	"github.com/rmera/molequle"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//EnergyProfilePlot returns a plot of the reactant, transition state and product
//energies (Hartree) of a degradation reaction, joined by a line.
func EnergyProfilePlot(profile molequle.EnergyProfile, title string) (*plot.Plot, error) {
	return EnergyProfilesPlot([]molequle.EnergyProfile{profile}, []string{title}, title)
}

//EnergyProfilesPlot plots several energy profiles in the same axes, each one
//in a different color and with the corresponding name in the legend.
func EnergyProfilesPlot(profiles []molequle.EnergyProfile, names []string, title string) (*plot.Plot, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("chemplot: no energy profiles given")
	}
	if len(names) != len(profiles) {
		return nil, fmt.Errorf("chemplot: %d names given for %d profiles", len(names), len(profiles))
	}
	p := basicPlot(title, "", "Energy (Hartree)")
	p.NominalX(molequle.ProfileLabels...)
	p.Add(plotter.NewGrid())
	for key, prof := range profiles {
		pts := make(plotter.XYs, len(molequle.ProfileLabels))
		for i, e := range prof.Energies() {
			pts[i].X = float64(i)
			pts[i].Y = e
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		c := accent
		if len(profiles) > 1 {
			c = colors(key, len(profiles))
		}
		line.Color = c
		line.Width = vg.Points(2)
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(4)
		p.Add(line, points)
		if len(profiles) > 1 {
			p.Legend.Add(names[key], line, points)
		}
	}
	return p, nil
}

//ShelfLifePlot returns a plot of the shelf life (days, in log scale) vs.
//temperature (K). Points with an infinite shelf life can't be drawn and are
//left out; an error is returned if no point remains.
func ShelfLifePlot(curve []molequle.CurvePoint, title string) (*plot.Plot, error) {
	pts := make(plotter.XYs, 0, len(curve))
	for _, c := range curve {
		if c.ShelfLife.Infinite || c.ShelfLife.Days <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: c.Temperature, Y: c.ShelfLife.Days})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("chemplot: no finite shelf lives to plot")
	}
	p := basicPlot(title, "Temperature (K)", "Shelf life t90 (days)")
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.Color = accent
	line.Width = vg.Points(2)
	points.Color = accent
	points.Shape = draw.CircleGlyph{}
	p.Add(line, points)
	return p, nil
}
