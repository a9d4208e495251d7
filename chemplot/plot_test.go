/*
 * plot_test.go
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

package chemplot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/molequle"
	"github.com/rmera/molequle/refdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestBasicPlot(Te *testing.T) {
	p := basicPlot("Title", "T (K)", "days")
	assert.Equal(Te, 3*vg.Millimeter, p.Title.Padding)
	assert.Equal(Te, "Title", p.Title.Text)
	assert.Equal(Te, "T (K)", p.X.Label.Text)
	assert.Equal(Te, "days", p.Y.Label.Text)
}

//TestProfile plots the energy profile for aspirin hydrolysis.
func TestProfile(Te *testing.T) {
	r, ok := refdata.Default().Get("Aspirin")
	require.True(Te, ok)
	p, err := EnergyProfilePlot(r.Energies, "Reaction Energy Profile")
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, WriteTo(p, &buf, "png"))
	assert.True(Te, bytes.HasPrefix(buf.Bytes(), pngMagic))

	name := filepath.Join(Te.TempDir(), "profile.svg")
	require.NoError(Te, Save(p, name))
	b, err := os.ReadFile(name)
	require.NoError(Te, err)
	assert.Contains(Te, string(b), "<svg")

	assert.Error(Te, Save(p, filepath.Join(Te.TempDir(), "noext")))
}

func TestProfiles(Te *testing.T) {
	D := refdata.Default()
	var profs []molequle.EnergyProfile
	names := D.Names()
	for _, n := range names {
		r, _ := D.Get(n)
		profs = append(profs, r.Energies)
	}
	p, err := EnergyProfilesPlot(profs, names, "All")
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, WriteTo(p, &buf, "PNG"))
	assert.True(Te, bytes.HasPrefix(buf.Bytes(), pngMagic))

	_, err = EnergyProfilesPlot(nil, nil, "none")
	assert.Error(Te, err)
	_, err = EnergyProfilesPlot(profs, names[:1], "bad")
	assert.Error(Te, err)
}

func TestShelfLifePlot(Te *testing.T) {
	r, _ := refdata.Default().Get("Cyclobutadiene")
	curve, err := molequle.DefaultPolicy().ShelfLifeCurve(r.Arrhenius(), r.ReferenceShelfLife, 273, 323, 11)
	require.NoError(Te, err)
	p, err := ShelfLifePlot(curve, "Cyclobutadiene")
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, WriteTo(p, &buf, "png"))
	assert.True(Te, bytes.HasPrefix(buf.Bytes(), pngMagic))

	//methane is inert everywhere, nothing to draw.
	r, _ = refdata.Default().Get("Methane")
	curve, err = molequle.DefaultPolicy().ShelfLifeCurve(r.Arrhenius(), r.ReferenceShelfLife, 273, 323, 11)
	require.NoError(Te, err)
	_, err = ShelfLifePlot(curve, "Methane")
	assert.Error(Te, err)
}

func TestColors(Te *testing.T) {
	seen := map[[3]uint8]bool{}
	for i := 0; i < 5; i++ {
		c := colors(i, 5)
		assert.Equal(Te, uint8(255), c.A)
		seen[[3]uint8{c.R, c.G, c.B}] = true
	}
	assert.Len(Te, seen, 5)
	r, g, b := iHVS2RGB(0, 1, 0)
	assert.Equal(Te, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})
}
