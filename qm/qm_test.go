/*
 * qm_test.go, part of molequle.
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

package qm

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/rmera/molequle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAtoms(Te *testing.T) {
	G, err := ParseAtoms("H 0 0 0; F 0 0 1.1")
	require.NoError(Te, err)
	require.Equal(Te, 2, G.Len())
	assert.Equal(Te, "F", G.Atoms[1].Symbol)
	assert.Equal(Te, [3]float64{0, 0, 1.1}, G.Atoms[1].Coords)
	assert.Equal(Te, 1, G.Multiplicity())

	G, err = ParseAtoms("O 0 0 0;H 0.757 0.586 0;H -0.757 0.586 0;")
	require.NoError(Te, err)
	assert.Equal(Te, 3, G.Len())

	for _, bad := range []string{"", " ; ", "H 0 0", "h 0 0 0", "H 0 x 0", "1 0 0 0", "Xx 0 0 0"} {
		_, err := ParseAtoms(bad)
		assert.Error(Te, err, bad)
	}
}

func TestGeometryCheck(Te *testing.T) {
	G, err := ParseAtoms("O 0 0 0; H 0.757 0.586 0; H -0.757 0.586 0")
	require.NoError(Te, err)
	assert.Equal(Te, 10, G.Electrons())
	assert.InDelta(Te, 18.016, G.Mass(), 1e-9)
	require.NoError(Te, G.Check())

	G.Multi = 2 //10 electrons, no doublet
	assert.Error(Te, G.Check())
	G.Charge = 1
	require.NoError(Te, G.Check())
	G.Charge = 11
	assert.Error(Te, G.Check())

	G = &Geometry{Atoms: []Atom{{Symbol: "Q"}}}
	assert.Error(Te, G.Check())

	xtb := NewXTBHandle()
	xtb.SetDir(Te.TempDir())
	H, err := ParseAtoms("H 0 0 0")
	require.NoError(Te, err)
	err = xtb.BuildInput(H, nil) //one electron, singlet.
	var qerr Error
	require.True(Te, errors.As(err, &qerr))
	assert.Equal(Te, ErrCantInput, qerr.Message())
}

func TestXYZRoundTrip(Te *testing.T) {
	G, err := ParseAtoms("O 0 0 0; H 0.757 0.586 0; H -0.757 0.586 0")
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, G.WriteXYZ(&buf, "water\nwith a newline"))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(Te, lines, 5)
	assert.Equal(Te, "3", lines[0])
	assert.Equal(Te, "water with a newline", lines[1])
	G2, err := ReadXYZ(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, G.Atoms, G2.Atoms)

	_, err = ReadXYZ(strings.NewReader("3\ncomment\nO 0 0 0\n"))
	assert.Error(Te, err)
	_, err = ReadXYZ(strings.NewReader(""))
	assert.Error(Te, err)
}

func TestReadVibspectrum(Te *testing.T) {
	f, err := os.Open("testdata/water/vibspectrum")
	require.NoError(Te, err)
	defer f.Close()
	freqs, err := ReadVibspectrum(f)
	require.NoError(Te, err)
	require.Len(Te, freqs, 9)
	assert.Equal(Te, 1539.30, freqs[6])
	assert.Equal(Te, []float64{1539.30, 3642.37, 3650.67}, DropZeroModes(freqs))

	_, err = ReadVibspectrum(strings.NewReader("$vibrational spectrum\n$end\n"))
	assert.Error(Te, err)
	_, err = ReadVibspectrum(strings.NewReader("$vibrational spectrum\n  1  a  12.0\n$end\n"))
	assert.Error(Te, err)
}

func TestXTBOutputs(Te *testing.T) {
	xtb := NewXTBHandle()
	xtb.SetDir("testdata/water")
	xtb.SetName("water")
	E, err := xtb.Energy()
	require.NoError(Te, err)
	assert.Equal(Te, -5.070544440612, E)
	freqs, err := xtb.Frequencies()
	require.NoError(Te, err)
	v, err := molequle.ClassifyStability(E, freqs)
	require.NoError(Te, err)
	assert.Equal(Te, molequle.Stable, v.Class)
	assert.Zero(Te, v.LargestImaginary())

	xtb.SetDir("testdata/saddle")
	xtb.SetName("saddle")
	E, err = xtb.Energy()
	require.Error(Te, err)
	var qerr Error
	require.True(Te, errors.As(err, &qerr))
	assert.Equal(Te, ErrProbableProblem, qerr.Message())
	assert.False(Te, qerr.Critical())
	assert.Equal(Te, -10.861285217460, E)
	freqs, err = xtb.Frequencies()
	require.NoError(Te, err)
	assert.Equal(Te, []float64{-412.77, -35.10, 812.55, 1105.20}, freqs)
	v, err = molequle.ClassifyStability(E, freqs)
	require.NoError(Te, err)
	assert.Equal(Te, molequle.Unstable, v.Class)
	assert.Equal(Te, 412.77, v.LargestImaginary())

	xtb.SetDir(Te.TempDir())
	_, err = xtb.Energy()
	require.True(Te, errors.As(err, &qerr))
	assert.Equal(Te, ErrNoEnergy, qerr.Message())
	_, err = xtb.Frequencies()
	require.True(Te, errors.As(err, &qerr))
	assert.Equal(Te, ErrNoFrequencies, qerr.Message())
	assert.True(Te, errors.Is(err, os.ErrNotExist))
}

func TestXTBBuildInput(Te *testing.T) {
	dir := Te.TempDir()
	G, err := ParseAtoms("O 0 0 0; H 0.757 0.586 0; H -0.757 0.586 0")
	require.NoError(Te, err)
	G.Charge = -1
	G.Multi = 2
	xtb := NewXTBHandle()
	xtb.SetDir(dir)
	xtb.SetName("anion")
	xtb.SetnCPU(1)
	Q := &Calc{Method: "gfn1", Optimize: true, Hessian: true, Dielectric: 80}
	require.NoError(Te, xtb.BuildInput(G, Q))
	assert.Equal(Te, []string{"anion.xyz", "--chrg", "-1", "--uhf", "1", "--gfn", "1", "--alpb", "h2o", "--ohess"}, xtb.Args())
	f, err := os.Open(filepath.Join(dir, "anion.xyz"))
	require.NoError(Te, err)
	defer f.Close()
	G2, err := ReadXYZ(f)
	require.NoError(Te, err)
	assert.Equal(Te, G.Atoms, G2.Atoms)

	require.NoError(Te, xtb.BuildInput(G, &Calc{Method: "gfnff", Hessian: true, CPUs: 4}))
	assert.Equal(Te, []string{"anion.xyz", "--chrg", "-1", "--uhf", "1", "-P", "4", "--gfnff", "--hess"}, xtb.Args())

	err = xtb.BuildInput(&Geometry{}, Q)
	var qerr Error
	require.True(Te, errors.As(err, &qerr))
	assert.Equal(Te, ErrMissingAtoms, qerr.Message())
}

const fakeXTB = `#!/bin/sh
cat > vibspectrum <<'EOF'
$vibrational spectrum
#  mode     symmetry     wave number   IR intensity    selection rules
     1                       0.00         0.00000         -       -
     2        a             -50.00        1.00000       YES     YES
     3        a             100.00        1.00000       YES     YES
     4        a             200.00        1.00000       YES     YES
$end
EOF
echo "| TOTAL ENERGY  -1027.300000 Eh |"
echo "normal termination of xtb"
`

//TestAnalyze runs a fake xtb (a shell script) through the whole Handle interface.
func TestAnalyze(Te *testing.T) {
	if runtime.GOOS == "windows" {
		Te.Skip("needs a POSIX shell")
	}
	dir := Te.TempDir()
	script := filepath.Join(dir, "xtb")
	require.NoError(Te, os.WriteFile(script, []byte(fakeXTB), 0o755))
	xtb := NewXTBHandle()
	xtb.SetCommand(script)
	xtb.SetDir(dir)
	G, err := ParseAtoms("C 0 0 0; C 0 0 1.2")
	require.NoError(Te, err)
	E, freqs, err := Analyze(context.Background(), xtb, G, nil)
	require.NoError(Te, err)
	assert.Equal(Te, -1027.3, E)
	assert.Equal(Te, []float64{-50, 100, 200}, freqs)
	assert.Contains(Te, xtb.Args(), "--hess")
	v, err := molequle.ClassifyStability(E, freqs)
	require.NoError(Te, err)
	assert.Equal(Te, molequle.Unstable, v.Class)

	//a missing program fails in Run, and the error knows its call chain.
	xtb.SetCommand(filepath.Join(dir, "not-xtb"))
	_, _, err = Analyze(context.Background(), xtb, G, nil)
	var qerr Error
	require.True(Te, errors.As(err, &qerr))
	assert.Equal(Te, ErrNotRunning, qerr.Message())
	assert.Contains(Te, err.Error(), "Analyze")
}

//TestAnalyzeAbnormal checks that results left by a run that didn't end
//normally come back together with a non-critical error.
func TestAnalyzeAbnormal(Te *testing.T) {
	if runtime.GOOS == "windows" {
		Te.Skip("needs a POSIX shell")
	}
	dir := Te.TempDir()
	script := filepath.Join(dir, "xtb")
	abnormal := strings.Replace(fakeXTB, "normal termination", "abnormal termination", 1)
	require.NoError(Te, os.WriteFile(script, []byte(abnormal), 0o755))
	xtb := NewXTBHandle()
	xtb.SetCommand(script)
	xtb.SetDir(dir)
	G, err := ParseAtoms("C 0 0 0; C 0 0 1.2")
	require.NoError(Te, err)
	E, freqs, err := Analyze(context.Background(), xtb, G, &Calc{Method: "gfnff", Optimize: true})
	require.Error(Te, err)
	var qerr Error
	require.True(Te, errors.As(err, &qerr))
	assert.False(Te, qerr.Critical())
	assert.Equal(Te, ErrProbableProblem, qerr.Message())
	assert.Equal(Te, -1027.3, E)
	assert.Equal(Te, []float64{-50, 100, 200}, freqs)
	assert.Contains(Te, xtb.Args(), "--ohess")
	assert.Contains(Te, xtb.Args(), "--gfnff")
}
