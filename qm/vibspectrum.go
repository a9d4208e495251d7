/*
 * vibspectrum.go, part of molequle.
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
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

//ZeroModeThreshold is the largest absolute wave number (cm^-1) that is still
//considered a translation or rotation rather than a vibration.
const ZeroModeThreshold = 0.1

//ReadVibspectrum parses a Turbomole-format $vibrational spectrum block, as written
//by xtb and Turbomole's aoforce, and returns the wave numbers (cm^-1) of all
//modes, in order, including the translations and rotations.
//
//Each mode line has the mode number, an optional symmetry label, the wave number,
//the IR intensity and two selection-rule columns, so the wave number is always
//the fourth field from the end.
func ReadVibspectrum(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	var ret []float64
	inblock := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "$vibrational spectrum"):
			inblock = true
			continue
		case strings.HasPrefix(line, "$"):
			inblock = false
			continue
		case !inblock || line == "" || strings.HasPrefix(line, "#"):
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, fmt.Errorf("qm: ReadVibspectrum: malformed line %q", line)
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			return nil, fmt.Errorf("qm: ReadVibspectrum: malformed line %q", line)
		}
		wn, err := strconv.ParseFloat(fields[len(fields)-4], 64)
		if err != nil {
			return nil, fmt.Errorf("qm: ReadVibspectrum: bad wave number in %q: %w", line, err)
		}
		ret = append(ret, wn)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("qm: ReadVibspectrum: %w", err)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("qm: ReadVibspectrum: %s", ErrNoFrequencies)
	}
	return ret, nil
}

//DropZeroModes returns the frequencies whose absolute value is at least
//ZeroModeThreshold. The input is not modified.
func DropZeroModes(freqs []float64) []float64 {
	ret := make([]float64, 0, len(freqs))
	for _, v := range freqs {
		if math.Abs(v) >= ZeroModeThreshold {
			ret = append(ret, v)
		}
	}
	return ret
}
