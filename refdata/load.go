/*
 * load.go, part of molequle.
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

package refdata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

//Format is the serialization format of a dataset file.
type Format int

const (
	YAML Format = iota
	JSON
)

//FormatFromName guesses the format and compression of a file from its name:
//.yaml/.yml or .json, optionally followed by .zst.
func FormatFromName(name string) (f Format, compressed bool, err error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".zst" {
		compressed = true
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(name, filepath.Ext(name))))
	}
	switch ext {
	case ".yaml", ".yml":
		return YAML, compressed, nil
	case ".json":
		return JSON, compressed, nil
	}
	return 0, false, fmt.Errorf("refdata: can't tell the format of %s", name)
}

//Load reads and validates a dataset from the file at path.
func Load(path string) (*Dataset, error) {
	format, compressed, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("refdata: %w", err)
	}
	defer f.Close()
	var r io.Reader = f
	if compressed {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("refdata: can't decompress %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}
	D, err := Parse(r, format)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return D, nil
}

//Parse reads and validates a dataset in the given format from r.
func Parse(r io.Reader, format Format) (*Dataset, error) {
	D := new(Dataset)
	var err error
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(D)
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(D)
	default:
		return nil, fmt.Errorf("refdata: unknown format %d", format)
	}
	if err != nil {
		return nil, fmt.Errorf("refdata: can't decode dataset: %w", err)
	}
	if err := D.init(); err != nil {
		return nil, err
	}
	return D, nil
}

//Write serializes the dataset in the given format to w, compressing it with zstd
//if compress is true. The output can be read back with Parse or Load.
func (D *Dataset) Write(w io.Writer, format Format, compress bool) error {
	var out io.Writer = w
	var enc *zstd.Encoder
	if compress {
		var err error
		enc, err = zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("refdata: %w", err)
		}
		out = enc
	}
	var err error
	switch format {
	case YAML:
		ye := yaml.NewEncoder(out)
		ye.SetIndent(2)
		err = ye.Encode(D)
		if err == nil {
			err = ye.Close()
		}
	case JSON:
		je := json.NewEncoder(out)
		je.SetIndent("", "  ")
		err = je.Encode(D)
	default:
		err = fmt.Errorf("unknown format %d", format)
	}
	if enc != nil {
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("refdata: can't write dataset: %w", err)
	}
	return nil
}
