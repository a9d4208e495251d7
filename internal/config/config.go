/*
 * config.go, part of molequle.
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

//Package config loads the MoleQule application configuration.
//Values come, from lowest to highest priority, from the defaults in
//this package, an optional YAML file and MOLEQULE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rmera/molequle"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

//EnvPrefix is prepended to the names of all the environment variables read.
const EnvPrefix = "MOLEQULE_"

type Config struct {
	Server   Server   `yaml:"server"`
	Dataset  string   `yaml:"dataset"` //path to a dataset file. Empty means the built-in one.
	Kinetics Kinetics `yaml:"kinetics"`
	QM       QM       `yaml:"qm"`
	Log      Log      `yaml:"log"`
}

type Server struct {
	Addr string   `yaml:"addr" validate:"required"`
	CORS []string `yaml:"cors_origins"`
}

//Kinetics holds the shelf life policy and the temperature range accepted
//by the dashboard and used for curves. ReferenceTemperature anchors the reference
//shelf life of raw Arrhenius parameters. Molecules of the dataset always use the
//reference temperature of the dataset.
type Kinetics struct {
	ReferenceTemperature float64 `yaml:"reference_temperature_K" validate:"gt=0"`
	InertRateThreshold   float64 `yaml:"inert_rate_threshold_per_s" validate:"gte=0"`
	UnstableBelowDays    float64 `yaml:"unstable_below_days" validate:"gte=0"`
	MinTemperature       float64 `yaml:"min_temperature_K" validate:"gt=0"`
	MaxTemperature       float64 `yaml:"max_temperature_K" validate:"gtfield=MinTemperature"`
	CurvePoints          int     `yaml:"curve_points" validate:"gte=2"`
}

//Policy returns the shelf life policy described by K.
func (K Kinetics) Policy() molequle.Policy {
	return molequle.Policy{
		ReferenceTemperature: K.ReferenceTemperature,
		InertRateThreshold:   K.InertRateThreshold,
		UnstableBelowDays:    K.UnstableBelowDays,
	}
}

//InRange returns whether T is within the accepted temperature range.
func (K Kinetics) InRange(T float64) bool {
	return T >= K.MinTemperature && T <= K.MaxTemperature
}

type QM struct {
	Command string `yaml:"command" validate:"required"`
	Method  string `yaml:"method" validate:"oneof=gfn0 gfn1 gfn2 gfnff"`
	CPUs    int    `yaml:"cpus" validate:"gte=1"`
}

type Log struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

//Default returns the configuration used when nothing else is given.
func Default() *Config {
	P := molequle.DefaultPolicy()
	return &Config{
		Server: Server{Addr: ":8080", CORS: []string{"*"}},
		Kinetics: Kinetics{
			ReferenceTemperature: P.ReferenceTemperature,
			InertRateThreshold:   P.InertRateThreshold,
			UnstableBelowDays:    P.UnstableBelowDays,
			MinTemperature:       273,
			MaxTemperature:       323,
			CurvePoints:          26,
		},
		QM:  QM{Command: "xtb", Method: "gfn2", CPUs: 1},
		Log: Log{Level: "info"},
	}
}

var validate = validator.New()

//Validate checks that all the values in C are acceptable.
func (C *Config) Validate() error {
	if err := validate.Struct(C); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

//Load reads the configuration. If path is empty, only the defaults
//and the environment are used. A path given but not found is an error.
func Load(path string) (*Config, error) {
	C := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		defer f.Close()
		if err := C.decode(f); err != nil {
			return nil, fmt.Errorf("config: can't parse %s: %w", path, err)
		}
	}
	if err := C.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := C.Validate(); err != nil {
		return nil, err
	}
	return C, nil
}

//decode overlays the YAML document in r on C. An empty document changes nothing.
func (C *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(C); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

//applyEnv overlays the MOLEQULE_* variables on C. lookup is os.LookupEnv
//except in tests.
func (C *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"ADDR":        &C.Server.Addr,
		"DATASET":     &C.Dataset,
		"XTB_COMMAND": &C.QM.Command,
		"XTB_METHOD":  &C.QM.Method,
		"LOG_LEVEL":   &C.Log.Level,
	}
	for k, v := range str {
		if val, ok := lookup(EnvPrefix + k); ok {
			*v = val
		}
	}
	flt := map[string]*float64{
		"REFERENCE_TEMPERATURE": &C.Kinetics.ReferenceTemperature,
		"INERT_RATE_THRESHOLD":  &C.Kinetics.InertRateThreshold,
		"UNSTABLE_BELOW_DAYS":   &C.Kinetics.UnstableBelowDays,
		"MIN_TEMPERATURE":       &C.Kinetics.MinTemperature,
		"MAX_TEMPERATURE":       &C.Kinetics.MaxTemperature,
	}
	for k, v := range flt {
		val, ok := lookup(EnvPrefix + k)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, k, err)
		}
		*v = f
	}
	if val, ok := lookup(EnvPrefix + "XTB_CPUS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("config: %sXTB_CPUS: %w", EnvPrefix, err)
		}
		C.QM.CPUs = n
	}
	if val, ok := lookup(EnvPrefix + "LOG_DEVELOPMENT"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("config: %sLOG_DEVELOPMENT: %w", EnvPrefix, err)
		}
		C.Log.Development = b
	}
	if val, ok := lookup(EnvPrefix + "CORS_ORIGINS"); ok {
		C.Server.CORS = strings.Split(val, ",")
	}
	return nil
}

//Logger builds the zap logger described by L.
func (L Log) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(L.Level)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	zc := zap.NewProductionConfig()
	if L.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
