/*
 * refdata.go, part of molequle.
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

//Package refdata provides the reference degradation data (Arrhenius parameters and
//empirical shelf lives) for the molecules known to MoleQule. A Dataset is built once,
//either from the built-in table or from a file, and is read-only afterwards, so it can
//be shared between goroutines.
package refdata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rmera/molequle"
)

//Record is the degradation data for one molecule.
type Record struct {
	Name          string `json:"name" yaml:"name" validate:"required"`
	SMILES        string `json:"smiles,omitempty" yaml:"smiles,omitempty"`
	Product       string `json:"product,omitempty" yaml:"product,omitempty"`
	ProductSMILES string `json:"product_smiles,omitempty" yaml:"product_smiles,omitempty"`

	ActivationEnergy   float64 `json:"activation_energy_kjmol" yaml:"activation_energy_kjmol" validate:"required,gt=0"`
	FrequencyFactor    float64 `json:"frequency_factor_per_s" yaml:"frequency_factor_per_s" validate:"required,gt=0"`
	ReferenceShelfLife float64 `json:"reference_shelf_life_days" yaml:"reference_shelf_life_days" validate:"required,gt=0"`

	Energies molequle.EnergyProfile `json:"energies" yaml:"energies"`
}

//Arrhenius returns the kinetic parameters of the record.
func (R Record) Arrhenius() molequle.Arrhenius {
	return molequle.Arrhenius{ActivationEnergy: R.ActivationEnergy, FrequencyFactor: R.FrequencyFactor}
}

//Dataset maps molecule names to their records. Lookups are case-insensitive.
type Dataset struct {
	ReferenceTemperature float64  `json:"reference_temperature_K" yaml:"reference_temperature_K" validate:"gte=0"` //0 means molequle.DefaultReferenceTemperature
	Records              []Record `json:"molecules" yaml:"molecules" validate:"required,min=1,dive"`
	index                map[string]int
}

var validate = validator.New()

//New validates the records and returns a Dataset holding them.
//The records are copied.
func New(refT float64, records []Record) (*Dataset, error) {
	D := &Dataset{ReferenceTemperature: refT, Records: append([]Record(nil), records...)}
	if err := D.init(); err != nil {
		return nil, err
	}
	return D, nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

//init validates the dataset and builds the name index.
func (D *Dataset) init() error {
	if err := validate.Struct(D); err != nil {
		return fmt.Errorf("refdata: invalid dataset: %w", err)
	}
	D.index = make(map[string]int, len(D.Records))
	for i, r := range D.Records {
		k := key(r.Name)
		if _, ok := D.index[k]; ok {
			return fmt.Errorf("refdata: invalid dataset: duplicated molecule %q", r.Name)
		}
		D.index[k] = i
	}
	return nil
}

//Temperature returns the reference temperature for all the shelf lives in the dataset.
func (D *Dataset) Temperature() float64 {
	if D.ReferenceTemperature == 0 {
		return molequle.DefaultReferenceTemperature
	}
	return D.ReferenceTemperature
}

//Get returns the record for the molecule name.
func (D *Dataset) Get(name string) (Record, bool) {
	i, ok := D.index[key(name)]
	if !ok {
		return Record{}, false
	}
	return D.Records[i], true
}

//Names returns the names of all molecules, sorted.
func (D *Dataset) Names() []string {
	ret := make([]string, 0, len(D.Records))
	for _, r := range D.Records {
		ret = append(ret, r.Name)
	}
	sort.Strings(ret)
	return ret
}

//Len returns the number of molecules.
func (D *Dataset) Len() int {
	return len(D.Records)
}

//Default returns the built-in dataset. Reference shelf lives are measured at 25 C (298 K).
func Default() *Dataset {
	D, err := New(molequle.DefaultReferenceTemperature, []Record{
		{
			Name:               "Aspirin",
			SMILES:             "CC(=O)OC1=CC=CC=C1C(=O)O",
			Product:            "Salicylic acid",
			ProductSMILES:      "OC1=CC=CC=C1C(=O)O",
			ActivationEnergy:   85.2,
			FrequencyFactor:    1.15e12,
			ReferenceShelfLife: molequle.YearsToDays(3.2),
			Energies:           molequle.EnergyProfile{Reactant: -1027.3, TransitionState: -942.1, Product: -950.8},
		},
		{
			Name:               "Cyclobutadiene",
			SMILES:             "C1=CC=C1",
			Product:            "2 Acetylene",
			ProductSMILES:      "C#CC#C",
			ActivationEnergy:   25.0, //antiaromatic destabilization
			FrequencyFactor:    1.0e13,
			ReferenceShelfLife: molequle.YearsToDays(0.003), //about a day
			Energies:           molequle.EnergyProfile{Reactant: -153.0, TransitionState: -128.0, Product: -310.0},
		},
		{
			Name:               "Methane",
			SMILES:             "C",
			Product:            "CH3. + H.",
			ProductSMILES:      "[CH3]",
			ActivationEnergy:   435.0, //C-H bond strength
			FrequencyFactor:    1.0e16,
			ReferenceShelfLife: molequle.YearsToDays(1000),
			Energies:           molequle.EnergyProfile{Reactant: -40.5, TransitionState: 394.5, Product: 0.0},
		},
	})
	if err != nil {
		//The table above is fixed, so this is a bug.
		panic(fmt.Sprintf("molequle/refdata: built-in dataset is invalid: %v", err))
	}
	return D
}
