/*
 * shelflife.go, part of molequle.
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

package molequle

import (
	"encoding/json"
	"fmt"
)

const (
	DefaultInertRateThreshold = 1e-30 //1/s
	DefaultUnstableBelowDays  = 30.0
)

//ShelfLife is the time to 90% potency. If Infinite is true the molecule is
//considered kinetically inert and Days is meaningless (and set to 0).
type ShelfLife struct {
	Days     float64 `json:"days"`
	Infinite bool    `json:"infinite"`
}

//Hours returns the shelf life in hours.
func (S ShelfLife) Hours() float64 { return S.Days * Day2Hour }

//Months returns the shelf life in (30-day) months.
func (S ShelfLife) Months() float64 { return S.Days * Day2Month }

//Years returns the shelf life in (365-day) years.
func (S ShelfLife) Years() float64 { return S.Days * Day2Year }

//Display returns the shelf life in the unit most adequate for a human reader:
//hours below 1 day, days below 30, months below 365 days and years otherwise.
//For infinite shelf lives it returns 0 and an empty unit.
func (S ShelfLife) Display() (float64, string) {
	switch {
	case S.Infinite:
		return 0, ""
	case S.Days < 1:
		return S.Hours(), "hours"
	case S.Days < Month2Day:
		return S.Days, "days"
	case S.Days < Year2Day:
		return S.Months(), "months"
	default:
		return S.Years(), "years"
	}
}

func (S ShelfLife) String() string {
	if S.Infinite {
		return "effectively infinite"
	}
	v, unit := S.Display()
	return fmt.Sprintf("%.1f %s", v, unit)
}

//MarshalJSON adds the human-readable form to the encoded shelf life.
func (S ShelfLife) MarshalJSON() ([]byte, error) {
	type plain ShelfLife
	return json.Marshal(struct {
		plain
		Display string `json:"display"`
	}{plain(S), S.String()})
}

//UnmarshalJSON ignores the display field.
func (S *ShelfLife) UnmarshalJSON(b []byte) error {
	type plain ShelfLife
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*S = ShelfLife(p)
	return nil
}

//Label is a qualitative description of a shelf life.
type Label string

const (
	LabelHighlyUnstable  Label = "Highly Unstable"
	LabelStable          Label = "Stable"
	LabelExtremelyStable Label = "Extremely Stable"
)

//Policy decides how raw kinetic results are turned into answers for a human.
//The zero value is usable: a zero ReferenceTemperature means DefaultReferenceTemperature,
//a zero InertRateThreshold disables the inertness check and a zero UnstableBelowDays
//never labels anything as unstable.
type Policy struct {
	ReferenceTemperature float64 `json:"reference_temperature_K" yaml:"reference_temperature_K"`
	InertRateThreshold   float64 `json:"inert_rate_threshold_per_s" yaml:"inert_rate_threshold_per_s"` //rate constants below this mean an infinite shelf life
	UnstableBelowDays    float64 `json:"unstable_below_days" yaml:"unstable_below_days"`
}

//DefaultPolicy returns a policy with the library defaults.
func DefaultPolicy() Policy {
	return Policy{
		ReferenceTemperature: DefaultReferenceTemperature,
		InertRateThreshold:   DefaultInertRateThreshold,
		UnstableBelowDays:    DefaultUnstableBelowDays,
	}
}

func (P Policy) reference() float64 {
	if P.ReferenceTemperature == 0 {
		return DefaultReferenceTemperature
	}
	return P.ReferenceTemperature
}

//Assessment is the full kinetic answer for one molecule at one temperature.
type Assessment struct {
	Temperature float64   `json:"temperature_K"`
	Rate        float64   `json:"rate_constant_per_s"`
	ShelfLife   ShelfLife `json:"shelf_life"`
	Label       Label     `json:"label"`
}

//ShelfLife returns the shelf life at temperature T for the reaction A with reference shelf
//life refDays. If the rate constant at T is below the inertness threshold, the shelf
//life is reported as infinite instead of being computed.
func (P Policy) ShelfLife(A Arrhenius, refDays, T float64) (ShelfLife, error) {
	a, err := P.Assess(A, refDays, T)
	if err != nil {
		return ShelfLife{}, err
	}
	return a.ShelfLife, nil
}

//Assess is like ShelfLife but also returns the rate constant and a label.
func (P Policy) Assess(A Arrhenius, refDays, T float64) (Assessment, error) {
	const caller = "Policy.Assess"
	if err := checkPositive(caller, "reference_temperature_K", P.reference()); err != nil {
		return Assessment{}, err
	}
	if err := checkPositive(caller, "reference_shelf_life_days", refDays); err != nil {
		return Assessment{}, err
	}
	k, err := A.Rate(T)
	if err != nil {
		err.(Error).Decorate(caller)
		return Assessment{}, err
	}
	ret := Assessment{Temperature: T, Rate: k}
	if P.InertRateThreshold > 0 && k < P.InertRateThreshold {
		ret.ShelfLife = ShelfLife{Infinite: true}
		ret.Label = LabelExtremelyStable
		return ret, nil
	}
	days, err := A.ShelfLife(refDays, T, P.reference())
	if err != nil {
		err.(Error).Decorate(caller)
		return Assessment{}, err
	}
	ret.ShelfLife = ShelfLife{Days: days}
	ret.Label = LabelStable
	if days < P.UnstableBelowDays {
		ret.Label = LabelHighlyUnstable
	}
	return ret, nil
}
