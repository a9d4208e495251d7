/*
 * handlers.go, part of molequle.
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

package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rmera/molequle"
	"github.com/rmera/molequle/chemplot"
	"github.com/rmera/molequle/refdata"
	"go.uber.org/zap"
)

//ShelfLifeRequest is the body of POST /api/v1/shelf-life.
type ShelfLifeRequest struct {
	ActivationEnergy     float64 `json:"activation_energy_kjmol"`
	FrequencyFactor      float64 `json:"frequency_factor_per_s" validate:"required,gt=0"`
	ReferenceShelfLife   float64 `json:"reference_shelf_life_days" validate:"required,gt=0"`
	Temperature          float64 `json:"temperature_K" validate:"required"`
	ReferenceTemperature float64 `json:"reference_temperature_K,omitempty" validate:"gte=0"` //0 means the configured one
}

//StabilityRequest is the body of POST /api/v1/stability.
type StabilityRequest struct {
	GroundStateEnergy float64   `json:"ground_state_energy_hartree"`
	Frequencies       []float64 `json:"vibrational_frequencies_cm1"`
}

//StabilityResponse is the answer to a StabilityRequest.
type StabilityResponse struct {
	Verdict   molequle.Verdict `json:"verdict"`
	Qualifier string           `json:"qualifier"`
}

//FitRequest is the body of POST /api/v1/fit.
type FitRequest struct {
	Temperatures []float64 `json:"temperatures_K" validate:"required,min=2,dive,gt=0"`
	Rates        []float64 `json:"rate_constants_per_s" validate:"required,min=2,dive,gt=0"`
}

//FitResponse is the answer to a FitRequest.
type FitResponse struct {
	Arrhenius molequle.Arrhenius `json:"arrhenius"`
	RSquared  float64            `json:"r_squared"`
}

//MoleculeShelfLife is the answer to GET /api/v1/molecules/{name}/shelf-life
type MoleculeShelfLife struct {
	Molecule             string  `json:"molecule"`
	ReferenceTemperature float64 `json:"reference_temperature_K"`
	molequle.Assessment
}

//ReportRow is one line of a molecule report.
type ReportRow struct {
	Parameter string `json:"parameter"`
	Value     string `json:"value"`
}

//Report is the parameter table shown for a molecule.
type Report struct {
	Molecule  string      `json:"molecule"`
	Rows      []ReportRow `json:"rows"`
	Qualifier string      `json:"qualifier"`
}

//BuildReport assembles the table of degradation parameters of the record R,
//with the shelf life at temperature T according to the policy P.
//The reference temperature of P is used as given.
func BuildReport(R refdata.Record, P molequle.Policy, T float64) (Report, error) {
	a, err := P.Assess(R.Arrhenius(), R.ReferenceShelfLife, T)
	if err != nil {
		return Report{}, err
	}
	E := R.Energies
	rows := []ReportRow{
		{"Degradation product", R.Product},
		{"Reactant energy", fmt.Sprintf("%.4f Hartree", E.Reactant)},
		{"Transition state energy", fmt.Sprintf("%.4f Hartree", E.TransitionState)},
		{"Product energy", fmt.Sprintf("%.4f Hartree", E.Product)},
		{"Reverse barrier", fmt.Sprintf("%.0f kJ/mol", E.ReverseBarrier())},
		{"Reaction energy", fmt.Sprintf("%.0f kJ/mol", E.ReactionEnergy())},
		{"Activation energy", fmt.Sprintf("%.2f kJ/mol", R.ActivationEnergy)},
		{"Frequency factor", fmt.Sprintf("%.2e s^-1", R.FrequencyFactor)},
		{"Rate constant", fmt.Sprintf("%.3e s^-1", a.Rate)},
		{"Temperature", fmt.Sprintf("%.1f K", T)},
		{"Shelf life", a.ShelfLife.String()},
	}
	return Report{Molecule: R.Name, Rows: rows, Qualifier: string(a.Label)}, nil
}

func (S *Server) health(w http.ResponseWriter, r *http.Request) {
	S.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"molecules": S.dataset.Len(),
	})
}

func (S *Server) listMolecules(w http.ResponseWriter, r *http.Request) {
	names := S.dataset.Names()
	recs := make([]refdata.Record, 0, len(names))
	for _, n := range names {
		rec, _ := S.dataset.Get(n)
		recs = append(recs, rec)
	}
	S.respondJSON(w, http.StatusOK, map[string]interface{}{
		"names":                   names,
		"molecules":               recs,
		"reference_temperature_K": S.dataset.Temperature(),
	})
}

//record fetches the molecule named in the URL, answering 404 if it's not there.
func (S *Server) record(w http.ResponseWriter, r *http.Request) (refdata.Record, bool) {
	name := chi.URLParam(r, "name")
	rec, ok := S.dataset.Get(name)
	if !ok {
		S.respondError(w, http.StatusNotFound, fmt.Sprintf("molecule %q not found", name))
	}
	return rec, ok
}

//temperature reads the temperature query parameter, which must be within the
//configured range. The dataset reference temperature is used if absent.
func (S *Server) temperature(w http.ResponseWriter, r *http.Request) (float64, bool) {
	q := r.URL.Query().Get("temperature")
	if q == "" {
		return S.dataset.Temperature(), true
	}
	T, err := strconv.ParseFloat(q, 64)
	if err != nil {
		S.respondError(w, http.StatusBadRequest, "invalid temperature: "+err.Error())
		return 0, false
	}
	return T, S.checkRange(w, T)
}

func (S *Server) checkRange(w http.ResponseWriter, T float64) bool {
	if T < S.tmin || T > S.tmax {
		S.respondError(w, http.StatusBadRequest, fmt.Sprintf("temperature %g K outside the accepted range [%g, %g] K", T, S.tmin, S.tmax))
		return false
	}
	return true
}

//datasetPolicy is the server policy with the reference temperature of the dataset.
func (S *Server) datasetPolicy() molequle.Policy {
	P := S.policy
	P.ReferenceTemperature = S.dataset.Temperature()
	return P
}

func (S *Server) getMolecule(w http.ResponseWriter, r *http.Request) {
	rec, ok := S.record(w, r)
	if !ok {
		return
	}
	S.respondJSON(w, http.StatusOK, rec)
}

func (S *Server) moleculeShelfLife(w http.ResponseWriter, r *http.Request) {
	rec, ok := S.record(w, r)
	if !ok {
		return
	}
	T, ok := S.temperature(w, r)
	if !ok {
		return
	}
	P := S.datasetPolicy()
	a, err := P.Assess(rec.Arrhenius(), rec.ReferenceShelfLife, T)
	if !S.checkCalc(w, r, "shelflife", err) {
		return
	}
	S.respondJSON(w, http.StatusOK, MoleculeShelfLife{Molecule: rec.Name, ReferenceTemperature: P.ReferenceTemperature, Assessment: a})
}

func (S *Server) moleculeReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := S.record(w, r)
	if !ok {
		return
	}
	T, ok := S.temperature(w, r)
	if !ok {
		return
	}
	rep, err := BuildReport(rec, S.datasetPolicy(), T)
	if !S.checkCalc(w, r, "report", err) {
		return
	}
	S.respondJSON(w, http.StatusOK, rep)
}

func (S *Server) profilePlot(w http.ResponseWriter, r *http.Request) {
	rec, ok := S.record(w, r)
	if !ok {
		return
	}
	p, err := chemplot.EnergyProfilePlot(rec.Energies, rec.Name+": reaction energy profile")
	if err != nil {
		S.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := chemplot.WriteTo(p, &buf, "png"); err != nil {
		S.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	S.respondPNG(w, buf.Bytes())
}

func (S *Server) curvePlot(w http.ResponseWriter, r *http.Request) {
	rec, ok := S.record(w, r)
	if !ok {
		return
	}
	curve, err := S.datasetPolicy().ShelfLifeCurve(rec.Arrhenius(), rec.ReferenceShelfLife, S.tmin, S.tmax, S.npoints)
	if !S.checkCalc(w, r, "curve", err) {
		return
	}
	p, err := chemplot.ShelfLifePlot(curve, rec.Name+": shelf life vs. temperature")
	if err != nil {
		//all the points are infinite, a legitimate answer that can't be drawn.
		S.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := chemplot.WriteTo(p, &buf, "png"); err != nil {
		S.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	S.respondPNG(w, buf.Bytes())
}

func (S *Server) shelfLife(w http.ResponseWriter, r *http.Request) {
	var req ShelfLifeRequest
	if !S.decode(w, r, &req) {
		return
	}
	if !S.checkRange(w, req.Temperature) {
		return
	}
	P := S.policy
	if req.ReferenceTemperature != 0 {
		P.ReferenceTemperature = req.ReferenceTemperature
	}
	A := molequle.Arrhenius{ActivationEnergy: req.ActivationEnergy, FrequencyFactor: req.FrequencyFactor}
	a, err := P.Assess(A, req.ReferenceShelfLife, req.Temperature)
	if !S.checkCalc(w, r, "shelflife", err) {
		return
	}
	S.respondJSON(w, http.StatusOK, a)
}

func (S *Server) stability(w http.ResponseWriter, r *http.Request) {
	var req StabilityRequest
	if !S.decode(w, r, &req) {
		return
	}
	v, err := molequle.ClassifyStability(req.GroundStateEnergy, req.Frequencies)
	if !S.checkCalc(w, r, "stability", err) {
		return
	}
	S.respondJSON(w, http.StatusOK, StabilityResponse{Verdict: v, Qualifier: v.Qualifier()})
}

func (S *Server) fit(w http.ResponseWriter, r *http.Request) {
	var req FitRequest
	if !S.decode(w, r, &req) {
		return
	}
	A, r2, err := molequle.FitArrhenius(req.Temperatures, req.Rates)
	if !S.checkCalc(w, r, "fit", err) {
		return
	}
	S.respondJSON(w, http.StatusOK, FitResponse{Arrhenius: A, RSquared: r2})
}

//decode reads the JSON body into v and validates it. It answers 400 and returns
//false on failure.
func (S *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		S.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := S.validate.Struct(v); err != nil {
		S.respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return false
	}
	return true
}

//checkCalc records the outcome of a calculation and, if err is not nil,
//answers with the matching status code. It returns whether everything went fine.
func (S *Server) checkCalc(w http.ResponseWriter, r *http.Request, kind string, err error) bool {
	if err == nil {
		S.metrics.count(kind, outcomeOK)
		return true
	}
	S.logger.Warn("calculation failed",
		zap.String("kind", kind),
		zap.String("requestID", RequestID(r.Context())),
		zap.Error(err))
	if molequle.IsInvalidParameter(err) {
		S.metrics.count(kind, outcomeInvalid)
		S.respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	S.metrics.count(kind, outcomeFailed)
	S.respondError(w, http.StatusInternalServerError, err.Error())
	return false
}

func (S *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		S.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (S *Server) respondError(w http.ResponseWriter, status int, message string) {
	S.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

func (S *Server) respondPNG(w http.ResponseWriter, b []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		S.logger.Error("Failed to write image", zap.Error(err))
	}
}
