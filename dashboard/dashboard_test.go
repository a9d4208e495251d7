/*
 * dashboard_test.go, part of molequle.
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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rmera/molequle"
	"github.com/rmera/molequle/refdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestServer(Te *testing.T) (*Server, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	S := New(Options{Policy: molequle.DefaultPolicy(), Logger: zap.New(core)})
	return S, logs
}

func do(S *Server, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	S.ServeHTTP(rec, req)
	return rec
}

func decodeBody(Te *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	Te.Helper()
	require.NoError(Te, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(Te *testing.T) {
	S, logs := newTestServer(Te)
	rec := do(S, http.MethodGet, "/health", "")
	require.Equal(Te, http.StatusOK, rec.Code)
	var h map[string]interface{}
	decodeBody(Te, rec, &h)
	assert.Equal(Te, "ok", h["status"])
	assert.Equal(Te, 3.0, h["molecules"])
	assert.NotEmpty(Te, rec.Header().Get(RequestIDHeader))

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(Te, entries, 1)
	assert.Equal(Te, "/health", entries[0].ContextMap()["route"])
	assert.Equal(Te, rec.Header().Get(RequestIDHeader), entries[0].ContextMap()["requestID"])
}

func TestRequestIDPropagated(Te *testing.T) {
	S, _ := newTestServer(Te)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	S.ServeHTTP(rec, req)
	assert.Equal(Te, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestMolecules(Te *testing.T) {
	S, _ := newTestServer(Te)
	rec := do(S, http.MethodGet, "/api/v1/molecules", "")
	require.Equal(Te, http.StatusOK, rec.Code)
	var list struct {
		Names     []string         `json:"names"`
		Molecules []refdata.Record `json:"molecules"`
		RefT      float64          `json:"reference_temperature_K"`
	}
	decodeBody(Te, rec, &list)
	assert.Equal(Te, []string{"Aspirin", "Cyclobutadiene", "Methane"}, list.Names)
	assert.Len(Te, list.Molecules, 3)
	assert.Equal(Te, 298.0, list.RefT)

	rec = do(S, http.MethodGet, "/api/v1/molecules/aspirin", "")
	require.Equal(Te, http.StatusOK, rec.Code)
	var r refdata.Record
	decodeBody(Te, rec, &r)
	assert.Equal(Te, "Aspirin", r.Name)
	assert.Equal(Te, 85.2, r.ActivationEnergy)

	rec = do(S, http.MethodGet, "/api/v1/molecules/unobtainium", "")
	assert.Equal(Te, http.StatusNotFound, rec.Code)
}

func TestMoleculeShelfLife(Te *testing.T) {
	S, _ := newTestServer(Te)
	cases := []struct {
		path     string
		code     int
		days     float64
		label    molequle.Label
		infinite bool
	}{
		{"/api/v1/molecules/Aspirin/shelf-life?temperature=310", http.StatusOK, 308.54885, molequle.LabelStable, false},
		{"/api/v1/molecules/Aspirin/shelf-life", http.StatusOK, 1168, molequle.LabelStable, false},
		{"/api/v1/molecules/Cyclobutadiene/shelf-life?temperature=298", http.StatusOK, 1.095, molequle.LabelHighlyUnstable, false},
		{"/api/v1/molecules/Methane/shelf-life?temperature=323", http.StatusOK, 0, molequle.LabelExtremelyStable, true},
		{"/api/v1/molecules/Aspirin/shelf-life?temperature=400", http.StatusBadRequest, 0, "", false},
		{"/api/v1/molecules/Aspirin/shelf-life?temperature=250", http.StatusBadRequest, 0, "", false},
		{"/api/v1/molecules/Aspirin/shelf-life?temperature=warm", http.StatusBadRequest, 0, "", false},
		{"/api/v1/molecules/Kryptonite/shelf-life?temperature=300", http.StatusNotFound, 0, "", false},
	}
	for _, c := range cases {
		rec := do(S, http.MethodGet, c.path, "")
		require.Equal(Te, c.code, rec.Code, c.path)
		if c.code != http.StatusOK {
			continue
		}
		var m MoleculeShelfLife
		decodeBody(Te, rec, &m)
		assert.Equal(Te, c.label, m.Label, c.path)
		assert.Equal(Te, c.infinite, m.ShelfLife.Infinite, c.path)
		if !c.infinite {
			assert.InEpsilon(Te, c.days, m.ShelfLife.Days, 1e-5, c.path)
		}
		assert.Equal(Te, 298.0, m.ReferenceTemperature)
	}
}

func TestReport(Te *testing.T) {
	S, _ := newTestServer(Te)
	rec := do(S, http.MethodGet, "/api/v1/molecules/aspirin/report?temperature=310", "")
	require.Equal(Te, http.StatusOK, rec.Code)
	var rep Report
	decodeBody(Te, rec, &rep)
	assert.Equal(Te, "Aspirin", rep.Molecule)
	assert.Equal(Te, string(molequle.LabelStable), rep.Qualifier)
	values := map[string]string{}
	for _, r := range rep.Rows {
		values[r.Parameter] = r.Value
	}
	assert.Equal(Te, "10.3 months", values["Shelf life"])
	assert.Equal(Te, "85.20 kJ/mol", values["Activation energy"])
	assert.Equal(Te, "-942.1000 Hartree", values["Transition state energy"])
	assert.Equal(Te, "Salicylic acid", values["Degradation product"])
	assert.Equal(Te, "22842 kJ/mol", values["Reverse barrier"])
	assert.Equal(Te, "200851 kJ/mol", values["Reaction energy"])
}

func TestPlots(Te *testing.T) {
	S, _ := newTestServer(Te)
	for _, path := range []string{"/api/v1/molecules/Aspirin/profile.png", "/api/v1/molecules/Cyclobutadiene/curve.png"} {
		rec := do(S, http.MethodGet, path, "")
		require.Equal(Te, http.StatusOK, rec.Code, path)
		assert.Equal(Te, "image/png", rec.Header().Get("Content-Type"))
		assert.True(Te, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")), path)
	}
	//inert at every temperature, nothing to draw.
	rec := do(S, http.MethodGet, "/api/v1/molecules/Methane/curve.png", "")
	assert.Equal(Te, http.StatusUnprocessableEntity, rec.Code)
	rec = do(S, http.MethodGet, "/api/v1/molecules/Nothing/profile.png", "")
	assert.Equal(Te, http.StatusNotFound, rec.Code)
}

func TestPostShelfLife(Te *testing.T) {
	S, _ := newTestServer(Te)
	rec := do(S, http.MethodPost, "/api/v1/shelf-life",
		`{"activation_energy_kjmol":85.2,"frequency_factor_per_s":1.15e12,"reference_shelf_life_days":1168,"temperature_K":310}`)
	require.Equal(Te, http.StatusOK, rec.Code, rec.Body.String())
	var a molequle.Assessment
	decodeBody(Te, rec, &a)
	assert.InEpsilon(Te, 308.54885, a.ShelfLife.Days, 1e-5)

	//a custom reference temperature; at T == Tref the reference shelf life comes back.
	rec = do(S, http.MethodPost, "/api/v1/shelf-life",
		`{"activation_energy_kjmol":85.2,"frequency_factor_per_s":1.15e12,"reference_shelf_life_days":100,"temperature_K":310,"reference_temperature_K":310}`)
	require.Equal(Te, http.StatusOK, rec.Code)
	decodeBody(Te, rec, &a)
	assert.Equal(Te, 100.0, a.ShelfLife.Days)

	for name, body := range map[string]string{
		"range":       `{"activation_energy_kjmol":85.2,"frequency_factor_per_s":1.15e12,"reference_shelf_life_days":1168,"temperature_K":500}`,
		"zero factor": `{"activation_energy_kjmol":85.2,"frequency_factor_per_s":0,"reference_shelf_life_days":1168,"temperature_K":300}`,
		"negative":    `{"activation_energy_kjmol":85.2,"frequency_factor_per_s":-1,"reference_shelf_life_days":1168,"temperature_K":300}`,
		"no ref":      `{"activation_energy_kjmol":85.2,"frequency_factor_per_s":1e12,"temperature_K":300}`,
		"bad ref T":   `{"activation_energy_kjmol":85.2,"frequency_factor_per_s":1e12,"reference_shelf_life_days":1,"temperature_K":300,"reference_temperature_K":-3}`,
		"unknown":     `{"activation_energy_kjmol":85.2,"colour":"red"}`,
		"not json":    `shelf life please`,
	} {
		rec := do(S, http.MethodPost, "/api/v1/shelf-life", body)
		assert.Equal(Te, http.StatusBadRequest, rec.Code, name)
		var e map[string]interface{}
		decodeBody(Te, rec, &e)
		assert.Equal(Te, true, e["error"], name)
	}
}

func TestPostStability(Te *testing.T) {
	S, _ := newTestServer(Te)
	rec := do(S, http.MethodPost, "/api/v1/stability", `{"ground_state_energy_hartree":-100.5,"vibrational_frequencies_cm1":[-450.2,1200.0,1500.0]}`)
	require.Equal(Te, http.StatusOK, rec.Code)
	var resp StabilityResponse
	decodeBody(Te, rec, &resp)
	assert.Equal(Te, molequle.Unstable, resp.Verdict.Class)
	assert.Equal(Te, "Unstable (imaginary frequencies)", resp.Qualifier)

	rec = do(S, http.MethodPost, "/api/v1/stability", `{"ground_state_energy_hartree":-76.4,"vibrational_frequencies_cm1":[1595,3657,3756]}`)
	require.Equal(Te, http.StatusOK, rec.Code)
	decodeBody(Te, rec, &resp)
	assert.Equal(Te, molequle.Stable, resp.Verdict.Class)
	assert.Equal(Te, "Thermodynamically Stable", resp.Qualifier)

	rec = do(S, http.MethodPost, "/api/v1/stability", `{"ground_state_energy_hartree":0}`)
	require.Equal(Te, http.StatusOK, rec.Code)
	decodeBody(Te, rec, &resp)
	assert.Equal(Te, molequle.Stable, resp.Verdict.Class)
}

func TestPostFit(Te *testing.T) {
	S, _ := newTestServer(Te)
	A := molequle.Arrhenius{ActivationEnergy: 85.2, FrequencyFactor: 1.15e12}
	var temps, rates []float64
	for _, T := range []float64{280, 298, 310, 323} {
		k, err := A.Rate(T)
		require.NoError(Te, err)
		temps = append(temps, T)
		rates = append(rates, k)
	}
	body, err := json.Marshal(FitRequest{Temperatures: temps, Rates: rates})
	require.NoError(Te, err)
	rec := do(S, http.MethodPost, "/api/v1/fit", string(body))
	require.Equal(Te, http.StatusOK, rec.Code, rec.Body.String())
	var fr FitResponse
	decodeBody(Te, rec, &fr)
	assert.InEpsilon(Te, 85.2, fr.Arrhenius.ActivationEnergy, 1e-6)
	assert.InEpsilon(Te, 1.15e12, fr.Arrhenius.FrequencyFactor, 1e-6)
	assert.InDelta(Te, 1.0, fr.RSquared, 1e-9)

	rec = do(S, http.MethodPost, "/api/v1/fit", `{"temperatures_K":[300],"rate_constants_per_s":[1]}`)
	assert.Equal(Te, http.StatusBadRequest, rec.Code)
	//validation passes, but the fit can't be done.
	rec = do(S, http.MethodPost, "/api/v1/fit", `{"temperatures_K":[300,300],"rate_constants_per_s":[1,2]}`)
	assert.Equal(Te, http.StatusBadRequest, rec.Code)
	rec = do(S, http.MethodPost, "/api/v1/fit", `{"temperatures_K":[300,310,320],"rate_constants_per_s":[1,2]}`)
	assert.Equal(Te, http.StatusBadRequest, rec.Code)
}

func TestMetrics(Te *testing.T) {
	S, _ := newTestServer(Te)
	do(S, http.MethodGet, "/api/v1/molecules/Aspirin/shelf-life?temperature=300", "")
	do(S, http.MethodPost, "/api/v1/fit", `{"temperatures_K":[300,300],"rate_constants_per_s":[1,2]}`)
	rec := do(S, http.MethodGet, "/metrics", "")
	require.Equal(Te, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(Te, body, `molequle_calculations_total{kind="shelflife",outcome="ok"} 1`)
	assert.Contains(Te, body, `molequle_calculations_total{kind="fit",outcome="invalid"} 1`)
	assert.Contains(Te, body, `molequle_http_request_duration_seconds_count{route="/api/v1/molecules/{name}/shelf-life"} 1`)
}

func TestMetricsUnknownRoutes(Te *testing.T) {
	S, logs := newTestServer(Te)
	for i := 0; i < 50; i++ {
		rec := do(S, http.MethodGet, fmt.Sprintf("/nope/%d", i), "")
		assert.Equal(Te, http.StatusNotFound, rec.Code)
	}
	body := do(S, http.MethodGet, "/metrics", "").Body.String()
	assert.Contains(Te, body, `molequle_http_request_duration_seconds_count{route="unmatched"} 50`)
	assert.NotContains(Te, body, "/nope/")
	//the log keeps the actual path
	assert.Equal(Te, 1, logs.FilterField(zap.String("path", "/nope/7")).Len())
}

func TestCORS(Te *testing.T) {
	S := New(Options{AllowedOrigins: []string{"http://lab.example.org"}})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/stability", nil)
	req.Header.Set("Origin", "http://lab.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	S.ServeHTTP(rec, req)
	assert.Equal(Te, "http://lab.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestListenAndServe(Te *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(Te, err)
	addr := l.Addr().String()
	require.NoError(Te, l.Close())

	S, _ := newTestServer(Te)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- S.ListenAndServe(ctx, addr) }()

	var resp *http.Response
	require.Eventually(Te, func() bool {
		resp, err = http.Get("http://" + addr + "/health")
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	resp.Body.Close()
	assert.Equal(Te, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(Te, err)
	case <-time.After(10 * time.Second):
		Te.Fatal("server did not shut down")
	}
}
