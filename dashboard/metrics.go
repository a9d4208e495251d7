/*
 * metrics.go, part of molequle.
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
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//Outcomes of a calculation, as recorded in the metrics.
const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeFailed  = "failed"
)

//Metrics holds the prometheus collectors of one server. Each server has its own
//registry, so several can live in the same process (as in the tests).
type Metrics struct {
	registry     *prometheus.Registry
	Calculations *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

//NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	M := &Metrics{
		registry: prometheus.NewRegistry(),
		Calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "molequle",
				Name:      "calculations_total",
				Help:      "Calculations served, by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "molequle",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	M.registry.MustRegister(M.Calculations, M.HTTPDuration)
	return M
}

func (M *Metrics) count(kind, outcome string) {
	M.Calculations.WithLabelValues(kind, outcome).Inc()
}

//Handler serves the metrics in the prometheus text format.
func (M *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(M.registry, promhttp.HandlerOpts{})
}
