/*
 * server.go, part of molequle.
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

//Package dashboard serves the MoleQule HTTP API: reference molecules, shelf life
//and stability calculations, reports and plots.
//The accepted temperature range is enforced here, the calculations themselves
//take any physically meaningful temperature.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/rmera/molequle"
	"github.com/rmera/molequle/refdata"
	"go.uber.org/zap"
)

//Options configures a Server. Zero values are replaced by defaults.
type Options struct {
	Dataset        *refdata.Dataset //refdata.Default() if nil
	Policy         molequle.Policy
	MinTemperature float64 //273 K if 0
	MaxTemperature float64 //323 K if 0
	CurvePoints    int     //26 if 0
	AllowedOrigins []string
	Logger         *zap.Logger
}

//Server is the dashboard HTTP server. It's safe for concurrent use.
type Server struct {
	dataset  *refdata.Dataset
	policy   molequle.Policy
	tmin     float64
	tmax     float64
	npoints  int
	origins  []string
	logger   *zap.Logger
	metrics  *Metrics
	validate *validator.Validate
	handler  http.Handler
}

//New returns a server set up with the options O.
func New(O Options) *Server {
	S := &Server{
		dataset:  O.Dataset,
		policy:   O.Policy,
		tmin:     O.MinTemperature,
		tmax:     O.MaxTemperature,
		npoints:  O.CurvePoints,
		origins:  O.AllowedOrigins,
		logger:   O.Logger,
		metrics:  NewMetrics(),
		validate: validator.New(),
	}
	if S.dataset == nil {
		S.dataset = refdata.Default()
	}
	if S.tmin == 0 {
		S.tmin = 273
	}
	if S.tmax == 0 {
		S.tmax = 323
	}
	if S.npoints == 0 {
		S.npoints = 26
	}
	if len(S.origins) == 0 {
		S.origins = []string{"*"}
	}
	if S.logger == nil {
		S.logger = zap.NewNop()
	}
	S.handler = S.routes()
	return S
}

//Metrics returns the metrics collectors of the server.
func (S *Server) Metrics() *Metrics {
	return S.metrics
}

func (S *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	S.handler.ServeHTTP(w, r)
}

func (S *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(S.logRequests)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: S.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	router.Get("/health", S.health)
	router.Method(http.MethodGet, "/metrics", S.metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/molecules", func(r chi.Router) {
			r.Get("/", S.listMolecules)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", S.getMolecule)
				r.Get("/shelf-life", S.moleculeShelfLife)
				r.Get("/report", S.moleculeReport)
				r.Get("/profile.png", S.profilePlot)
				r.Get("/curve.png", S.curvePlot)
			})
		})
		r.Post("/shelf-life", S.shelfLife)
		r.Post("/stability", S.stability)
		r.Post("/fit", S.fit)
	})
	return router
}

//ListenAndServe serves on addr until ctx is cancelled, then shuts the server
//down, giving the requests in flight a few seconds to finish.
func (S *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           S,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		S.logger.Info("dashboard listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	S.logger.Info("dashboard shutting down")
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
