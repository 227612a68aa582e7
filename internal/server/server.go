package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cicconee/ztl-maps/internal/admin"
	"github.com/cicconee/ztl-maps/internal/city"
	"github.com/cicconee/ztl-maps/internal/metrics"
	"github.com/cicconee/ztl-maps/internal/pool"
	"github.com/go-chi/chi/v5"
)

// Default worker pool sizing. Five municipalities means five scrape
// jobs per pass, so a handful of workers clears a pass quickly.
const (
	poolWorkers = 4
	poolBacklog = 16
)

type Server struct {
	Router   *chi.Mux
	Addr     string
	Interval time.Duration
	Logger   *log.Logger
	Location *time.Location
	Cities   *city.Service
	Admins   *admin.Service
	Metrics  *metrics.Collector

	handler      *Handler
	pool         *pool.Pool
	shutdownCh   chan os.Signal
	worker       *worker
	workerKillCh chan<- struct{}
	wg           *sync.WaitGroup
}

func (s *Server) addr() string {
	if s.Addr == "" {
		s.Addr = "8080"
	}

	return fmt.Sprintf(":%s", s.Addr)
}

func (s *Server) interval() time.Duration {
	if s.Interval == 0 {
		s.Interval = 6 * time.Hour
	}

	return s.Interval
}

func (s *Server) location() *time.Location {
	if s.Location == nil {
		s.Location = time.Local
	}

	return s.Location
}

func (s *Server) init() {
	s.handler = NewHandler(s.Logger)
	s.handler.cities = s.Cities
	s.handler.admins = s.Admins
	s.handler.metrics = s.Metrics
	s.handler.loc = s.location()
	s.setRoutes()

	s.shutdownCh = make(chan os.Signal, 1)
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	s.pool = pool.New(poolWorkers, poolBacklog)

	workerKillCh := make(chan struct{}, 1)
	s.workerKillCh = workerKillCh
	s.worker = &worker{
		cities:  s.Cities,
		metrics: s.Metrics,
		logger:  s.Logger,
		p:       s.pool,
		d:       s.interval(),
		killCh:  workerKillCh,
	}

	s.wg = &sync.WaitGroup{}
}

func (s *Server) setRoutes() {
	s.Router.Use(RequestMetrics(s.Metrics))

	s.Router.Get("/", s.handler.HandleRoot())
	s.Router.Get("/cities", s.handler.HandleGetCities())
	s.Router.Get("/cities/{city}", s.handler.HandleGetCity())
	s.Router.Get("/cities/{city}/active-zones", s.handler.HandleGetActiveZones())
	s.Router.Get("/cities/{city}/zones/{zone}", s.handler.HandleGetZone())
	s.Router.Get("/cities/{city}/geojson", s.handler.HandleGetCityGeoJSON())
	s.Router.Get("/cities/{city}/map", s.handler.HandleGetCityMap())
	s.Router.Handle("/metrics", s.Metrics.Handler())

	// Set the admin routes.
	adminValidater := AdminValidater{
		admins: s.Admins,
		logger: s.Logger,
	}

	s.Router.Post("/admins/login", s.handler.HandlePostLogin())
	s.Router.Post("/admins/signup", s.handler.HandlePostSignup())
	s.Router.Post("/admins/cities", adminValidater.Validate(s.handler.HandleCreateCity()))
	s.Router.Post("/admins/cities/sync", adminValidater.Validate(s.handler.HandleSyncCity()))
}

func (s *Server) run(runFn func()) {
	go func() {
		s.wg.Add(1)
		defer s.wg.Done()

		runFn()
	}()
}

func (s *Server) listenAndServe() error {
	httpServer := &http.Server{
		Addr:    s.addr(),
		Handler: s.Router,
	}

	startCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			startCh <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	// Wait for either a shutdown signal or an error if the server
	// cannot start.
	select {
	case err := <-startCh:
		return err
	case <-s.shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), 7*time.Second)
		defer func() {
			defer cancel()

			// Kill background worker.
			s.workerKillCh <- struct{}{}

			// Wait for all resources to stop, then let the pool
			// drain. The worker is the only job producer, so no Add
			// can race the close.
			s.wg.Wait()
			s.pool.Stop()
		}()

		// Gracefully shutdown the http server.
		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}

func (s *Server) validate() error {
	if s.Router == nil {
		return errors.New("router is nil")
	}

	if s.Logger == nil {
		return errors.New("logger is nil")
	}

	if s.Cities == nil {
		return errors.New("cities is nil")
	}

	if s.Admins == nil {
		return errors.New("admins is nil")
	}

	if s.Metrics == nil {
		return errors.New("metrics is nil")
	}

	return nil
}

func (s *Server) Start() error {
	if err := s.validate(); err != nil {
		return err
	}

	s.init()
	s.pool.Start()
	s.run(func() {
		s.worker.start()
	})

	return s.listenAndServe()
}
