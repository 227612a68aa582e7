package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	"github.com/cicconee/ztl-maps/internal/admin"
	"github.com/cicconee/ztl-maps/internal/city"
	"github.com/cicconee/ztl-maps/internal/config"
	"github.com/cicconee/ztl-maps/internal/metrics"
	"github.com/cicconee/ztl-maps/internal/muni"
	"github.com/cicconee/ztl-maps/internal/server"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

var port string

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	flag.StringVar(&port, "p", cfg.Port, "the port the server should listen on")
	flag.Parse()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalln(err)
	}

	logger := log.Default()
	cities := city.New(muni.Scrapers(muni.DefaultClient), db)

	// Hydrate the catalog from the database before taking traffic.
	load, err := cities.Load(context.Background())
	if err != nil {
		log.Fatalln(err)
	}
	for _, fail := range load.Fails {
		logger.Printf("load: skipped zone (city=%q, zone=%q, op=%s): %v\n",
			fail.City,
			fail.Zone,
			fail.Op,
			fail.Err)
	}
	logger.Printf("load: %d cities, %d zones\n", len(load.Cities), load.TotalZones())

	collector := metrics.NewCollector()
	collector.SetCatalogSize(len(load.Cities), load.TotalZones())

	srv := server.Server{
		Addr:     port,
		Router:   chi.NewRouter(),
		Interval: cfg.SyncInterval,
		Logger:   logger,
		Location: cfg.Location,
		Cities:   cities,
		Admins:   admin.New([]byte(cfg.AdminSecret), db),
		Metrics:  collector,
	}
	if err := srv.Start(); err != nil {
		log.Println(err)
	}
}
