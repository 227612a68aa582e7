package server

import (
	"context"
	"log"
	"time"

	"github.com/cicconee/ztl-maps/internal/city"
	"github.com/cicconee/ztl-maps/internal/metrics"
	"github.com/cicconee/ztl-maps/internal/pool"
)

// worker re-scrapes every loaded city on a fixed interval so the
// catalog keeps tracking the municipal pages without an admin in the
// loop. Scrapes run as jobs on the shared pool.
type worker struct {
	cities  *city.Service
	metrics *metrics.Collector
	logger  *log.Logger
	p       *pool.Pool
	d       time.Duration
	killCh  <-chan struct{}
}

func (w *worker) start() {
	ticker := time.NewTicker(w.d)

	for {
		select {
		case <-ticker.C:
			ctx := context.Background()
			w.syncCities(ctx)
		case <-w.killCh:
			ticker.Stop()
			return
		}
	}
}

type syncOutcome struct {
	slug string
	res  city.SyncResult
	took time.Duration
	err  error
}

// syncCities re-scrapes each city on the pool and collects every
// outcome before returning, so one pass finishes before the next tick
// starts another.
func (w *worker) syncCities(ctx context.Context) {
	cities := w.cities.Cities()
	outCh := make(chan syncOutcome, len(cities))

	for _, c := range cities {
		slug := c.Slug
		w.p.Add(func() {
			if ctx.Err() != nil {
				outCh <- syncOutcome{slug: slug, err: ctx.Err()}
				return
			}

			start := time.Now()
			res, err := w.cities.Sync(ctx, slug)
			outCh <- syncOutcome{
				slug: slug,
				res:  res,
				took: time.Since(start),
				err:  err,
			}
		})
	}

	for range cities {
		out := <-outCh
		if out.err != nil {
			w.logger.Printf("worker: failed to sync city (city=%q): %v\n", out.slug, out.err)
			continue
		}

		w.metrics.ObserveScrape(out.slug, out.took, out.res.Fallback != nil, len(out.res.Fails))

		if out.res.Fallback != nil {
			w.logger.Printf("worker: scrape fell back to embedded zones (city=%q): %v\n", out.slug, out.res.Fallback)
		}

		for _, fail := range out.res.Fails {
			w.logger.Printf("worker: failed to sync zone (city=%q, zone=%q, op=%s): %v\n",
				fail.City,
				fail.Zone,
				fail.Op,
				fail.Err)
		}

		w.logger.Printf("worker: synced city (city=%q, zones=%d)\n", out.slug, out.res.Zones)
	}

	publishCatalogSize(w.cities, w.metrics)
}
