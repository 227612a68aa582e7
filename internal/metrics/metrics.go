package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles every instrument the server exposes. It registers
// against its own registry so the /metrics endpoint only carries these
// series and nothing a linked library slipped into the default registry.
type Collector struct {
	reg *prometheus.Registry

	CitiesLoaded prometheus.Gauge
	ZonesLoaded  prometheus.Gauge

	Scrapes        *prometheus.CounterVec
	ScrapeFalls    *prometheus.CounterVec
	ZoneFails      *prometheus.CounterVec
	ScrapeDuration *prometheus.HistogramVec

	Requests        *prometheus.CounterVec
	RequestDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		CitiesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ztl_cities_loaded",
			Help: "Number of cities currently held in the catalog.",
		}),
		ZonesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ztl_zones_loaded",
			Help: "Number of zones currently held in the catalog.",
		}),
		Scrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ztl_scrapes_total",
			Help: "Total scrape attempts per city.",
		}, []string{"city"}),
		ScrapeFalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ztl_scrape_fallbacks_total",
			Help: "Total scrapes that served embedded fallback data per city.",
		}, []string{"city"}),
		ZoneFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ztl_zone_failures_total",
			Help: "Total zones dropped while building a city per city.",
		}, []string{"city"}),
		ScrapeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ztl_scrape_duration_seconds",
			Help:    "Duration of a full city scrape and store cycle.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"city"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ztl_requests_total",
			Help: "Total HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ztl_request_duration_seconds",
			Help:    "Duration of HTTP request handling.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}

	reg.MustRegister(
		c.CitiesLoaded, c.ZonesLoaded,
		c.Scrapes, c.ScrapeFalls, c.ZoneFails, c.ScrapeDuration,
		c.Requests, c.RequestDuration,
	)

	return c
}

// ObserveScrape records one scrape cycle for a city. A scrape that fell
// back to embedded data still counts as a scrape, plus a fallback.
func (c *Collector) ObserveScrape(city string, d time.Duration, fellBack bool, zoneFails int) {
	c.Scrapes.WithLabelValues(city).Inc()
	c.ScrapeDuration.WithLabelValues(city).Observe(d.Seconds())
	if fellBack {
		c.ScrapeFalls.WithLabelValues(city).Inc()
	}
	if zoneFails > 0 {
		c.ZoneFails.WithLabelValues(city).Add(float64(zoneFails))
	}
}

// SetCatalogSize publishes the current catalog footprint.
func (c *Collector) SetCatalogSize(cities, zones int) {
	c.CitiesLoaded.Set(float64(cities))
	c.ZonesLoaded.Set(float64(zones))
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}
