package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/cicconee/ztl-maps/internal/admin"
	"github.com/cicconee/ztl-maps/internal/app"
	"github.com/cicconee/ztl-maps/internal/city"
	"github.com/cicconee/ztl-maps/internal/metrics"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	logger  *log.Logger
	cities  *city.Service
	admins  *admin.Service
	metrics *metrics.Collector
	loc     *time.Location
}

func NewHandler(l *log.Logger) *Handler {
	return &Handler{
		logger: l,
	}
}

func (h *Handler) NewLogWriter(w http.ResponseWriter, r *http.Request) *LogWriter {
	return NewLogWriter(h.logger, w, r)
}

// publishCatalogSize pushes the current catalog footprint to the
// gauges. Called after every operation that changes the catalog.
func publishCatalogSize(svc *city.Service, m *metrics.Collector) {
	cities := svc.Cities()
	zones := 0
	for _, c := range cities {
		zones += c.ZoneCount()
	}

	m.SetCatalogSize(len(cities), zones)
}

type failItem struct {
	Zone  string `json:"zone"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

// failItems flattens zone failures into their response shape. The
// error is stringified because handlers decide what leaves the server,
// not the service.
func failItems(fails []city.ZoneFail) []failItem {
	items := make([]failItem, 0, len(fails))
	for _, f := range fails {
		items = append(items, failItem{
			Zone:  f.Zone,
			Op:    f.Op,
			Error: f.Err.Error(),
		})
	}

	return items
}

func fallbackMsg(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

func (h *Handler) HandleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type res struct {
			Message string `json:"message"`
			Cities  int    `json:"cities"`
		}

		h.NewLogWriter(w, r).Write(Response{
			Status: http.StatusOK,
			Body: res{
				Message: "ZTL Maps API",
				Cities:  len(h.cities.Cities()),
			},
		})
	}
}

func (h *Handler) HandleGetCities() http.HandlerFunc {
	type cityItem struct {
		Slug      string `json:"slug"`
		Name      string `json:"name"`
		Country   string `json:"country"`
		ZoneCount int    `json:"zone_count"`
	}

	type res struct {
		Cities []cityItem `json:"cities"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		cities := h.cities.Cities()

		items := make([]cityItem, 0, len(cities))
		for _, c := range cities {
			items = append(items, cityItem{
				Slug:      c.Slug,
				Name:      c.Name,
				Country:   c.Country,
				ZoneCount: c.ZoneCount(),
			})
		}

		h.NewLogWriter(w, r).Write(Response{
			Status: http.StatusOK,
			Body:   res{Cities: items},
		})
	}
}

func (h *Handler) HandleGetCity() http.HandlerFunc {
	type zoneItem struct {
		Slug   string   `json:"slug"`
		Name   string   `json:"name"`
		Active bool     `json:"active"`
		Hours  []string `json:"hours"`
	}

	type res struct {
		Slug    string     `json:"slug"`
		Name    string     `json:"name"`
		Country string     `json:"country"`
		At      time.Time  `json:"at"`
		Zones   []zoneItem `json:"zones"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		citySlug := chi.URLParam(r, "city")
		writer := h.NewLogWriter(w, r)

		at, err := QueryTime(r, h.loc)
		if err != nil {
			h.logger.Printf("HandleGetCity: failed to parse query time (city=%q): %v", citySlug, err)
			writer.WriteError(err)
			return
		}

		c, err := h.cities.City(citySlug)
		if err != nil {
			h.logger.Printf("HandleGetCity: failed to get city (city=%q): %v", citySlug, err)
			writer.WriteError(err)
			return
		}

		zones := make([]zoneItem, 0, c.ZoneCount())
		for _, z := range c.Zones() {
			zones = append(zones, zoneItem{
				Slug:   z.Slug,
				Name:   z.Name,
				Active: z.IsActiveAt(at),
				Hours:  z.Hours(),
			})
		}

		writer.Write(Response{
			Status: http.StatusOK,
			Body: res{
				Slug:    c.Slug,
				Name:    c.Name,
				Country: c.Country,
				At:      at,
				Zones:   zones,
			},
		})
	}
}

func (h *Handler) HandleGetActiveZones() http.HandlerFunc {
	type zoneItem struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	}

	type res struct {
		City        string     `json:"city"`
		At          time.Time  `json:"at"`
		ActiveZones []zoneItem `json:"active_zones"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		citySlug := chi.URLParam(r, "city")
		writer := h.NewLogWriter(w, r)

		at, err := QueryTime(r, h.loc)
		if err != nil {
			h.logger.Printf("HandleGetActiveZones: failed to parse query time (city=%q): %v", citySlug, err)
			writer.WriteError(err)
			return
		}

		c, err := h.cities.City(citySlug)
		if err != nil {
			h.logger.Printf("HandleGetActiveZones: failed to get city (city=%q): %v", citySlug, err)
			writer.WriteError(err)
			return
		}

		active := make([]zoneItem, 0)
		for _, slug := range c.ActiveZones(at) {
			z, err := c.Zone(slug)
			if err != nil {
				continue
			}

			active = append(active, zoneItem{Slug: z.Slug, Name: z.Name})
		}

		writer.Write(Response{
			Status: http.StatusOK,
			Body: res{
				City:        c.Slug,
				At:          at,
				ActiveZones: active,
			},
		})
	}
}

func (h *Handler) HandleGetZone() http.HandlerFunc {
	type windowItem struct {
		Days  []string `json:"days"`
		Start string   `json:"start"`
		End   string   `json:"end"`
	}

	type exceptionItem struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Kind  string `json:"kind"`
	}

	type res struct {
		Slug           string          `json:"slug"`
		Name           string          `json:"name"`
		City           string          `json:"city"`
		At             time.Time       `json:"at"`
		Active         bool            `json:"active"`
		Windows        []windowItem    `json:"windows"`
		Exceptions     []exceptionItem `json:"exceptions,omitempty"`
		NextTransition *time.Time      `json:"next_transition,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		citySlug := chi.URLParam(r, "city")
		zoneSlug := chi.URLParam(r, "zone")
		writer := h.NewLogWriter(w, r)

		at, err := QueryTime(r, h.loc)
		if err != nil {
			h.logger.Printf("HandleGetZone: failed to parse query time (city=%q, zone=%q): %v", citySlug, zoneSlug, err)
			writer.WriteError(err)
			return
		}

		z, err := h.cities.Zone(citySlug, zoneSlug)
		if err != nil {
			h.logger.Printf("HandleGetZone: failed to get zone (city=%q, zone=%q): %v", citySlug, zoneSlug, err)
			writer.WriteError(err)
			return
		}

		windows := make([]windowItem, 0, len(z.Schedule.Windows))
		for _, win := range z.Schedule.Windows {
			days := []string{}
			for _, d := range win.Days.Days() {
				days = append(days, d.String())
			}

			windows = append(windows, windowItem{
				Days:  days,
				Start: win.Hours.Start.String(),
				End:   win.Hours.End.String(),
			})
		}

		exceptions := make([]exceptionItem, 0, len(z.Schedule.Exceptions))
		for _, e := range z.Schedule.Exceptions {
			exceptions = append(exceptions, exceptionItem{
				Start: e.Start.String(),
				End:   e.End.String(),
				Kind:  e.Kind.String(),
			})
		}

		body := res{
			Slug:       z.Slug,
			Name:       z.Name,
			City:       z.City,
			At:         at,
			Active:     z.IsActiveAt(at),
			Windows:    windows,
			Exceptions: exceptions,
		}

		if next, ok := z.NextTransition(at); ok {
			body.NextTransition = &next
		}

		writer.Write(Response{
			Status: http.StatusOK,
			Body:   body,
		})
	}
}

func (h *Handler) HandleGetCityGeoJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		citySlug := chi.URLParam(r, "city")
		writer := h.NewLogWriter(w, r)

		at, err := QueryTime(r, h.loc)
		if err != nil {
			h.logger.Printf("HandleGetCityGeoJSON: failed to parse query time (city=%q): %v", citySlug, err)
			writer.WriteError(err)
			return
		}

		c, err := h.cities.City(citySlug)
		if err != nil {
			h.logger.Printf("HandleGetCityGeoJSON: failed to get city (city=%q): %v", citySlug, err)
			writer.WriteError(err)
			return
		}

		writer.Write(Response{
			Status: http.StatusOK,
			Body:   c.FeatureCollection(at),
		})
	}
}

func (h *Handler) HandleGetCityMap() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		citySlug := chi.URLParam(r, "city")
		writer := h.NewLogWriter(w, r)

		if _, err := h.cities.City(citySlug); err != nil {
			h.logger.Printf("HandleGetCityMap: failed to get city (city=%q): %v", citySlug, err)
			writer.WriteError(err)
			return
		}

		writer.WriteHTML(http.StatusOK, mapHTML)
	}
}

// credentials is the body both admin auth endpoints accept.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func decodeCredentials(r *http.Request) (credentials, error) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return credentials{}, &app.ServerResponseError{
			Err:        err,
			Msg:        "Invalid request body",
			StatusCode: http.StatusBadRequest,
		}
	}

	return creds, nil
}

func (h *Handler) HandlePostSignup() http.HandlerFunc {
	type res struct {
		Message string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		creds, err := decodeCredentials(r)
		if err != nil {
			h.logger.Printf("HandlePostSignup: failed to decode body: %v", err)
			writer.WriteError(err)
			return
		}

		if err := h.admins.Signup(r.Context(), creds.Username, creds.Password); err != nil {
			h.logger.Printf("HandlePostSignup: failed to signup (username=%q): %v", creds.Username, err)
			writer.WriteError(err)
			return
		}

		writer.Write(Response{
			Status: http.StatusCreated,
			Body:   res{Message: "Signup successful, approval pending"},
		})
	}
}

func (h *Handler) HandlePostLogin() http.HandlerFunc {
	type res struct {
		Message string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		creds, err := decodeCredentials(r)
		if err != nil {
			h.logger.Printf("HandlePostLogin: failed to decode body: %v", err)
			writer.WriteError(err)
			return
		}

		token, err := h.admins.Login(r.Context(), creds.Username, creds.Password)
		if err != nil {
			h.logger.Printf("HandlePostLogin: failed to login (username=%q): %v", creds.Username, err)
			writer.WriteError(err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     adminTokenCookieKey,
			Value:    token,
			Path:     "/",
			MaxAge:   int(time.Hour.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writer.Write(Response{
			Status: http.StatusOK,
			Body:   res{Message: "Logged in"},
		})
	}
}

func (h *Handler) HandleCreateCity() http.HandlerFunc {
	type res struct {
		City       string     `json:"city"`
		Country    string     `json:"country"`
		TotalZones int        `json:"total_zones"`
		Fails      []failItem `json:"fails"`
		Fallback   string     `json:"fallback,omitempty"`
		CreatedAt  time.Time  `json:"created_at"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		cityName := r.URL.Query().Get("q")
		ctx := r.Context()
		writer := h.NewLogWriter(w, r)

		start := time.Now()
		result, err := h.cities.Save(ctx, cityName)
		if err != nil {
			h.logger.Printf("HandleCreateCity: failed to save city (city=%q): %v", cityName, err)
			writer.WriteError(err)
			return
		}

		h.metrics.ObserveScrape(city.Slugify(result.City), time.Since(start), result.Fallback != nil, len(result.Fails))
		publishCatalogSize(h.cities, h.metrics)

		writer.Write(Response{
			Status: http.StatusOK,
			Body: res{
				City:       result.City,
				Country:    result.Country,
				TotalZones: result.Zones,
				Fails:      failItems(result.Fails),
				Fallback:   fallbackMsg(result.Fallback),
				CreatedAt:  result.CreatedAt,
			},
		})
	}
}

func (h *Handler) HandleSyncCity() http.HandlerFunc {
	type res struct {
		City       string     `json:"city"`
		Country    string     `json:"country"`
		TotalZones int        `json:"total_zones"`
		Fails      []failItem `json:"fails"`
		Fallback   string     `json:"fallback,omitempty"`
		UpdatedAt  time.Time  `json:"updated_at"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		cityName := r.URL.Query().Get("q")
		ctx := r.Context()
		writer := h.NewLogWriter(w, r)

		start := time.Now()
		result, err := h.cities.Sync(ctx, cityName)
		if err != nil {
			h.logger.Printf("HandleSyncCity: failed to sync city (city=%q): %v", cityName, err)
			writer.WriteError(err)
			return
		}

		h.metrics.ObserveScrape(city.Slugify(result.City), time.Since(start), result.Fallback != nil, len(result.Fails))
		publishCatalogSize(h.cities, h.metrics)

		writer.Write(Response{
			Status: http.StatusOK,
			Body: res{
				City:       result.City,
				Country:    result.Country,
				TotalZones: result.Zones,
				Fails:      failItems(result.Fails),
				Fallback:   fallbackMsg(result.Fallback),
				UpdatedAt:  result.UpdatedAt,
			},
		})
	}
}
