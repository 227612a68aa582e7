package server

import _ "embed"

// mapHTML is the Leaflet page served under /cities/{city}/map. The
// page reads the city slug from its own URL and fetches the sibling
// geojson endpoint, so one embedded file serves every city.
//
//go:embed static/map.html
var mapHTML []byte
