package muni

import "context"

const TorinoURL = "http://www.comune.torino.it/trasporti/ztl"

// Torino scrapes the restricted zones of Turin, which mixes a morning
// commuter zone with night zones spanning midnight and one zone that
// never opens to traffic.
type Torino struct {
	Client *Client
	URL    string
}

func NewTorino(client *Client) *Torino {
	return &Torino{Client: client, URL: TorinoURL}
}

func (t *Torino) City() string { return "Torino" }

func (t *Torino) Country() string { return "Italy" }

func (t *Torino) Zones(ctx context.Context) (Result, error) {
	return resolve(ctx, "torino", t.scrape)
}

func (t *Torino) scrape(ctx context.Context) ([]Zone, error) {
	doc, err := t.Client.Page(ctx, t.URL)
	if err != nil {
		return nil, err
	}

	return zonesFromPage(doc, pageLayout{
		section:   "li.ztl-area",
		name:      "h2",
		hours:     "p.times",
		boundary:  "div.map-data",
		coordAttr: "data-coordinates",
	})
}
