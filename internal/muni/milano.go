package muni

import "context"

// MilanoURL is the Area B page of the Comune di Milano, which also
// lists the Area C congestion charge zone.
const MilanoURL = "https://www.comune.milano.it/servizi/mobilita/area-b"

// Milano scrapes the restricted zones of Milan.
type Milano struct {
	Client *Client
	URL    string
}

func NewMilano(client *Client) *Milano {
	return &Milano{Client: client, URL: MilanoURL}
}

func (m *Milano) City() string { return "Milano" }

func (m *Milano) Country() string { return "Italy" }

func (m *Milano) Zones(ctx context.Context) (Result, error) {
	return resolve(ctx, "milano", m.scrape)
}

func (m *Milano) scrape(ctx context.Context) ([]Zone, error) {
	doc, err := m.Client.Page(ctx, m.URL)
	if err != nil {
		return nil, err
	}

	return zonesFromPage(doc, pageLayout{
		section:   "div.ztl-info",
		name:      "h2",
		hours:     "p",
		boundary:  "div.map-data",
		coordAttr: "data-coordinates",
	})
}
