package muni

import "context"

const FirenzeURL = "https://www.comune.fi.it/servizi/scheda-servizio/ztl"

// Firenze scrapes the restricted zones of Florence, which divides its
// center into lettered sectors sharing one timetable.
type Firenze struct {
	Client *Client
	URL    string
}

func NewFirenze(client *Client) *Firenze {
	return &Firenze{Client: client, URL: FirenzeURL}
}

func (f *Firenze) City() string { return "Firenze" }

func (f *Firenze) Country() string { return "Italy" }

func (f *Firenze) Zones(ctx context.Context) (Result, error) {
	return resolve(ctx, "firenze", f.scrape)
}

func (f *Firenze) scrape(ctx context.Context) ([]Zone, error) {
	doc, err := f.Client.Page(ctx, f.URL)
	if err != nil {
		return nil, err
	}

	return zonesFromPage(doc, pageLayout{
		section:   "article.ztl-sector",
		name:      "h2",
		hours:     "p.schedule",
		boundary:  "div.boundary",
		coordAttr: "data-points",
	})
}
