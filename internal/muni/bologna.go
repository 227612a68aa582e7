package muni

import "context"

const BolognaURL = "https://www.comune.bologna.it/servizi-informazioni/zona-traffico-limitato-ztl"

// Bologna scrapes the restricted zones of Bologna. The city runs its
// center zones every day of the week, holidays included.
type Bologna struct {
	Client *Client
	URL    string
}

func NewBologna(client *Client) *Bologna {
	return &Bologna{Client: client, URL: BolognaURL}
}

func (b *Bologna) City() string { return "Bologna" }

func (b *Bologna) Country() string { return "Italy" }

func (b *Bologna) Zones(ctx context.Context) (Result, error) {
	return resolve(ctx, "bologna", b.scrape)
}

func (b *Bologna) scrape(ctx context.Context) ([]Zone, error) {
	doc, err := b.Client.Page(ctx, b.URL)
	if err != nil {
		return nil, err
	}

	return zonesFromPage(doc, pageLayout{
		section:   "div.ztl-zone",
		name:      "h3",
		hours:     "p.orari",
		boundary:  "div.map-data",
		coordAttr: "data-coords",
	})
}
