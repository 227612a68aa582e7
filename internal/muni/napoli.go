package muni

import "context"

const NapoliURL = "https://www.comune.napoli.it/ztl"

// Napoli scrapes the restricted zones of Naples. Unlike the northern
// cities each zone keeps its own timetable, including weekend-only
// coastal zones.
type Napoli struct {
	Client *Client
	URL    string
}

func NewNapoli(client *Client) *Napoli {
	return &Napoli{Client: client, URL: NapoliURL}
}

func (n *Napoli) City() string { return "Napoli" }

func (n *Napoli) Country() string { return "Italy" }

func (n *Napoli) Zones(ctx context.Context) (Result, error) {
	return resolve(ctx, "napoli", n.scrape)
}

func (n *Napoli) scrape(ctx context.Context) ([]Zone, error) {
	doc, err := n.Client.Page(ctx, n.URL)
	if err != nil {
		return nil, err
	}

	return zonesFromPage(doc, pageLayout{
		section:   "div.ztl-info",
		name:      "h3",
		hours:     "p",
		boundary:  "div.map-data",
		coordAttr: "data-coordinates",
	})
}
