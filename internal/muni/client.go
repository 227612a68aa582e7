package muni

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/cicconee/ztl-maps/internal/app"
)

type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client fetches pages from municipality websites. Scrapers share a
// single Client so connection reuse and the User-Agent header are
// managed in one place.
type Client struct {
	HTTP      HTTPDoer
	UserAgent string
}

var DefaultClient = &Client{
	HTTP: defaultHTTP(),
}

func (c *Client) http() HTTPDoer {
	if c.HTTP == nil {
		return DefaultClient.HTTP
	}

	return c.HTTP
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed creating GET request: %w", err)
	}

	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	res, err := c.http().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GET request: %w", err)
	}

	return res, nil
}

// Page fetches url and parses the body as HTML. A response outside
// 200 returns an *app.SourceStatusCodeError so callers can tell an
// unreachable site from a page whose markup changed.
func (c *Client) Page(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed getting http response: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &app.SourceStatusCodeError{StatusCode: res.StatusCode, URL: url}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed parsing page html: %w", err)
	}

	return doc, nil
}
