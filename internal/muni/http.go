package muni

import (
	"net/http"
	"time"
)

// Municipality sites are small and occasionally slow. Connections per
// host stay low to avoid hammering them during a full sync.
func defaultTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxConnsPerHost = 4
	t.MaxIdleConnsPerHost = 4
	return t
}

func defaultHTTP() *http.Client {
	return &http.Client{
		Transport: defaultTransport(),
		Timeout:   20 * time.Second,
	}
}
