// Package netcheck answers "is the remote service reachable" with a single
// short-timeout request.
package netcheck

import (
	"net/http"
	"time"
)

const (
	// DefaultURL is probed before every listen and response turn.
	DefaultURL = "https://api.openai.com"

	defaultTimeout = 3 * time.Second
)

// Probe performs bounded reachability checks against one endpoint. Any
// completed HTTP exchange counts as online regardless of status code; DNS,
// dial, TLS and timeout failures all collapse to offline.
type Probe struct {
	URL    string
	Client *http.Client
}

func New(url string, timeout time.Duration) *Probe {
	return &Probe{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (p *Probe) Online() bool {
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	resp, err := client.Get(p.URL)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return true
}

var defaultProbe = New(DefaultURL, defaultTimeout)

// Online probes the default endpoint. Callers re-probe on every turn, so
// connectivity can change turn-to-turn; nothing is cached.
func Online() bool { return defaultProbe.Online() }
