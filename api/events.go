package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const ticketmasterBaseURL = "https://app.ticketmaster.com/discovery/v2/events.json"

// EventsClient is a passthrough to the Ticketmaster Discovery API, fixed at
// the original deployment's Melbourne CBD query. Responses are relayed
// verbatim; failures are not retried.
type EventsClient struct {
	APIKey     string
	HTTPClient *http.Client
}

func NewEventsClient(apiKey string) *EventsClient {
	return &EventsClient{
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *EventsClient) FetchEvents(ctx context.Context) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("apikey", c.APIKey)
	params.Set("postalcode", "3000")
	params.Set("radius", "100")
	params.Set("unit", "km")
	params.Set("countryCode", "AU")
	params.Set("stateCode", "VIC")
	params.Set("startDateTime", time.Now().Format("2006-01-02")+"T00:00:00Z")
	params.Set("size", "100")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ticketmasterBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ticketmaster returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (h *Handlers) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.FetchEvents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error fetching events: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(events)
}
