package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient makes REST calls to the MediBuddy backend. It has no retry or
// caching behavior; callers own recovery.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client targeting the given base URL
// (e.g. "http://127.0.0.1:8000").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchDrugs fetches GET /api/drugs?search=.
func (c *HTTPClient) SearchDrugs(query string, limit int) ([]DrugSummary, error) {
	var out []DrugSummary
	path := fmt.Sprintf("/api/drugs?search=%s&limit=%d", url.QueryEscape(query), limit)
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDrug fetches GET /api/drugs/{name}.
func (c *HTTPClient) GetDrug(name string) (*DrugDetail, error) {
	var d DrugDetail
	if err := c.get("/api/drugs/"+url.PathEscape(name), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetPricing fetches GET /api/drugs/{name}/pricing, adjusted for region.
func (c *HTTPClient) GetPricing(name, region string) (*PricingResponse, error) {
	var p PricingResponse
	path := "/api/drugs/" + url.PathEscape(name) + "/pricing"
	if region != "" {
		path += "?location=" + url.QueryEscape(region)
	}
	if err := c.get(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CheckInteractions sends POST /api/interactions/check. The backend
// requires at least two drugs.
func (c *HTTPClient) CheckInteractions(drugs []string) (*InteractionReport, error) {
	body := map[string][]string{"drugs": drugs}
	var out InteractionReport
	if err := c.post("/api/interactions/check", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCoverage fetches GET /api/coverage/{name}, optionally filtered by
// payer name and region.
func (c *HTTPClient) GetCoverage(name, payer, region string) ([]CoverageEntry, error) {
	var out []CoverageEntry
	q := url.Values{}
	if payer != "" {
		q.Set("payer", payer)
	}
	if region != "" {
		q.Set("state", region)
	}
	path := "/api/coverage/" + url.PathEscape(name)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	if err := c.get(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPayers fetches GET /api/payers.
func (c *HTTPClient) ListPayers() ([]Payer, error) {
	var out []Payer
	if err := c.get("/api/payers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GeneratePriorAuth sends POST /api/prior-auth/generate.
func (c *HTTPClient) GeneratePriorAuth(req PriorAuthRequest) (*PriorAuthResult, error) {
	var out PriorAuthResult
	if err := c.post("/api/prior-auth/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStatus fetches GET /api/status.
func (c *HTTPClient) GetStatus() (*SystemStatus, error) {
	var s SystemStatus
	if err := c.get("/api/status", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetRecentUpdates fetches GET /api/updates/recent for the given window.
func (c *HTTPClient) GetRecentUpdates(hours int) (*RecentUpdates, error) {
	var r RecentUpdates
	if err := c.get(fmt.Sprintf("/api/updates/recent?hours=%d", hours), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Chat sends POST /api/chat. This is the request/response fallback used
// when the live channel is down.
func (c *HTTPClient) Chat(message, region string) (*ChatAnswer, error) {
	body := map[string]string{"message": message}
	if region != "" {
		body["region"] = region
	}
	var out ChatAnswer
	if err := c.post("/api/chat", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) get(path string, out interface{}) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) post(path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s: %d %s", path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
