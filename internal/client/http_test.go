package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *HTTPClient) {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/drugs", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "" {
			http.Error(w, `{"detail":"search required"}`, http.StatusUnprocessableEntity)
			return
		}
		json.NewEncoder(w).Encode([]DrugSummary{
			{BrandName: "Lipitor", GenericName: "atorvastatin"},
		})
	})
	mux.HandleFunc("/api/drugs/Lipitor/pricing", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("location"); got != "UK" {
			t.Errorf("location = %q, want UK", got)
		}
		nadac := 142.50
		json.NewEncoder(w).Encode(PricingResponse{
			DrugName: "Lipitor",
			Location: "UK",
			Pricing:  PricePoints{AWP: 180.10, NADAC: &nadac},
		})
	})
	mux.HandleFunc("/api/interactions/check", func(w http.ResponseWriter, r *http.Request) {
		var req map[string][]string
		json.NewDecoder(r.Body).Decode(&req)
		if len(req["drugs"]) < 2 {
			http.Error(w, `{"detail":"need two drugs"}`, http.StatusUnprocessableEntity)
			return
		}
		json.NewEncoder(w).Encode(InteractionReport{
			Interactions: []Interaction{{DrugA: "warfarin", DrugB: "aspirin", Severity: "Major"}},
		})
	})
	mux.HandleFunc("/api/drugs/Nonexistil", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Drug not found"}`, http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, NewHTTPClient(srv.URL)
}

func TestSearchDrugs(t *testing.T) {
	_, c := newTestServer(t)

	items, err := c.SearchDrugs("lipitor", 20)
	if err != nil {
		t.Fatalf("SearchDrugs: %v", err)
	}
	if len(items) != 1 || items[0].GenericName != "atorvastatin" {
		t.Errorf("items = %+v", items)
	}
}

func TestGetPricingPassesRegion(t *testing.T) {
	_, c := newTestServer(t)

	p, err := c.GetPricing("Lipitor", "UK")
	if err != nil {
		t.Fatalf("GetPricing: %v", err)
	}
	if p.Pricing.NADAC == nil || *p.Pricing.NADAC != 142.50 {
		t.Errorf("pricing = %+v", p.Pricing)
	}
}

func TestCheckInteractions(t *testing.T) {
	_, c := newTestServer(t)

	r, err := c.CheckInteractions([]string{"warfarin", "aspirin"})
	if err != nil {
		t.Fatalf("CheckInteractions: %v", err)
	}
	if len(r.Interactions) != 1 || r.Interactions[0].Severity != "Major" {
		t.Errorf("report = %+v", r)
	}
}

func TestErrorIncludesStatusAndBody(t *testing.T) {
	_, c := newTestServer(t)

	_, err := c.GetDrug("Nonexistil")
	if err == nil {
		t.Fatal("expected an error for a 404")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "Drug not found") {
		t.Errorf("error %q should carry status and body", err)
	}
}
