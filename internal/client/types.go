// Package client provides the HTTP and WebSocket clients for the MediBuddy
// backend. Types mirror the backend wire contract without importing any
// server-side packages.
package client

import (
	"encoding/json"
	"fmt"
	"time"
)

// PushKind identifies the kind of push message on the live channel.
type PushKind string

const (
	PushConnected    PushKind = "connected"
	PushPharmaUpdate PushKind = "pharma_update"
	PushChatResponse PushKind = "chat_response"
	PushPriceUpdate  PushKind = "price_update"
)

// PushEnvelope is the outer frame of every live-channel message. Payload
// layout depends on Type; unknown types are ignored for forward
// compatibility.
type PushEnvelope struct {
	Type       PushKind        `json:"type"`
	Message    string          `json:"message,omitempty"`
	Response   string          `json:"response,omitempty"`
	Sources    []string        `json:"sources,omitempty"`
	Confidence float64         `json:"confidence,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  string          `json:"timestamp,omitempty"`
}

// FactUpdate is one atomic change pushed by the real-time engine. The same
// shape appears in pharma_update and price_update payloads and in the
// /api/updates/recent response.
type FactUpdate struct {
	ID            string  `json:"id"`
	EntityType    string  `json:"entity_type"`
	EntityID      string  `json:"entity_id"`
	Field         string  `json:"field"`
	Value         any     `json:"value"`
	PreviousValue any     `json:"previous_value,omitempty"`
	Source        string  `json:"source,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`
	VerifiedBy    string  `json:"verified_by,omitempty"`
	EffectiveDate string  `json:"effective_date,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
	Importance    int     `json:"importance"`
}

// ValueString renders the fact value for display. Wire values are untyped:
// prices arrive as numbers, flags as bools, warnings as strings.
func (f FactUpdate) ValueString() string {
	switch v := f.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// --- REST models ---

// DrugSummary is one row of a GET /api/drugs search result.
type DrugSummary struct {
	ID          string `json:"id"`
	BrandName   string `json:"brand_name"`
	GenericName string `json:"generic_name"`
	DrugClass   string `json:"drug_class"`
	Schedule    string `json:"schedule"`
	HasBlackBox bool   `json:"has_black_box"`
}

// DrugWarning is a safety warning attached to a drug record.
type DrugWarning struct {
	Type        string `json:"type"` // "Black Box", "REMS", "Contraindication"
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Drug is the full record returned by GET /api/drugs/{name}.
type Drug struct {
	ID                string        `json:"id"`
	BrandName         string        `json:"brand_name"`
	GenericName       string        `json:"generic_name"`
	Manufacturer      string        `json:"manufacturer"`
	DosageForms       []string      `json:"dosage_forms"`
	Strengths         []string      `json:"strengths"`
	Route             string        `json:"route"`
	DrugClass         string        `json:"drug_class"`
	Mechanism         string        `json:"mechanism"`
	Contraindications []string      `json:"contraindications"`
	Warnings          []DrugWarning `json:"warnings"`
	AdverseEffects    []string      `json:"adverse_effects"`
	Schedule          string        `json:"schedule"`
	PregnancyCategory string        `json:"pregnancy_category"`
	LactationSafe     bool          `json:"lactation_safe"`
	RequiresPriorAuth bool          `json:"requires_prior_auth"`
	RemsRequired      bool          `json:"rems_required"`
}

// DrugDetail pairs a drug record with its therapeutic alternatives.
type DrugDetail struct {
	Drug         Drug          `json:"drug"`
	Alternatives []DrugSummary `json:"alternatives"`
}

// PricePoints holds the benchmark price set for one drug. Optional fields
// are pointers so "not published" is distinguishable from zero.
type PricePoints struct {
	AWP           float64  `json:"awp"`
	WAC           float64  `json:"wac"`
	NADAC         *float64 `json:"nadac,omitempty"`
	ASP           *float64 `json:"asp,omitempty"`
	Price340B     *float64 `json:"price_340b,omitempty"`
	GoodRxLow     *float64 `json:"goodrx_low,omitempty"`
	CostPlusPrice *float64 `json:"costplus_price,omitempty"`

	LocationAdjustment *LocationAdjustment `json:"location_adjustment,omitempty"`
}

// LocationAdjustment describes the regional multiplier applied to prices.
type LocationAdjustment struct {
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Multiplier float64 `json:"multiplier"`
	Currency   string  `json:"currency"`
	Symbol     string  `json:"symbol"`
}

// PricingResponse is returned by GET /api/drugs/{name}/pricing.
type PricingResponse struct {
	DrugName    string      `json:"drug_name"`
	GenericName string      `json:"generic_name"`
	Location    string      `json:"location"`
	Pricing     PricePoints `json:"pricing"`
}

// Interaction is one drug-drug interaction finding.
type Interaction struct {
	DrugA          string `json:"drug_a"`
	DrugB          string `json:"drug_b"`
	Severity       string `json:"severity"` // "Major", "Moderate", "Minor"
	Description    string `json:"description"`
	ClinicalEffect string `json:"clinical_effect"`
	Management     string `json:"management"`
}

// InteractionReport is returned by POST /api/interactions/check.
type InteractionReport struct {
	Interactions        []Interaction `json:"interactions"`
	HasMajorInteraction bool          `json:"has_major_interaction"`
	Summary             string        `json:"summary"`
}

// Payer identifies an insurance plan.
type Payer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	PlanName     string `json:"plan_name"`
	State        string `json:"state,omitempty"`
	DrugsCovered int    `json:"drugs_covered,omitempty"`
}

// CoverageDetails is one payer's formulary position for a drug.
type CoverageDetails struct {
	Tier                int      `json:"tier"`
	Copay               *float64 `json:"copay,omitempty"`
	Coinsurance         *float64 `json:"coinsurance,omitempty"`
	PriorAuthRequired   bool     `json:"prior_auth_required"`
	PACriteria          string   `json:"pa_criteria,omitempty"`
	StepTherapyRequired bool     `json:"step_therapy_required"`
	QuantityLimit       string   `json:"quantity_limit,omitempty"`
}

// CoverageEntry pairs a payer with its coverage details for one drug,
// as returned by GET /api/coverage/{name}.
type CoverageEntry struct {
	Payer    Payer           `json:"payer"`
	Coverage CoverageDetails `json:"coverage"`
}

// PriorAuthRequest is the body of POST /api/prior-auth/generate.
type PriorAuthRequest struct {
	DrugName  string `json:"drug_name"`
	PayerName string `json:"payer_name"`
	Diagnosis string `json:"diagnosis"`
}

// PriorAuthResult carries the generated PA form text.
type PriorAuthResult struct {
	Form        string `json:"form"`
	GeneratedAt string `json:"generated_at"`
}

// ChatAnswer is the agent's reply, shared by POST /api/chat and the
// chat_response push message.
type ChatAnswer struct {
	Response   string   `json:"response"`
	Sources    []string `json:"sources"`
	Confidence float64  `json:"confidence"`
}

// EngineStatus is the real-time engine block inside /api/status.
type EngineStatus struct {
	Status         string `json:"status"`
	KnowledgeGraph struct {
		TotalFacts       int `json:"total_facts"`
		RecentChanges24h int `json:"recent_changes_24h"`
	} `json:"knowledge_graph"`
	Firehose struct {
		SourcesActive int `json:"sources_active"`
	} `json:"firehose"`
	WebsocketClients int `json:"websocket_clients"`
}

// SystemStatus is returned by GET /api/status.
type SystemStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Database  struct {
		Drugs  int `json:"drugs"`
		Payers int `json:"payers"`
	} `json:"database"`
	RealtimeEngine EngineStatus `json:"realtime_engine"`
}

// RecentUpdates is returned by GET /api/updates/recent.
type RecentUpdates struct {
	Count   int          `json:"count"`
	Hours   int          `json:"hours"`
	Updates []FactUpdate `json:"updates"`
}
