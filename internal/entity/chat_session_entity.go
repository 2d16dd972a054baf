package entity

import (
	"time"

	"github.com/google/uuid"
)

// FlowProductListing marks a listing conversation in progress. While set, the
// assistant keeps routing raw answers ("Tomatoes", "vegetables", ...) to the
// listing handler instead of the keyword classifier.
const FlowProductListing = "product_listing"

type ListingStage string

const (
	ListingStageName        ListingStage = "awaiting_name"
	ListingStageCategory    ListingStage = "awaiting_category"
	ListingStagePrice       ListingStage = "awaiting_price"
	ListingStageQuantity    ListingStage = "awaiting_quantity"
	ListingStageUnit        ListingStage = "awaiting_unit"
	ListingStageLocation    ListingStage = "awaiting_location"
	ListingStageHarvestDate ListingStage = "awaiting_harvest_date"
)

// ProductDraft accumulates a listing across turns. Stage is the explicit
// state of the flow; fields behind the stage pointer are already collected.
type ProductDraft struct {
	Stage       ListingStage `json:"stage"`
	Name        string       `json:"name,omitempty"`
	Category    string       `json:"category,omitempty"`
	Price       float64      `json:"price,omitempty"`
	Quantity    int          `json:"quantity,omitempty"`
	Unit        string       `json:"unit,omitempty"`
	Location    string       `json:"location,omitempty"`
	HarvestDate *time.Time   `json:"harvest_date,omitempty"`
}

// SearchParams persists search refinements between turns.
type SearchParams struct {
	MaxPrice *float64 `json:"max_price,omitempty"`
}

type NegotiationStage string

const (
	// NegotiationAwaitingOffer means a product is selected and the next
	// price-looking message becomes a proposal to the seller.
	NegotiationAwaitingOffer NegotiationStage = "awaiting_offer"
)

type NegotiationState struct {
	Stage         NegotiationStage `json:"stage"`
	ProductId     uuid.UUID        `json:"product_id"`
	ProductCode   int64            `json:"product_code"`
	SellerId      uuid.UUID        `json:"seller_id"`
	ProposedPrice float64          `json:"proposed_price"`
}

// SessionData is the per-user conversational state persisted on the
// chat_sessions row. Each flow owns exactly one sub-record.
type SessionData struct {
	CurrentFlow  string            `json:"current_flow,omitempty"`
	ProductDraft *ProductDraft     `json:"product_draft,omitempty"`
	SearchParams *SearchParams     `json:"search_params,omitempty"`
	Negotiation  *NegotiationState `json:"negotiation,omitempty"`
}

// SessionPatch is a partial update to SessionData. Merging is shallow: a set
// sub-record replaces the stored one wholesale, a clear removes it, nil
// leaves it untouched. Nested fields are never merged individually.
type SessionPatch struct {
	CurrentFlow       *string
	ClearCurrentFlow  bool
	ProductDraft      *ProductDraft
	ClearProductDraft bool
	SearchParams      *SearchParams
	Negotiation       *NegotiationState
	ClearNegotiation  bool
}

func (p SessionPatch) IsZero() bool {
	return p.CurrentFlow == nil && !p.ClearCurrentFlow &&
		p.ProductDraft == nil && !p.ClearProductDraft &&
		p.SearchParams == nil &&
		p.Negotiation == nil && !p.ClearNegotiation
}

// Apply merges the patch into the data in place.
func (d *SessionData) Apply(p SessionPatch) {
	if p.ClearCurrentFlow {
		d.CurrentFlow = ""
	} else if p.CurrentFlow != nil {
		d.CurrentFlow = *p.CurrentFlow
	}

	if p.ClearProductDraft {
		d.ProductDraft = nil
	} else if p.ProductDraft != nil {
		d.ProductDraft = p.ProductDraft
	}

	if p.SearchParams != nil {
		d.SearchParams = p.SearchParams
	}

	if p.ClearNegotiation {
		d.Negotiation = nil
	} else if p.Negotiation != nil {
		d.Negotiation = p.Negotiation
	}
}

// ChatSession is the persisted conversation for one user. Context holds the
// recent transcript ("user: ...", "bot: ..."). Version is the optimistic
// concurrency token: updates carry the version they loaded and fail on
// mismatch instead of overwriting a concurrent writer.
type ChatSession struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Context         []string
	Data            SessionData
	Version         int64
	LastInteraction time.Time
	CreatedAt       time.Time
}

// Clone returns a copy sharing no mutable state with the receiver. The
// session cache hands out clones so two concurrent requests for the same
// user never patch one object; the version check on update arbitrates who
// wins the write.
func (s *ChatSession) Clone() *ChatSession {
	cp := *s
	cp.Context = append([]string(nil), s.Context...)
	cp.Data = s.Data.clone()
	return &cp
}

func (d SessionData) clone() SessionData {
	cp := d
	if d.ProductDraft != nil {
		draft := *d.ProductDraft
		if d.ProductDraft.HarvestDate != nil {
			date := *d.ProductDraft.HarvestDate
			draft.HarvestDate = &date
		}
		cp.ProductDraft = &draft
	}
	if d.SearchParams != nil {
		params := *d.SearchParams
		if d.SearchParams.MaxPrice != nil {
			price := *d.SearchParams.MaxPrice
			params.MaxPrice = &price
		}
		cp.SearchParams = &params
	}
	if d.Negotiation != nil {
		neg := *d.Negotiation
		cp.Negotiation = &neg
	}
	return cp
}
