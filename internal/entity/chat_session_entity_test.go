package entity

import "testing"

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestSessionDataApplyShallowMerge(t *testing.T) {
	data := SessionData{
		CurrentFlow: FlowProductListing,
		ProductDraft: &ProductDraft{
			Stage:    ListingStageCategory,
			Name:     "Tomatoes",
			Category: "vegetables",
		},
		SearchParams: &SearchParams{MaxPrice: floatPtr(50)},
	}

	// Patching one top-level key leaves siblings untouched.
	data.Apply(SessionPatch{
		SearchParams: &SearchParams{MaxPrice: floatPtr(80)},
	})
	if data.SearchParams.MaxPrice == nil || *data.SearchParams.MaxPrice != 80 {
		t.Errorf("SearchParams.MaxPrice = %v, want 80", data.SearchParams.MaxPrice)
	}
	if data.CurrentFlow != FlowProductListing {
		t.Errorf("CurrentFlow = %q, want %q", data.CurrentFlow, FlowProductListing)
	}
	if data.ProductDraft == nil || data.ProductDraft.Name != "Tomatoes" {
		t.Errorf("ProductDraft = %+v, want untouched draft", data.ProductDraft)
	}

	// A patched sub-record replaces the old one wholesale: fields present on
	// the previous draft but absent on the patch are dropped, not merged.
	data.Apply(SessionPatch{
		ProductDraft: &ProductDraft{Stage: ListingStageName},
	})
	if data.ProductDraft.Name != "" || data.ProductDraft.Category != "" {
		t.Errorf("ProductDraft = %+v, want wholesale replacement", data.ProductDraft)
	}
	if data.ProductDraft.Stage != ListingStageName {
		t.Errorf("ProductDraft.Stage = %q, want %q", data.ProductDraft.Stage, ListingStageName)
	}

	// Clears remove the sub-record entirely.
	data.Apply(SessionPatch{ClearProductDraft: true, ClearCurrentFlow: true})
	if data.ProductDraft != nil {
		t.Errorf("ProductDraft = %+v, want nil after clear", data.ProductDraft)
	}
	if data.CurrentFlow != "" {
		t.Errorf("CurrentFlow = %q, want empty after clear", data.CurrentFlow)
	}
	if data.SearchParams == nil || *data.SearchParams.MaxPrice != 80 {
		t.Errorf("SearchParams = %+v, want preserved", data.SearchParams)
	}
}

func TestSessionPatchIsZero(t *testing.T) {
	if !(SessionPatch{}).IsZero() {
		t.Error("empty patch should be zero")
	}
	if (SessionPatch{CurrentFlow: strPtr(FlowProductListing)}).IsZero() {
		t.Error("patch with current_flow should not be zero")
	}
	if (SessionPatch{ClearNegotiation: true}).IsZero() {
		t.Error("patch with clear flag should not be zero")
	}
}

func TestChatSessionCloneSharesNothing(t *testing.T) {
	max := floatPtr(50)
	orig := ChatSession{
		Context: []string{"user: hi"},
		Data: SessionData{
			CurrentFlow:  FlowProductListing,
			ProductDraft: &ProductDraft{Stage: ListingStagePrice, Name: "Tomatoes"},
			SearchParams: &SearchParams{MaxPrice: max},
			Negotiation:  &NegotiationState{Stage: NegotiationAwaitingOffer, ProductCode: 42},
		},
		Version: 3,
	}

	cp := orig.Clone()
	cp.Context = append(cp.Context, "bot: hello")
	cp.Data.ProductDraft.Name = "Onions"
	*cp.Data.SearchParams.MaxPrice = 10
	cp.Data.Negotiation.ProposedPrice = 30

	if len(orig.Context) != 1 {
		t.Errorf("clone appended into the original transcript: %v", orig.Context)
	}
	if orig.Data.ProductDraft.Name != "Tomatoes" {
		t.Errorf("clone mutated the original draft: %q", orig.Data.ProductDraft.Name)
	}
	if *orig.Data.SearchParams.MaxPrice != 50 {
		t.Errorf("clone mutated the original search params: %v", *orig.Data.SearchParams.MaxPrice)
	}
	if orig.Data.Negotiation.ProposedPrice != 0 {
		t.Errorf("clone mutated the original negotiation state: %v", orig.Data.Negotiation.ProposedPrice)
	}
	if cp.Version != 3 {
		t.Errorf("clone should carry the loaded version, got %d", cp.Version)
	}
}
