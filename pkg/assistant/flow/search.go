package flow

import (
	"context"
	"fmt"
	"strings"

	"farmmarket-be/internal/entity"
	"farmmarket-be/pkg/assistant/extract"
)

// SearchHandler lists products, optionally capped by a persisted "under ₹N"
// price refinement that sticks for follow-up searches in the same session.
type SearchHandler struct {
	store Store
}

func NewSearchHandler(store Store) *SearchHandler {
	return &SearchHandler{store: store}
}

func (h *SearchHandler) Handle(ctx context.Context, conv *Conversation) (*Result, error) {
	params := entity.SearchParams{}
	if conv.Data.SearchParams != nil {
		params = *conv.Data.SearchParams
	}

	var patch entity.SessionPatch
	if max, ok := extract.MaxPrice(conv.Message); ok {
		params.MaxPrice = &max
		patch.SearchParams = &params
	}

	products, err := h.store.ProductsUnderPrice(ctx, params.MaxPrice)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		reply := "No products found."
		if params.MaxPrice != nil {
			reply = fmt.Sprintf("No products found under ₹%s.", extract.FormatAmount(*params.MaxPrice))
		}
		return &Result{Reply: reply, Patch: patch}, nil
	}

	var sb strings.Builder
	sb.WriteString("Here's what I found:\n")
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("• #%d %s (₹%s/%s) - %s\n", p.Code, p.Name, extract.FormatAmount(p.Price), p.Unit, p.Location))
	}
	sb.WriteString("Say \"negotiate for product <number>\" to make an offer.")

	return &Result{Reply: sb.String(), Patch: patch}, nil
}
