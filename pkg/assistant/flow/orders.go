package flow

import (
	"context"
	"fmt"
	"strings"

	"farmmarket-be/pkg/assistant/extract"
)

// OrderViewHandler renders the buyer's purchase history.
type OrderViewHandler struct {
	store Store
}

func NewOrderViewHandler(store Store) *OrderViewHandler {
	return &OrderViewHandler{store: store}
}

func (h *OrderViewHandler) Handle(ctx context.Context, conv *Conversation) (*Result, error) {
	if !strings.Contains(strings.ToLower(conv.Message), "my orders") {
		return &Result{Reply: "To see your purchases, say \"show my orders\"."}, nil
	}

	history, err := h.store.OrderHistory(ctx, conv.UserId)
	if err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return &Result{Reply: "You haven't placed any orders yet."}, nil
	}

	var sb strings.Builder
	sb.WriteString("Your orders:\n")
	for _, oh := range history {
		sb.WriteString(fmt.Sprintf("\n%s\n", oh.ProductName))
		sb.WriteString(fmt.Sprintf("  %d %s × ₹%s = ₹%s\n",
			oh.Order.Quantity, oh.ProductUnit,
			extract.FormatAmount(oh.ProductPrice), extract.FormatAmount(oh.Order.TotalPrice)))
		sb.WriteString(fmt.Sprintf("  Status: %s\n", oh.Order.Status))
		if oh.Review != nil {
			sb.WriteString(fmt.Sprintf("  Your rating: %d/5\n", oh.Review.Rating))
		} else {
			sb.WriteString("  (Not reviewed yet)\n")
		}
	}

	return &Result{Reply: sb.String()}, nil
}
