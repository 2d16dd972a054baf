package flow

import (
	"context"
	"fmt"
	"strings"
)

// AnalyticsHandler summarizes a farmer's review performance per product.
// Read-only and idempotent; repeated calls change no session state.
type AnalyticsHandler struct {
	store Store
}

func NewAnalyticsHandler(store Store) *AnalyticsHandler {
	return &AnalyticsHandler{store: store}
}

func (h *AnalyticsHandler) Handle(ctx context.Context, conv *Conversation) (*Result, error) {
	msg := strings.ToLower(conv.Message)
	if !strings.Contains(msg, "analytics") && !strings.Contains(msg, "insights") {
		return &Result{Reply: "Say \"show analytics\" to see how your products are rated."}, nil
	}

	if conv.Profile == nil || !conv.Profile.IsFarmer {
		return &Result{Reply: "Analytics are for farmers. You can review products you've bought from \"show my orders\"."}, nil
	}

	ratings, err := h.store.FarmerRatings(ctx, conv.UserId)
	if err != nil {
		return nil, err
	}

	if len(ratings) == 0 {
		return &Result{Reply: "No analytics available yet. You need some orders and reviews first."}, nil
	}

	var sb strings.Builder
	sb.WriteString("Your product ratings:\n")
	for _, r := range ratings {
		sb.WriteString(fmt.Sprintf("• %s: %.1f/5 (%d reviews)\n", r.Name, r.AvgRating, r.ReviewCount))
	}

	return &Result{Reply: sb.String()}, nil
}
