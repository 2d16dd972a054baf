package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"farmmarket-be/internal/entity"

	"github.com/google/uuid"
)

const harvestDateLayout = "2006-01-02"

// ListingHandler walks a farmer through listing a product, one field per
// turn. The stage on the draft is the explicit flow state; raw answers are
// routed here while current_flow is set, so answers like "Tomatoes" never
// pass through the keyword classifier.
type ListingHandler struct {
	store Store
}

func NewListingHandler(store Store) *ListingHandler {
	return &ListingHandler{store: store}
}

func (h *ListingHandler) Handle(ctx context.Context, conv *Conversation) (*Result, error) {
	if conv.Profile == nil || !conv.Profile.IsFarmer {
		return &Result{Reply: "Only farmers can list products. You can browse with \"show products\"."}, nil
	}

	draft := conv.Data.ProductDraft
	if conv.Data.CurrentFlow != entity.FlowProductListing || draft == nil {
		flowName := entity.FlowProductListing
		return &Result{
			Reply: "Great! Let's list your new product. What's the product name?",
			Patch: entity.SessionPatch{
				CurrentFlow:  &flowName,
				ProductDraft: &entity.ProductDraft{Stage: entity.ListingStageName},
			},
		}, nil
	}

	answer := strings.TrimSpace(conv.Message)
	next := *draft

	switch draft.Stage {
	case entity.ListingStageName:
		if answer == "" {
			return &Result{Reply: "What's the product name?"}, nil
		}
		next.Name = answer
		next.Stage = entity.ListingStageCategory
		return patchDraft("Got it. What category is it? (e.g. vegetables, fruits, grains)", &next), nil

	case entity.ListingStageCategory:
		if answer == "" {
			return &Result{Reply: "What category is it? (e.g. vegetables, fruits, grains)"}, nil
		}
		next.Category = strings.ToLower(answer)
		next.Stage = entity.ListingStagePrice
		return patchDraft("What's the price per unit? (e.g. 40)", &next), nil

	case entity.ListingStagePrice:
		price, err := strconv.ParseFloat(strings.TrimPrefix(answer, "₹"), 64)
		if err != nil || price <= 0 {
			return &Result{Reply: "Please enter the price as a number, e.g. 40"}, nil
		}
		next.Price = price
		next.Stage = entity.ListingStageQuantity
		return patchDraft("How many units do you have in stock?", &next), nil

	case entity.ListingStageQuantity:
		qty, err := strconv.Atoi(answer)
		if err != nil || qty <= 0 {
			return &Result{Reply: "Please enter the quantity as a whole number, e.g. 100"}, nil
		}
		next.Quantity = qty
		next.Stage = entity.ListingStageUnit
		return patchDraft("What's the unit? (e.g. kg, dozen, litre)", &next), nil

	case entity.ListingStageUnit:
		if answer == "" {
			return &Result{Reply: "What's the unit? (e.g. kg, dozen, litre)"}, nil
		}
		next.Unit = answer
		next.Stage = entity.ListingStageLocation
		return patchDraft("Where is the produce located?", &next), nil

	case entity.ListingStageLocation:
		if answer == "" {
			return &Result{Reply: "Where is the produce located?"}, nil
		}
		next.Location = answer
		next.Stage = entity.ListingStageHarvestDate
		return patchDraft("When was it harvested? (YYYY-MM-DD, or \"skip\")", &next), nil

	case entity.ListingStageHarvestDate:
		if !strings.EqualFold(answer, "skip") {
			d, err := time.Parse(harvestDateLayout, answer)
			if err != nil {
				return &Result{Reply: "Please enter the harvest date as YYYY-MM-DD, or \"skip\""}, nil
			}
			next.HarvestDate = &d
		}
		return h.commit(ctx, conv, &next)
	}

	// Unknown stage in the stored blob; restart the flow cleanly.
	return &Result{
		Reply: "Let's start over. What's the product name?",
		Patch: entity.SessionPatch{
			ProductDraft: &entity.ProductDraft{Stage: entity.ListingStageName},
		},
	}, nil
}

func (h *ListingHandler) commit(ctx context.Context, conv *Conversation, draft *entity.ProductDraft) (*Result, error) {
	product := &entity.Product{
		Id:          uuid.New(),
		FarmerId:    conv.UserId,
		Name:        draft.Name,
		Category:    draft.Category,
		Price:       draft.Price,
		Quantity:    draft.Quantity,
		Unit:        draft.Unit,
		Location:    draft.Location,
		HarvestDate: draft.HarvestDate,
	}

	if err := h.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	reply := fmt.Sprintf("Your product is listed! %s, ₹%.2f/%s, %d %s available in %s. Buyers can negotiate with \"negotiate for product %d\".",
		product.Name, product.Price, product.Unit, product.Quantity, product.Unit, product.Location, product.Code)

	return &Result{
		Reply: reply,
		Patch: entity.SessionPatch{
			ClearCurrentFlow:  true,
			ClearProductDraft: true,
		},
	}, nil
}

func patchDraft(reply string, draft *entity.ProductDraft) *Result {
	return &Result{
		Reply: reply,
		Patch: entity.SessionPatch{ProductDraft: draft},
	}
}
