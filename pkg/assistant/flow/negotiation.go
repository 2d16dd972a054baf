package flow

import (
	"context"
	"fmt"

	"farmmarket-be/internal/entity"
	"farmmarket-be/pkg/assistant/extract"

	"github.com/google/uuid"
)

// NegotiationHandler runs price haggling. Turn one picks the product by its
// public code and seeds the negotiation state; later turns read a price from
// the fresh message and deliver it to the seller as a direct message.
type NegotiationHandler struct {
	store Store
}

func NewNegotiationHandler(store Store) *NegotiationHandler {
	return &NegotiationHandler{store: store}
}

func (h *NegotiationHandler) Handle(ctx context.Context, conv *Conversation) (*Result, error) {
	neg := conv.Data.Negotiation

	if neg == nil || neg.Stage != entity.NegotiationAwaitingOffer {
		return h.selectProduct(ctx, conv)
	}

	// Only the current turn's text is scanned, so the product code chosen on
	// an earlier turn can never be mistaken for an offer.
	price, ok := extract.OfferPrice(conv.Message)
	if !ok {
		return &Result{Reply: "What price would you like to propose? (e.g. ₹30)"}, nil
	}

	content := fmt.Sprintf("Proposed price: ₹%s", extract.FormatAmount(price))
	msg := &entity.Message{
		Id:         uuid.New(),
		SenderId:   conv.UserId,
		ReceiverId: neg.SellerId,
		Content:    content,
	}
	if err := h.store.SendMessage(ctx, msg); err != nil {
		return nil, err
	}

	updated := *neg
	updated.ProposedPrice = price

	return &Result{
		Reply: fmt.Sprintf("Done! I've sent your proposal of ₹%s to the seller. You'll hear back soon.", extract.FormatAmount(price)),
		Patch: entity.SessionPatch{Negotiation: &updated},
	}, nil
}

func (h *NegotiationHandler) selectProduct(ctx context.Context, conv *Conversation) (*Result, error) {
	code, ok := extract.ProductCode(conv.Message)
	if !ok {
		return &Result{Reply: "Which product would you like to negotiate for? Say \"negotiate for product <number>\"."}, nil
	}

	product, err := h.store.ProductByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return &Result{Reply: fmt.Sprintf("I couldn't find product %d. Try \"show products\" to see what's available.", code)}, nil
	}

	seller := "the farmer"
	if product.Farmer != nil {
		seller = product.Farmer.FullName
	}

	state := &entity.NegotiationState{
		Stage:         entity.NegotiationAwaitingOffer,
		ProductId:     product.Id,
		ProductCode:   product.Code,
		SellerId:      product.FarmerId,
		ProposedPrice: product.Price,
	}

	reply := fmt.Sprintf("%s is listed at ₹%s/%s by %s. What price would you like to propose?",
		product.Name, extract.FormatAmount(product.Price), product.Unit, seller)

	return &Result{
		Reply: reply,
		Patch: entity.SessionPatch{Negotiation: state},
	}, nil
}
