package flow

import "context"

const farmerHelp = `Here's what I can do for you:
• "add product" - list a new product step by step
• "show products" or "search ... under ₹N" - browse the market
• "show my orders" - see your purchases
• "show analytics" - ratings and reviews for your products
• "negotiate for product <number>" - haggle on a price`

const buyerHelp = `Here's what I can do for you:
• "show products" or "search ... under ₹N" - browse the market
• "negotiate for product <number>" - propose your price to the farmer
• "show my orders" - see your purchases`

// HelpHandler returns the static capability menu, farmer- or buyer-flavored.
type HelpHandler struct{}

func NewHelpHandler() *HelpHandler {
	return &HelpHandler{}
}

func (h *HelpHandler) Handle(ctx context.Context, conv *Conversation) (*Result, error) {
	if conv.Profile != nil && conv.Profile.IsFarmer {
		return &Result{Reply: farmerHelp}, nil
	}
	return &Result{Reply: buyerHelp}, nil
}
