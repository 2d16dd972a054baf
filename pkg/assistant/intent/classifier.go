package intent

import "strings"

// Intent is the classified purpose of a single user message. It selects
// which flow handler runs.
type Intent string

const (
	Negotiation Intent = "negotiation"
	OrderView   Intent = "order_view"
	Analytics   Intent = "analytics"
	Listing     Intent = "listing"
	Search      Intent = "search"
	Help        Intent = "help"
)

// rule is one entry in the ordered cascade. First match wins; there is no
// scoring or disambiguation, so the order of the table is part of the
// contract ("show my orders" resolves to OrderView only because "orders" is
// tested before "show").
type rule struct {
	intent     Intent
	farmerOnly bool
	keywords   []string
}

var cascade = []rule{
	{intent: Negotiation, keywords: []string{"negotiate"}},
	{intent: OrderView, keywords: []string{"orders"}},
	{intent: Analytics, keywords: []string{"analytics", "insights"}},
	{intent: Listing, farmerOnly: true, keywords: []string{"add product"}},
	{intent: Search, keywords: []string{"search", "show"}},
}

// Classify maps a raw message to an intent via case-insensitive substring
// tests over the cascade. Messages matching no rule get the Help menu.
func Classify(message string, isFarmer bool) Intent {
	msg := strings.ToLower(message)

	for _, r := range cascade {
		if r.farmerOnly && !isFarmer {
			continue
		}
		if containsAny(msg, r.keywords) {
			return r.intent
		}
	}

	return Help
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
