package intent

import "testing"

func TestClassifyCascadeOrder(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		isFarmer bool
		want     Intent
	}{
		{"negotiate wins over everything", "negotiate my orders analytics show search", false, Negotiation},
		{"negotiate beats orders", "Negotiate for product 42 from my orders", false, Negotiation},
		{"orders before analytics", "show analytics for my orders", true, OrderView},
		{"orders before show", "show my orders", false, OrderView},
		{"analytics", "give me analytics", true, Analytics},
		{"insights alias", "any insights for me?", true, Analytics},
		{"farmer add product", "I want to add product", true, Listing},
		{"buyer add product falls through to help", "I want to add product", false, Help},
		{"search", "search tomatoes", false, Search},
		{"show products", "show products under 50", false, Search},
		{"case insensitive", "SHOW PRODUCTS", false, Search},
		{"no keyword", "hello there", false, Help},
		{"farmer no keyword", "hello there", true, Help},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.message, tt.isFarmer)
			if got != tt.want {
				t.Errorf("Classify(%q, %v) = %v, want %v", tt.message, tt.isFarmer, got, tt.want)
			}
		})
	}
}
