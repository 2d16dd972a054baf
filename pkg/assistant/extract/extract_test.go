package extract

import "testing"

func TestMaxPrice(t *testing.T) {
	tests := []struct {
		message string
		want    float64
		ok      bool
	}{
		{"show products under 50", 50, true},
		{"show products under ₹50", 50, true},
		{"anything under rs. 120", 120, true},
		{"Under 99.50 please", 99.50, true},
		{"show products", 0, false},
		{"under the weather", 0, false},
	}

	for _, tt := range tests {
		got, ok := MaxPrice(tt.message)
		if ok != tt.ok || got != tt.want {
			t.Errorf("MaxPrice(%q) = (%v, %v), want (%v, %v)", tt.message, got, ok, tt.want, tt.ok)
		}
	}
}

func TestProductCode(t *testing.T) {
	tests := []struct {
		message string
		want    int64
		ok      bool
	}{
		{"negotiate for product 42", 42, true},
		{"Negotiate 7", 7, true},
		{"I'd like to negotiate the price of product 105", 105, true},
		{"negotiate", 0, false},
		{"orders 42", 0, false},
	}

	for _, tt := range tests {
		got, ok := ProductCode(tt.message)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ProductCode(%q) = (%v, %v), want (%v, %v)", tt.message, got, ok, tt.want, tt.ok)
		}
	}
}

func TestOfferPrice(t *testing.T) {
	tests := []struct {
		message string
		want    float64
		ok      bool
	}{
		{"₹30", 30, true},
		{"rs 30", 30, true},
		{"how about 25.50", 25.50, true},
		{"no numbers here", 0, false},
	}

	for _, tt := range tests {
		got, ok := OfferPrice(tt.message)
		if ok != tt.ok || got != tt.want {
			t.Errorf("OfferPrice(%q) = (%v, %v), want (%v, %v)", tt.message, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(30); got != "30" {
		t.Errorf("FormatAmount(30) = %q, want \"30\"", got)
	}
	if got := FormatAmount(25.5); got != "25.5" {
		t.Errorf("FormatAmount(25.5) = %q, want \"25.5\"", got)
	}
}
