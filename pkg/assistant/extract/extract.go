// Package extract pulls structured values out of free-text chat messages.
// A non-match is never an error; flows re-prompt instead.
package extract

import (
	"regexp"
	"strconv"
)

var (
	maxPriceRe    = regexp.MustCompile(`(?i)under\s*(?:₹|rs\.?\s*)?(\d+(?:\.\d+)?)`)
	productCodeRe = regexp.MustCompile(`(?i)negotiate\D*(\d+)`)
	offerPriceRe  = regexp.MustCompile(`(?i)(?:₹|rs\.?\s*)?(\d+(?:\.\d+)?)`)
)

// MaxPrice parses a "under ₹N" style price cap from a search message.
func MaxPrice(message string) (float64, bool) {
	m := maxPriceRe.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ProductCode reads the first integer after the word "negotiate", treated as
// a public product code ("negotiate for product 42" -> 42).
func ProductCode(message string) (int64, bool) {
	m := productCodeRe.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// OfferPrice reads the first amount in the message ("₹30", "rs 30", "30").
// It only ever sees the current turn's text, so digits consumed as a product
// code on an earlier turn cannot be re-matched here.
func OfferPrice(message string) (float64, bool) {
	m := offerPriceRe.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatAmount renders an amount the way users type it: no trailing zeros.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
