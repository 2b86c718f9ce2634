// Package whatsapp computes display prices and builds the wa.me deep
// links the storefront renders next to every product.
package whatsapp

import (
	"fmt"
	"math"
	"net/url"
	"strings"
)

// currencyPrefix is the fixed label prefix for all displayed amounts.
const currencyPrefix = "MT"

// Order is the slice of a product the link generator needs.
type Order struct {
	Name            string
	Price           float64
	DiscountPercent float64
	CustomMessage   string
}

// FinalPrice applies the discount to the list price, rounded to two
// decimals. A zero discount returns the list price unchanged.
func FinalPrice(price, discountPercent float64) float64 {
	if discountPercent <= 0 {
		return round2(price)
	}

	return round2(price * (1 - discountPercent/100))
}

// PriceLabel formats the effective price as e.g. "MT 150.00", with a
// discount annotation ("MT 900.00 (10% discount)") when one applies.
func PriceLabel(price, discountPercent float64) string {
	label := fmt.Sprintf(
		"%s %.2f",
		currencyPrefix,
		FinalPrice(price, discountPercent),
	)

	if discountPercent > 0 {
		label += fmt.Sprintf(
			" (%.0f%% discount)",
			discountPercent,
		)
	}

	return label
}

// Message returns the pre-filled order inquiry for a product: the
// product's own custom message when set, otherwise a synthesized one.
func Message(order Order) string {
	if msg := strings.TrimSpace(order.CustomMessage); msg != "" {
		return msg
	}

	return fmt.Sprintf(
		"requesting order: *%s* - %s",
		order.Name,
		PriceLabel(order.Price, order.DiscountPercent),
	)
}

// Link builds the outbound wa.me deep link for an order inquiry. The
// message is query-encoded; a malformed encoding breaks the link, so
// reserved characters and multi-byte text must survive exactly.
func Link(contactNumber string, order Order) string {
	return fmt.Sprintf(
		"https://wa.me/%s?text=%s",
		NormalizeNumber(contactNumber),
		url.QueryEscape(Message(order)),
	)
}

// NormalizeNumber strips a phone number down to its digits, as wa.me
// expects ("+258 84 774 9499" -> "258847749499").
func NormalizeNumber(contactNumber string) string {
	var sb strings.Builder

	for _, r := range contactNumber {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

func round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
