package whatsapp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalPrice(t *testing.T) {
	assert.Equal(t, 150.00, FinalPrice(150, 0))
	assert.Equal(t, 900.00, FinalPrice(1000, 10))
	assert.Equal(t, 0.00, FinalPrice(0, 50))
	assert.Equal(t, 0.00, FinalPrice(250, 100))

	// rounded to 2 decimals
	assert.Equal(t, 33.33, FinalPrice(49.99, 33.33))
}

func TestPriceLabel(t *testing.T) {
	assert.Equal(t, "MT 150.00", PriceLabel(150, 0))
	assert.Equal(t, "MT 900.00 (10% discount)", PriceLabel(1000, 10))

	// discount annotation rounds to the nearest whole percent
	assert.Equal(t, "MT 84.60 (15% discount)", PriceLabel(100, 15.4))
}

func TestMessage(t *testing.T) {
	chair := Order{Name: "Chair", Price: 1000, DiscountPercent: 10}
	assert.Equal(
		t,
		"requesting order: *Chair* - MT 900.00 (10% discount)",
		Message(chair),
	)

	chair.CustomMessage = "I want the blue chair"
	assert.Equal(t, "I want the blue chair", Message(chair))

	// whitespace-only custom messages fall back to the synthesized one
	chair.CustomMessage = "   "
	assert.Equal(
		t,
		"requesting order: *Chair* - MT 900.00 (10% discount)",
		Message(chair),
	)
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "258847749499", NormalizeNumber("+258847749499"))
	assert.Equal(t, "258847749499", NormalizeNumber("+258 84 774 9499"))
	assert.Equal(t, "258847749499", NormalizeNumber("258847749499"))
}

func TestLink(t *testing.T) {
	link := Link(
		"+258847749499",
		Order{Name: "Chair", Price: 1000, DiscountPercent: 10},
	)

	assert.Equal(
		t,
		"https://wa.me/258847749499?text=requesting+order%3A+%2AChair%2A+-+MT+900.00+%2810%25+discount%29",
		link,
	)
}

func TestLinkEncodesReservedAndMultiByteText(t *testing.T) {
	link := Link("+258847749499", Order{
		CustomMessage: "Olá! 50% off & more: cadeira",
	})

	parsed, err := url.Parse(link)
	require.NoError(t, err)

	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/258847749499", parsed.Path)

	// the message must round-trip through query decoding byte-exact
	assert.Equal(
		t,
		"Olá! 50% off & more: cadeira",
		parsed.Query().Get("text"),
	)
}
