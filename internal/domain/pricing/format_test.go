package pricing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"0":          "₹0",
		"540":        "₹540",
		"3540":       "₹3,540",
		"100000":     "₹1,00,000",
		"1234567":    "₹12,34,567",
		"123456789":  "₹12,34,56,789",
		"1215.5":     "₹1,215.5",
		"2187.0004":  "₹2,187",
		"573.21":     "₹573.21",
		"-1215":      "-₹1,215",
		"-100000.25": "-₹1,00,000.25",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCurrency(decimal.RequireFromString(in)), in)
	}
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹13,122", FormatRupees(13122))
	assert.Equal(t, FormatRupees(42), FormatRupees(42))
}

func TestGenerateEstimateMessage(t *testing.T) {
	e := Estimate{
		Package:      PackagePremium,
		Size:         SizeMedium,
		Addons:       []AddonKey{AddonPhotography},
		Distance:     20,
		DiscountCode: "FESTIVE10",
	}
	b, err := Calculate(e)
	require.NoError(t, err)

	msg := GenerateEstimateMessage(e, b)

	assert.True(t, strings.HasPrefix(msg, "🎉 *Cost Estimate - Elegance Events*\n\n"))
	assert.Contains(t, msg, "📦 *Package:* Premium Package\n")
	assert.Contains(t, msg, "👥 *Event Size:* Medium (51-150 guests)\n")
	assert.Contains(t, msg, "Premium Package: ₹6,000\n")
	assert.Contains(t, msg, "Travel Charges (10 km): ₹150\n")
	assert.Contains(t, msg, "GST (18%): ₹2,187\n")
	assert.Contains(t, msg, "Festive Season Discount (-10%): -₹1,215\n")
	assert.Contains(t, msg, "*Total: ₹13,122*\n")
	assert.Contains(t, msg, ContactPhone)
	assert.Contains(t, msg, ContactEmail)
	assert.Equal(t, 2, strings.Count(msg, messageRule))
}

func TestEstimateMessage_ConfiguredBusiness(t *testing.T) {
	cfg := Default().WithBusiness(Business{Name: "Elegance Events Pune", Phone: "+91 9000000000"})
	e := Estimate{Package: PackageBasic, Size: SizeSmall}
	b, err := cfg.Calculate(e)
	require.NoError(t, err)

	msg := cfg.EstimateMessage(e, b)
	assert.True(t, strings.HasPrefix(msg, "🎉 *Cost Estimate - Elegance Events Pune*\n\n"))
	assert.Contains(t, msg, "📞 *Contact:* +91 9000000000\n")
	assert.Contains(t, msg, "📧 *Email:* "+ContactEmail+"\n")
	assert.NotContains(t, msg, ContactPhone)

	// прайс-лист по умолчанию не меняется
	assert.Equal(t, BusinessName, Default().Business.Name)
	assert.Equal(t, Business{Name: BusinessName, Phone: ContactPhone, Email: ContactEmail}, (&Config{}).Contact())
}

func TestEstimateMessage_UnknownKeysFallBackToKeys(t *testing.T) {
	msg := Default().EstimateMessage(Estimate{Package: "gold", Size: "huge"}, Breakdown{Total: 10})
	assert.Contains(t, msg, "*Package:* gold")
	assert.Contains(t, msg, "*Event Size:* huge")
	assert.Contains(t, msg, "*Total: ₹10*")
}
