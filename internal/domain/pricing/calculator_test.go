package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

type lineView struct {
	Item  string
	Price string
}

func viewLines(lines []Line) []lineView {
	out := make([]lineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, lineView{Item: l.Item, Price: l.Price.String()})
	}
	return out
}

func TestCalculate_BasicSmallNoExtras(t *testing.T) {
	b, err := Calculate(Estimate{Package: PackageBasic, Size: SizeSmall})
	require.NoError(t, err)

	assertAmount(t, "3000", b.BasePrice, "basePrice")
	assertAmount(t, "1", b.SizeMultiplier, "sizeMultiplier")
	assertAmount(t, "3000", b.Subtotal, "subtotal")
	assertAmount(t, "0", b.AddonsTotal, "addonsTotal")
	assertAmount(t, "0", b.TravelCharges, "travelCharges")
	assertAmount(t, "3000", b.SubtotalBeforeTax, "subtotalBeforeTax")
	assertAmount(t, "540", b.GST, "gst")
	assertAmount(t, "0", b.Discount, "discount")
	assert.Equal(t, int64(3540), b.Total)

	assert.Equal(t, []lineView{
		{Item: "Basic Package", Price: "3000"},
		{Item: "GST (18%)", Price: "540"},
	}, viewLines(b.Lines))
}

func TestCalculate_PremiumMediumWithEverything(t *testing.T) {
	b, err := Calculate(Estimate{
		Package:      PackagePremium,
		Size:         SizeMedium,
		Addons:       []AddonKey{AddonPhotography},
		Distance:     20,
		DiscountCode: "FESTIVE10",
	})
	require.NoError(t, err)

	assertAmount(t, "6000", b.BasePrice, "basePrice")
	assertAmount(t, "1.5", b.SizeMultiplier, "sizeMultiplier")
	assertAmount(t, "9000", b.Subtotal, "subtotal")
	assertAmount(t, "3000", b.AddonsTotal, "addonsTotal")
	assertAmount(t, "150", b.TravelCharges, "travelCharges")
	assertAmount(t, "12150", b.SubtotalBeforeTax, "subtotalBeforeTax")
	assertAmount(t, "2187", b.GST, "gst")
	assertAmount(t, "1215", b.Discount, "discount")
	assert.Equal(t, int64(13122), b.Total)

	assert.Equal(t, []lineView{
		{Item: "Premium Package", Price: "6000"},
		{Item: "Medium (51-150 guests) (1.5x)", Price: "3000"},
		{Item: "Photography", Price: "3000"},
		{Item: "Travel Charges (10 km)", Price: "150"},
		{Item: "GST (18%)", Price: "2187"},
		{Item: "Festive Season Discount (-10%)", Price: "-1215"},
	}, viewLines(b.Lines))
}

func TestCalculate_Invariants(t *testing.T) {
	cfg := Default()
	for _, pk := range cfg.PackageOrder {
		for _, sk := range cfg.SizeOrder {
			b, err := cfg.Calculate(Estimate{
				Package:      pk,
				Size:         sk,
				Addons:       []AddonKey{AddonCake, AddonStage},
				Distance:     37.5,
				DiscountCode: "REFER15",
			})
			require.NoError(t, err)

			assert.True(t, b.Subtotal.Equal(b.BasePrice.Mul(b.SizeMultiplier)), "%s/%s subtotal", pk, sk)
			assert.True(t, b.SubtotalBeforeTax.Equal(b.Subtotal.Add(b.AddonsTotal).Add(b.TravelCharges)), "%s/%s before tax", pk, sk)
			want := b.SubtotalBeforeTax.Add(b.GST).Sub(b.Discount).Round(0).IntPart()
			assert.Equal(t, want, b.Total, "%s/%s total", pk, sk)
		}
	}
}

func TestCalculate_NoDistanceNoDiscountFormula(t *testing.T) {
	cfg := Default()
	addonSets := [][]AddonKey{
		nil,
		{AddonBalloons},
		{AddonFlowers, AddonLEDLights},
		cfg.AddonOrder,
	}
	taxFactor := decimal.NewFromInt(1).Add(cfg.Tax.Rate)

	for _, pk := range cfg.PackageOrder {
		for _, sk := range cfg.SizeOrder {
			for _, addons := range addonSets {
				b, err := cfg.Calculate(Estimate{Package: pk, Size: sk, Addons: addons})
				require.NoError(t, err)

				sum := decimal.Zero
				for _, a := range addons {
					sum = sum.Add(decimal.NewFromInt(cfg.Addons[a].Price))
				}
				base := decimal.NewFromInt(cfg.Packages[pk].Price).Mul(cfg.Sizes[sk].Multiplier)
				want := base.Add(sum).Mul(taxFactor).Round(0).IntPart()
				assert.Equal(t, want, b.Total, "%s/%s/%v", pk, sk, addons)
			}
		}
	}
}

func TestCalculate_SizeLineOnlyAboveOne(t *testing.T) {
	small, err := Calculate(Estimate{Package: PackageLuxury, Size: SizeSmall})
	require.NoError(t, err)
	assert.Len(t, small.Lines, 2)

	large, err := Calculate(Estimate{Package: PackageLuxury, Size: SizeLarge})
	require.NoError(t, err)
	require.Len(t, large.Lines, 3)
	assert.Equal(t, "Large (151-300 guests) (2x)", large.Lines[1].Item)
	assertAmount(t, "12000", large.Lines[1].Price, "size line")
}

func TestCalculate_DistanceBoundary(t *testing.T) {
	cfg := Default()
	free := float64(cfg.Travel.FreeUpTo)

	atLimit, err := cfg.Calculate(Estimate{Package: PackageBasic, Size: SizeSmall, Distance: free})
	require.NoError(t, err)
	assert.True(t, atLimit.TravelCharges.IsZero())
	for _, l := range atLimit.Lines {
		assert.NotContains(t, l.Item, "Travel")
	}

	oneOver, err := cfg.Calculate(Estimate{Package: PackageBasic, Size: SizeSmall, Distance: free + 1})
	require.NoError(t, err)
	assert.True(t, oneOver.TravelCharges.Equal(cfg.Travel.PerKm))
	assert.Equal(t, "Travel Charges (1 km)", oneOver.Lines[1].Item)
}

func TestCalculate_DiscountCodes(t *testing.T) {
	cases := []struct {
		name     string
		code     string
		discount string
		lines    int
	}{
		{name: "festive", code: "FESTIVE10", discount: "300", lines: 3},
		{name: "referral", code: "REFER15", discount: "450", lines: 3},
		{name: "early bird", code: "EARLY5", discount: "150", lines: 3},
		{name: "lower case is not normalized", code: "festive10", discount: "0", lines: 2},
		{name: "unknown", code: "NOPE", discount: "0", lines: 2},
		{name: "empty", code: "", discount: "0", lines: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := Calculate(Estimate{Package: PackageBasic, Size: SizeSmall, DiscountCode: tc.code})
			require.NoError(t, err)
			assertAmount(t, tc.discount, b.Discount, "discount")
			assert.Len(t, b.Lines, tc.lines)

			negatives := 0
			for _, l := range b.Lines {
				if l.Price.IsNegative() {
					negatives++
				}
			}
			if tc.discount == "0" {
				assert.Zero(t, negatives)
			} else {
				assert.Equal(t, 1, negatives)
			}
		})
	}
}

func TestCalculate_DuplicateAddonsCountedTwice(t *testing.T) {
	b, err := Calculate(Estimate{
		Package: PackageBasic,
		Size:    SizeSmall,
		Addons:  []AddonKey{AddonBalloons, AddonFlowers, AddonBalloons},
	})
	require.NoError(t, err)

	assertAmount(t, "2200", b.AddonsTotal, "addonsTotal")
	items := viewLines(b.Lines)
	assert.Equal(t, "Extra Balloons", items[1].Item)
	assert.Equal(t, "Flower Arrangements", items[2].Item)
	assert.Equal(t, "Extra Balloons", items[3].Item)
}

func TestCalculate_RoundsOnlyTotal(t *testing.T) {
	// 12.3 км сверх лимита → 184.5 за выезд, GST с копейками
	b, err := Calculate(Estimate{Package: PackageBasic, Size: SizeSmall, Distance: 22.3})
	require.NoError(t, err)

	assertAmount(t, "184.5", b.TravelCharges, "travel")
	assertAmount(t, "3184.5", b.SubtotalBeforeTax, "before tax")
	assertAmount(t, "573.21", b.GST, "gst")
	assert.Equal(t, int64(3758), b.Total) // 3757.71
}

func TestCalculate_Idempotent(t *testing.T) {
	e := Estimate{
		Package:      PackageLuxury,
		Size:         SizeExtraLarge,
		Addons:       []AddonKey{AddonVideography, AddonEntrance},
		Distance:     45,
		DiscountCode: "EARLY5",
	}
	first, err := Calculate(e)
	require.NoError(t, err)
	second, err := Calculate(e)
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, viewLines(first.Lines), viewLines(second.Lines))
	assert.True(t, first.GST.Equal(second.GST))
	assert.True(t, first.Discount.Equal(second.Discount))
}

func TestCalculate_PreconditionErrors(t *testing.T) {
	_, err := Calculate(Estimate{Package: "gold", Size: SizeSmall})
	assert.ErrorIs(t, err, ErrUnknownPackage)

	_, err = Calculate(Estimate{Package: PackageBasic, Size: "huge"})
	assert.ErrorIs(t, err, ErrUnknownSize)

	_, err = Calculate(Estimate{Package: PackageBasic, Size: SizeSmall, Addons: []AddonKey{"fireworks"}})
	assert.ErrorIs(t, err, ErrUnknownAddon)
	assert.Contains(t, err.Error(), "fireworks")

	_, err = Calculate(Estimate{Package: PackageBasic, Size: SizeSmall, Distance: -1})
	assert.ErrorIs(t, err, ErrNegativeDistance)

	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.NotPanics(t, func() {
			_, err = Calculate(Estimate{Package: PackageBasic, Size: SizeSmall, Distance: d})
		})
		assert.ErrorIs(t, err, ErrInvalidDistance, d)
	}
}

func TestConfig_CustomTables(t *testing.T) {
	cfg := &Config{
		Packages: map[PackageKey]Package{"mini": {Name: "Mini", Price: 1000}},
		Sizes:    map[SizeKey]Size{"tiny": {Name: "Tiny", Multiplier: decimal.RequireFromString("1.25")}},
		Addons:   map[AddonKey]Addon{},
		Travel:   Travel{PerKm: decimal.NewFromInt(10), FreeUpTo: 0},
		Tax:      Tax{Rate: decimal.Zero},
		Discounts: map[DiscountKey]Discount{
			"staff": {Name: "Staff", Percentage: decimal.RequireFromString("0.5"), Code: "STAFF"},
		},
	}

	b, err := cfg.Calculate(Estimate{Package: "mini", Size: "tiny", Distance: 5, DiscountCode: "STAFF"})
	require.NoError(t, err)

	// 1250 + 50 = 1300, налог 0 (строка всё равно есть), скидка 650
	assert.Equal(t, int64(650), b.Total)
	assert.Equal(t, []lineView{
		{Item: "Mini", Price: "1000"},
		{Item: "Tiny (1.25x)", Price: "250"},
		{Item: "Travel Charges (5 km)", Price: "50"},
		{Item: "GST (0%)", Price: "0"},
		{Item: "Staff (-50%)", Price: "-650"},
	}, viewLines(b.Lines))
}

func TestPriceRange(t *testing.T) {
	cfg := Default()

	lo, hi, err := cfg.PriceRange(PackageBasic)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), lo)
	// (3000*2.5 + 17300 + 50*15) * 1.18
	assert.Equal(t, int64(30149), hi)

	_, _, err = cfg.PriceRange("platinum")
	assert.ErrorIs(t, err, ErrUnknownPackage)
}

func TestDefault_TablesAreConsistent(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.Packages, len(cfg.PackageOrder))
	assert.Len(t, cfg.Sizes, len(cfg.SizeOrder))
	assert.Len(t, cfg.Addons, len(cfg.AddonOrder))
	assert.Len(t, cfg.Discounts, len(cfg.DiscountOrder))

	codes := map[string]bool{}
	for _, d := range cfg.Discounts {
		assert.False(t, codes[d.Code], "duplicate code %s", d.Code)
		codes[d.Code] = true
	}
	for _, s := range cfg.Sizes {
		assert.True(t, s.Multiplier.GreaterThanOrEqual(decimal.NewFromInt(1)), s.Name)
	}
}
