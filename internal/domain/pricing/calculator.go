package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownPackage   = errors.New("pricing: unknown decoration package")
	ErrUnknownSize      = errors.New("pricing: unknown event size")
	ErrUnknownAddon     = errors.New("pricing: unknown add-on")
	ErrNegativeDistance = errors.New("pricing: distance must not be negative")
	ErrInvalidDistance  = errors.New("pricing: distance must be a finite number")
)

// maxTravelKm: дальность, которую закладываем в верхнюю границу PriceRange
const maxTravelKm = 50

var hundred = decimal.NewFromInt(100)

// Calculate считает смету по прайс-листу по умолчанию.
func Calculate(e Estimate) (Breakdown, error) { return Default().Calculate(e) }

// Calculate считает смету. Неизвестный пакет/размер/доп. услуга: ошибка
// вызывающего, подмены на значение по умолчанию нет. Неизвестный код скидки
// просто игнорируется.
func (c *Config) Calculate(e Estimate) (Breakdown, error) {
	pkg, ok := c.Packages[e.Package]
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: %q", ErrUnknownPackage, e.Package)
	}
	size, ok := c.Sizes[e.Size]
	if !ok {
		return Breakdown{}, fmt.Errorf("%w: %q", ErrUnknownSize, e.Size)
	}
	if math.IsNaN(e.Distance) || math.IsInf(e.Distance, 0) {
		return Breakdown{}, fmt.Errorf("%w: %v", ErrInvalidDistance, e.Distance)
	}
	if e.Distance < 0 {
		return Breakdown{}, fmt.Errorf("%w: %v", ErrNegativeDistance, e.Distance)
	}

	lines := make([]Line, 0, len(e.Addons)+5)

	// 1) базовый пакет
	basePrice := decimal.NewFromInt(pkg.Price)
	lines = append(lines, Line{Item: pkg.Name, Price: basePrice})

	// 2) размер мероприятия: в строку идёт только надбавка, не весь subtotal
	subtotal := basePrice.Mul(size.Multiplier)
	if size.Multiplier.GreaterThan(decimal.NewFromInt(1)) {
		lines = append(lines, Line{
			Item:  fmt.Sprintf("%s (%sx)", size.Name, size.Multiplier.String()),
			Price: subtotal.Sub(basePrice),
		})
	}

	// 3) доп. услуги в порядке выбора, повторы не схлопываем
	addonsTotal := decimal.Zero
	for _, key := range e.Addons {
		addon, ok := c.Addons[key]
		if !ok {
			return Breakdown{}, fmt.Errorf("%w: %q", ErrUnknownAddon, key)
		}
		price := decimal.NewFromInt(addon.Price)
		addonsTotal = addonsTotal.Add(price)
		lines = append(lines, Line{Item: addon.Name, Price: price})
	}

	// 4) выезд
	travel := decimal.Zero
	distance := decimal.NewFromFloat(e.Distance)
	freeUpTo := decimal.NewFromInt(c.Travel.FreeUpTo)
	if distance.GreaterThan(freeUpTo) {
		chargeable := distance.Sub(freeUpTo)
		travel = chargeable.Mul(c.Travel.PerKm)
		lines = append(lines, Line{
			Item:  fmt.Sprintf("Travel Charges (%s km)", chargeable.String()),
			Price: travel,
		})
	}

	// 5) до налога
	beforeTax := subtotal.Add(addonsTotal).Add(travel)

	// 6) GST: строка есть всегда, даже нулевая
	gst := beforeTax.Mul(c.Tax.Rate)
	lines = append(lines, Line{
		Item:  fmt.Sprintf("GST (%s%%)", c.Tax.Rate.Mul(hundred).String()),
		Price: gst,
	})

	// 7) скидка считается от суммы до налога
	discount := decimal.Zero
	if e.DiscountCode != "" {
		if d, ok := c.LookupDiscount(e.DiscountCode); ok {
			discount = beforeTax.Mul(d.Percentage)
			lines = append(lines, Line{
				Item:  fmt.Sprintf("%s (-%s%%)", d.Name, d.Percentage.Mul(hundred).String()),
				Price: discount.Neg(),
			})
		}
	}

	// 8) округляем только итог; суммы неотрицательные, так что half-away-from-zero == half-up
	total := beforeTax.Add(gst).Sub(discount).Round(0).IntPart()

	return Breakdown{
		BasePrice:         basePrice,
		SizeMultiplier:    size.Multiplier,
		Subtotal:          subtotal,
		AddonsTotal:       addonsTotal,
		TravelCharges:     travel,
		SubtotalBeforeTax: beforeTax,
		GST:               gst,
		Discount:          discount,
		Total:             total,
		Lines:             lines,
	}, nil
}

// LookupDiscount ищет скидку по коду. Сравнение точное, с учётом регистра:
// нормализовать код (upper-case, trim) должен вызывающий.
func (c *Config) LookupDiscount(code string) (Discount, bool) {
	for _, key := range c.DiscountOrder {
		if d, ok := c.Discounts[key]; ok && d.Code == code {
			return d, true
		}
	}
	// на случай конфига без DiscountOrder
	for _, d := range c.Discounts {
		if d.Code == code {
			return d, true
		}
	}
	return Discount{}, false
}

// PriceRange вилка цен для карточки пакета. Минимум: самый маленький
// размер без доп. услуг; максимум: самый большой размер, все доп. услуги,
// 50 км выезда и GST.
func (c *Config) PriceRange(key PackageKey) (minPrice, maxPrice int64, err error) {
	pkg, ok := c.Packages[key]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownPackage, key)
	}
	if len(c.Sizes) == 0 {
		return 0, 0, fmt.Errorf("%w: no sizes configured", ErrUnknownSize)
	}

	var minMul, maxMul decimal.Decimal
	first := true
	for _, s := range c.Sizes {
		if first {
			minMul, maxMul = s.Multiplier, s.Multiplier
			first = false
			continue
		}
		minMul = decimal.Min(minMul, s.Multiplier)
		maxMul = decimal.Max(maxMul, s.Multiplier)
	}

	allAddons := decimal.Zero
	for _, a := range c.Addons {
		allAddons = allAddons.Add(decimal.NewFromInt(a.Price))
	}

	base := decimal.NewFromInt(pkg.Price)
	lo := base.Mul(minMul)
	hi := base.Mul(maxMul).
		Add(allAddons).
		Add(c.Travel.PerKm.Mul(decimal.NewFromInt(maxTravelKm))).
		Mul(decimal.NewFromInt(1).Add(c.Tax.Rate))

	return lo.Round(0).IntPart(), hi.Round(0).IntPart(), nil
}
