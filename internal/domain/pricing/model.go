package pricing

import "github.com/shopspring/decimal"

type PackageKey string

const (
	PackageBasic   PackageKey = "basic"
	PackagePremium PackageKey = "premium"
	PackageLuxury  PackageKey = "luxury"
)

type SizeKey string

const (
	SizeSmall      SizeKey = "small"
	SizeMedium     SizeKey = "medium"
	SizeLarge      SizeKey = "large"
	SizeExtraLarge SizeKey = "extraLarge"
)

type AddonKey string

const (
	AddonBalloons    AddonKey = "balloons"
	AddonFlowers     AddonKey = "flowers"
	AddonLEDLights   AddonKey = "ledLights"
	AddonPhotography AddonKey = "photography"
	AddonVideography AddonKey = "videography"
	AddonCake        AddonKey = "cake"
	AddonCatering    AddonKey = "catering"
	AddonStage       AddonKey = "stage"
	AddonEntrance    AddonKey = "entrance"
)

type DiscountKey string

const (
	DiscountFestive   DiscountKey = "festive"
	DiscountReferral  DiscountKey = "referral"
	DiscountEarlyBird DiscountKey = "earlyBird"
)

// Package: тариф оформления
type Package struct {
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Includes    []string `json:"includes"`
}

type Size struct {
	Name        string          `json:"name"`
	Multiplier  decimal.Decimal `json:"multiplier"`
	Description string          `json:"description"`
}

type Addon struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

type Travel struct {
	PerKm       decimal.Decimal `json:"perKm"`
	FreeUpTo    int64           `json:"freeUpTo"`
	Description string          `json:"description"`
}

type Tax struct {
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description"`
}

type Discount struct {
	Name        string          `json:"name"`
	Percentage  decimal.Decimal `json:"percentage"`
	Code        string          `json:"code"`
	Description string          `json:"description,omitempty"`
}

// Estimate: то, что выбрал клиент. Addons может содержать повторы,
// каждый повтор считается отдельно.
type Estimate struct {
	Package      PackageKey `json:"decorationPackage"`
	Size         SizeKey    `json:"eventSize"`
	Addons       []AddonKey `json:"addons"`
	Distance     float64    `json:"distance,omitempty"`
	DiscountCode string     `json:"discountCode,omitempty"`
}

type Line struct {
	Item  string          `json:"item"`
	Price decimal.Decimal `json:"price"`
}

// Breakdown хранит все промежуточные суммы без округления, кроме Total.
type Breakdown struct {
	BasePrice         decimal.Decimal `json:"basePrice"`
	SizeMultiplier    decimal.Decimal `json:"sizeMultiplier"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	AddonsTotal       decimal.Decimal `json:"addonsTotal"`
	TravelCharges     decimal.Decimal `json:"travelCharges"`
	SubtotalBeforeTax decimal.Decimal `json:"subtotalBeforeTax"`
	GST               decimal.Decimal `json:"gst"`
	Discount          decimal.Decimal `json:"discount"`
	Total             int64           `json:"total"`
	Lines             []Line          `json:"breakdown"`
}
