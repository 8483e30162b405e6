package pricing

import "github.com/shopspring/decimal"

// Config: прайс-лист. После создания не меняется, поэтому его можно
// читать из любых горутин без синхронизации.
type Config struct {
	Packages  map[PackageKey]Package
	Sizes     map[SizeKey]Size
	Addons    map[AddonKey]Addon
	Travel    Travel
	Tax       Tax
	Discounts map[DiscountKey]Discount

	// контакты в тексте сметы
	Business Business

	// порядок вывода в меню и в API (map не сохраняет порядок)
	PackageOrder  []PackageKey
	SizeOrder     []SizeKey
	AddonOrder    []AddonKey
	DiscountOrder []DiscountKey
}

var defaultConfig = newDefaultConfig()

// Business: кто отправляет смету и как с ним связаться.
type Business struct {
	Name  string
	Phone string
	Email string
}

// WithBusiness возвращает копию прайс-листа с другими контактами.
// Пустые поля biz оставляют текущие значения. Таблицы не копируются:
// они общие и только для чтения.
func (c *Config) WithBusiness(biz Business) *Config {
	out := *c
	if biz.Name != "" {
		out.Business.Name = biz.Name
	}
	if biz.Phone != "" {
		out.Business.Phone = biz.Phone
	}
	if biz.Email != "" {
		out.Business.Email = biz.Email
	}
	return &out
}

// Contact: контакты с подстановкой значений Elegance Events вместо пустых.
func (c *Config) Contact() Business {
	biz := c.Business
	if biz.Name == "" {
		biz.Name = BusinessName
	}
	if biz.Phone == "" {
		biz.Phone = ContactPhone
	}
	if biz.Email == "" {
		biz.Email = ContactEmail
	}
	return biz
}

// Default возвращает прайс-лист Elegance Events.
func Default() *Config { return defaultConfig }

func newDefaultConfig() *Config {
	return &Config{
		Business: Business{Name: BusinessName, Phone: ContactPhone, Email: ContactEmail},
		Packages: map[PackageKey]Package{
			PackageBasic: {
				Name:        "Basic Package",
				Price:       3000,
				Description: "Simple balloon decoration with basic setup",
				Includes:    []string{"Balloon arch", "Basic table setup", "2 hours service"},
			},
			PackagePremium: {
				Name:        "Premium Package",
				Price:       6000,
				Description: "Enhanced decoration with flowers and lighting",
				Includes:    []string{"Balloon decoration", "Flower arrangements", "LED lights", "4 hours service"},
			},
			PackageLuxury: {
				Name:        "Luxury Package",
				Price:       12000,
				Description: "Complete premium decoration with all amenities",
				Includes:    []string{"Premium balloons", "Exotic flowers", "Professional lighting", "Stage setup", "Full day service"},
			},
		},
		Sizes: map[SizeKey]Size{
			SizeSmall:      {Name: "Small (1-50 guests)", Multiplier: decimal.RequireFromString("1.0"), Description: "Intimate gathering"},
			SizeMedium:     {Name: "Medium (51-150 guests)", Multiplier: decimal.RequireFromString("1.5"), Description: "Mid-size celebration"},
			SizeLarge:      {Name: "Large (151-300 guests)", Multiplier: decimal.RequireFromString("2.0"), Description: "Grand event"},
			SizeExtraLarge: {Name: "Extra Large (300+ guests)", Multiplier: decimal.RequireFromString("2.5"), Description: "Mega celebration"},
		},
		Addons: map[AddonKey]Addon{
			AddonBalloons:    {Name: "Extra Balloons", Price: 500, Description: "Additional balloon decorations"},
			AddonFlowers:     {Name: "Flower Arrangements", Price: 1200, Description: "Fresh flower decorations"},
			AddonLEDLights:   {Name: "LED Lighting", Price: 1500, Description: "Professional LED light setup"},
			AddonPhotography: {Name: "Photography", Price: 3000, Description: "Professional photographer (4 hours)"},
			AddonVideography: {Name: "Videography", Price: 4000, Description: "Professional videographer (4 hours)"},
			AddonCake:        {Name: "Cake Decoration", Price: 800, Description: "Cake table decoration"},
			AddonCatering:    {Name: "Catering Setup", Price: 2000, Description: "Food counter decoration"},
			AddonStage:       {Name: "Stage Setup", Price: 2500, Description: "Professional stage decoration"},
			AddonEntrance:    {Name: "Entrance Decoration", Price: 1800, Description: "Grand entrance setup"},
		},
		Travel: Travel{
			PerKm:       decimal.NewFromInt(15),
			FreeUpTo:    10,
			Description: "Travel charges beyond 10 km",
		},
		Tax: Tax{
			Rate:        decimal.RequireFromString("0.18"),
			Description: "Goods and Services Tax",
		},
		Discounts: map[DiscountKey]Discount{
			DiscountFestive:   {Name: "Festive Season Discount", Percentage: decimal.RequireFromString("0.10"), Code: "FESTIVE10"},
			DiscountReferral:  {Name: "Referral Discount", Percentage: decimal.RequireFromString("0.15"), Code: "REFER15"},
			DiscountEarlyBird: {Name: "Early Bird Discount", Percentage: decimal.RequireFromString("0.05"), Code: "EARLY5", Description: "Book 30 days in advance"},
		},
		PackageOrder: []PackageKey{PackageBasic, PackagePremium, PackageLuxury},
		SizeOrder:    []SizeKey{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge},
		AddonOrder: []AddonKey{
			AddonBalloons, AddonFlowers, AddonLEDLights, AddonPhotography, AddonVideography,
			AddonCake, AddonCatering, AddonStage, AddonEntrance,
		},
		DiscountOrder: []DiscountKey{DiscountFestive, DiscountReferral, DiscountEarlyBird},
	}
}
