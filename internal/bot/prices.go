package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/elegance-bot/internal/domain/pricing"
	"github.com/Spok95/elegance-bot/internal/infra/whatsapp"
)

// прайс для /prices: пакеты с вилкой цен, размеры, доп. услуги, выезд и налог
func pricesText(cfg *pricing.Config) string {
	var sb strings.Builder
	sb.WriteString("💰 *Our prices*\n\n")

	sb.WriteString("*Decoration packages*\n")
	for _, k := range cfg.PackageOrder {
		p := cfg.Packages[k]
		fmt.Fprintf(&sb, "• %s: from %s", p.Name, pricing.FormatRupees(p.Price))
		if lo, hi, err := cfg.PriceRange(k); err == nil {
			fmt.Fprintf(&sb, " (typical %s - %s)", pricing.FormatRupees(lo), pricing.FormatRupees(hi))
		}
		sb.WriteString("\n")
		if len(p.Includes) > 0 {
			fmt.Fprintf(&sb, "   %s\n", strings.Join(p.Includes, ", "))
		}
	}

	sb.WriteString("\n*Event size*\n")
	for _, k := range cfg.SizeOrder {
		s := cfg.Sizes[k]
		fmt.Fprintf(&sb, "• %s: %sx\n", s.Name, s.Multiplier.String())
	}

	sb.WriteString("\n*Extras*\n")
	for _, k := range cfg.AddonOrder {
		a := cfg.Addons[k]
		fmt.Fprintf(&sb, "• %s: %s\n", a.Name, pricing.FormatRupees(a.Price))
	}

	fmt.Fprintf(&sb, "\n🚗 Travel: free up to %d km, then %s/km\n",
		cfg.Travel.FreeUpTo, pricing.FormatCurrency(cfg.Travel.PerKm))
	fmt.Fprintf(&sb, "🧾 GST: %s%%\n\n", cfg.Tax.Rate.Shift(2).String())
	sb.WriteString("Tap «" + btnEstimate + "» to calculate your event.")
	return sb.String()
}

func (b *Bot) showPrices(chatID int64) {
	m := tgbotapi.NewMessage(chatID, pricesText(b.pricing))
	m.ParseMode = tgbotapi.ModeMarkdown
	b.send(m)
}

func contactText(cfg *pricing.Config) string {
	biz := cfg.Contact()
	return fmt.Sprintf("📞 *%s*\n\nPhone: %s\nEmail: %s\n\nWe reply fastest on WhatsApp.",
		biz.Name, biz.Phone, biz.Email)
}

func (b *Bot) showContact(chatID int64) {
	m := tgbotapi.NewMessage(chatID, contactText(b.pricing))
	m.ParseMode = tgbotapi.ModeMarkdown
	m.ReplyMarkup = whatsappKeyboard("💬 Chat on WhatsApp", b.wa.URL(whatsapp.GreetingText(b.pricing.Contact().Name)))
	b.send(m)
}
