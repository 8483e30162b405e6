package pricing

import (
	"fmt"
	"strings"
)

// Контакты по умолчанию
const (
	BusinessName = "Elegance Events"
	ContactPhone = "+91 7016686728"
	ContactEmail = "hello@eleganceevents.com"
)

const messageRule = "━━━━━━━━━━━━━━━━━━━━"

// GenerateEstimateMessage: текст сметы для отправки в WhatsApp.
func GenerateEstimateMessage(e Estimate, b Breakdown) string {
	return Default().EstimateMessage(e, b)
}

// EstimateMessage собирает многострочную сводку. Переводы строк настоящие,
// URL-кодирование: забота того, кто строит ссылку.
func (c *Config) EstimateMessage(e Estimate, b Breakdown) string {
	pkgName := c.Packages[e.Package].Name
	if pkgName == "" {
		pkgName = string(e.Package)
	}
	sizeName := c.Sizes[e.Size].Name
	if sizeName == "" {
		sizeName = string(e.Size)
	}

	biz := c.Contact()

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎉 *Cost Estimate - %s*\n\n", biz.Name)
	fmt.Fprintf(&sb, "📦 *Package:* %s\n", pkgName)
	fmt.Fprintf(&sb, "👥 *Event Size:* %s\n\n", sizeName)

	sb.WriteString("💰 *Price Breakdown:*\n")
	sb.WriteString(messageRule + "\n")
	for _, l := range b.Lines {
		fmt.Fprintf(&sb, "%s: %s\n", l.Item, FormatCurrency(l.Price))
	}
	sb.WriteString(messageRule + "\n")
	fmt.Fprintf(&sb, "*Total: %s*\n\n", FormatRupees(b.Total))

	fmt.Fprintf(&sb, "📞 *Contact:* %s\n", biz.Phone)
	fmt.Fprintf(&sb, "📧 *Email:* %s\n\n", biz.Email)
	sb.WriteString("✨ _This is an estimated cost. Final price may vary based on specific requirements._")

	return sb.String()
}
