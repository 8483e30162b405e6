package bot

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/elegance-bot/internal/domain/bookings"
	"github.com/Spok95/elegance-bot/internal/domain/chat"
	"github.com/Spok95/elegance-bot/internal/domain/pricing"
)

// Кнопки нижней панели
const (
	btnPrices   = "💰 Prices"
	btnEstimate = "🧮 Cost estimate"
	btnBook     = "📅 Book an event"
	btnContact  = "📞 Contact us"
	btnExport   = "📊 Export bookings"
)

func navKeyboard(back bool, cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if back {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", "nav:back"))
	}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func clientReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnEstimate), tgbotapi.NewKeyboardButton(btnBook)},
			{tgbotapi.NewKeyboardButton(btnPrices), tgbotapi.NewKeyboardButton(btnContact)},
		},
	}
}

// adminReplyKeyboard Нижняя панель (ReplyKeyboard) для админа
func adminReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := clientReplyKeyboard()
	kb.Keyboard = append(kb.Keyboard, []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(btnExport)})
	return kb
}

// quickKeyboard: готовые вопросы под приветствием
func quickKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(chat.QuickMessages))
	for i, q := range chat.QuickMessages {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(q, "chat:q:"+strconv.Itoa(i)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

/*** ESTIMATE ***/

func packageKeyboard(cfg *pricing.Config) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cfg.PackageOrder)+1)
	for _, k := range cfg.PackageOrder {
		p := cfg.Packages[k]
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(p.Name+" · "+pricing.FormatRupees(p.Price), "est:pkg:"+string(k)),
		))
	}
	rows = append(rows, navKeyboard(false, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func sizeKeyboard(cfg *pricing.Config) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cfg.SizeOrder)+1)
	for _, k := range cfg.SizeOrder {
		s := cfg.Sizes[k]
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.Name+" · "+s.Multiplier.String()+"x", "est:size:"+string(k)),
		))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// addonsKeyboard тумблеры, выбранные помечены ✅
func addonsKeyboard(cfg *pricing.Config, selected []string) tgbotapi.InlineKeyboardMarkup {
	on := make(map[string]bool, len(selected))
	for _, s := range selected {
		on[s] = true
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cfg.AddonOrder)+2)
	for _, k := range cfg.AddonOrder {
		a := cfg.Addons[k]
		mark := "▫️ "
		if on[string(k)] {
			mark = "✅ "
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(mark+a.Name+" +"+pricing.FormatRupees(a.Price), "est:addon:"+string(k)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("➡️ Continue", "est:addons:done")),
		navKeyboard(true, true).InlineKeyboard[0],
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func distanceKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📍 Within city (no travel charge)", "est:dist:skip")),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func discountKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("No discount code", "est:code:skip")),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func estimateResultKeyboard(waURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("💬 Send on WhatsApp", waURL)),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Book this event", "book:start"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 New estimate", "est:start"),
		),
	)
}

/*** BOOKING ***/

func eventTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(bookings.EventTypes)/2+2)
	var row []tgbotapi.InlineKeyboardButton
	for i, t := range bookings.EventTypes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(t, "book:type:"+strconv.Itoa(i)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func slotKeyboard(free []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(free)+1)
	for _, s := range free {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(bookings.FormatTimeSlot(s), "book:slot:"+s),
		))
	}
	rows = append(rows, navKeyboard(true, true).InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func bookingConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📨 Submit booking", "book:confirm"),
		),
		navKeyboard(true, true).InlineKeyboard[0],
	)
}

func whatsappKeyboard(label, waURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(label, waURL)),
	)
}
