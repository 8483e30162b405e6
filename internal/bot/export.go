package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/elegance-bot/internal/domain/bookings"
)

// exportBookings выгружает все заявки в Excel и отправляет админу документом.
func (b *Bot) exportBookings(ctx context.Context, chatID int64) {
	list, err := b.bookings.List(ctx)
	if err != nil {
		b.log.Error("list bookings failed", "err", err)
		b.sendText(chatID, "Error loading bookings")
		return
	}
	if len(list) == 0 {
		b.sendText(chatID, "No bookings yet.")
		return
	}

	data, err := bookings.ExportExcel(list)
	if err != nil {
		b.log.Error("bookings export failed", "err", err)
		b.sendText(chatID, "Error building the file")
		return
	}

	fileName := fmt.Sprintf("bookings_%s.xlsx", b.today().Format("20060102_150405"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("Bookings: %d", len(list))
	b.send(doc)
}

// setBookingStatus: /confirm EE-... и /decline EE-...
func (b *Bot) setBookingStatus(ctx context.Context, chatID int64, args string, st bookings.Status) {
	ref := strings.ToUpper(strings.TrimSpace(args))
	if ref == "" {
		b.sendText(chatID, "Usage: /confirm EE-1700000000000")
		return
	}
	if err := b.bookings.SetStatus(ctx, ref, st); err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			b.sendText(chatID, "Booking "+ref+" not found")
			return
		}
		b.log.Error("set booking status failed", "ref", ref, "err", err)
		b.sendText(chatID, "Error updating the booking")
		return
	}
	b.log.Info("booking status changed", "ref", ref, "status", st)
	b.sendText(chatID, fmt.Sprintf("Booking %s: %s", ref, st))
}
