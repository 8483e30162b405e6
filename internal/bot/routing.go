package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/elegance-bot/internal/dialog"
	"github.com/Spok95/elegance-bot/internal/domain/bookings"
	"github.com/Spok95/elegance-bot/internal/domain/chat"
	"github.com/Spok95/elegance-bot/internal/domain/users"
	"github.com/Spok95/elegance-bot/internal/infra/metrics"
)

const helpText = `Commands:
/start - main menu
/prices - our packages and prices
/estimate - calculate the cost of your event
/book - send a booking request
/cancel - cancel the current step
/help - this help

Or just ask a question, e.g. "Do you do weddings?"`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	tgID := msg.From.ID
	switch msg.Command() {
	case "start":
		u, err := b.users.UpsertFromTelegram(ctx, users.Telegram{
			ID:        tgID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		}, users.RoleClient)
		if err != nil {
			b.log.Error("upsert user failed", "tg_id", tgID, "err", err)
			b.sendText(chatID, "Error: could not save your profile. Please try again.")
			return
		}
		// авто-админ
		if tgID == b.adminChat && !u.IsAdmin() {
			if err := b.users.SetRole(ctx, tgID, users.RoleAdmin); err == nil {
				u.Role = users.RoleAdmin
			}
		}
		b.resetState(ctx, chatID)

		m := tgbotapi.NewMessage(chatID, chat.Welcome)
		if u.IsAdmin() {
			m.ReplyMarkup = adminReplyKeyboard()
		} else {
			m.ReplyMarkup = clientReplyKeyboard()
		}
		b.send(m)

		q := tgbotapi.NewMessage(chatID, "Popular questions:")
		q.ReplyMarkup = quickKeyboard()
		b.send(q)
		return

	case "help":
		b.sendText(chatID, helpText)
		return

	case "prices":
		b.showPrices(chatID)
		return

	case "estimate":
		b.startEstimate(ctx, chatID)
		return

	case "book":
		st, _ := b.states.Get(ctx, chatID)
		b.startBooking(ctx, chatID, st)
		return

	case "cancel":
		b.clearPrevStep(ctx, chatID)
		b.resetState(ctx, chatID)
		b.sendText(chatID, "Cancelled.")
		return

	case "export":
		if !b.isAdmin(ctx, tgID) {
			b.sendText(chatID, "Access denied")
			return
		}
		b.exportBookings(ctx, chatID)
		return

	case "confirm", "decline":
		if !b.isAdmin(ctx, tgID) {
			b.sendText(chatID, "Access denied")
			return
		}
		st := bookings.StatusConfirmed
		if msg.Command() == "decline" {
			st = bookings.StatusCancelled
		}
		b.setBookingStatus(ctx, chatID, msg.CommandArguments(), st)
		return

	default:
		b.sendText(chatID, "Unknown command. Type /help")
		return
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	tgID := msg.From.ID

	// Нижняя панель
	switch msg.Text {
	case btnPrices:
		b.showPrices(chatID)
		return
	case btnEstimate:
		b.startEstimate(ctx, chatID)
		return
	case btnBook:
		st, _ := b.states.Get(ctx, chatID)
		b.startBooking(ctx, chatID, st)
		return
	case btnContact:
		b.showContact(chatID)
		return
	case btnExport:
		if b.isAdmin(ctx, tgID) {
			b.exportBookings(ctx, chatID)
			return
		}
	}

	if msg.Text == "" {
		b.sendText(chatID, "Sorry, I can only read text messages.")
		return
	}

	// Диалоги (текстовые вводы)
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("dialog state load failed", "chat_id", chatID, "err", err)
	}
	if st != nil {
		switch {
		case isEstimateStep(st.State):
			b.handleEstimateText(ctx, msg, st)
			return
		case isBookingStep(st.State):
			b.handleBookingText(ctx, msg, st)
			return
		}
	}

	// Всё остальное, вопрос в чат
	b.replyChat(chatID, msg.Text)
}

func (b *Bot) replyChat(chatID int64, text string) {
	rule := chat.Match(text)
	metrics.ChatRepliesTotal.WithLabelValues(metrics.ChannelTelegram, rule.Name).Inc()
	b.log.Debug("chat reply", "chat_id", chatID, "rule", rule.Name)
	b.sendText(chatID, rule.Response)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	fromChat := cb.Message.Chat.ID

	// Общая навигация
	if data == "nav:cancel" {
		b.resetState(ctx, fromChat)
		b.editTextAndClear(fromChat, cb.Message.MessageID, "Cancelled.")
		_ = b.answerCallback(cb, "Cancelled", false)
		return
	}

	st, err := b.states.Get(ctx, fromChat)
	if err != nil || st == nil {
		b.log.Error("dialog state load failed", "chat_id", fromChat, "err", err)
		_ = b.answerCallback(cb, "Please try again", false)
		return
	}

	if data == "nav:back" {
		b.handleBack(ctx, cb, st)
		return
	}

	scope, _, _ := splitCallback(data)
	switch scope {
	case "est":
		b.handleEstimateCallback(ctx, cb, st)
	case "book":
		b.handleBookingCallback(ctx, cb, st)
	case "chat":
		_, _, arg := splitCallback(data)
		i, err := strconv.Atoi(arg)
		if err != nil || i < 0 || i >= len(chat.QuickMessages) {
			_ = b.answerCallback(cb, "", false)
			return
		}
		_ = b.answerCallback(cb, "", false)
		b.sendText(fromChat, "❓ "+chat.QuickMessages[i])
		b.replyChat(fromChat, chat.QuickMessages[i])
	default:
		_ = b.answerCallback(cb, "", false)
	}
}

func (b *Bot) handleBack(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	chatID := cb.Message.Chat.ID
	mid := cb.Message.MessageID
	_ = b.answerCallback(cb, "", false)

	switch st.State {
	case dialog.StateEstSize:
		b.editTextWithKeyboard(chatID, mid, textPickPackage, packageKeyboard(b.pricing))
		b.saveLastStep(ctx, chatID, dialog.StateEstPackage, st.Payload, mid)
	case dialog.StateEstAddons:
		b.editTextWithKeyboard(chatID, mid, textPickSize, sizeKeyboard(b.pricing))
		b.saveLastStep(ctx, chatID, dialog.StateEstSize, st.Payload, mid)
	case dialog.StateEstDistance:
		b.editTextWithKeyboard(chatID, mid, textPickAddons, addonsKeyboard(b.pricing, dialog.GetStrings(st.Payload, keyAddons)))
		b.saveLastStep(ctx, chatID, dialog.StateEstAddons, st.Payload, mid)
	case dialog.StateEstDiscount:
		b.editTextWithKeyboard(chatID, mid, fmt.Sprintf(textAskDistance, b.pricing.Travel.FreeUpTo), distanceKeyboard())
		b.saveLastStep(ctx, chatID, dialog.StateEstDistance, st.Payload, mid)
	default:
		if prev, ok := bookingPrev[st.State]; ok {
			b.editTextAndClear(chatID, mid, "⬅️ Back")
			b.askBookingStep(ctx, chatID, prev, st.Payload)
			return
		}
		b.editTextAndClear(chatID, mid, "This step is closed.")
	}
}

func (b *Bot) isAdmin(ctx context.Context, tgID int64) bool {
	if b.adminChat != 0 && tgID == b.adminChat {
		return true
	}
	u, err := b.users.GetByTelegramID(ctx, tgID)
	return err == nil && u != nil && u.IsAdmin()
}

func isEstimateStep(s dialog.State) bool {
	return strings.HasPrefix(string(s), "est_") && s != dialog.StateEstResult
}

func isBookingStep(s dialog.State) bool {
	return strings.HasPrefix(string(s), "book_")
}
