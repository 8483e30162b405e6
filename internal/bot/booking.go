package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/elegance-bot/internal/dialog"
	"github.com/Spok95/elegance-bot/internal/domain/bookings"
	"github.com/Spok95/elegance-bot/internal/domain/pricing"
	"github.com/Spok95/elegance-bot/internal/infra/metrics"
)

var errBadGuests = errors.New("guest count must be a positive whole number")

// Ключи payload заявки
const (
	keyName      = "name"
	keyPhone     = "phone"
	keyEmail     = "email"
	keyEventType = "event_type"
	keyEventDate = "event_date" // YYYY-MM-DD
	keySlot      = "slot"
	keyGuests    = "guests"
	keyLocation  = "location"
	keyBudget    = "budget"
)

// шаг назад в анкете
var bookingPrev = map[dialog.State]dialog.State{
	dialog.StateBookPhone:    dialog.StateBookName,
	dialog.StateBookEmail:    dialog.StateBookPhone,
	dialog.StateBookType:     dialog.StateBookEmail,
	dialog.StateBookDate:     dialog.StateBookType,
	dialog.StateBookSlot:     dialog.StateBookDate,
	dialog.StateBookGuests:   dialog.StateBookSlot,
	dialog.StateBookLocation: dialog.StateBookGuests,
	dialog.StateBookConfirm:  dialog.StateBookLocation,
}

var bookingPrompts = map[dialog.State]string{
	dialog.StateBookName:     "📅 Let's book your event!\n\nWhat is your full name?",
	dialog.StateBookPhone:    "Your phone number (with country code, e.g. +91 98765 43210):",
	dialog.StateBookEmail:    "Your email address:",
	dialog.StateBookType:     "What kind of event is it? Pick one or type your own:",
	dialog.StateBookDate:     "Event date? Send it as DD.MM.YYYY, e.g. 05.12.2026.",
	dialog.StateBookGuests:   "How many guests are you expecting?",
	dialog.StateBookLocation: "Where will the event take place (venue or city)?",
}

// startBooking. Если перед этим считали смету, кладём её в бюджет заявки.
func (b *Bot) startBooking(ctx context.Context, chatID int64, prev *dialog.Item) {
	b.clearPrevStep(ctx, chatID)
	p := dialog.Payload{}
	if prev != nil && prev.State == dialog.StateEstResult {
		if budget := budgetFromEstimate(b.pricing, prev.Payload); budget != "" {
			p[keyBudget] = budget
		}
	}
	b.askBookingStep(ctx, chatID, dialog.StateBookName, p)
}

func (b *Bot) askBookingStep(ctx context.Context, chatID int64, st dialog.State, p dialog.Payload) {
	switch st {
	case dialog.StateBookType:
		m := tgbotapi.NewMessage(chatID, bookingPrompts[st])
		m.ReplyMarkup = eventTypeKeyboard()
		b.saveLastStep(ctx, chatID, st, p, b.sendWithID(m))

	case dialog.StateBookSlot:
		b.askSlot(ctx, chatID, p)

	case dialog.StateBookConfirm:
		bk := bookingFromPayload(p, b.loc)
		m := tgbotapi.NewMessage(chatID, "Please check your booking:\n\n"+bookingSummary(bk))
		m.ReplyMarkup = bookingConfirmKeyboard()
		b.saveLastStep(ctx, chatID, st, p, b.sendWithID(m))

	default:
		m := tgbotapi.NewMessage(chatID, bookingPrompts[st])
		m.ReplyMarkup = navKeyboard(st != dialog.StateBookName, true)
		b.saveLastStep(ctx, chatID, st, p, b.sendWithID(m))
	}
}

func (b *Bot) askSlot(ctx context.Context, chatID int64, p dialog.Payload) {
	bk := bookingFromPayload(p, b.loc)
	taken, err := b.bookings.TakenSlots(ctx, bk.EventDate)
	if err != nil {
		b.log.Error("availability check failed", "chat_id", chatID, "err", err)
		b.sendText(chatID, "Could not check availability right now. Please try again later.")
		return
	}
	free := bookings.Availability(taken)
	if len(free) == 0 {
		b.sendText(chatID, fmt.Sprintf("Sorry, %s is fully booked. Please send another date.", bk.EventDate.Format("02.01.2006")))
		b.askBookingStep(ctx, chatID, dialog.StateBookDate, p)
		return
	}
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf("Available time slots on %s:", bk.EventDate.Format("02.01.2006")))
	m.ReplyMarkup = slotKeyboard(free)
	b.saveLastStep(ctx, chatID, dialog.StateBookSlot, p, b.sendWithID(m))
}

// handleBookingText: текстовые ответы анкеты. Каждое поле проверяется
// теми же правилами, что и заявка с сайта.
func (b *Bot) handleBookingText(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)
	p := st.Payload

	var (
		field string
		next  dialog.State
	)
	switch st.State {
	case dialog.StateBookName:
		p[keyName], field, next = text, "name", dialog.StateBookPhone
	case dialog.StateBookPhone:
		p[keyPhone], field, next = text, "phone", dialog.StateBookEmail
	case dialog.StateBookEmail:
		p[keyEmail], field, next = text, "email", dialog.StateBookType
	case dialog.StateBookType:
		// свой вариант вместо кнопки
		p[keyEventType], field, next = text, "eventType", dialog.StateBookDate
	case dialog.StateBookDate:
		d, err := bookings.ParseDate(text, b.loc)
		if err != nil {
			b.sendText(chatID, "Please send the date as DD.MM.YYYY, e.g. 05.12.2026.")
			return
		}
		p[keyEventDate], field, next = d.Format(time.DateOnly), "eventDate", dialog.StateBookSlot
	case dialog.StateBookGuests:
		n, err := parseGuests(text)
		if err != nil {
			b.sendText(chatID, "Please send the number of guests, e.g. 120.")
			return
		}
		p[keyGuests], field, next = float64(n), "guestCount", dialog.StateBookLocation
	case dialog.StateBookLocation:
		p[keyLocation], field, next = text, "location", dialog.StateBookConfirm
	default:
		b.sendText(chatID, "Please use the buttons above, or /cancel to start over.")
		return
	}

	if problem := fieldError(bookingFromPayload(p, b.loc), b.today(), field); problem != "" {
		b.sendText(chatID, problem+". Please try again.")
		return
	}
	b.clearPrevStep(ctx, chatID)
	b.askBookingStep(ctx, chatID, next, p)
}

// handleBookingCallback: кнопки анкеты (book:*)
func (b *Bot) handleBookingCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	chatID := cb.Message.Chat.ID
	mid := cb.Message.MessageID
	_, action, arg := splitCallback(cb.Data)
	p := st.Payload

	switch action {
	case "start":
		_ = b.answerCallback(cb, "", false)
		b.startBooking(ctx, chatID, st)

	case "type":
		i, err := strconv.Atoi(arg)
		if err != nil || i < 0 || i >= len(bookings.EventTypes) || st.State != dialog.StateBookType {
			_ = b.answerCallback(cb, "This step is closed", false)
			return
		}
		p[keyEventType] = bookings.EventTypes[i]
		b.editTextAndClear(chatID, mid, "Event type: "+bookings.EventTypes[i])
		_ = b.answerCallback(cb, "", false)
		b.askBookingStep(ctx, chatID, dialog.StateBookDate, p)

	case "slot":
		if st.State != dialog.StateBookSlot {
			_ = b.answerCallback(cb, "This step is closed", false)
			return
		}
		if problem := fieldError(bookings.Booking{TimeSlot: arg}, b.today(), "timeSlot"); problem != "" {
			_ = b.answerCallback(cb, problem, true)
			return
		}
		p[keySlot] = arg
		b.editTextAndClear(chatID, mid, "Time: "+bookings.FormatTimeSlot(arg))
		_ = b.answerCallback(cb, "", false)
		b.askBookingStep(ctx, chatID, dialog.StateBookGuests, p)

	case "confirm":
		if st.State != dialog.StateBookConfirm {
			_ = b.answerCallback(cb, "This step is closed", false)
			return
		}
		_ = b.answerCallback(cb, "", false)
		b.submitBooking(ctx, cb, p)

	default:
		_ = b.answerCallback(cb, "", false)
	}
}

func (b *Bot) submitBooking(ctx context.Context, cb *tgbotapi.CallbackQuery, p dialog.Payload) {
	chatID := cb.Message.Chat.ID
	mid := cb.Message.MessageID
	now := b.today()

	bk := bookingFromPayload(p, b.loc)
	if errs := bookings.Validate(bk, now); len(errs) > 0 {
		b.editTextAndClear(chatID, mid, "Some details are missing or invalid:\n"+errs.Error()+"\n\nPlease start again with /book.")
		b.resetState(ctx, chatID)
		return
	}

	// слот могли занять, пока клиент заполнял анкету
	taken, err := b.bookings.TakenSlots(ctx, bk.EventDate)
	if err != nil {
		b.log.Error("availability check failed", "chat_id", chatID, "err", err)
		b.sendText(chatID, "Could not submit the booking right now. Please try again.")
		return
	}
	if bk.TimeSlot != "" && !containsSlot(bookings.Availability(taken), bk.TimeSlot) {
		b.editTextAndClear(chatID, mid, "Sorry, this time slot was just booked by someone else.")
		b.askSlot(ctx, chatID, p)
		return
	}

	if u, err := b.users.GetByTelegramID(ctx, cb.From.ID); err == nil && u != nil {
		bk.UserID = &u.ID
	}
	bk.Reference = bookings.NewReference(now)
	bk.Source = bookings.SourceTelegram
	if err := b.bookings.Create(ctx, &bk); err != nil {
		if errors.Is(err, bookings.ErrSlotTaken) {
			b.editTextAndClear(chatID, mid, "Sorry, this time slot was just booked by someone else.")
			b.askSlot(ctx, chatID, p)
			return
		}
		b.log.Error("create booking failed", "chat_id", chatID, "err", err)
		b.sendText(chatID, "Could not submit the booking right now. Please try again.")
		return
	}
	metrics.BookingsTotal.WithLabelValues(string(bk.Source)).Inc()
	b.log.Info("booking created", "ref", bk.Reference, "chat_id", chatID, "event_type", bk.EventType)
	b.resetState(ctx, chatID)

	if err := b.users.SetPhone(ctx, cb.From.ID, bk.Phone); err != nil {
		b.log.Warn("save phone failed", "tg_id", cb.From.ID, "err", err)
	}

	b.editTextAndClear(chatID, mid, fmt.Sprintf(
		"✅ Booking request submitted!\nReference: %s\n\nOur team will contact you within 24 hours.", bk.Reference))

	m := tgbotapi.NewMessage(chatID, "Want a faster reply? Send the details to us on WhatsApp:")
	m.ReplyMarkup = whatsappKeyboard("💬 Send on WhatsApp", b.wa.URL(bookings.Message(bk)))
	b.send(m)

	b.notifyAdmins(ctx, "🔔 New booking from Telegram\n\n"+bookingSummary(bk)+
		"\n\n/confirm "+bk.Reference+"\n/decline "+bk.Reference)
}

// notifyAdmins шлёт текст в админский чат и всем пользователям с ролью admin
func (b *Bot) notifyAdmins(ctx context.Context, text string) {
	sent := map[int64]bool{}
	if b.adminChat != 0 {
		b.sendText(b.adminChat, text)
		sent[b.adminChat] = true
	}
	admins, err := b.users.ListAdmins(ctx)
	if err != nil {
		b.log.Warn("list admins failed", "err", err)
		return
	}
	for _, a := range admins {
		if sent[a.TelegramID] {
			continue
		}
		b.sendText(a.TelegramID, text)
		sent[a.TelegramID] = true
	}
}

/*** PURE HELPERS ***/

func bookingFromPayload(p dialog.Payload, loc *time.Location) bookings.Booking {
	str := func(k string) string {
		s, _ := dialog.GetString(p, k)
		return s
	}
	bk := bookings.Booking{
		Name:      str(keyName),
		Phone:     str(keyPhone),
		Email:     str(keyEmail),
		EventType: str(keyEventType),
		TimeSlot:  str(keySlot),
		Location:  str(keyLocation),
		Budget:    str(keyBudget),
		Source:    bookings.SourceTelegram,
	}
	if n, ok := dialog.GetInt(p, keyGuests); ok {
		bk.GuestCount = n
	}
	if d, err := bookings.ParseDate(str(keyEventDate), loc); err == nil {
		bk.EventDate = d
	}
	return bk
}

// fieldError: сообщение валидатора для одного поля (пусто, если поле в порядке)
func fieldError(bk bookings.Booking, now time.Time, field string) string {
	return bookings.Validate(bk, now)[field]
}

func parseGuests(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, errBadGuests
	}
	return n, nil
}

// budgetFromEstimate: "₹13,122 (Premium Package estimate)"
func budgetFromEstimate(cfg *pricing.Config, p dialog.Payload) string {
	total, ok := dialog.GetInt(p, "total")
	if !ok || total <= 0 {
		return ""
	}
	pkg, _ := dialog.GetString(p, keyPackage)
	name := cfg.Packages[pricing.PackageKey(pkg)].Name
	if name == "" {
		return pricing.FormatRupees(int64(total))
	}
	return fmt.Sprintf("%s (%s estimate)", pricing.FormatRupees(int64(total)), name)
}

// bookingSummary заявка простым текстом, без разметки (в полях пользовательский ввод)
func bookingSummary(bk bookings.Booking) string {
	var sb strings.Builder
	if bk.Reference != "" {
		fmt.Fprintf(&sb, "Reference: %s\n", bk.Reference)
	}
	fmt.Fprintf(&sb, "Name: %s\n", bk.Name)
	fmt.Fprintf(&sb, "Phone: %s\n", bk.Phone)
	fmt.Fprintf(&sb, "Email: %s\n", bk.Email)
	fmt.Fprintf(&sb, "Event: %s\n", bk.EventType)
	if !bk.EventDate.IsZero() {
		fmt.Fprintf(&sb, "Date: %s\n", bk.EventDate.Format("02.01.2006"))
	}
	if bk.TimeSlot != "" {
		fmt.Fprintf(&sb, "Time: %s\n", bookings.FormatTimeSlot(bk.TimeSlot))
	}
	fmt.Fprintf(&sb, "Guests: %d\n", bk.GuestCount)
	fmt.Fprintf(&sb, "Location: %s", bk.Location)
	if bk.Budget != "" {
		fmt.Fprintf(&sb, "\nBudget: %s", bk.Budget)
	}
	return sb.String()
}

func containsSlot(free []string, slot string) bool {
	for _, s := range free {
		if s == slot {
			return true
		}
	}
	return false
}
