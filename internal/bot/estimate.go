package bot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/elegance-bot/internal/dialog"
	"github.com/Spok95/elegance-bot/internal/domain/pricing"
	"github.com/Spok95/elegance-bot/internal/infra/metrics"
)

var errBadDistance = errors.New("distance must be a non-negative number of km")

// Ключи payload калькулятора
const (
	keyPackage  = "package"
	keySize     = "size"
	keyAddons   = "addons"
	keyDistance = "distance"
	keyCode     = "code"
)

const (
	textPickPackage  = "🧮 *Cost estimate*\n\nChoose a decoration package:"
	textPickSize     = "How many guests are you expecting?"
	textPickAddons   = "Add extras (tap to toggle), then press Continue:"
	textAskDistance  = "How far is the venue from us, in km?\nSend a number, e.g. 25. The first %d km are free."
	textAskDiscount  = "Have a discount code? Send it now or tap the button below."
	textBadDistance  = "Please send the distance as a number of kilometres, e.g. 25 or 12.5."
	textBadDiscount  = "This code is not valid. Try another one or tap «No discount code»."
	textEstimateFail = "Sorry, could not calculate the estimate. Please start again with /estimate."
)

func (b *Bot) startEstimate(ctx context.Context, chatID int64) {
	b.clearPrevStep(ctx, chatID)
	m := tgbotapi.NewMessage(chatID, textPickPackage)
	m.ParseMode = tgbotapi.ModeMarkdown
	m.ReplyMarkup = packageKeyboard(b.pricing)
	mid := b.sendWithID(m)
	b.saveLastStep(ctx, chatID, dialog.StateEstPackage, dialog.Payload{}, mid)
}

// handleEstimateCallback: кнопки калькулятора (est:*)
func (b *Bot) handleEstimateCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, st *dialog.Item) {
	chatID := cb.Message.Chat.ID
	mid := cb.Message.MessageID
	_, action, arg := splitCallback(cb.Data)
	p := st.Payload

	switch action {
	case "start":
		_ = b.answerCallback(cb, "", false)
		b.startEstimate(ctx, chatID)

	case "pkg":
		if _, ok := b.pricing.Packages[pricing.PackageKey(arg)]; !ok {
			_ = b.answerCallback(cb, "Unknown package", true)
			return
		}
		p[keyPackage] = arg
		b.editTextWithKeyboard(chatID, mid, textPickSize, sizeKeyboard(b.pricing))
		b.saveLastStep(ctx, chatID, dialog.StateEstSize, p, mid)
		_ = b.answerCallback(cb, "", false)

	case "size":
		if _, ok := b.pricing.Sizes[pricing.SizeKey(arg)]; !ok {
			_ = b.answerCallback(cb, "Unknown size", true)
			return
		}
		p[keySize] = arg
		b.editTextWithKeyboard(chatID, mid, textPickAddons, addonsKeyboard(b.pricing, dialog.GetStrings(p, keyAddons)))
		b.saveLastStep(ctx, chatID, dialog.StateEstAddons, p, mid)
		_ = b.answerCallback(cb, "", false)

	case "addon":
		if st.State != dialog.StateEstAddons {
			_ = b.answerCallback(cb, "This step is closed", false)
			return
		}
		if _, ok := b.pricing.Addons[pricing.AddonKey(arg)]; !ok {
			_ = b.answerCallback(cb, "Unknown extra", true)
			return
		}
		selected := toggleAddon(dialog.GetStrings(p, keyAddons), arg)
		p[keyAddons] = selected
		b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, mid, addonsKeyboard(b.pricing, selected)))
		b.saveLastStep(ctx, chatID, dialog.StateEstAddons, p, mid)
		_ = b.answerCallback(cb, "", false)

	case "addons":
		b.editTextWithKeyboard(chatID, mid, fmt.Sprintf(textAskDistance, b.pricing.Travel.FreeUpTo), distanceKeyboard())
		b.saveLastStep(ctx, chatID, dialog.StateEstDistance, p, mid)
		_ = b.answerCallback(cb, "", false)

	case "dist":
		p[keyDistance] = float64(0)
		b.editTextWithKeyboard(chatID, mid, textAskDiscount, discountKeyboard())
		b.saveLastStep(ctx, chatID, dialog.StateEstDiscount, p, mid)
		_ = b.answerCallback(cb, "", false)

	case "code":
		delete(p, keyCode)
		b.editTextAndClear(chatID, mid, "No discount code.")
		_ = b.answerCallback(cb, "", false)
		b.finishEstimate(ctx, chatID, p)

	default:
		_ = b.answerCallback(cb, "", false)
	}
}

// handleEstimateText: текстовые шаги калькулятора (расстояние, промокод)
func (b *Bot) handleEstimateText(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID
	p := st.Payload

	switch st.State {
	case dialog.StateEstDistance:
		km, err := parseDistance(msg.Text)
		if err != nil {
			b.sendText(chatID, textBadDistance)
			return
		}
		p[keyDistance] = km
		b.clearPrevStep(ctx, chatID)
		m := tgbotapi.NewMessage(chatID, textAskDiscount)
		m.ReplyMarkup = discountKeyboard()
		b.saveLastStep(ctx, chatID, dialog.StateEstDiscount, p, b.sendWithID(m))

	case dialog.StateEstDiscount:
		code := normalizeCode(msg.Text)
		if _, ok := b.pricing.LookupDiscount(code); !ok {
			b.sendText(chatID, textBadDiscount)
			return
		}
		p[keyCode] = code
		b.clearPrevStep(ctx, chatID)
		b.finishEstimate(ctx, chatID, p)

	default:
		// на шагах с кнопками текст не ждём
		b.sendText(chatID, "Please use the buttons above, or /cancel to start over.")
	}
}

func (b *Bot) finishEstimate(ctx context.Context, chatID int64, p dialog.Payload) {
	e := estimateFromPayload(p)
	res, err := b.pricing.Calculate(e)
	if err != nil {
		metrics.EstimateErrorsTotal.WithLabelValues(metrics.ChannelTelegram).Inc()
		b.log.Warn("estimate failed", "chat_id", chatID, "err", err)
		b.resetState(ctx, chatID)
		b.sendText(chatID, textEstimateFail)
		return
	}
	metrics.EstimatesTotal.WithLabelValues(metrics.ChannelTelegram, string(e.Package)).Inc()

	text := b.pricing.EstimateMessage(e, res)
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	m.ReplyMarkup = estimateResultKeyboard(b.wa.URL(text))
	b.send(m)

	// смету держим в payload, чтобы «Book this event» мог приложить её к заявке
	b.setState(ctx, chatID, dialog.StateEstResult, dialog.Payload{
		keyPackage: string(e.Package),
		keySize:    string(e.Size),
		"total":    float64(res.Total),
	})
}

/*** PURE HELPERS ***/

func estimateFromPayload(p dialog.Payload) pricing.Estimate {
	pkg, _ := dialog.GetString(p, keyPackage)
	size, _ := dialog.GetString(p, keySize)
	km, _ := dialog.GetFloat(p, keyDistance)
	code, _ := dialog.GetString(p, keyCode)

	raw := dialog.GetStrings(p, keyAddons)
	addons := make([]pricing.AddonKey, 0, len(raw))
	for _, a := range raw {
		addons = append(addons, pricing.AddonKey(a))
	}
	return pricing.Estimate{
		Package:      pricing.PackageKey(pkg),
		Size:         pricing.SizeKey(size),
		Addons:       addons,
		Distance:     km,
		DiscountCode: code,
	}
}

// toggleAddon добавляет key, если его нет, иначе убирает. Порядок сохраняется.
func toggleAddon(selected []string, key string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == key {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, key)
	}
	return out
}

// parseDistance: "25", "25 km", "12,5", "12.5km"
func parseDistance(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "km"))
	s = strings.ReplaceAll(s, ",", ".")
	km, err := strconv.ParseFloat(s, 64)
	if err != nil || km < 0 || math.IsNaN(km) || math.IsInf(km, 0) {
		return 0, errBadDistance
	}
	return km, nil
}

func normalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
