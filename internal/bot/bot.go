package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/elegance-bot/internal/dialog"
	"github.com/Spok95/elegance-bot/internal/domain/bookings"
	"github.com/Spok95/elegance-bot/internal/domain/pricing"
	"github.com/Spok95/elegance-bot/internal/domain/users"
	"github.com/Spok95/elegance-bot/internal/infra/whatsapp"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	users     *users.Repo
	states    *dialog.Repo
	bookings  *bookings.Repo
	pricing   *pricing.Config
	wa        *whatsapp.Service
	adminChat int64
	loc       *time.Location
	now       func() time.Time
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	usersRepo *users.Repo, statesRepo *dialog.Repo, bookingsRepo *bookings.Repo,
	pricingCfg *pricing.Config, wa *whatsapp.Service,
	adminChatID int64, loc *time.Location) *Bot {

	if loc == nil {
		loc = time.UTC
	}
	return &Bot{
		api: api, log: log, users: usersRepo, states: statesRepo,
		bookings: bookingsRepo, pricing: pricingCfg, wa: wa,
		adminChat: adminChatID, loc: loc, now: time.Now,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg.From == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery.Message == nil {
		return
	}
	b.handleCallback(ctx, upd.CallbackQuery)
}

func (b *Bot) today() time.Time {
	return b.now().In(b.loc)
}
