package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Spok95/elegance-bot/internal/bot"
	"github.com/Spok95/elegance-bot/internal/config"
	"github.com/Spok95/elegance-bot/internal/dialog"
	"github.com/Spok95/elegance-bot/internal/domain/bookings"
	"github.com/Spok95/elegance-bot/internal/domain/pricing"
	"github.com/Spok95/elegance-bot/internal/domain/users"
	"github.com/Spok95/elegance-bot/internal/infra/db"
	httpx "github.com/Spok95/elegance-bot/internal/infra/http"
	"github.com/Spok95/elegance-bot/internal/infra/logger"
	"github.com/Spok95/elegance-bot/internal/infra/whatsapp"
)

func runMigrations(dsn, dir string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, dir)
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Warn("unknown timezone, using UTC", "tz", cfg.App.Timezone, "err", err)
		loc = time.UTC
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prices := pricing.Default().WithBusiness(pricing.Business{
		Name:  cfg.Business.Name,
		Phone: cfg.Business.Phone,
		Email: cfg.Business.Email,
	})
	wa := whatsapp.NewService(cfg.Business.WhatsAppPhone)
	deps := httpx.Deps{
		Log:      log,
		Pricing:  prices,
		WhatsApp: wa,
		Location: loc,
	}

	// без базы работают калькулятор, чат и ссылки WhatsApp; заявки и бот, нет
	var (
		usersRepo    *users.Repo
		statesRepo   *dialog.Repo
		bookingsRepo *bookings.Repo
	)
	if cfg.Postgres.DSN != "" {
		if err := runMigrations(cfg.Postgres.DSN, cfg.Postgres.Migrations); err != nil {
			log.Error("migrations failed", "err", err)
			return
		}
		log.Info("migrations applied")

		pool, err := db.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("db connect failed", "err", err)
			return
		}
		defer pool.Close()
		log.Info("db connected")

		usersRepo = users.NewRepo(pool)
		statesRepo = dialog.NewRepo(pool)
		bookingsRepo = bookings.NewRepo(pool)
		deps.Bookings = bookingsRepo
	} else {
		log.Warn("postgres dsn is empty, bookings are disabled")
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, deps)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	if cfg.Telegram.Token != "" && bookingsRepo != nil {
		api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			log.Error("telegram init failed", "err", err)
		} else {
			log.Info("telegram bot authorized", "username", api.Self.UserName)
			b := bot.New(api, log, usersRepo, statesRepo, bookingsRepo, prices, wa, cfg.Telegram.AdminChatID, loc)
			go func() {
				if err := b.Run(ctx, 60); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("bot stopped", "err", err)
				}
			}()
		}
	} else {
		log.Info("telegram bot disabled")
	}

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
