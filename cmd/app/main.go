package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-trending-ads/internal/application"
	"telegram-trending-ads/internal/config"
	"telegram-trending-ads/internal/domain/ports/repository"
	"telegram-trending-ads/internal/infra/adapters/chain"
	"telegram-trending-ads/internal/infra/adapters/metadata"
	payAdapters "telegram-trending-ads/internal/infra/adapters/payment"
	tele "telegram-trending-ads/internal/infra/adapters/telegram"
	pg "telegram-trending-ads/internal/infra/db/postgres"
	httpapi "telegram-trending-ads/internal/infra/http"
	"telegram-trending-ads/internal/infra/logging"
	"telegram-trending-ads/internal/infra/memstore"
	"telegram-trending-ads/internal/infra/metrics"
	"telegram-trending-ads/internal/infra/ratelimit"
	red "telegram-trending-ads/internal/infra/redis"
	"telegram-trending-ads/internal/infra/sched"
	"telegram-trending-ads/internal/usecase"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "development mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- State. In-memory by default: a restart drops in-flight
	// submissions, the replay guard, and scheduled expirations. Configuring
	// redis/postgres hardens the replay guard and the post registry.
	subsRepo := memstore.NewSubmissionRepo()
	queue := memstore.NewPendingQueue()
	var replay repository.ReplayGuard = memstore.NewReplayGuard()
	var posts repository.PostRegistry = memstore.NewPostRegistry()
	var limiter application.SubmitLimiter = ratelimit.NewLimiter(cfg.RateLimit.SubmitMaxCalls, cfg.RateLimit.SubmitWindow)
	durablePosts := false

	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		replay = red.NewReplayGuard(redisClient)
		limiter = red.NewRateLimiter(redisClient, "rate_limit:submit", cfg.RateLimit.SubmitMaxCalls, cfg.RateLimit.SubmitWindow)
		logger.Info().Msg("redis replay guard and rate limiter enabled")
	}
	if cfg.Database.URL != "" {
		pool, err := pg.NewPgxPool(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
		posts = pg.NewPostRegistry(pool)
		replay = pg.NewReplayGuard(pool)
		durablePosts = true
		logger.Info().Msg("postgres post registry and replay guard enabled")
	}

	// ---- Telegram
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	gw := tele.NewGateway(api)

	// ---- Adapters
	lookup := chain.NewSolanaFMLookup(cfg.Chain.BaseURL, cfg.Chain.Timeout)
	meta := metadata.NewDexscreenerProvider(cfg.Metadata.BaseURL, cfg.Metadata.Timeout)
	builder := payAdapters.NewRequestBuilder(cfg.Payment.Recipient)

	// ---- Pipeline
	scheduler := sched.NewExpiryScheduler(posts, gw, cfg.Bot.ChannelID, logger)
	subUC := usecase.NewSubmissionUseCase(subsRepo, queue, logger)
	payUC := usecase.NewPaymentUseCase(replay, lookup, builder, cfg.Payment.Recipient, logger)
	pubUC := usecase.NewPublishUseCase(subsRepo, queue, posts, meta, gw, scheduler, cfg.Bot.ChannelID, cfg.Bot.Link, logger)
	facade := application.NewBotFacade(subUC, payUC, pubUC, limiter, cfg.Links)

	if durablePosts {
		if err := scheduler.Reschedule(ctx); err != nil {
			logger.Error().Err(err).Msg("rescheduling expiries failed")
		}
	}

	bot, err := tele.NewBot(api, gw, &cfg.Bot, facade, logger)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}
	go func() {
		if err := bot.StartPolling(ctx); err != nil && err != context.Canceled {
			logger.Error().Err(err).Msg("polling stopped")
		}
	}()

	// ---- Ops server
	ops := httpapi.NewServer(cfg.Admin.Port, logger)
	go func() {
		if err := ops.Start(); err != nil {
			logger.Error().Err(err).Msg("ops server error")
		}
	}()

	logger.Info().Int64("channel", cfg.Bot.ChannelID).Msg("trending-ads bot started")
	<-ctx.Done()

	logger.Info().Msg("shutdown requested")
	scheduler.Stop()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = ops.Shutdown(shutdownCtx)
}
