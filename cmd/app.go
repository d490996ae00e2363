package main

import (
	"context"

	"github.com/Devak1234/Fitness-Chatbot/catalog"
	"github.com/Devak1234/Fitness-Chatbot/config"
	"github.com/Devak1234/Fitness-Chatbot/routes"
	"github.com/Devak1234/Fitness-Chatbot/services"
	"github.com/Devak1234/Fitness-Chatbot/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// app holds the wired services. Optional integrations stay nil when their
// settings are missing or the client fails to start.
type app struct {
	services  routes.Services
	router    *gin.Engine
	scheduler *services.ReminderScheduler
	telegram  *services.TelegramNotifier
	closers   []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		_ = c()
	}
}

func buildApp(ctx context.Context, cfg *config.Config, db *gorm.DB) (*app, error) {
	log := utils.Logger()
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	a := &app{}

	var cache services.CatalogCache = services.NewMemoryCatalogCache()
	if cfg.RedisURL != "" {
		rc, err := services.NewRedisCatalogCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Warnw("redis unavailable, using in-memory catalog cache", "error", err)
		} else {
			cache = rc
			a.closers = append(a.closers, rc.Close)
		}
	}

	var images services.ImageUploader
	if cfg.S3Bucket != "" {
		store, err := utils.NewImageStore(ctx, cfg.S3Region, cfg.S3Bucket, cfg.CloudFrontURL)
		if err != nil {
			log.Warnw("s3 disabled", "error", err)
		} else {
			images = store
		}
	}

	var mailer services.ResetMailer
	if cfg.SESEmail != "" {
		m, err := utils.NewMailer(ctx, cfg.AWSRegion, cfg.SESEmail)
		if err != nil {
			log.Warnw("ses disabled", "error", err)
		} else {
			mailer = m
		}
	}

	var labels services.LabelDetector
	if cfg.Rekognition {
		d, err := utils.NewLabelDetector(ctx, cfg.AWSRegion)
		if err != nil {
			log.Warnw("rekognition disabled", "error", err)
		} else {
			labels = d
		}
	}

	var snsClient services.SNSAPI
	if cfg.SNSFCMArn != "" {
		c, err := services.NewSNSClient(ctx, cfg.AWSRegion)
		if err != nil {
			log.Warnw("sns disabled", "error", err)
		} else {
			snsClient = c
		}
	}
	push := services.NewPushService(db, snsClient, cfg.SNSFCMArn)
	var pushSender services.PushSender
	if snsClient != nil {
		pushSender = push
	}

	notifications := services.NewNotificationService(db)
	var tgSender services.TelegramSender
	if cfg.TelegramBotToken != "" {
		tg, err := services.NewTelegramNotifier(cfg.TelegramBotToken)
		if err != nil {
			log.Warnw("telegram disabled", "error", err)
		} else {
			tg.Linker = notifications
			a.telegram = tg
			tgSender = tg
		}
	}

	hub := services.NewRealtimeHub()
	bus := services.NewAlertBus(db, hub, pushSender, tgSender)
	favorites := services.NewFavoritesService(db, cat)

	a.services = routes.Services{
		Auth:          services.NewAuthService(db, []byte(cfg.JWTSecret), cfg.JWTTTL, mailer),
		Catalog:       services.NewCatalogService(db, cat, cache, cfg.CatalogCacheTTL),
		Food:          services.NewFoodService(cat, labels),
		Profiles:      services.NewProfileService(db, images),
		Plans:         services.NewPlanService(db, cat),
		Progress:      services.NewProgressService(db, bus),
		Checklist:     services.NewChecklistService(db),
		Chat:          services.NewChatService(db),
		Favorites:     favorites,
		Notifications: notifications,
		Push:          push,
		Alerts:        bus,
		Hub:           hub,
		Portability:   services.NewPortabilityService(db, favorites),
	}
	a.scheduler = services.NewReminderScheduler(db, bus, cfg.ReminderTick)
	a.router = routes.SetupRouter(routes.Options{
		JWTSecret:       []byte(cfg.JWTSecret),
		LoginRatePerMin: cfg.LoginRatePerMin,
		CORSOrigins:     cfg.CORSOrigins,
	}, a.services)
	return a, nil
}
