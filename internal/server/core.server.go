package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cropfresh/cropfresh-service-notification/internal/channel"
	"github.com/cropfresh/cropfresh-service-notification/internal/config"
	"github.com/cropfresh/cropfresh-service-notification/internal/dispatcher"
	hrest "github.com/cropfresh/cropfresh-service-notification/internal/handler/http"
	wshandler "github.com/cropfresh/cropfresh-service-notification/internal/handler/ws"
	"github.com/cropfresh/cropfresh-service-notification/internal/janitor"
	"github.com/cropfresh/cropfresh-service-notification/internal/provider"
	"github.com/cropfresh/cropfresh-service-notification/internal/repository"
	"github.com/cropfresh/cropfresh-service-notification/internal/router"
	"github.com/cropfresh/cropfresh-service-notification/internal/usecase"
	"github.com/cropfresh/cropfresh-service-notification/pkg/cache"
	"github.com/cropfresh/cropfresh-service-notification/pkg/quota"
	"github.com/cropfresh/cropfresh-service-notification/pkg/ws"
)

func NewServer(cfg config.AppConfig) *http.Server {
	loc := cfg.Location()

	// --- DB connection ---
	dbpool, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// --- Repositories ---
	notifRepo := repository.NewNotificationRepository(dbpool)
	prefRepo := repository.NewPreferenceRepository(dbpool)
	deviceRepo := repository.NewDeviceRepository(dbpool)
	smsLogRepo := repository.NewSmsLogRepository(dbpool)

	// --- Redis (quota reservations) ---
	redisCache := cache.NewCache([]string{cfg.RedisAddr}, cfg.RedisPass, false)
	smsQuota := quota.NewRedisReserver(redisCache, cfg.SmsDailyQuota, loc)

	// --- Providers ---
	var smsProvider provider.SMSProvider
	if cfg.SmsBaseURL != "" {
		smsProvider = provider.NewHTTPSMSProvider(cfg.SmsBaseURL, cfg.SmsAPIKey, cfg.SmsUserID, cfg.SmsPassword, cfg.SmsSenderID)
	} else {
		log.Println("[SERVER] SMS_BASE_URL not set, using mock SMS provider")
		smsProvider = provider.LogSMSProvider{}
	}

	var pushProvider provider.PushProvider
	if cfg.PushBaseURL != "" {
		pushProvider = provider.NewHTTPPushProvider(cfg.PushBaseURL, cfg.PushServerKey)
	} else {
		log.Println("[SERVER] PUSH_BASE_URL not set, using mock push provider")
		pushProvider = provider.LogPushProvider{}
	}

	// --- WS manager and handler ---
	wsManager := ws.NewManager()
	go wsManager.Heartbeat(30 * time.Second)
	wsHandler := wshandler.NewWSHandler(wsManager)

	// --- Usecases & channels ---
	prefUC := usecase.NewPreferenceUsecase(prefRepo, loc)
	smsChannel := channel.NewSMSChannel(smsProvider, smsLogRepo, smsQuota, channel.SMSConfig{
		DailyQuota: cfg.SmsDailyQuota,
		MaxRetries: cfg.SmsMaxRetries,
		Location:   loc,
	})
	pushChannel := channel.NewPushChannel(pushProvider, deviceRepo, prefUC)

	routerUC := usecase.NewRouterUsecase(prefUC, smsChannel, pushChannel, notifRepo, wsManager)
	deviceUC := usecase.NewDeviceUsecase(deviceRepo)
	notifUC := usecase.NewNotificationUsecase(notifRepo, smsLogRepo)

	eventDispatcher, err := dispatcher.New(routerUC, notifRepo, cfg.IdempotencyCacheSize)
	if err != nil {
		log.Fatalf("failed to init dispatcher: %v", err)
	}

	// --- Retention ---
	jan := janitor.New(deviceUC, notifUC, loc)
	if err := jan.Start(); err != nil {
		log.Fatalf("failed to start janitor: %v", err)
	}

	// --- Handlers & routes ---
	restHandler := hrest.NewNotificationHandler(notifUC, prefUC, deviceUC, routerUC, eventDispatcher)

	r := chi.NewRouter()
	router.SetupRoutes(r, restHandler, wsHandler)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}
}
