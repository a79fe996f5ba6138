package main

import (
	"context"
	"log"
	"net/http"

	"advisor-api/config"
	"advisor-api/internal/handler"
	"advisor-api/internal/provider"
	advisorredis "advisor-api/internal/redis"
	"advisor-api/internal/repository"
	"advisor-api/internal/server"
	"advisor-api/internal/services"
	"advisor-api/pkg/database"
	"advisor-api/pkg/events"
	"advisor-api/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.IsProduction() {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	defer l.Sync()
	logger.SetGlobalLogger(l)

	tokens, err := services.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL())
	if err != nil {
		log.Fatalf("Failed to configure session tokens: %v", err)
	}

	ctx := context.Background()

	users, closeStore, err := openUserStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open user store: %v", err)
	}
	defer closeStore()

	if err := users.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare user store: %v", err)
	}
	l.Infof("User store ready (driver=%s)", cfg.StoreDriver)

	authService := services.NewAuthService(users, services.NewBcryptHasher(), tokens, cfg.StoreTimeout)

	checks := map[string]handler.Pinger{"store": authService}

	var cache services.AnswerCache
	if cfg.RedisAddr != "" {
		client := advisorredis.NewClient(advisorredis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		answerCache := advisorredis.NewAnswerCache(client, cfg.RecommendTTL)
		cache = answerCache
		checks["redis"] = answerCache
		broker := events.NewRedisBroker(client, l)
		authService.WithEvents(broker, l)

		auditCtx, stopAudit := context.WithCancel(ctx)
		defer stopAudit()
		if err := broker.Subscribe(auditCtx, events.AuthChannel, events.AuditHandler(l)); err != nil {
			l.Errorf("Auth event audit log disabled: %v", err)
		}
		l.Infof("Recommendation cache and auth events enabled at %s", cfg.RedisAddr)
	}

	if cfg.CohereAPIKey == "" {
		l.Warnf("COHERE_API_KEY is empty, recommendation calls will be rejected upstream")
	}
	cohere := provider.NewCohereClient(provider.CohereConfig{
		APIKey:     cfg.CohereAPIKey,
		Model:      cfg.CohereModel,
		ChatURL:    cfg.CohereChatURL,
		HTTPClient: &http.Client{Timeout: cfg.ProviderTimeout},
	})
	recommendationService := services.NewRecommendationService(cohere, cache, cfg.ProviderTimeout, l)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:           handler.NewAuthHandler(authService, handler.NewCookiePolicy(cfg.IsProduction())),
		Recommendation: handler.NewRecommendationHandler(recommendationService),
		Health:         handler.NewHealthHandler(checks),
	}, authService)

	if err := srv.Start(); err != nil {
		l.Logger.Fatal("Server stopped", zap.Error(err))
	}
}

// openUserStore connects the backend selected by STORE_DRIVER. The returned
// func releases its connections.
func openUserStore(ctx context.Context, cfg *config.Config) (repository.UserRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewUserRepository(pool), pool.Close, nil
	case config.StoreMemory:
		return repository.NewMemoryUserRepository(), func() {}, nil
	default:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMongoUserRepository(client, cfg.MongoDatabase), func() {
			_ = client.Disconnect(context.Background())
		}, nil
	}
}
