package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ombhayde/tensorg-payment-system/configs"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/auth"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/cache"
	httpadapter "github.com/ombhayde/tensorg-payment-system/internal/adapter/http"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/http/middleware"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/notify"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/payment"
	"github.com/ombhayde/tensorg-payment-system/internal/adapter/repo"
	"github.com/ombhayde/tensorg-payment-system/internal/catalog"
	"github.com/ombhayde/tensorg-payment-system/internal/logging"
	"github.com/ombhayde/tensorg-payment-system/internal/session"
	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type App struct {
	Router *gin.Engine
}

const oauthStateTTL = 10 * time.Minute

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logging.Init("storefront", "./logs/app.log")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// init database
	mcli, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, err
	}
	if err := mcli.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}
	db := mcli.Database(cfg.Mongo.Database)

	logging.FromCtx(ctx).Info("storefront: Starting up...")

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	// external collaborators
	google, err := auth.NewGoogle(ctx, auth.GoogleConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
	})
	if err != nil {
		return nil, nil, err
	}
	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	notifier := notify.NewEmailNotifier(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password,
		cfg.SMTP.From, cfg.Admin.OperatorEmail,
	)

	// infra
	orderRepo := repo.NewMongoOrderRepo(db)
	userRepo := repo.NewMongoUserRepo(db)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	states := cache.NewRedisStateStore(rdb, oauthStateTTL)
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL)
	products := catalog.Default()

	// use cases
	createUC := usecase.NewCreateCheckout(gateway, products, usecase.CheckoutURLs{
		Currency:   cfg.Stripe.Currency,
		SuccessURL: cfg.App.ClientURL + "/success",
		CancelURL:  cfg.App.ClientURL + "/cancel",
	})
	recordUC := usecase.NewRecordOrder(orderRepo, idem, notifier)
	listUC := usecase.NewListOrders(orderRepo)
	loginUC := usecase.NewResolveLogin(userRepo, cfg.Admin.OperatorEmail)

	// handlers + router + middleware
	sess := middleware.NewSession(sessions, cfg.Session.CookieName)
	ah := httpadapter.NewAuthHandler(google, states, loginUC, sessions, httpadapter.AuthConfig{
		CookieName: cfg.Session.CookieName,
		ClientURL:  cfg.App.ClientURL,
	})
	ph := httpadapter.NewProductHandler(products)
	ch := httpadapter.NewCheckoutHandler(createUC)
	wh := httpadapter.NewWebhookHandler(gateway, recordUC)
	oh := httpadapter.NewOrderHandler(listUC)
	router := httpadapter.NewRouter(ah, ph, ch, wh, oh, sess)

	cleanup := func() {
		_ = mcli.Disconnect(context.Background())
		_ = rdb.Close()
	}

	return &App{Router: router}, cleanup, nil
}
