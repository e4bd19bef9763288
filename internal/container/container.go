package container

import (
	"estatery-api-io/api/internal/auth"
	"estatery-api-io/api/internal/cache"
	"estatery-api-io/api/internal/config"
	"estatery-api-io/api/internal/mailer"
	"estatery-api-io/api/pkg/controllers"
	"estatery-api-io/api/pkg/services"
	"estatery-api-io/api/pkg/util"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	emailWorkers   = 3
	emailQueueSize = 100
)

type ServiceContainer struct {
	Config *config.Config
	Redis  *redis.Client

	Tokens    *auth.TokenManager
	Blacklist auth.TokenBlacklist
	Mailer    *mailer.WorkerPool

	AuthController    *controllers.AuthController
	UserController    *controllers.UserController
	ListingController *controllers.ListingController
	UploadController  *controllers.UploadController
}

// NewServiceContainer wires stores, services and controllers.
func NewServiceContainer(cfg *config.Config, client *mongo.Client, redisClient *redis.Client) (*ServiceContainer, error) {
	db := client.Database(cfg.DatabaseName)

	uploader, err := util.NewMediaUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
	if err != nil {
		return nil, err
	}
	mediaService := services.NewMediaService(services.NewCloudinaryStorage(uploader))

	var listingCache services.ListingCache
	if cfg.ListingCacheTTL > 0 {
		listingCache = cache.NewListingCache(redisClient, cfg.ListingCacheTTL)
	}
	listingService := services.NewListingService(services.NewMongoListingStore(db), listingCache, mediaService)

	var welcomeMailer services.WelcomeMailer
	var pool *mailer.WorkerPool
	if cfg.MailEnabled() {
		pool = mailer.NewWorkerPool(emailWorkers, emailQueueSize, mailer.NewSender(cfg).Deliver)
		welcomeMailer = pool
	} else {
		util.LogInfo("SMTP_HOST not set, welcome emails are disabled")
	}

	userService := services.NewUserService(services.UserServiceDeps{
		Users:      services.NewMongoUserStore(db),
		Listings:   listingService,
		Media:      mediaService,
		Google:     auth.NewGoogleIDTokenVerifier(cfg.GoogleClientID),
		Mailer:     welcomeMailer,
		Transactor: services.NewMongoTransactor(client),
	})

	tokens := auth.NewTokenManager(cfg.Secret, cfg.TokenTTL)
	blacklist := auth.NewRedisBlacklist(redisClient)

	return &ServiceContainer{
		Config:    cfg,
		Redis:     redisClient,
		Tokens:    tokens,
		Blacklist: blacklist,
		Mailer:    pool,

		AuthController:    controllers.InitAuthController(userService, tokens, blacklist, cfg.CookieSecure),
		UserController:    controllers.InitUserController(userService, listingService, blacklist, cfg.CookieSecure),
		ListingController: controllers.InitListingController(listingService),
		UploadController:  controllers.InitUploadController(mediaService),
	}, nil
}
