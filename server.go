package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/subosito/gotenv"

	"staybook/handler"
	"staybook/pgp"
	"staybook/store"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func newEnforcer() (*casbin.Enforcer, error) {
	authEnforcer, err := casbin.NewEnforcer("./auth_model.conf", "./policy.csv")
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := authEnforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return authEnforcer, nil
}

func newServer(h *handler.Handler, enforcer *casbin.Enforcer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: `{"time":"${time_rfc3339}","method":"${method}","uri":"${uri}","status":${status},"latency":"${latency_human}"}` + "\n",
	}))

	// Saniztize
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            3600,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// CORS default
	// Allows requests from any origin wth GET, HEAD, PUT, POST or DELETE method.
	e.Use(middleware.CORS())

	// Authenticate
	e.Use(echojwt.WithConfig(getJwtMVConfig(h.JWTSecret)))

	// Authorize
	e.Use(AuthorizationMW{Enforcer: enforcer}.Authorize)

	e.Validator = &CustomValidator{validator: validator.New()}

	// Routes
	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)
	e.GET("/account/me", h.Me)

	e.GET("/categories", h.FetchCategories)

	e.GET("/listings", h.FetchListings)
	e.POST("/listings", h.CreateListing)
	e.GET("/listings/:id", h.FetchListing)
	e.DELETE("/listings/:id", h.DeleteListing)
	e.GET("/listings/:id/availability", h.ListingAvailability)
	e.GET("/listings/:id/quote", h.ListingQuote)

	e.POST("/reservations", h.CreateReservation)
	e.GET("/reservations", h.FetchReservations)
	e.DELETE("/reservations/:id", h.DeleteReservation)

	e.GET("/trips", h.FetchTrips)
	e.GET("/trips/hosting", h.FetchHostedTrips)

	e.GET("/favorites", h.FetchFavorites)
	e.POST("/favorites/:id", h.AddFavorite)
	e.DELETE("/favorites/:id", h.RemoveFavorite)

	e.GET("/search", h.Search)
	e.GET("/search/summary", h.SearchSummary)

	e.POST("/files/multi", h.CreateFiles)
	e.DELETE("/files/:id", h.DeleteFile)
	e.GET("/files/:id/download", h.DownloadFile)

	return e
}

func newSigner(cfg Config) (*pgp.Signer, error) {
	if cfg.PGPPrivateKey != "" {
		return pgp.NewSigner(cfg.PGPPrivateKey, []byte(cfg.PGPPassphrase))
	}

	// Receipts signed with a throwaway key can only be checked while this
	// process runs
	log.Warn("PGP_PRIVATE_KEY not set, generating an ephemeral receipt key")
	passphrase := cfg.PGPPassphrase
	if passphrase == "" {
		passphrase = uuid.NewString()
	}
	pair, err := pgp.GenerateKeyPair("staybook", "receipts@"+cfg.Domain, passphrase)
	if err != nil {
		return nil, err
	}
	return pgp.NewSigner(pair.PrivateKey, []byte(passphrase))
}

func main() {
	gotenv.Load()

	checkConfig()
	cfg := loadConfig()
	log.SetLevel(cfg.LogLevel)

	ctx := context.Background()

	// Database connection and migration
	db, err := store.Open(cfg.DB)
	if err != nil {
		log.Fatal(err)
	}
	if err := store.Migrate(db); err != nil {
		log.Fatal(err)
	}

	sx, err := store.Sqlx(db)
	if err != nil {
		log.Fatal(err)
	}

	var locker store.Locker = store.NewMemoryLocker()
	if cfg.Redis.Addr != "" {
		redisLocker, err := store.NewRedisLocker(ctx, cfg.Redis)
		if err != nil {
			log.Fatal(err)
		}
		defer redisLocker.Close()
		locker = redisLocker
	} else {
		log.Warn("REDIS_ADDR not set, booking locks are local to this process")
	}

	var files handler.FileStorage
	if cfg.AWSBucket != "" {
		s3Storage, err := store.NewS3Storage(ctx, cfg.AWSRegion, cfg.AWSBucket)
		if err != nil {
			log.Fatal(err)
		}
		files = s3Storage
	} else {
		log.Warn("AWS_BUCKET_NAME not set, image uploads are disabled")
	}

	signer, err := newSigner(cfg)
	if err != nil {
		log.Fatal(err)
	}

	enforcer, err := newEnforcer()
	if err != nil {
		log.Fatal(err)
	}

	// Initialize handler
	h := &handler.Handler{
		DB:        db,
		Trips:     store.NewTripStore(sx),
		Locker:    locker,
		Files:     files,
		Signer:    signer,
		JWTSecret: []byte(cfg.JWTSecret),
		Domain:    cfg.Domain,
		LockTTL:   cfg.LockTTL,
	}

	e := newServer(h, enforcer)
	e.Logger.SetLevel(cfg.LogLevel)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
