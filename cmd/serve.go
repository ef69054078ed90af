package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	assetapp "github.com/muhammadheryan/mogadishu-rentals/application/asset"
	listingapp "github.com/muhammadheryan/mogadishu-rentals/application/listing"
	userapp "github.com/muhammadheryan/mogadishu-rentals/application/user"
	wishlistapp "github.com/muhammadheryan/mogadishu-rentals/application/wishlist"
	"github.com/muhammadheryan/mogadishu-rentals/cmd/config"
	redisclient "github.com/muhammadheryan/mogadishu-rentals/cmd/redis"
	listingRepo "github.com/muhammadheryan/mogadishu-rentals/repository/listing"
	photoRepo "github.com/muhammadheryan/mogadishu-rentals/repository/photo"
	redisRepo "github.com/muhammadheryan/mogadishu-rentals/repository/redis"
	txRepo "github.com/muhammadheryan/mogadishu-rentals/repository/tx"
	userRepo "github.com/muhammadheryan/mogadishu-rentals/repository/user"
	wishlistRepo "github.com/muhammadheryan/mogadishu-rentals/repository/wishlist"
	"github.com/muhammadheryan/mogadishu-rentals/thirdparty/rabbitmq"
	"github.com/muhammadheryan/mogadishu-rentals/thirdparty/storage"
	"github.com/muhammadheryan/mogadishu-rentals/transport"
	"github.com/muhammadheryan/mogadishu-rentals/utils/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newObjectStorage also returns the reader the HTTP layer serves photos
// from, which is only set for the in-process memory driver.
func newObjectStorage(cfg config.StorageConfig) (storage.ObjectStorage, transport.PhotoReader) {
	if cfg.Driver == "memory" {
		store := storage.NewMemoryStore(cfg.MemoryBaseURL)
		return store, store
	}
	return storage.NewS3Store(cfg), nil
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Error("err connect db", zap.Error(err))
		return err
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	rdb, err := redisclient.New(cfg)
	if err != nil {
		logger.Error("err connect redis", zap.Error(err))
		return err
	}
	defer func() {
		_ = rdb.Close()
	}()

	var publisher rabbitmq.Publisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = rabbitmq.NewPublisher(cfg.GetRabbitMQDSN())
		if err != nil {
			logger.Error("err connect rabbitmq", zap.Error(err))
			return err
		}
		defer func() {
			_ = publisher.Close()
		}()
	}

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	ListingRepo := listingRepo.NewListingRepository(db)
	PhotoRepo := photoRepo.NewPhotoRepository(db)
	WishlistRepo := wishlistRepo.NewWishlistRepository(db)
	TxRepo := txRepo.NewTxRepository(db)
	RedisRepo := redisRepo.NewRepository(rdb)

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	ObjectStore, PhotoReader := newObjectStorage(cfg.Storage)
	ListingApp := listingapp.NewListingApp(cfg, ListingRepo, PhotoRepo, TxRepo, RedisRepo, ObjectStore, publisher)
	WishlistApp := wishlistapp.NewWishlistApp(WishlistRepo, ListingRepo)
	AssetApp := assetapp.NewAssetApp(cfg, RedisRepo, nil)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		UserApp:     UserApp,
		ListingApp:  ListingApp,
		WishlistApp: WishlistApp,
		AssetApp:    AssetApp,
	}, transport.Options{
		InternalAPIKey: cfg.Internal.APIKey,
		MaxPhotoBytes:  cfg.Storage.MaxPhotoBytes,
		PhotoReader:    PhotoReader,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
