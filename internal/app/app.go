package app

import (
	"fmt"

	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/config"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/logger"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Application 集中組裝所有依賴，transport層只需要拿service介面
type Application struct {
	Cf     *config.Config
	Logger zerolog.Logger

	DbConn    *gorm.DB
	DbDao     *db.DbDao
	CartCache *redis.Client

	CatalogRepo  db.ICatalogRepository
	CustomerRepo db.ICustomerRepository
	CartRepo     redis_repo.ICartRepository
	Producer     producer.ICheckoutEventProducer

	CatalogService  service.ICatalogService
	CartService     service.ICartService
	CheckoutService service.ICheckoutService
}

func NewApplication(cf *config.Config) (*Application, error) {
	app := &Application{
		Cf:     cf,
		Logger: logger.New("storefront"),
	}

	conn, err := db.GetDbConn(cf.DbName, cf.DbHost, cf.DbPort, cf.DbUser, cf.DbPas)
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}
	app.DbConn = conn
	app.DbDao = db.NewDbDao(conn)

	if err := app.DbDao.InitMigrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	app.CartCache = redis.NewClient(&redis.Options{
		Addr:     cf.RedisAddr,
		Password: cf.RedisPassword,
		DB:       cf.RedisDB,
	})

	app.CatalogRepo = db.NewProductRepo(app.DbDao)
	app.CustomerRepo = db.NewCustomerRepo(app.DbDao)
	app.CartRepo = redis_repo.NewCartRepo(app.CartCache)
	app.Producer = producer.NewCheckoutEventProducer(cf.KafkaBrokerList(), cf.CheckoutTopic)

	app.CatalogService = service.NewCatalogService(app.CatalogRepo)
	app.CartService = service.NewCartService(app.CartRepo, app.CatalogService)
	app.CheckoutService = service.NewCheckoutService(
		app.CartRepo,
		app.CatalogRepo,
		app.CustomerRepo,
		app.Producer,
		app.Logger,
	)

	return app, nil
}

func (app *Application) Close() error {
	if app.Producer != nil {
		if err := app.Producer.Close(); err != nil {
			app.Logger.Warn().Err(err).Msg("failed to close kafka producer")
		}
	}
	if app.CartCache != nil {
		if err := app.CartCache.Close(); err != nil {
			app.Logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if app.DbConn != nil {
		sqlDB, err := app.DbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
