package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.Campaign{},
		&model.Product{},
		&model.ProductImage{},
		&model.Customer{},
	)
}

// ICatalogRepository Catalog 相關操作介面
// 除庫存欄位外對此核心而言都是唯讀
type ICatalogRepository interface {
	CreateCampaign(ctx context.Context, campaign *model.Campaign) error
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID string) (*model.Product, error)
	GetCampaignByID(ctx context.Context, campaignID string) (*model.Campaign, error)
	GetActiveProductsByCampaign(ctx context.Context, campaignID string) ([]model.Product, error)
	DeductStock(ctx context.Context, productID string, quantity int64) error
}

// ICustomerRepository Customer ledger 相關操作介面
type ICustomerRepository interface {
	UpsertPurchase(ctx context.Context, customer *model.Customer) error
	GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error)
}
