package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrCampaignNotFound 活動不存在
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrProductStockNotEnough 商品庫存不足，conditional update guard 沒過
	ErrProductStockNotEnough = errors.New("product stock not enough")
)

/*
Postgres 是庫存的唯一真相來源
所有庫存異動都走單一條件式UPDATE，guard寫在WHERE裡
不管多少個結帳並發，counter不會變負數，sold也不會超過target
*/
type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateCampaign(ctx context.Context, campaign *model.Campaign) error {
	return s.db.WithContext(ctx).Create(campaign).Error
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// Read - 根據ID查詢商品，帶圖片(依position排序)
// 錯誤:
//   - ErrProductNotFound: 商品不存在
//   - err: 其他錯誤
func (s *ProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Read - 根據ID查詢活動
// 錯誤:
//   - ErrCampaignNotFound: 活動不存在
//   - err: 其他錯誤
func (s *ProductRepo) GetCampaignByID(ctx context.Context, campaignID string) (*model.Campaign, error) {
	var campaign model.Campaign
	err := s.db.WithContext(ctx).First(&campaign, "campaign_id = ?", campaignID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

// Read - 查詢活動下仍為active的商品
func (s *ProductRepo) GetActiveProductsByCampaign(ctx context.Context, campaignID string) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("campaign_id = ? AND status = ?", campaignID, model.ProductStatusActive).
		Find(&products).Error
	return products, err
}

// Update - 扣庫存，結帳的commit point
// 依庫存形式執行條件式更新:
//   - counter form: stock_quantity 扣減，WHERE stock_quantity >= quantity
//   - target/sold form: sold_quantity 累加，WHERE 累加後 <= target_quantity
//
// guard沒過(RowsAffected == 0)代表當下庫存不足，回傳 ErrProductStockNotEnough
// 呼叫端可重讀一次後重試，不會有部分套用
func (s *ProductRepo) DeductStock(ctx context.Context, productID string, quantity int64) error {
	if quantity <= 0 {
		return fmt.Errorf("deduct quantity must be positive, got %d", quantity)
	}

	// 先讀一次決定庫存形式
	product, err := s.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}

	var result *gorm.DB
	switch product.Inventory().(type) {
	case model.CounterStock:
		result = s.db.WithContext(ctx).Model(&model.Product{}).
			Where("product_id = ? AND stock_quantity >= ?", productID, quantity).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	case model.TargetSoldStock:
		result = s.db.WithContext(ctx).Model(&model.Product{}).
			Where("product_id = ? AND COALESCE(sold_quantity, 0) + ? <= target_quantity", productID, quantity).
			Update("sold_quantity", gorm.Expr("COALESCE(sold_quantity, 0) + ?", quantity))
	}

	if result.Error != nil {
		return fmt.Errorf("failed to deduct stock for product %s: %w", productID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductStockNotEnough
	}
	return nil
}

var _ ICatalogRepository = (*ProductRepo)(nil)
