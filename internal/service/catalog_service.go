package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/util"
	"github.com/shopspring/decimal"
)

// ProductView 給呼叫端的商品正規化視圖，不落DB
type ProductView struct {
	ProductID      string          `json:"product_id"`
	CampaignID     string          `json:"campaign_id"`
	Name           string          `json:"name"`
	OriginalPrice  decimal.Decimal `json:"original_price"`
	CampaignPrice  decimal.Decimal `json:"campaign_price"`
	AvailableStock int64           `json:"available_stock"`
	PrimaryImage   string          `json:"primary_image"`
	EstimatedDays  int             `json:"estimated_days"`
}

type ICatalogService interface {
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	GetPurchasableProduct(ctx context.Context, productID string) (*model.Product, error)
	GetProductDetails(ctx context.Context, productID string) (*ProductView, error)
	ListCampaignProducts(ctx context.Context, campaignID string) ([]ProductView, error)
}

type CatalogService struct {
	catalogRepo db.ICatalogRepository
}

func NewCatalogService(catalogRepo db.ICatalogRepository) *CatalogService {
	if !util.HasImplementation(catalogRepo) {
		panic("CatalogService dependency catalogRepo is nil")
	}
	return &CatalogService{catalogRepo: catalogRepo}
}

// GetProduct 單純取商品，不檢查可購買性
// 錯誤:
//   - ErrProductNotFound: 商品不存在
//   - err: 其他錯誤
func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.catalogRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetPurchasableProduct 取商品並檢查可購買性
// 商品跟所屬活動都要是active才能賣
// 錯誤:
//   - ErrProductNotFound: 商品或活動不存在 (404)
//   - ErrProductNotAvailable: 商品或活動不是active (403)
//   - err: 其他錯誤
//
// 兩種錯誤對呼叫端是不同的user-facing結果，不能混為一談
func (s *CatalogService) GetPurchasableProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	campaign, err := s.catalogRepo.GetCampaignByID(ctx, product.CampaignID)
	if err != nil {
		if errors.Is(err, db.ErrCampaignNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if !product.IsActive() || !campaign.IsActive() {
		return nil, ErrProductNotAvailable
	}

	return product, nil
}

func (s *CatalogService) GetProductDetails(ctx context.Context, productID string) (*ProductView, error) {
	product, err := s.GetPurchasableProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	view := newProductView(product)
	return &view, nil
}

// ListCampaignProducts 活動商品列表，給storefront商品頁用
func (s *CatalogService) ListCampaignProducts(ctx context.Context, campaignID string) ([]ProductView, error) {
	campaign, err := s.catalogRepo.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, db.ErrCampaignNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !campaign.IsActive() {
		return nil, ErrProductNotAvailable
	}

	products, err := s.catalogRepo.GetActiveProductsByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, newProductView(&products[i]))
	}
	return views, nil
}

func newProductView(product *model.Product) ProductView {
	estimatedDays := defaultDeliveryDays
	if product.EstimatedDays != nil {
		estimatedDays = *product.EstimatedDays
	}
	return ProductView{
		ProductID:      product.ProductID,
		CampaignID:     product.CampaignID,
		Name:           product.Name,
		OriginalPrice:  product.OriginalPrice,
		CampaignPrice:  product.CampaignPrice,
		AvailableStock: product.AvailableStock(),
		PrimaryImage:   product.PrimaryImage(),
		EstimatedDays:  estimatedDays,
	}
}

var _ ICatalogService = (*CatalogService)(nil)
