package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/metrics"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/money"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/util"
	"github.com/shopspring/decimal"
)

// ShippingRate 固定5%運費，是policy constant，不因商品或活動而異
var ShippingRate = decimal.NewFromFloat(0.05)

// 商品加入購物車後被下架/刪除時，View顯示用的佔位資訊
const (
	placeholderProductName  = "unavailable product"
	placeholderProductImage = ""
)

type ICartService interface {
	AddItem(ctx context.Context, sessionID string, productID string, quantity int64) (int64, error)
	RemoveItem(ctx context.Context, sessionID string, productID string) error
	View(ctx context.Context, sessionID string) (*model.CartView, error)
}

/*
購物車階段只寫redis，不會寫DB
加入購物車時的庫存檢查是advisory，不是預留
兩個session可以同時通過檢查搶最後一件，最後只有一個會在結帳時成功
*/
type CartService struct {
	cartRepo redis_repo.ICartRepository
	catalog  ICatalogService
}

func NewCartService(cartRepo redis_repo.ICartRepository, catalog ICatalogService) *CartService {
	if !util.HasImplementation(cartRepo) {
		panic("CartService dependency cartRepo is nil")
	}
	if !util.HasImplementation(catalog) {
		panic("CartService dependency catalog is nil")
	}
	return &CartService{cartRepo: cartRepo, catalog: catalog}
}

// AddItem 加商品進購物車
// quantity < 1 一律夾成1
// admission rule: 要求數量 <= max(0, 可售庫存 - 此購物車已預留數量) 才放行
// 被拒絕時購物車內容不變，錯誤帶上剩餘數量
// 成功時回傳購物車所有line item的數量總和
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID string, quantity int64) (int64, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.catalog.GetPurchasableProduct(ctx, productID)
	if err != nil {
		return 0, err
	}

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to get cart: %w", err)
	}

	reserved := cart.QuantityOf(productID)
	remaining := product.AvailableStock() - reserved
	if remaining < 0 {
		remaining = 0
	}
	if quantity > remaining {
		metrics.CartAdmissionRejectedTotal.Inc()
		return 0, &InsufficientStockError{ProductID: productID, Remaining: remaining}
	}

	if err := s.cartRepo.AddItem(ctx, sessionID, productID, quantity); err != nil {
		return 0, fmt.Errorf("failed to add item to cart: %w", err)
	}

	return cart.TotalCount() + quantity, nil
}

// RemoveItem 移除購物車商品，商品不在購物車裡是no-op
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID string) error {
	return s.cartRepo.RemoveItem(ctx, sessionID, productID)
}

// View 購物車明細
// 商品名稱/圖片/單價都是查詢當下從catalog解析，商品已被刪除時用佔位資訊，單價以0計
// subtotal, shipping, total 都經過Round3
func (s *CartService) View(ctx context.Context, sessionID string) (*model.CartView, error) {
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	view := &model.CartView{
		Items: make([]model.CartViewItem, 0, len(cart.Items)),
	}

	subtotal := decimal.Zero
	for _, item := range cart.Items {
		viewItem := model.CartViewItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}

		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		switch {
		case err == nil:
			viewItem.Name = product.Name
			viewItem.ImageURL = product.PrimaryImage()
			viewItem.UnitPrice = product.CampaignPrice
		case errors.Is(err, ErrProductNotFound):
			viewItem.Name = placeholderProductName
			viewItem.ImageURL = placeholderProductImage
			viewItem.UnitPrice = decimal.Zero
		default:
			return nil, err
		}

		viewItem.LineTotal = money.LineTotal(viewItem.UnitPrice, viewItem.Quantity)
		subtotal = subtotal.Add(viewItem.LineTotal)
		view.Items = append(view.Items, viewItem)
	}

	view.Subtotal = money.Round3(subtotal)
	view.Shipping = money.Round3(view.Subtotal.Mul(ShippingRate))
	view.Total = money.Round3(view.Subtotal.Add(view.Shipping))
	return view, nil
}

var _ ICartService = (*CartService)(nil)
