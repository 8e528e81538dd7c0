package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/metrics"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/money"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// 商品沒有填預計到貨天數時的預設值
const defaultDeliveryDays = 5

type ICheckoutService interface {
	Checkout(ctx context.Context, sessionID string, info model.CustomerInfo) (*model.CheckoutResult, error)
}

/*
結帳流程是本核心唯一會同時動到多個document的地方，而且沒有跨document交易:
 1. 驗證聯絡資訊與購物車 (純讀取，失敗無副作用)
 2. 逐line重新讀商品+活動，重跑可購買性與庫存檢查 (全部讀完才開始寫)
 3. 計算金額與到貨天數
 4. 產生payment id (模擬金流，必定成功)
 5. 逐line條件式扣庫存 (每筆獨立commit，後面失敗不會rollback前面)
 6. upsert客戶ledger
 7. 清購物車
 8. 發送checkout completed事件 (best effort)

步驟5之後的失敗會留下部分狀態，只記log並回傳錯誤，呼叫端重試整個結帳
會重新驗證當下庫存，不會重複扣
*/
type CheckoutService struct {
	cartRepo     redis_repo.ICartRepository
	catalogRepo  db.ICatalogRepository
	customerRepo db.ICustomerRepository
	producer     producer.ICheckoutEventProducer
	logger       zerolog.Logger
}

func NewCheckoutService(
	cartRepo redis_repo.ICartRepository,
	catalogRepo db.ICatalogRepository,
	customerRepo db.ICustomerRepository,
	eventProducer producer.ICheckoutEventProducer,
	logger zerolog.Logger,
) *CheckoutService {
	if !util.HasImplementation(cartRepo) {
		panic("CheckoutService dependency cartRepo is nil")
	}
	if !util.HasImplementation(catalogRepo) {
		panic("CheckoutService dependency catalogRepo is nil")
	}
	if !util.HasImplementation(customerRepo) {
		panic("CheckoutService dependency customerRepo is nil")
	}
	if !util.HasImplementation(eventProducer) {
		panic("CheckoutService dependency eventProducer is nil")
	}

	return &CheckoutService{
		cartRepo:     cartRepo,
		catalogRepo:  catalogRepo,
		customerRepo: customerRepo,
		producer:     eventProducer,
		logger:       logger,
	}
}

// checkoutLine 驗證階段的讀取結果，commit階段只用這份快照算錢
type checkoutLine struct {
	item    model.CartItem
	product *model.Product
}

func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, info model.CustomerInfo) (*model.CheckoutResult, error) {
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	name := strings.TrimSpace(info.Name)
	email := strings.TrimSpace(info.Email)
	if name == "" || email == "" {
		return nil, ErrMissingContact
	}

	// 驗證階段: 全部line重新讀取並檢查，任何一條不過就整筆放棄，此時還沒有任何寫入
	lines, err := s.validateLines(ctx, cart)
	if err != nil {
		metrics.CheckoutFailedTotal.Inc()
		return nil, err
	}

	subtotal := decimal.Zero
	deliveryDays := 0
	for _, line := range lines {
		subtotal = subtotal.Add(money.LineTotal(line.product.CampaignPrice, line.item.Quantity))
		if line.product.EstimatedDays != nil && *line.product.EstimatedDays > deliveryDays {
			deliveryDays = *line.product.EstimatedDays
		}
	}
	if deliveryDays == 0 {
		deliveryDays = defaultDeliveryDays
	}
	subtotal = money.Round3(subtotal)
	shipping := money.Round3(subtotal.Mul(ShippingRate))
	grandTotal := money.Round3(subtotal.Add(shipping))

	// 模擬金流，直接產生payment id，沒有刷卡失敗路徑
	paymentID := uuid.New().String()

	// commit階段: 逐line條件式扣庫存
	// 這裡失敗不會rollback已扣的line，是非交易式設計已知的一致性缺口
	for i, line := range lines {
		if err := s.deductStockWithRetry(ctx, line); err != nil {
			metrics.CheckoutFailedTotal.Inc()
			s.logger.Error().Err(err).
				Str("session_id", sessionID).
				Str("product_id", line.item.ProductID).
				Int("committed_lines", i).
				Msg("checkout aborted mid-commit, earlier stock deductions are not rolled back")
			return nil, err
		}
	}

	now := time.Now()
	customer := &model.Customer{
		Email:            strings.ToLower(email),
		Name:             name,
		Phone:            strings.TrimSpace(info.Phone),
		TotalPurchases:   cart.TotalCount(),
		TotalSpent:       grandTotal,
		LastPurchaseDate: now,
	}
	if err := s.customerRepo.UpsertPurchase(ctx, customer); err != nil {
		metrics.CheckoutFailedTotal.Inc()
		s.logger.Error().Err(err).
			Str("session_id", sessionID).
			Str("email", customer.Email).
			Msg("customer ledger upsert failed after stock was deducted")
		return nil, err
	}

	if err := s.cartRepo.Clear(ctx, sessionID); err != nil {
		metrics.CheckoutFailedTotal.Inc()
		s.logger.Error().Err(err).
			Str("session_id", sessionID).
			Msg("cart clear failed after checkout was committed")
		return nil, err
	}

	// 事件發送是best effort，失敗不影響結帳結果
	event := &model.CheckoutCompletedEvent{
		PaymentID:  paymentID,
		SessionID:  sessionID,
		Email:      customer.Email,
		Amount:     grandTotal,
		Items:      cart.Items,
		OccurredAt: now,
	}
	if err := s.producer.PublishCheckoutCompleted(ctx, event); err != nil {
		s.logger.Warn().Err(err).
			Str("payment_id", paymentID).
			Msg("failed to publish checkout completed event")
	}

	metrics.CheckoutCompletedTotal.Inc()
	return &model.CheckoutResult{
		PaymentID:    paymentID,
		Amount:       grandTotal,
		DeliveryDays: deliveryDays,
		Message:      fmt.Sprintf("payment successful, your order will be delivered in %d days", deliveryDays),
	}, nil
}

// validateLines 逐line重新讀商品與活動(縮小add-to-cart之後的race window)
// 結帳只知道自己的購物車，所以用 available >= quantity 檢查，不扣掉其他session的預留
func (s *CheckoutService) validateLines(ctx context.Context, cart *model.Cart) ([]checkoutLine, error) {
	lines := make([]checkoutLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, err := s.catalogRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, db.ErrProductNotFound) {
				return nil, ErrProductNotFound
			}
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

		available := product.AvailableStock()
		if available < item.Quantity {
			return nil, &InsufficientStockError{ProductID: item.ProductID, Remaining: available}
		}

		lines = append(lines, checkoutLine{item: item, product: product})
	}
	return lines, nil
}

// deductStockWithRetry 條件式扣庫存
// guard沒過先重讀重試一次(可能是瞬間的並發)，再失敗就視為commit時發現的庫存不足
func (s *CheckoutService) deductStockWithRetry(ctx context.Context, line checkoutLine) error {
	err := s.catalogRepo.DeductStock(ctx, line.item.ProductID, line.item.Quantity)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrProductStockNotEnough) {
		return err
	}

	err = s.catalogRepo.DeductStock(ctx, line.item.ProductID, line.item.Quantity)
	if err == nil {
		return nil
	}
	if errors.Is(err, db.ErrProductStockNotEnough) {
		remaining := int64(0)
		if fresh, freshErr := s.catalogRepo.GetProductByID(ctx, line.item.ProductID); freshErr == nil {
			remaining = fresh.AvailableStock()
		}
		return &InsufficientStockError{ProductID: line.item.ProductID, Remaining: remaining}
	}
	return err
}

var _ ICheckoutService = (*CheckoutService)(nil)
