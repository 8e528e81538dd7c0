package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
)

// 測試用in-memory實作，模擬repo的條件式更新語意
// 所有寫入都有計數器，用來驗證"驗證失敗=零寫入"這類性質

type fakeCatalogRepo struct {
	products    map[string]*model.Product
	campaigns   map[string]*model.Campaign
	deductCalls int
	deductErr   map[string]error // 注入指定商品的扣庫存錯誤
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		products:  make(map[string]*model.Product),
		campaigns: make(map[string]*model.Campaign),
		deductErr: make(map[string]error),
	}
}

func (f *fakeCatalogRepo) CreateCampaign(ctx context.Context, campaign *model.Campaign) error {
	f.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (f *fakeCatalogRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	f.products[product.ProductID] = product
	return nil
}

func (f *fakeCatalogRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return nil, db.ErrProductNotFound
	}
	cp := *product
	return &cp, nil
}

func (f *fakeCatalogRepo) GetCampaignByID(ctx context.Context, campaignID string) (*model.Campaign, error) {
	campaign, ok := f.campaigns[campaignID]
	if !ok {
		return nil, db.ErrCampaignNotFound
	}
	cp := *campaign
	return &cp, nil
}

func (f *fakeCatalogRepo) GetActiveProductsByCampaign(ctx context.Context, campaignID string) ([]model.Product, error) {
	var products []model.Product
	for _, p := range f.products {
		if p.CampaignID == campaignID && p.Status == model.ProductStatusActive {
			products = append(products, *p)
		}
	}
	return products, nil
}

// DeductStock 模擬單一條件式UPDATE: guard沒過就不改任何狀態
func (f *fakeCatalogRepo) DeductStock(ctx context.Context, productID string, quantity int64) error {
	if err := f.deductErr[productID]; err != nil {
		return err
	}

	product, ok := f.products[productID]
	if !ok {
		return db.ErrProductNotFound
	}

	switch inv := product.Inventory().(type) {
	case model.CounterStock:
		if inv.Stock < quantity {
			return db.ErrProductStockNotEnough
		}
		newStock := inv.Stock - quantity
		product.StockQuantity = &newStock
	case model.TargetSoldStock:
		if inv.Sold+quantity > inv.Target {
			return db.ErrProductStockNotEnough
		}
		newSold := inv.Sold + quantity
		product.SoldQuantity = &newSold
	}
	// 只計算實際發生的寫入，guard沒過不算
	f.deductCalls++
	return nil
}

var _ db.ICatalogRepository = (*fakeCatalogRepo)(nil)

type fakeCartRepo struct {
	carts map[string]*model.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*model.Cart)}
}

func (f *fakeCartRepo) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart, ok := f.carts[sessionID]
	if !ok {
		return &model.Cart{SessionID: sessionID}, nil
	}
	cp := model.Cart{SessionID: sessionID, Items: append([]model.CartItem(nil), cart.Items...)}
	return &cp, nil
}

func (f *fakeCartRepo) AddItem(ctx context.Context, sessionID string, productID string, deltaQuantity int64) error {
	cart, ok := f.carts[sessionID]
	if !ok {
		cart = &model.Cart{SessionID: sessionID}
		f.carts[sessionID] = cart
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += deltaQuantity
			if cart.Items[i].Quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			}
			return nil
		}
	}
	if deltaQuantity > 0 {
		cart.Items = append(cart.Items, model.CartItem{ProductID: productID, Quantity: deltaQuantity})
	}
	return nil
}

func (f *fakeCartRepo) RemoveItem(ctx context.Context, sessionID string, productID string) error {
	cart, ok := f.carts[sessionID]
	if !ok {
		return nil
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, sessionID string) error {
	delete(f.carts, sessionID)
	return nil
}

type fakeCustomerRepo struct {
	customers   map[string]*model.Customer
	upsertCalls int
	upsertErr   error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*model.Customer)}
}

func (f *fakeCustomerRepo) UpsertPurchase(ctx context.Context, customer *model.Customer) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upsertCalls++

	existing, ok := f.customers[customer.Email]
	if !ok {
		cp := *customer
		f.customers[customer.Email] = &cp
		return nil
	}

	existing.Name = customer.Name
	if customer.Phone != "" {
		existing.Phone = customer.Phone
	}
	existing.LastPurchaseDate = customer.LastPurchaseDate
	existing.TotalPurchases += customer.TotalPurchases
	existing.TotalSpent = existing.TotalSpent.Add(customer.TotalSpent)
	return nil
}

func (f *fakeCustomerRepo) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	customer, ok := f.customers[email]
	if !ok {
		return nil, db.ErrCustomerNotFound
	}
	return customer, nil
}

var _ db.ICustomerRepository = (*fakeCustomerRepo)(nil)

type fakeCheckoutProducer struct {
	published  []*model.CheckoutCompletedEvent
	publishErr error
}

func (f *fakeCheckoutProducer) PublishCheckoutCompleted(ctx context.Context, event *model.CheckoutCompletedEvent) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, event)
	return nil
}

func (f *fakeCheckoutProducer) Close() error { return nil }

// 測試資料helpers

var errFakeStore = errors.New("fake store failure")

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func seedCampaign(repo *fakeCatalogRepo, campaignID, status string) *model.Campaign {
	campaign := &model.Campaign{
		CampaignID: campaignID,
		BrandID:    "brand-1",
		Title:      fmt.Sprintf("campaign %s", campaignID),
		Status:     status,
	}
	repo.campaigns[campaignID] = campaign
	return campaign
}
