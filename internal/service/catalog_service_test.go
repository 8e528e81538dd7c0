package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(repo *fakeCatalogRepo, productID, campaignID, status string) *model.Product {
	product := &model.Product{
		ProductID:     productID,
		CampaignID:    campaignID,
		Name:          "test product",
		Status:        status,
		OriginalPrice: decimal.RequireFromString("150"),
		CampaignPrice: decimal.RequireFromString("100"),
	}
	repo.products[productID] = product
	return product
}

func TestGetPurchasableProduct(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	seedCampaign(repo, "c1", model.CampaignStatusActive)
	p := seedProduct(repo, "p1", "c1", model.ProductStatusActive)
	p.StockQuantity = int64Ptr(10)

	got, err := svc.GetPurchasableProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ProductID)

	// 商品不存在 → not found (404語意)
	_, err = svc.GetPurchasableProduct(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrProductNotFound)

	// 商品存在但活動不存在 → 也是not found
	seedProduct(repo, "p2", "orphan-campaign", model.ProductStatusActive)
	_, err = svc.GetPurchasableProduct(ctx, "p2")
	assert.ErrorIs(t, err, ErrProductNotFound)

	// 商品inactive → not available (403語意)，跟not found是不同錯誤
	seedProduct(repo, "p3", "c1", model.ProductStatusInactive)
	_, err = svc.GetPurchasableProduct(ctx, "p3")
	assert.ErrorIs(t, err, ErrProductNotAvailable)
	assert.NotErrorIs(t, err, ErrProductNotFound)

	// 活動completed → not available
	seedCampaign(repo, "c2", model.CampaignStatusCompleted)
	seedProduct(repo, "p4", "c2", model.ProductStatusActive)
	_, err = svc.GetPurchasableProduct(ctx, "p4")
	assert.ErrorIs(t, err, ErrProductNotAvailable)
}

func TestGetProductDetails(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	seedCampaign(repo, "c1", model.CampaignStatusActive)
	p := seedProduct(repo, "p1", "c1", model.ProductStatusActive)
	p.TargetQuantity = int64Ptr(10)
	p.SoldQuantity = int64Ptr(3)
	p.EstimatedDays = intPtr(7)
	p.Images = []model.ProductImage{
		{URL: "a.jpg"},
		{URL: "b.jpg", IsPrimary: true},
	}

	view, err := svc.GetProductDetails(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), view.AvailableStock)
	assert.Equal(t, "b.jpg", view.PrimaryImage)
	assert.Equal(t, 7, view.EstimatedDays)
	assert.True(t, view.CampaignPrice.Equal(decimal.RequireFromString("100")))
}

// 沒填預計到貨天數時view用預設值
func TestGetProductDetailsDefaultDeliveryDays(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	seedCampaign(repo, "c1", model.CampaignStatusActive)
	p := seedProduct(repo, "p1", "c1", model.ProductStatusActive)
	p.StockQuantity = int64Ptr(1)

	view, err := svc.GetProductDetails(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, defaultDeliveryDays, view.EstimatedDays)
}

func TestListCampaignProducts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo)

	seedCampaign(repo, "c1", model.CampaignStatusActive)
	seedProduct(repo, "p1", "c1", model.ProductStatusActive).StockQuantity = int64Ptr(5)
	seedProduct(repo, "p2", "c1", model.ProductStatusInactive)

	views, err := svc.ListCampaignProducts(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "p1", views[0].ProductID)

	_, err = svc.ListCampaignProducts(ctx, "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)

	seedCampaign(repo, "c2", model.CampaignStatusCompleted)
	_, err = svc.ListCampaignProducts(ctx, "c2")
	assert.ErrorIs(t, err, ErrProductNotAvailable)
}
