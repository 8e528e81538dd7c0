package model

import (
	"github.com/shopspring/decimal"
)

const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

/*
商品庫存有兩種表示方式，依欄位有無決定:
  - counter form: 直接使用 StockQuantity，購買時扣減
  - target/sold form: 可售數量 = max(0, TargetQuantity - SoldQuantity)，購買時累加 SoldQuantity

兩種形式互斥，同一筆商品只會有一種
*/
type Product struct {
	ProductID      string          `gorm:"primaryKey;type:varchar(100)" json:"product_id"`
	CampaignID     string          `gorm:"not null;type:varchar(100);index" json:"campaign_id"` // 外鍵，關聯到 Campaign
	Name           string          `gorm:"not null;type:varchar(255)" json:"name"`
	Status         string          `gorm:"not null;type:varchar(20);default:'active'" json:"status"`
	OriginalPrice  decimal.Decimal `gorm:"not null;type:decimal(12,3)" json:"original_price"`
	CampaignPrice  decimal.Decimal `gorm:"not null;type:decimal(12,3)" json:"campaign_price"`
	StockQuantity  *int64          `gorm:"type:bigint" json:"stock_quantity,omitempty"`
	TargetQuantity *int64          `gorm:"type:bigint" json:"target_quantity,omitempty"`
	SoldQuantity   *int64          `gorm:"type:bigint" json:"sold_quantity,omitempty"`
	EstimatedDays  *int            `gorm:"type:int" json:"estimated_days,omitempty"`
	Images         []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"` // 一對多，級聯刪除
	BaseModel
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID string `gorm:"not null;type:varchar(100);index" json:"product_id"` // 外鍵，關聯到 Product
	URL       string `gorm:"not null;type:varchar(500)" json:"url"`
	IsPrimary bool   `gorm:"not null;default:false" json:"is_primary"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}

// Inventory 庫存的 tagged variant，避免 nil 欄位判斷散落在業務邏輯裡
type Inventory interface {
	// Available 回傳目前可售數量，永遠 >= 0
	Available() int64
}

type CounterStock struct {
	Stock int64
}

func (s CounterStock) Available() int64 {
	if s.Stock < 0 {
		return 0
	}
	return s.Stock
}

type TargetSoldStock struct {
	Target int64
	Sold   int64
}

func (s TargetSoldStock) Available() int64 {
	remaining := s.Target - s.Sold
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Inventory 依欄位有無選擇庫存形式，counter form 優先
func (p *Product) Inventory() Inventory {
	if p.StockQuantity != nil {
		return CounterStock{Stock: *p.StockQuantity}
	}

	var target, sold int64
	if p.TargetQuantity != nil {
		target = *p.TargetQuantity
	}
	if p.SoldQuantity != nil {
		sold = *p.SoldQuantity
	}
	return TargetSoldStock{Target: target, Sold: sold}
}

func (p *Product) AvailableStock() int64 {
	return p.Inventory().Available()
}

func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// PrimaryImage 取主圖 URL
// 規則: 第一張標記 is_primary 的圖，沒有的話取列表第一張，都沒有回傳空字串
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}
