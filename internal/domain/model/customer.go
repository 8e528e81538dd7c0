package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer 為客戶的終身購買統計，以email為key
// 第一次結帳成功時由upsert隱式建立，之後每次結帳只做累加，不會覆寫統計值
type Customer struct {
	Email            string          `gorm:"primaryKey;type:varchar(100)" json:"email"` // 寫入前統一轉小寫
	Name             string          `gorm:"not null;type:varchar(100)" json:"name"`
	Phone            string          `gorm:"type:varchar(50)" json:"phone"`
	TotalPurchases   int64           `gorm:"not null;default:0" json:"total_purchases"`
	TotalSpent       decimal.Decimal `gorm:"not null;type:decimal(14,3);default:0" json:"total_spent"`
	LastPurchaseDate time.Time       `gorm:"not null" json:"last_purchase_date"`
	BaseModel
}
