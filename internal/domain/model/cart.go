package model

import (
	"github.com/shopspring/decimal"
)

// Cart 購物車只存在於session(redis)，不落DB
// 同一個productID在購物車內只會有一個line item，重複加入時累加數量
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
}

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// QuantityOf 取得購物車中某商品已預留的數量，不存在回傳0
func (c *Cart) QuantityOf(productID string) int64 {
	if c == nil {
		return 0
	}
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// TotalCount 所有line item的數量總和
func (c *Cart) TotalCount() int64 {
	if c == nil {
		return 0
	}
	var total int64
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// CartView 購物車明細，價格與商品資訊都是查詢當下由catalog解析出來的
type CartView struct {
	Items    []CartViewItem  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

type CartViewItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}
