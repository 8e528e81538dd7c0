package service

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart 空購物車不能結帳
	ErrEmptyCart = errors.New("cart is empty")
	// ErrMissingContact 結帳缺少必填聯絡資訊
	ErrMissingContact = errors.New("customer name and email are required")
	// ErrProductNotFound 商品或所屬活動不存在 (404語意)
	ErrProductNotFound = errors.New("product not found")
	// ErrProductNotAvailable 商品存在但不可購買 (403語意)
	// 商品status或活動status不是active
	ErrProductNotAvailable = errors.New("product is not available")
)

// InsufficientStockError 庫存不足
// 帶上當下剩餘數量，UI才能顯示"只剩N件"讓使用者修正數量
type InsufficientStockError struct {
	ProductID string
	Remaining int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s, only %d left", e.ProductID, e.Remaining)
}
