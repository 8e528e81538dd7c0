package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerInfo 結帳時客戶填寫的聯絡資訊
// Name, Email 必填，Phone 選填
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CheckoutResult 結帳成功的回傳值，不落DB
// PaymentID 為模擬金流產生的識別碼
type CheckoutResult struct {
	PaymentID    string          `json:"payment_id"`
	Amount       decimal.Decimal `json:"amount"`
	DeliveryDays int             `json:"delivery_days"`
	Message      string          `json:"message"`
}

// CheckoutCompletedEvent 結帳完成後發送到kafka的事件
type CheckoutCompletedEvent struct {
	PaymentID  string          `json:"payment_id"`
	SessionID  string          `json:"session_id"`
	Email      string          `json:"email"`
	Amount     decimal.Decimal `json:"amount"`
	Items      []CartItem      `json:"items"`
	OccurredAt time.Time       `json:"occurred_at"`
}
