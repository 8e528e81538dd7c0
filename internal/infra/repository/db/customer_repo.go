package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCustomerNotFound 客戶不存在
	ErrCustomerNotFound = errors.New("customer not found")
)

type CustomerRepo struct {
	db *DbDao
}

func NewCustomerRepo(db *DbDao) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// UpsertPurchase 以email為key upsert客戶終身統計
// 聯絡欄位採覆寫(set)，統計欄位採累加(inc)，單一SQL確保原子性
// customer帶的 TotalPurchases / TotalSpent 是本次結帳的增量，不是新的總值
func (r *CustomerRepo) UpsertPurchase(ctx context.Context, customer *model.Customer) error {
	assignments := map[string]interface{}{
		"name":               customer.Name,
		"last_purchase_date": customer.LastPurchaseDate,
		"total_purchases":    gorm.Expr("customers.total_purchases + ?", customer.TotalPurchases),
		"total_spent":        gorm.Expr("customers.total_spent + ?", customer.TotalSpent),
	}
	// phone選填，沒給就不覆寫既有值
	if customer.Phone != "" {
		assignments["phone"] = customer.Phone
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(customer).Error
	if err != nil {
		return fmt.Errorf("failed to upsert customer %s: %w", customer.Email, err)
	}
	return nil
}

// Read - 根據email查詢客戶
// 錯誤:
//   - ErrCustomerNotFound: 客戶不存在
//   - err: 其他錯誤
func (r *CustomerRepo) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).First(&customer, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

var _ ICustomerRepository = (*CustomerRepo)(nil)
