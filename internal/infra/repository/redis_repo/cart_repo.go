package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

type CartRepoError error

var ErrInsufficientQuantity CartRepoError = errors.New("insufficient quantity")

// ICartRepository Session cart 相關操作介面
// 購物車只活在redis，session過期或redis重啟就沒了，屬預期行為，不做持久化
type ICartRepository interface {
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	AddItem(ctx context.Context, sessionID string, productID string, deltaQuantity int64) error
	RemoveItem(ctx context.Context, sessionID string, productID string) error
	Clear(ctx context.Context, sessionID string) error
}

type CartRepo struct {
	CartCache *redis.Client
}

func NewCartRepo(cartCache *redis.Client) *CartRepo {
	return &CartRepo{CartCache: cartCache}
}

func generateCartItemKey(sessionID string) string {
	return fmt.Sprintf("cart:%s:items", sessionID)
}

// Get 取購物車當下內容，不存在回傳空購物車
// 數量 <= 0 的欄位視為已移除，不會出現在結果裡
func (r *CartRepo) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	itemsKey := generateCartItemKey(sessionID)

	items, err := r.CartCache.HGetAll(ctx, itemsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	cart := &model.Cart{
		SessionID: sessionID,
	}
	for productID, quantityStr := range items {
		quantity, err := strconv.ParseInt(quantityStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for product %s: %w", productID, err)
		}
		if quantity > 0 {
			cart.Items = append(cart.Items, model.CartItem{
				ProductID: productID,
				Quantity:  quantity,
			})
		}
	}

	return cart, nil
}

// AddItem 購物車商品數量增減(支援 delta 增減)
// 同一商品重複加入會累加數量，不會出現重複的line item
func (r *CartRepo) AddItem(ctx context.Context, sessionID string, productID string, deltaQuantity int64) error {
	itemsKey := generateCartItemKey(sessionID)

	// 使用 Lua 腳本執行原子增減
	luaScript := `
		local key = KEYS[1]
		local product_id = ARGV[1]
		local delta = tonumber(ARGV[2])

		-- 如果是扣減操作，先檢查數量是否足夠
		if delta < 0 then
			local current = tonumber(redis.call('HGET', key, product_id) or "0")
			if current + delta < 0 then
				return -2  -- 商品數量不足
			end
			-- 如果扣減後剛好為 0，直接刪除
			if current == -delta then
				redis.call('HDEL', key, product_id)
				return 0
			end
		end

		-- 使用 HINCRBY 進行原子增減
		return redis.call('HINCRBY', key, product_id, delta)
	`

	result, err := r.CartCache.Eval(ctx, luaScript, []string{itemsKey}, productID, deltaQuantity).Result()
	if err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	switch v := result.(type) {
	case int64:
		if v == -2 {
			return fmt.Errorf("%w product %s", ErrInsufficientQuantity, productID)
		}
		return nil
	default:
		return fmt.Errorf("unexpected result type: %T", result)
	}
}

// RemoveItem 從購物車中刪除指定商品，商品不存在是no-op不是錯誤
func (r *CartRepo) RemoveItem(ctx context.Context, sessionID string, productID string) error {
	itemsKey := generateCartItemKey(sessionID)

	err := r.CartCache.HDel(ctx, itemsKey, productID).Err()
	if err != nil {
		return fmt.Errorf("failed to delete item from cart: %w", err)
	}
	return nil
}

// Clear 清空購物車，結帳成功後呼叫
func (r *CartRepo) Clear(ctx context.Context, sessionID string) error {
	itemsKey := generateCartItemKey(sessionID)

	err := r.CartCache.Del(ctx, itemsKey).Err()
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

var _ ICartRepository = (*CartRepo)(nil)
