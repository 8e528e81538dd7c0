package money

import (
	"math"

	"github.com/shopspring/decimal"
)

/*
所有衍生金額(line total, subtotal, 運費, 總額)都必須經過Round3
統一在計算當下就round，而不是只在最後round一次，避免顯示值與入帳值不一致
*/

// Round3 四捨五入到小數第三位，half-up
// 冪等: Round3(Round3(x)) == Round3(x)
func Round3(d decimal.Decimal) decimal.Decimal {
	return d.Round(3)
}

// FromFloat 將float轉成decimal，NaN與±Inf一律視為0
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// LineTotal 單價 × 數量，round過後回傳
func LineTotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return Round3(unitPrice.Mul(decimal.NewFromInt(quantity)))
}
