package client

import (
	"fmt"
	"math"

	"storefront/internal/domain/model"
)

// 税率10%
const taxRate = 0.10

// 小計。商品が消えた行（menu_item=nil）は数えない。
func Subtotal(lines []model.CartLine) int64 {
	var total int64
	for _, l := range lines {
		if l.MenuItem == nil {
			continue
		}
		total += l.MenuItem.Price * l.Quantity
	}
	return total
}

// 税額。最小通貨単位に丸める。
func Tax(subtotal int64) int64 {
	return int64(math.Round(float64(subtotal) * taxRate))
}

func Total(subtotal int64) int64 {
	return subtotal + Tax(subtotal)
}

// セント→表示用ドル（"$12.99"）
func FormatPrice(cents int64) string {
	if cents < 0 {
		return fmt.Sprintf("-$%.2f", float64(-cents)/100)
	}
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
