package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// カート明細の永続化。全操作がuserIDでスコープされる。
// 変更系は (id AND user_id) で絞り込み、他人の行は「無い」のと同じ扱い
// （区別可能なエラーにしない）。
type CartRepository interface {
	// userの明細をid昇順で返す
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	// 同一商品は数量加算、無ければ新規行
	Upsert(ctx context.Context, userID int64, menuItemID int64, addQty int64) error
	// qty <= 0 は行削除。行が無い／他人の行なら何もしない
	UpdateQuantity(ctx context.Context, userID int64, cartItemID int64, qty int64) error
	// 冪等削除
	Remove(ctx context.Context, userID int64, cartItemID int64) error
	// userの全行削除
	Clear(ctx context.Context, userID int64) error
}
