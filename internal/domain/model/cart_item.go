package model

import "time"

// カートの明細。
// (user_id, menu_item_id) は1行のみ。quantityは常に1以上（0以下は行削除）。
type CartItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;index;uniqueIndex:uq_cart_user_item" json:"user_id"`
	MenuItemID int64     `gorm:"not null;uniqueIndex:uq_cart_user_item" json:"menu_item_id"`
	Quantity   int64     `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// カート一覧の1行。商品が既に存在しない場合 MenuItem は nil。
type CartLine struct {
	CartItem
	MenuItem *MenuItem `gorm:"-" json:"menu_item"`
}
