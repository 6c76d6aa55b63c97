package model

import "time"

// 商品（メニュー）。作成後は更新・削除しない。
type MenuItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null" json:"price"` // 最小通貨単位（セント）
	ImageURL    string    `gorm:"type:text" json:"image_url"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
