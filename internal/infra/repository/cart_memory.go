package repository

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"
)

// カートのインメモリ実装。
// 変更系はmutexで直列化する（ユーザー間も含めて1ストア1ライター）。
type CartMemoryRepository struct {
	mu     sync.Mutex
	items  []model.CartItem
	nextID int64
}

func NewCartMemoryRepository() *CartMemoryRepository {
	return &CartMemoryRepository{nextID: 1}
}

func (r *CartMemoryRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.CartItem, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

// 同一商品は数量加算、無ければ新規行
func (r *CartMemoryRepository) Upsert(ctx context.Context, userID int64, menuItemID int64, addQty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].MenuItemID == menuItemID {
			r.items[i].Quantity += addQty
			return nil
		}
	}

	r.items = append(r.items, model.CartItem{
		ID:         r.nextID,
		UserID:     userID,
		MenuItemID: menuItemID,
		Quantity:   addQty,
		CreatedAt:  time.Now(),
	})
	r.nextID++
	return nil
}

// qty <= 0 は削除。行が無い／他人の行なら何もしない。
func (r *CartMemoryRepository) UpdateQuantity(ctx context.Context, userID int64, cartItemID int64, qty int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == cartItemID && r.items[i].UserID == userID {
			if qty <= 0 {
				r.items = append(r.items[:i], r.items[i+1:]...)
			} else {
				r.items[i].Quantity = qty
			}
			return nil
		}
	}
	return nil
}

// 冪等削除
func (r *CartMemoryRepository) Remove(ctx context.Context, userID int64, cartItemID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == cartItemID && r.items[i].UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// userの全行削除。他ユーザーの行は触らない。
func (r *CartMemoryRepository) Clear(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, item := range r.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}
