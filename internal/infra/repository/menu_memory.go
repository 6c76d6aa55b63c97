package repository

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// DB無しで動かすためのインメモリ実装。
// グローバル変数ではなく明示的なストアオブジェクト（生成→利用→破棄）。
type MenuMemoryRepository struct {
	mu     sync.Mutex
	items  []model.MenuItem
	nextID int64
}

func NewMenuMemoryRepository() *MenuMemoryRepository {
	return &MenuMemoryRepository{nextID: 1}
}

// 作成順で全件返す
func (r *MenuMemoryRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.MenuItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *MenuMemoryRepository) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return model.MenuItem{}, repo.ErrNotFound
}

// IDは単調増加のカウンターで採番する。
// 件数ベース（len+1）だと削除後に再利用が起きるのでやらない。
func (r *MenuMemoryRepository) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}
