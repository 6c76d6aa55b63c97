package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuMemory_CreateAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	r := NewMenuMemoryRepository()

	a, err := r.Create(ctx, model.MenuItem{Name: "Classic Burger", Price: 1299})
	require.NoError(t, err)
	b, err := r.Create(ctx, model.MenuItem{Name: "Iced Coffee", Price: 499})
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
}

func TestMenuMemory_ListReturnsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := NewMenuMemoryRepository()

	names := []string{"Classic Burger", "Margherita Pizza", "Caesar Salad"}
	for _, n := range names {
		_, err := r.Create(ctx, model.MenuItem{Name: n, Price: 100})
		require.NoError(t, err)
	}

	// 繰り返し呼んでも同じ結果（カーソル状態を持たない）
	for i := 0; i < 2; i++ {
		items, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		for j, n := range names {
			assert.Equal(t, n, items[j].Name)
		}
	}
}

// 作成→取得のラウンドトリップ
func TestMenuMemory_FindByIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewMenuMemoryRepository()

	created, err := r.Create(ctx, model.MenuItem{
		Name:     "Grilled Salmon",
		Price:    1899,
		Category: "Seafood",
	})
	require.NoError(t, err)

	got, err := r.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestMenuMemory_FindByIDNotFound(t *testing.T) {
	ctx := context.Background()
	r := NewMenuMemoryRepository()

	_, err := r.FindByID(ctx, 42)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
