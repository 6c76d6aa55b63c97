package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// 表示用に常にメニューとjoinして返します。
type CartUsecase struct {
	cartRepo repo.CartRepository
	menuRepo repo.MenuRepository
}

// DI
func NewCartUsecase(cartRepo repo.CartRepository, menuRepo repo.MenuRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
	}
}

type AddCartInput struct {
	MenuItemID int64
	// nilなら1（未指定のデフォルト）。指定時は1以上。
	Quantity *int64
}

// カート一覧。各明細をメニューにjoinする。
// 商品が消えていても行は返す（menu_item=nil）。隠すかは呼び出し側が決める。
func (u *CartUsecase) ListCart(ctx context.Context, userID int64) ([]model.CartLine, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines := make([]model.CartLine, 0, len(items))
	for _, it := range items {
		line := model.CartLine{CartItem: it}

		m, err := u.menuRepo.FindByID(ctx, it.MenuItemID)
		if err == nil {
			item := m
			line.MenuItem = &item
		} else if err != repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// カートに追加（同一商品は数量加算）。
// 数量未指定は1。0以下の明示指定はストアに届く前にここで弾く。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.MenuItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid menu_item_id")
	}

	qty := int64(1)
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty < 1 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
	}

	if err := u.cartRepo.Upsert(ctx, userID, in.MenuItemID, qty); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 数量変更。0は削除。
// 行が無い／他人の行でも成功として返す（冪等・存在を漏らさない）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, userID int64, cartItemID int64, qty int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if qty < 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	if err := u.cartRepo.UpdateQuantity(ctx, userID, cartItemID, qty); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 明細削除（冪等）
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID int64, cartItemID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.cartRepo.Remove(ctx, userID, cartItemID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 全削除（冪等）
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.cartRepo.Clear(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
