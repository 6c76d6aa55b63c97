package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// MenuUsecase は /menu の業務ロジックです。
type MenuUsecase struct {
	menuRepo repo.MenuRepository
}

// DI
func NewMenuUsecase(menuRepo repo.MenuRepository) *MenuUsecase {
	return &MenuUsecase{menuRepo: menuRepo}
}

type CreateMenuItemInput struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
	Category    string
}

// 商品一覧（作成順）
func (u *MenuUsecase) ListMenu(ctx context.Context) ([]model.MenuItem, error) {
	items, err := u.menuRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 商品1件取得。
// 見つからないのは異常ではないので (nil, nil) を返す。handlerはnullを返す。
func (u *MenuUsecase) GetMenuItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	if id <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.menuRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return &item, nil
}

// 商品作成。不正入力はストアに届く前にここで弾く。
func (u *MenuUsecase) CreateMenuItem(ctx context.Context, userID int64, in CreateMenuItemInput) (model.MenuItem, error) {
	if userID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price < 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	item, err := u.menuRepo.Create(ctx, model.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}
