package client

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"
)

// 変更1回分の状態遷移:
// Idle → Applying(snapshot) → {Committed | RolledBack} → Reconciling → Idle
type MutationState int

const (
	StateIdle MutationState = iota
	StateApplying
	StateCommitted
	StateRolledBack
	StateReconciling
)

// CartViewが必要とするカート操作だけを切り出したもの
type CartAPI interface {
	ListCart(ctx context.Context) ([]model.CartLine, error)
	UpdateCartQuantity(ctx context.Context, cartItemID int64, qty int64) error
	RemoveCartItem(ctx context.Context, cartItemID int64) error
	ClearCart(ctx context.Context) error
}

// 成否の通知先（トースト表示などはこの外側）
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// CartViewはカートのローカルキャッシュ。
// 変更は先にキャッシュへ反映（楽観更新）し、リモート失敗ならスナップショットへ
// 巻き戻す。成否に関わらず最後にサーバーの正を取り直す。
type CartView struct {
	api      CartAPI
	notifier Notifier
	timeout  time.Duration

	mu            sync.Mutex
	lines         []model.CartLine
	gen           uint64 // 楽観反映のたびに+1。古いrefresh結果を捨てる判定に使う
	cancelRefresh context.CancelFunc
	state         MutationState
}

func NewCartView(api CartAPI, notifier Notifier) *CartView {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CartView{
		api:      api,
		notifier: notifier,
		timeout:  10 * time.Second,
		state:    StateIdle,
	}
}

// 現在のキャッシュ（コピー）
func (v *CartView) Lines() []model.CartLine {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneLines(v.lines)
}

func (v *CartView) State() MutationState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Refreshはサーバーの正でキャッシュを上書きする。
// 取得中に新しい楽観反映があった場合、その結果は捨てる（上書きで潰さない）。
func (v *CartView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	if v.cancelRefresh != nil {
		v.cancelRefresh()
	}
	rctx, cancel := context.WithTimeout(ctx, v.timeout)
	v.cancelRefresh = cancel
	gen := v.gen
	v.mu.Unlock()

	defer cancel()

	lines, err := v.api.ListCart(rctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		// このrefreshより後に楽観反映が走った
		return nil
	}
	v.lines = lines
	return nil
}

// 数量変更。0は行削除として反映する。
func (v *CartView) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	return v.mutate(ctx,
		func(lines []model.CartLine) []model.CartLine {
			if qty == 0 {
				return removeLine(lines, cartItemID)
			}
			for i := range lines {
				if lines[i].ID == cartItemID {
					lines[i].Quantity = qty
				}
			}
			return lines
		},
		func(cctx context.Context) error {
			return v.api.UpdateCartQuantity(cctx, cartItemID, qty)
		},
		"", "Failed to update quantity",
	)
}

func (v *CartView) Remove(ctx context.Context, cartItemID int64) error {
	return v.mutate(ctx,
		func(lines []model.CartLine) []model.CartLine {
			return removeLine(lines, cartItemID)
		},
		func(cctx context.Context) error {
			return v.api.RemoveCartItem(cctx, cartItemID)
		},
		"Item removed from cart", "Failed to remove item",
	)
}

func (v *CartView) Clear(ctx context.Context) error {
	return v.mutate(ctx,
		func([]model.CartLine) []model.CartLine {
			return []model.CartLine{}
		},
		func(cctx context.Context) error {
			return v.api.ClearCart(cctx)
		},
		"Cart cleared", "Failed to clear cart",
	)
}

// 共通の変更プロトコル:
// 1. 実行中のrefreshを止める
// 2. スナップショットを取る
// 3. キャッシュへ同期的に反映
// 4. リモート呼び出し（タイムアウト付き）
// 5. 失敗ならスナップショットへ巻き戻して通知
// 6. 成否に関わらずサーバーの正を取り直す
func (v *CartView) mutate(
	ctx context.Context,
	apply func([]model.CartLine) []model.CartLine,
	call func(ctx context.Context) error,
	okMsg string,
	failMsg string,
) error {
	v.mu.Lock()
	if v.cancelRefresh != nil {
		v.cancelRefresh()
		v.cancelRefresh = nil
	}
	snapshot := cloneLines(v.lines)
	v.lines = apply(cloneLines(v.lines))
	v.gen++
	gen := v.gen
	v.state = StateApplying
	v.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, v.timeout)
	err := call(cctx)
	cancel()

	v.mu.Lock()
	if err != nil {
		if v.gen == gen {
			v.lines = snapshot
		}
		v.state = StateRolledBack
	} else {
		v.state = StateCommitted
	}
	v.mu.Unlock()

	if err != nil {
		v.notifier.Error(failMsg)
	} else if okMsg != "" {
		v.notifier.Success(okMsg)
	}

	v.mu.Lock()
	v.state = StateReconciling
	v.mu.Unlock()

	// 呼び出し元のcancelに巻き込まれず、必ず正へ収束させる
	rctx, rcancel := context.WithTimeout(context.WithoutCancel(ctx), v.timeout)
	_ = v.Refresh(rctx)
	rcancel()

	v.mu.Lock()
	v.state = StateIdle
	v.mu.Unlock()

	return err
}

func cloneLines(lines []model.CartLine) []model.CartLine {
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out
}

func removeLine(lines []model.CartLine, cartItemID int64) []model.CartLine {
	out := lines[:0]
	for _, l := range lines {
		if l.ID != cartItemID {
			out = append(out, l)
		}
	}
	return out
}
