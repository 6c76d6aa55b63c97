package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain/model"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// 入力不正（名前なし・負の価格・数量0未満など）
var ErrInvalidInput = errors.New("invalid input")

const (
	mockUserKey = "mock:user"
	menuSeqKey  = "menu:seq"
	menuPrefix  = "menu:item:"
	cartPrefix  = "cart:item:"
)

// LocalStoreは認証セッションが無いときのローカルモード。
// サーバーと同じカート/メニューの意味論をbadger上で再現する。
// ローカルのカートはメニュー商品IDをそのまま行IDとして使う。
type LocalStore struct {
	db *badger.DB
}

// ディスク永続のローカルストアを開く
func OpenLocal(path string) (*LocalStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &LocalStore{db: db}, nil
}

// テスト用のインメモリストア
func OpenLocalInMemory() (*LocalStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &LocalStore{db: db}, nil
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

// モック識別子があれば返す。無ければ空文字。
func (s *LocalStore) MockUser() (string, error) {
	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(mockUserKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			id = string(v)
			return nil
		})
	})
	return id, err
}

// モック識別子を返す。無ければUUIDで作って保存する。
func (s *LocalStore) EnsureMockUser() (string, error) {
	id, err := s.MockUser()
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	id = uuid.NewString()
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(mockUserKey), []byte(id))
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// ローカルで商品を作成。サーバー側と同じ検証・同じ単調増加の採番。
func (s *LocalStore) CreateMenuItem(in CreateMenuItemInput) (model.MenuItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.MenuItem{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Price < 0 {
		return model.MenuItem{}, fmt.Errorf("%w: price must be >= 0", ErrInvalidInput)
	}

	var item model.MenuItem
	err := s.db.Update(func(txn *badger.Txn) error {
		id, err := nextSeq(txn)
		if err != nil {
			return err
		}

		item = model.MenuItem{
			ID:          id,
			Name:        strings.TrimSpace(in.Name),
			Description: in.Description,
			Price:       in.Price,
			ImageURL:    in.ImageURL,
			Category:    in.Category,
			CreatedAt:   time.Now(),
		}

		b, err := json.Marshal(item)
		if err != nil {
			return err
		}
		return txn.Set(menuKey(id), b)
	})
	if err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

// ローカル作成の商品をid昇順で返す
func (s *LocalStore) ListMenuItems() ([]model.MenuItem, error) {
	items := make([]model.MenuItem, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(menuPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var m model.MenuItem
			err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &m)
			})
			if err != nil {
				return err
			}
			items = append(items, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// リモートとローカルの商品をidでマージして返す。
// リモート取得に失敗したらローカルだけで返す（ローカルモードは止めない）。
func (s *LocalStore) MergedMenu(ctx context.Context, remote *Client) ([]model.MenuItem, error) {
	var remoteItems []model.MenuItem
	if remote != nil {
		if items, err := remote.ListMenu(ctx); err == nil {
			remoteItems = items
		}
	}

	local, err := s.ListMenuItems()
	if err != nil {
		return nil, err
	}

	return MergeMenuItems(remoteItems, local), nil
}

// id衝突はremote優先のマージ
func MergeMenuItems(remote []model.MenuItem, local []model.MenuItem) []model.MenuItem {
	out := make([]model.MenuItem, 0, len(remote)+len(local))
	seen := make(map[int64]bool, len(remote))

	for _, m := range remote {
		out = append(out, m)
		seen[m.ID] = true
	}
	for _, m := range local {
		if !seen[m.ID] {
			out = append(out, m)
			seen[m.ID] = true
		}
	}
	return out
}

// カートに追加（同一商品は数量加算）
func (s *LocalStore) CartAdd(menuItemID int64, qty int64) error {
	if menuItemID <= 0 || qty < 1 {
		return ErrInvalidInput
	}

	return s.db.Update(func(txn *badger.Txn) error {
		current, err := readQty(txn, menuItemID)
		if err != nil {
			return err
		}
		return writeQty(txn, menuItemID, current+qty)
	})
}

// 数量を上書き。0以下は行削除。
func (s *LocalStore) CartSetQuantity(menuItemID int64, qty int64) error {
	if menuItemID <= 0 {
		return ErrInvalidInput
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if qty <= 0 {
			return txn.Delete(cartKey(menuItemID))
		}
		return writeQty(txn, menuItemID, qty)
	})
}

// 冪等削除
func (s *LocalStore) CartRemove(menuItemID int64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(cartKey(menuItemID))
	})
}

// 全削除
func (s *LocalStore) CartClear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(cartPrefix)})
		defer it.Close()

		keys := make([][]byte, 0)
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// カートをメニューとjoinして返す。
// メニューに無い商品（消えた参照）は行ごと隠す。
func (s *LocalStore) CartLines(menu []model.MenuItem) ([]model.CartLine, error) {
	byID := make(map[int64]model.MenuItem, len(menu))
	for _, m := range menu {
		byID[m.ID] = m
	}

	lines := make([]model.CartLine, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(cartPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := parseCartKey(it.Item().Key())
			if err != nil {
				return err
			}

			var qty int64
			err = it.Item().Value(func(v []byte) error {
				qty, err = strconv.ParseInt(string(v), 10, 64)
				return err
			})
			if err != nil {
				return err
			}

			m, ok := byID[id]
			if !ok {
				continue
			}
			item := m
			lines = append(lines, model.CartLine{
				CartItem: model.CartItem{
					ID:         id,
					MenuItemID: id,
					Quantity:   qty,
				},
				MenuItem: &item,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// 単調増加の採番（削除後もIDを再利用しない）
func nextSeq(txn *badger.Txn) (int64, error) {
	var next int64 = 1

	item, err := txn.Get([]byte(menuSeqKey))
	if err == nil {
		err = item.Value(func(v []byte) error {
			n, perr := strconv.ParseInt(string(v), 10, 64)
			if perr != nil {
				return perr
			}
			next = n
			return nil
		})
		if err != nil {
			return 0, err
		}
	} else if !errors.Is(err, badger.ErrKeyNotFound) {
		return 0, err
	}

	if err := txn.Set([]byte(menuSeqKey), []byte(strconv.FormatInt(next+1, 10))); err != nil {
		return 0, err
	}
	return next, nil
}

func readQty(txn *badger.Txn, menuItemID int64) (int64, error) {
	item, err := txn.Get(cartKey(menuItemID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var qty int64
	err = item.Value(func(v []byte) error {
		qty, err = strconv.ParseInt(string(v), 10, 64)
		return err
	})
	return qty, err
}

func writeQty(txn *badger.Txn, menuItemID int64, qty int64) error {
	return txn.Set(cartKey(menuItemID), []byte(strconv.FormatInt(qty, 10)))
}

// ゼロ詰めでid昇順とキー辞書順を揃える
func menuKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", menuPrefix, id))
}

func cartKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", cartPrefix, id))
}

func parseCartKey(key []byte) (int64, error) {
	s := strings.TrimPrefix(string(key), cartPrefix)
	return strconv.ParseInt(strings.TrimLeft(s, "0"), 10, 64)
}
