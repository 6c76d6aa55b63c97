// Package client はstorefront APIの型付きクライアントです。
// カートは楽観更新つきのキャッシュ（CartView）で扱い、
// サーバーセッションが無いときはローカルモード（LocalStore）で同じ動きをします。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
)

// サーバーが返したエラー
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

// 認証トークン（カート操作に必須）
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ログイン済みかどうか（ローカルモード切替の判定に使う）
func (c *Client) Authenticated() bool {
	return c.token != ""
}

type CreateMenuItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	Category    string `json:"category,omitempty"`
}

type addCartRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int64 `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int64 `json:"quantity"`
}

func (c *Client) ListMenu(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// 見つからない場合は (nil, nil)（サーバーはnullを返す）
func (c *Client) GetMenuItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	var item *model.MenuItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/menu/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, in CreateMenuItemInput) (model.MenuItem, error) {
	var item model.MenuItem
	if err := c.do(ctx, http.MethodPost, "/menu", in, &item); err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

func (c *Client) ListCart(ctx context.Context) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) AddToCart(ctx context.Context, menuItemID int64, qty int64) error {
	return c.do(ctx, http.MethodPost, "/cart", addCartRequest{MenuItemID: menuItemID, Quantity: qty}, nil)
}

func (c *Client) UpdateCartQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/cart/%d", cartItemID), updateCartRequest{Quantity: qty}, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, cartItemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", cartItemID), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil)
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := resp.Status
		if b, err := io.ReadAll(resp.Body); err == nil && len(b) > 0 {
			if json.Unmarshal(b, &e) == nil {
				if e.Error != "" {
					msg = e.Error
				} else if e.Message != "" {
					msg = e.Message
				}
			}
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
