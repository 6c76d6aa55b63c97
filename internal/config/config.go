package config

import (
	"fmt"
	"os"
	"strings"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL string // 空ならインメモリストアで起動

	JWTSecret string // JWT署名シークレット

	// POST /menu を許可するrole。空なら認証済みユーザー全員。
	// 出所が曖昧なポリシーなのでハードコードせず設定にする。
	MenuCreateRole string

	GoEnv    string // dev/prod
	LogLevel string // debug/info/warn/error
}

// Loadは環境変数から設定を読む
func Load() (Config, error) {
	cfg := Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MenuCreateRole: strings.ToUpper(os.Getenv("MENU_CREATE_ROLE")),
		GoEnv:          getenv("GO_ENV", "dev"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}

	//必須チェック（devはデフォルトシークレットで動かせる）
	if cfg.JWTSecret == "" {
		if cfg.GoEnv == "prod" {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = "dev_secret_change_me"
	}

	switch cfg.MenuCreateRole {
	case "", "USER", "ADMIN":
	default:
		return Config{}, fmt.Errorf("MENU_CREATE_ROLE must be USER or ADMIN")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
