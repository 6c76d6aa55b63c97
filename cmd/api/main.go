package main

import (
	"os"
	"strconv"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くてもよい（デフォルトはインメモリで起動）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "storefront-api",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})

	//Repository生成。DATABASE_URLがあればGORM、無ければインメモリ。
	var menuRepo repo.MenuRepository
	var cartRepo repo.CartRepository
	var userRepo repo.UserRepository

	if cfg.DatabaseURL != "" {
		gormDB, err := db.Connect()
		if err != nil {
			panic(err)
		}
		if err := gormDB.AutoMigrate(
			&model.User{},
			&model.MenuItem{},
			&model.CartItem{},
		); err != nil {
			panic(err)
		}

		menuRepo = infraRepo.NewMenuGormRepository(gormDB)
		cartRepo = infraRepo.NewCartGormRepository(gormDB)
		userRepo = infraRepo.NewUserGormRepository(gormDB)
		log.Info("store: postgres")
	} else {
		menuRepo = infraRepo.NewMenuMemoryRepository()
		cartRepo = infraRepo.NewCartMemoryRepository()
		userRepo = infraRepo.NewUserMemoryRepository()
		log.Info("store: in-memory")
	}

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := newJWTIssuer(cfg.JWTSecret)

	//Usecase生成
	menuUC := usecase.NewMenuUsecase(menuRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, menuRepo)
	authUC := usecase.NewAuthUsecase(userRepo, hasher, verifier, issuer, clock)

	//Handler生成
	menuH := handler.NewMenuHandler(menuUC)
	cartH := handler.NewCartHandler(cartUC)
	authH := handler.NewAuthHandler(authUC)

	//Server起動
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		if v[0] != ':' {
			addr = ":" + v
		} else {
			addr = v
		}
	}

	e := server.New(cfg, log, menuH, cartH, authH)
	if err := server.Start(e, addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
