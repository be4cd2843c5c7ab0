package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/FinFellows/Server/internal/auth"
	"github.com/FinFellows/Server/internal/auth/credentials"
	authhandler "github.com/FinFellows/Server/internal/auth/handler"
	"github.com/FinFellows/Server/internal/auth/kakao"
	"github.com/FinFellows/Server/internal/auth/token"
	"github.com/FinFellows/Server/internal/bookmark"
	"github.com/FinFellows/Server/internal/config"
	"github.com/FinFellows/Server/internal/httpclient"
	"github.com/FinFellows/Server/internal/middleware"
	"github.com/FinFellows/Server/internal/policy"
	"github.com/FinFellows/Server/internal/post"
	"github.com/FinFellows/Server/internal/product"
	"github.com/FinFellows/Server/internal/user"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	codec, err := token.NewCodec(token.Config{
		Secret:     []byte(cfg.TokenSecret),
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	if err != nil {
		return nil, nil, err
	}

	kakaoClient, err := kakao.New(kakao.Config{
		ClientID:    cfg.KakaoClientID,
		RedirectURL: cfg.KakaoRedirectURL,
		AuthURL:     cfg.KakaoAuthURL,
		TokenURL:    cfg.KakaoTokenURL,
		ProfileURL:  cfg.KakaoProfileURL,
	}, httpclient.New(cfg.ProviderTimeout))
	if err != nil {
		return nil, nil, err
	}

	userStore := user.NewPostgresStore(infra.DB)

	var credStore credentials.Store
	if infra.Redis != nil {
		credStore = credentials.NewRedisStore(infra.Redis.Client, cfg.RefreshTokenTTL)
	} else {
		credStore = credentials.NewPostgresStore(infra.DB)
	}

	authService := auth.NewService(kakaoClient, codec, userStore, credStore, infra.DB)
	authMiddleware := middleware.NewAuthMiddleware(codec, authService)

	productService := product.NewService(product.NewPostgresStore(infra.DB))
	policyService := policy.NewService(policy.NewPostgresStore(infra.DB))
	bookmarkService := bookmark.NewService(
		bookmark.NewPostgresStore(infra.DB),
		post.NewPostgresStore(infra.DB),
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	authhandler.NewHandler(authService, authMiddleware).RegisterRoutes(router)
	product.NewHandler(productService, authMiddleware).RegisterRoutes(router)
	policy.NewHandler(policyService, authMiddleware).RegisterRoutes(router)
	bookmark.NewHandler(bookmarkService, authMiddleware).RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if infra.Redis != nil {
			if err := infra.Redis.Close(); err != nil {
				return err
			}
		}
		return infra.DB.Close()
	}, nil
}
