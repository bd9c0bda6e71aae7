package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodgram/internal/auth"
	"foodgram/internal/config"
	"foodgram/internal/db"
	"foodgram/internal/follow"
	"foodgram/internal/ingredient"
	"foodgram/internal/logger"
	"foodgram/internal/recipe"
	"foodgram/internal/router"
	"foodgram/internal/shopping"
	"foodgram/internal/storage"
	"foodgram/internal/tag"
	"foodgram/internal/validation"

	"github.com/gin-gonic/gin"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	config.LoadEnv()
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.Register(); err != nil {
		log.Fatal("validator setup failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("database init failed", "error", err)
	}
	defer pgDB.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	var fetcher shopping.FontFetcher
	if cfg.R2Enabled() {
		r2Client, err := storage.NewR2Client(ctx, cfg)
		if err != nil {
			log.Fatal("R2 init failed", "error", err)
		}
		fetcher = r2Client
	}

	// ───────────────────────── FONTS ─────────────────────────
	fonts, err := shopping.LoadFonts(ctx, cfg.FontPath, cfg.FontObjectKey, fetcher)
	if err != nil {
		log.Fatal("shopping list font unavailable", "error", err)
	}
	log.Info("shopping list font loaded", "family", fonts.Family(), "name", fonts.Name())

	renderCfg := shopping.DefaultRenderConfig()
	renderCfg.FontSize = cfg.FontSize
	renderer, err := shopping.NewRenderer(renderCfg, fonts)
	if err != nil {
		log.Fatal("shopping list renderer init failed", "error", err)
	}

	// ───────────────────────── REPOS ─────────────────────────
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal("token manager init failed", "error", err)
	}

	userRepo := auth.NewPostgresUserRepository(pgDB)
	tagRepo := tag.NewPostgresRepository(pgDB)
	ingredientRepo := ingredient.NewPostgresRepository(pgDB)
	recipeRepo := recipe.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	deps := router.Deps{
		Log:         log,
		Tokens:      tokens,
		CORSOrigins: cfg.CORSOrigins,

		Auth:       auth.NewService(userRepo, tokens),
		Follow:     follow.NewService(follow.NewPostgresRepository(pgDB), userRepo, log),
		Tags:       tag.NewService(tagRepo),
		Ingredient: ingredient.NewService(ingredientRepo),
		Recipes:    recipe.NewService(recipeRepo, ingredientRepo, tagRepo, cfg.BaseURL, log),
		Shopping: shopping.NewService(
			shopping.NewPostgresRepository(pgDB),
			recipeRepo,
			renderer,
			cfg.MaxShoppingListRecipes,
			log,
		),
	}

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API running", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
