// Command shopping-export renders one user's shopping list to a PDF file and
// optionally uploads it to R2.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"foodgram/internal/auth"
	"foodgram/internal/config"
	"foodgram/internal/db"
	"foodgram/internal/logger"
	"foodgram/internal/recipe"
	"foodgram/internal/shopping"
	"foodgram/internal/storage"
)

func main() {
	userID := flag.String("user", "", "id of the user whose shopping list to export")
	out := flag.String("out", shopping.DocumentFilename, "output file path")
	upload := flag.String("upload", "", "R2 object key to upload the PDF to")
	flag.Parse()

	config.LoadEnv()
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *userID == "" {
		flag.Usage()
		os.Exit(2)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if *upload != "" && !cfg.R2Enabled() {
		log.Fatal("-upload needs R2_ENDPOINT, R2_ACCESS_KEY, R2_SECRET_KEY and R2_BUCKET_NAME")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("database init failed", "error", err)
	}
	defer pgDB.Close()

	var r2Client *storage.R2Client
	var fetcher shopping.FontFetcher
	if cfg.R2Enabled() {
		r2Client, err = storage.NewR2Client(ctx, cfg)
		if err != nil {
			log.Fatal("R2 init failed", "error", err)
		}
		fetcher = r2Client
	}

	fonts, err := shopping.LoadFonts(ctx, cfg.FontPath, cfg.FontObjectKey, fetcher)
	if err != nil {
		log.Fatal("shopping list font unavailable", "error", err)
	}
	renderCfg := shopping.DefaultRenderConfig()
	renderCfg.FontSize = cfg.FontSize
	renderer, err := shopping.NewRenderer(renderCfg, fonts)
	if err != nil {
		log.Fatal("shopping list renderer init failed", "error", err)
	}

	user, err := auth.NewPostgresUserRepository(pgDB).FindByID(ctx, *userID, "")
	if err != nil {
		log.Fatal("user lookup failed", "user_id", *userID, "error", err)
	}

	service := shopping.NewService(
		shopping.NewPostgresRepository(pgDB),
		recipe.NewPostgresRepository(pgDB),
		renderer,
		cfg.MaxShoppingListRecipes,
		log,
	)

	doc, err := service.Download(ctx, user.ID, user.Username)
	if errors.Is(err, shopping.ErrEmptyList) {
		fmt.Println(shopping.ErrEmptyList.Error())
		return
	}
	if err != nil {
		log.Fatal("export failed", "user_id", user.ID, "error", err)
	}

	if err := os.WriteFile(*out, doc.Content, 0o644); err != nil {
		log.Fatal("write failed", "path", *out, "error", err)
	}
	log.Info("shopping list exported", "path", *out, "pages", doc.Pages)

	if *upload == "" {
		return
	}

	url, err := r2Client.Upload(ctx, *upload, doc.Content, doc.ContentType)
	if err != nil {
		log.Fatal("upload failed", "key", *upload, "error", err)
	}
	fmt.Println(url)
}
