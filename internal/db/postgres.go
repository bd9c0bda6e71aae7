package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodgram/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Info("connected to postgres", "max_conns", config.MaxConns)

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	log.Info("schema initialized")
	return db, nil
}

// schema is applied in order; every statement is idempotent.
var schema = []struct {
	name string
	sql  string
}{
	// -------------------------------
	// USERS
	// -------------------------------
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(254) UNIQUE NOT NULL,
			username VARCHAR(150) UNIQUE NOT NULL,
			first_name VARCHAR(150) NOT NULL,
			last_name VARCHAR(150) NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'user',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"follows", `
		CREATE TABLE IF NOT EXISTS follows (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			following_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, following_id),
			CHECK (user_id <> following_id)
		)
	`},

	// -------------------------------
	// CATALOG
	// -------------------------------
	{"tags", `
		CREATE TABLE IF NOT EXISTS tags (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(20) UNIQUE NOT NULL,
			slug VARCHAR(20) UNIQUE NOT NULL
		)
	`},
	{"ingredients", `
		CREATE TABLE IF NOT EXISTS ingredients (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(128) NOT NULL,
			measurement_unit VARCHAR(16) NOT NULL,
			UNIQUE (name, measurement_unit)
		)
	`},

	// -------------------------------
	// RECIPES
	// -------------------------------
	{"recipes", `
		CREATE TABLE IF NOT EXISTS recipes (
			id BIGSERIAL PRIMARY KEY,
			author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(256) NOT NULL,
			text TEXT NOT NULL,
			cooking_time INTEGER NOT NULL CHECK (cooking_time BETWEEN 1 AND 1440),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"recipe_tags", `
		CREATE TABLE IF NOT EXISTS recipe_tags (
			recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (recipe_id, tag_id)
		)
	`},
	{"recipe_ingredients", `
		CREATE TABLE IF NOT EXISTS recipe_ingredients (
			recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			ingredient_id BIGINT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			amount NUMERIC(6,2) NOT NULL,
			PRIMARY KEY (recipe_id, ingredient_id)
		)
	`},

	// -------------------------------
	// USER LISTS
	// -------------------------------
	{"favorites", `
		CREATE TABLE IF NOT EXISTS favorites (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, recipe_id)
		)
	`},
	{"shopping_cart", `
		CREATE TABLE IF NOT EXISTS shopping_cart (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			recipe_id BIGINT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, recipe_id)
		)
	`},
	{"recipes_created_at_idx", `
		CREATE INDEX IF NOT EXISTS recipes_created_at_idx ON recipes (created_at DESC)
	`},
}

// initSchema creates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt.sql); err != nil {
			return fmt.Errorf("%s: %w", stmt.name, err)
		}
	}
	return nil
}
