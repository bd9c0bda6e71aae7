package shopping

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(
	ctx context.Context,
	userID string,
	recipeID int64,
) (bool, error) {

	cmd, err := r.db.Exec(ctx, `
		INSERT INTO shopping_cart (user_id, recipe_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, recipe_id) DO NOTHING
	`, userID, recipeID)
	if err != nil {
		return false, err
	}

	return cmd.RowsAffected() == 1, nil
}

func (r *PostgresRepository) Remove(
	ctx context.Context,
	userID string,
	recipeID int64,
) (bool, error) {

	cmd, err := r.db.Exec(ctx, `
		DELETE FROM shopping_cart
		WHERE user_id = $1 AND recipe_id = $2
	`, userID, recipeID)
	if err != nil {
		return false, err
	}

	return cmd.RowsAffected() > 0, nil
}

func (r *PostgresRepository) CountRecipes(
	ctx context.Context,
	userID string,
) (int, error) {

	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM shopping_cart WHERE user_id = $1
	`, userID).Scan(&n)

	return n, err
}

// --------------------------------------------------
// Cart recipes with their ingredient lines, one row per line
// --------------------------------------------------
func (r *PostgresRepository) ListRecipes(
	ctx context.Context,
	userID string,
) ([]CartRecipe, error) {

	rows, err := r.db.Query(ctx, `
		SELECT
			r.id,
			r.name,
			i.id,
			i.name,
			i.measurement_unit,
			ri.amount::text
		FROM shopping_cart sc
		JOIN recipes r
		  ON r.id = sc.recipe_id
		LEFT JOIN recipe_ingredients ri
		  ON ri.recipe_id = r.id
		LEFT JOIN ingredients i
		  ON i.id = ri.ingredient_id
		WHERE sc.user_id = $1
		ORDER BY sc.created_at, r.id, i.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []CartRecipe
	index := map[int64]int{}

	for rows.Next() {
		var (
			recipeID     int64
			recipeName   string
			ingredientID *int64
			name         *string
			unit         *string
			amount       *string
		)
		if err := rows.Scan(&recipeID, &recipeName, &ingredientID, &name, &unit, &amount); err != nil {
			return nil, err
		}

		i, ok := index[recipeID]
		if !ok {
			i = len(recipes)
			index[recipeID] = i
			recipes = append(recipes, CartRecipe{ID: recipeID, Name: recipeName})
		}

		// recipe without ingredients
		if ingredientID == nil {
			continue
		}

		qty, err := decimal.NewFromString(*amount)
		if err != nil {
			return nil, fmt.Errorf("recipe %d ingredient %d: bad amount %q: %w", recipeID, *ingredientID, *amount, err)
		}

		recipes[i].Lines = append(recipes[i].Lines, IngredientLine{
			IngredientID: *ingredientID,
			Name:         *name,
			Unit:         *unit,
			Quantity:     qty,
		})
	}

	return recipes, rows.Err()
}
