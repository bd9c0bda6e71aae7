package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram/internal/core"
	"foodgram/internal/tag"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Writes
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, authorID string, in WriteInput) (int64, error) {
	var id int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO recipes (author_id, name, text, cooking_time)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, authorID, strings.TrimSpace(in.Name), in.Text, in.CookingTime).Scan(&id); err != nil {
			return err
		}
		return writeRelations(ctx, tx, id, in)
	})
	return id, err
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, in WriteInput) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `
			UPDATE recipes SET name = $1, text = $2, cooking_time = $3
			WHERE id = $4
		`, strings.TrimSpace(in.Name), in.Text, in.CookingTime, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
			return err
		}
		return writeRelations(ctx, tx, id, in)
	})
}

func writeRelations(ctx context.Context, tx pgx.Tx, recipeID int64, in WriteInput) error {
	if _, err := tx.Exec(ctx, `
		INSERT INTO recipe_tags (recipe_id, tag_id)
		SELECT $1, unnest($2::bigint[])
	`, recipeID, in.Tags); err != nil {
		return fmt.Errorf("recipe tags: %w", err)
	}

	batch := &pgx.Batch{}
	for _, ia := range in.Ingredients {
		// amounts travel as text so NUMERIC keeps them exact
		batch.Queue(`
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
			VALUES ($1, $2, $3::numeric)
		`, recipeID, ia.ID, ia.Amount.String())
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("recipe ingredients: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

// buildWhere turns a filter into a WHERE clause. $1 is always the viewer id.
func buildWhere(f Filter, viewerID string) (string, []any) {
	args := []any{viewerID}
	var conds []string

	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		conds = append(conds, fmt.Sprintf("r.author_id::text = $%d", len(args)))
	}
	if len(f.Tags) > 0 {
		args = append(args, f.Tags)
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND (t.slug = ANY($%[1]d) OR t.name = ANY($%[1]d))
		)`, len(args)))
	}
	if f.Favorited && viewerID != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM favorites fv WHERE fv.recipe_id = r.id AND fv.user_id::text = $1
		)`)
	}
	if f.InCart && viewerID != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM shopping_cart sc WHERE sc.recipe_id = r.id AND sc.user_id::text = $1
		)`)
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

const selectRecipes = `
	SELECT
		r.id, r.name, r.text, r.cooking_time, r.created_at,
		u.id, u.email, u.username, u.first_name, u.last_name,
		EXISTS (SELECT 1 FROM follows f WHERE f.user_id::text = $1 AND f.following_id = u.id),
		EXISTS (SELECT 1 FROM favorites fv WHERE fv.user_id::text = $1 AND fv.recipe_id = r.id),
		EXISTS (SELECT 1 FROM shopping_cart sc WHERE sc.user_id::text = $1 AND sc.recipe_id = r.id)
	FROM recipes r
	JOIN users u ON u.id = r.author_id
`

func (r *PostgresRepository) Get(ctx context.Context, id int64, viewerID string) (*Recipe, error) {
	recipes, err := r.query(ctx, selectRecipes+` WHERE r.id = $2`, viewerID, id)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, ErrNotFound
	}
	return &recipes[0], nil
}

func (r *PostgresRepository) List(
	ctx context.Context,
	f Filter,
	viewerID string,
	limit, offset int,
) ([]Recipe, int, error) {

	where, args := buildWhere(f, viewerID)

	// the cross join keeps $1 typed even when no condition uses it
	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM recipes r CROSS JOIN (SELECT $1::text AS viewer_id) v
	`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	recipes, err := r.query(ctx, fmt.Sprintf(`%s %s
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $%d OFFSET $%d
	`, selectRecipes, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

func (r *PostgresRepository) query(ctx context.Context, sql string, args ...any) ([]Recipe, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []Recipe{}
	for rows.Next() {
		var rec Recipe
		a := &rec.Author
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.Text, &rec.CookingTime, &rec.CreatedAt,
			&a.ID, &a.Email, &a.Username, &a.FirstName, &a.LastName,
			&a.IsSubscribed, &rec.IsFavorited, &rec.IsInShoppingCart,
		); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// loadRelations fills tags and ingredients with one query each.
func (r *PostgresRepository) loadRelations(ctx context.Context, recipes []Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]int64, len(recipes))
	index := make(map[int64]int, len(recipes))
	for i := range recipes {
		ids[i] = recipes[i].ID
		index[recipes[i].ID] = i
		recipes[i].Tags = []tag.Tag{}
		recipes[i].Ingredients = []Line{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT rt.recipe_id, t.id, t.name, t.slug
		FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1)
		ORDER BY t.name, t.id
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var recipeID int64
		var t tag.Tag
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Slug); err != nil {
			rows.Close()
			return err
		}
		i := index[recipeID]
		recipes[i].Tags = append(recipes[i].Tags, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount::text
		FROM recipe_ingredients ri JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY i.name, i.id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recipeID int64
			line     Line
			amount   string
		)
		if err := rows.Scan(&recipeID, &line.IngredientID, &line.Name, &line.MeasurementUnit, &amount); err != nil {
			return err
		}
		if line.Amount, err = decimal.NewFromString(amount); err != nil {
			return fmt.Errorf("recipe %d: bad amount %q: %w", recipeID, amount, err)
		}
		i := index[recipeID]
		recipes[i].Ingredients = append(recipes[i].Ingredients, line)
	}
	return rows.Err()
}

func (r *PostgresRepository) AuthorOf(ctx context.Context, id int64) (string, error) {
	var authorID string
	err := r.db.QueryRow(ctx, `SELECT author_id::text FROM recipes WHERE id = $1`, id).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return authorID, err
}

// GetSummary satisfies core.RecipeReader.
func (r *PostgresRepository) GetSummary(ctx context.Context, id int64) (*core.RecipeSummary, error) {
	s := &core.RecipeSummary{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, cooking_time FROM recipes WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.CookingTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// --------------------------------------------------
// Favorites
// --------------------------------------------------
func (r *PostgresRepository) AddFavorite(ctx context.Context, userID string, recipeID int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `
		INSERT INTO favorites (user_id, recipe_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, recipe_id) DO NOTHING
	`, userID, recipeID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *PostgresRepository) RemoveFavorite(ctx context.Context, userID string, recipeID int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2
	`, userID, recipeID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
