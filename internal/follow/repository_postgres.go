package follow

import (
	"context"
	"errors"

	"foodgram/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Follow(ctx context.Context, userID, targetID string) (bool, error) {
	cmd, err := r.db.Exec(ctx, `
		INSERT INTO follows (user_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, targetID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *PostgresRepository) Unfollow(ctx context.Context, userID, targetID string) (bool, error) {
	cmd, err := r.db.Exec(ctx, `
		DELETE FROM follows WHERE user_id = $1 AND following_id = $2
	`, userID, targetID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

const selectFollowed = `
	SELECT
		u.id, u.email, u.username, u.first_name, u.last_name,
		(SELECT COUNT(*) FROM recipes r WHERE r.author_id = u.id)
	FROM follows f
	JOIN users u ON u.id = f.following_id
	WHERE f.user_id = $1
`

func (r *PostgresRepository) Subscriptions(
	ctx context.Context,
	userID string,
	limit, offset, recipesLimit int,
) ([]Subscription, int, error) {

	var total int
	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM follows WHERE user_id = $1
	`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, selectFollowed+`
		ORDER BY f.created_at DESC, u.id
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	subs, err := pgx.CollectRows(rows, scanSubscription)
	if err != nil {
		return nil, 0, err
	}

	if err := r.loadRecipes(ctx, subs, recipesLimit); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *PostgresRepository) Subscription(
	ctx context.Context,
	userID, targetID string,
	recipesLimit int,
) (*Subscription, error) {

	rows, err := r.db.Query(ctx, selectFollowed+` AND u.id = $2`, userID, targetID)
	if err != nil {
		return nil, err
	}

	sub, err := pgx.CollectExactlyOneRow(rows, scanSubscription)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	subs := []Subscription{sub}
	if err := r.loadRecipes(ctx, subs, recipesLimit); err != nil {
		return nil, err
	}
	return &subs[0], nil
}

func scanSubscription(row pgx.CollectableRow) (Subscription, error) {
	var s Subscription
	err := row.Scan(&s.ID, &s.Email, &s.Username, &s.FirstName, &s.LastName, &s.RecipesCount)
	s.IsSubscribed = true
	return s, err
}

// loadRecipes fills the newest recipes of every author in one query.
func (r *PostgresRepository) loadRecipes(ctx context.Context, subs []Subscription, recipesLimit int) error {
	if len(subs) == 0 {
		return nil
	}

	ids := make([]string, len(subs))
	index := make(map[string]int, len(subs))
	for i := range subs {
		ids[i] = subs[i].ID
		index[subs[i].ID] = i
		subs[i].Recipes = []core.RecipeSummary{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT author_id, id, name, cooking_time
		FROM (
			SELECT
				author_id::text AS author_id, id, name, cooking_time,
				ROW_NUMBER() OVER (PARTITION BY author_id ORDER BY created_at DESC, id DESC) AS rn
			FROM recipes
			WHERE author_id::text = ANY($1)
		) ranked
		WHERE $2 < 0 OR rn <= $2
		ORDER BY author_id, rn
	`, ids, recipesLimit)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var authorID string
		var rec core.RecipeSummary
		if err := rows.Scan(&authorID, &rec.ID, &rec.Name, &rec.CookingTime); err != nil {
			return err
		}
		if i, ok := index[authorID]; ok {
			subs[i].Recipes = append(subs[i].Recipes, rec)
		}
	}
	return rows.Err()
}
