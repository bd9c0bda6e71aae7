package ingredient

import (
	"context"
	"errors"
	"strings"

	"foodgram/internal/core"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PostgresRepository) Search(ctx context.Context, query string) ([]Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, measurement_unit
		FROM ingredients
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name, id
	`, likeEscaper.Replace(query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Ingredient{}
	for rows.Next() {
		var in Ingredient
		if err := rows.Scan(&in.ID, &in.Name, &in.MeasurementUnit); err != nil {
			return nil, err
		}
		items = append(items, in)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*Ingredient, error) {
	in := &Ingredient{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, measurement_unit FROM ingredients WHERE id = $1
	`, id).Scan(&in.ID, &in.Name, &in.MeasurementUnit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

func (r *PostgresRepository) Create(ctx context.Context, in *Ingredient) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO ingredients (name, measurement_unit)
		VALUES ($1, $2)
		RETURNING id
	`, in.Name, in.MeasurementUnit).Scan(&in.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresRepository) Missing(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id FROM ingredients WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[int64]bool, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return core.MissingIDs(ids, found), nil
}
