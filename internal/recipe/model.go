package recipe

import (
	"encoding/json"
	"time"

	"foodgram/internal/auth"
	"foodgram/internal/tag"

	"github.com/shopspring/decimal"
)

// Line is one ingredient of a recipe with its amount.
type Line struct {
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          decimal.Decimal
}

// MarshalJSON prints amounts with two decimals, as stored.
func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID              int64  `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          string `json:"amount"`
	}{l.IngredientID, l.Name, l.MeasurementUnit, l.Amount.StringFixed(2)})
}

type Recipe struct {
	ID               int64        `json:"id"`
	Tags             []tag.Tag    `json:"tags"`
	Author           auth.Profile `json:"author"`
	Ingredients      []Line       `json:"ingredients"`
	IsFavorited      bool         `json:"is_favorited"`
	IsInShoppingCart bool         `json:"is_in_shopping_cart"`
	Name             string       `json:"name"`
	Text             string       `json:"text"`
	CookingTime      int          `json:"cooking_time"`
	CreatedAt        time.Time    `json:"created_at"`
}

type IngredientAmount struct {
	ID     int64           `json:"id" binding:"required,gt=0"`
	Amount decimal.Decimal `json:"amount"`
}

// WriteInput is the body of create and update requests. Update replaces
// every field.
type WriteInput struct {
	Ingredients []IngredientAmount `json:"ingredients" binding:"required,min=1,dive"`
	Tags        []int64            `json:"tags" binding:"required,min=1"`
	Name        string             `json:"name" binding:"required,max=256"`
	Text        string             `json:"text" binding:"required"`
	CookingTime int                `json:"cooking_time" binding:"required,min=1,max=1440"`
}

// Filter narrows a recipe listing. Favorited and InCart only apply to an
// authenticated viewer.
type Filter struct {
	AuthorID  string
	Tags      []string
	Favorited bool
	InCart    bool
}
