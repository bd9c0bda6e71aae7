package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"foodgram/internal/core"

	"github.com/shopspring/decimal"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validInput() WriteInput {
	return WriteInput{
		Ingredients: []IngredientAmount{
			{ID: 1, Amount: amount("5.00")},
			{ID: 2, Amount: amount("0.5")},
		},
		Tags:        []int64{1},
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
	}
}

func TestValidate_Accepts(t *testing.T) {
	if err := Validate(validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WriteInput)
		want   string
	}{
		{"no ingredients", func(in *WriteInput) { in.Ingredients = nil }, "at least one ingredient"},
		{"duplicate ingredient", func(in *WriteInput) { in.Ingredients[1].ID = 1 }, "ingredient 1 is listed more than once"},
		{"zero amount", func(in *WriteInput) { in.Ingredients[0].Amount = decimal.Zero }, "greater than 0"},
		{"negative amount", func(in *WriteInput) { in.Ingredients[0].Amount = amount("-1") }, "greater than 0"},
		{"three decimals", func(in *WriteInput) { in.Ingredients[0].Amount = amount("1.125") }, "2 decimal places"},
		{"amount too large", func(in *WriteInput) { in.Ingredients[0].Amount = amount("10000") }, "at most 9999.99"},
		{"no tags", func(in *WriteInput) { in.Tags = nil }, "at least one tag"},
		{"duplicate tag", func(in *WriteInput) { in.Tags = []int64{1, 1} }, "tag 1 is listed more than once"},
		{"zero cooking time", func(in *WriteInput) { in.CookingTime = 0 }, "cooking_time"},
		{"day-long cooking time", func(in *WriteInput) { in.CookingTime = 1441 }, "cooking_time"},
		{"blank name", func(in *WriteInput) { in.Name = "   " }, "name is required"},
		{"long name", func(in *WriteInput) { in.Name = strings.Repeat("щ", 257) }, "at most 256"},
		{"blank text", func(in *WriteInput) { in.Text = "" }, "text is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := Validate(in)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_TrailingZerosAllowed(t *testing.T) {
	in := validInput()
	in.Ingredients[0].Amount = amount("1.500")
	in.Name = strings.Repeat("щ", 256)

	if err := Validate(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type stubCatalog map[int64]bool

func (s stubCatalog) Missing(ctx context.Context, ids []int64) ([]int64, error) {
	return core.MissingIDs(ids, s), nil
}

func TestValidateReferences(t *testing.T) {
	ingredients := stubCatalog{1: true}
	tags := stubCatalog{}

	err := ValidateReferences(context.Background(), validInput(), ingredients, tags)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	for _, want := range []string{"ingredient 2 does not exist", "tag 1 does not exist"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}

	if err := ValidateReferences(context.Background(), validInput(), stubCatalog{1: true, 2: true}, stubCatalog{1: true}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLineJSON(t *testing.T) {
	data, err := json.Marshal(Line{IngredientID: 7, Name: "Salt", MeasurementUnit: "g", Amount: amount("8.5")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":7,"name":"Salt","measurement_unit":"g","amount":"8.50"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestWriteInputAcceptsNumericAndStringAmounts(t *testing.T) {
	var in WriteInput
	body := `{"ingredients":[{"id":1,"amount":5},{"id":2,"amount":"0.25"}],"tags":[1],"name":"x","text":"y","cooking_time":1}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.Ingredients[0].Amount.Equal(amount("5")) || !in.Ingredients[1].Amount.Equal(amount("0.25")) {
		t.Errorf("unexpected amounts %+v", in.Ingredients)
	}
}

func TestBuildWhere(t *testing.T) {
	where, args := buildWhere(Filter{}, "")
	if where != "" || len(args) != 1 {
		t.Errorf("empty filter: got %q %v", where, args)
	}

	where, args = buildWhere(Filter{AuthorID: "a1", Tags: []string{"lunch", "dinner"}, Favorited: true, InCart: true}, "u1")
	if len(args) != 3 || args[0] != "u1" || args[1] != "a1" {
		t.Fatalf("unexpected args %v", args)
	}
	for _, want := range []string{"r.author_id::text = $2", "ANY($3)", "favorites", "shopping_cart"} {
		if !strings.Contains(where, want) {
			t.Errorf("where clause missing %q:\n%s", want, where)
		}
	}

	// viewer flags need a viewer
	where, _ = buildWhere(Filter{Favorited: true, InCart: true}, "")
	if where != "" {
		t.Errorf("anonymous flags should be ignored, got %q", where)
	}
}
