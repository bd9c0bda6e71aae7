package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"foodgram/internal/core"

	"github.com/shopspring/decimal"
)

var ErrInvalid = errors.New("invalid recipe")

const (
	MinCookingTime = 1
	MaxCookingTime = 1440
	MaxNameLength  = 256
)

// maxAmount is the largest value NUMERIC(6,2) holds.
var maxAmount = decimal.RequireFromString("9999.99")

// ValidationError lists every problem found in a WriteInput.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

// Validate checks the shape of the input. Catalog references are checked
// separately by ValidateReferences.
func Validate(in WriteInput) error {
	var problems []string

	name := strings.TrimSpace(in.Name)
	if name == "" {
		problems = append(problems, "name is required")
	} else if utf8.RuneCountInString(name) > MaxNameLength {
		problems = append(problems, fmt.Sprintf("name must be at most %d characters", MaxNameLength))
	}

	if strings.TrimSpace(in.Text) == "" {
		problems = append(problems, "text is required")
	}

	if in.CookingTime < MinCookingTime || in.CookingTime > MaxCookingTime {
		problems = append(problems, fmt.Sprintf("cooking_time must be between %d and %d", MinCookingTime, MaxCookingTime))
	}

	if len(in.Ingredients) == 0 {
		problems = append(problems, "at least one ingredient is required")
	}
	seen := map[int64]bool{}
	for _, ia := range in.Ingredients {
		if seen[ia.ID] {
			problems = append(problems, fmt.Sprintf("ingredient %d is listed more than once", ia.ID))
		}
		seen[ia.ID] = true

		switch {
		case !ia.Amount.IsPositive():
			problems = append(problems, fmt.Sprintf("ingredient %d: amount must be greater than 0", ia.ID))
		case !ia.Amount.Equal(ia.Amount.Round(2)):
			problems = append(problems, fmt.Sprintf("ingredient %d: amount allows at most 2 decimal places", ia.ID))
		case ia.Amount.GreaterThan(maxAmount):
			problems = append(problems, fmt.Sprintf("ingredient %d: amount must be at most %s", ia.ID, maxAmount))
		}
	}

	if len(in.Tags) == 0 {
		problems = append(problems, "at least one tag is required")
	}
	seenTags := map[int64]bool{}
	for _, id := range in.Tags {
		if seenTags[id] {
			problems = append(problems, fmt.Sprintf("tag %d is listed more than once", id))
		}
		seenTags[id] = true
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidateReferences reports ingredient and tag ids that are not in the catalog.
func ValidateReferences(
	ctx context.Context,
	in WriteInput,
	ingredients core.CatalogReader,
	tags core.CatalogReader,
) error {

	ids := make([]int64, 0, len(in.Ingredients))
	for _, ia := range in.Ingredients {
		ids = append(ids, ia.ID)
	}

	var problems []string

	missing, err := ingredients.Missing(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range missing {
		problems = append(problems, fmt.Sprintf("ingredient %d does not exist", id))
	}

	missing, err = tags.Missing(ctx, in.Tags)
	if err != nil {
		return err
	}
	for _, id := range missing {
		problems = append(problems, fmt.Sprintf("tag %d does not exist", id))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
