package shopping

// CartRecipe is a recipe in a user's shopping cart together with its lines.
type CartRecipe struct {
	ID    int64
	Name  string
	Lines []IngredientLine
}

func (r CartRecipe) IngredientLines() []IngredientLine {
	return r.Lines
}
