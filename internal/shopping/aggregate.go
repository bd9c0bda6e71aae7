package shopping

// Aggregate merges the ingredient lines of all recipes by ingredient id and
// sums their quantities. Recipes without lines contribute nothing.
//
// Quantities are summed as given: zero or negative values are not dropped or
// clamped here, they are rejected when a recipe is written.
//
// The result follows first-seen order but callers must not rely on it;
// use SortLines for a stable presentation order.
func Aggregate(recipes []LineSource) []AggregatedLine {
	out := make([]AggregatedLine, 0)
	index := make(map[int64]int)

	for _, recipe := range recipes {
		if recipe == nil {
			continue
		}
		for _, line := range recipe.IngredientLines() {
			if i, ok := index[line.IngredientID]; ok {
				out[i].Quantity = out[i].Quantity.Add(line.Quantity)
				continue
			}
			index[line.IngredientID] = len(out)
			out = append(out, AggregatedLine{
				IngredientID: line.IngredientID,
				Name:         line.Name,
				Unit:         line.Unit,
				Quantity:     line.Quantity,
			})
		}
	}

	return out
}
