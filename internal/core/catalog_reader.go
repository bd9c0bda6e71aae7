package core

import "context"

// CatalogReader checks references into the ingredient or tag catalog.
type CatalogReader interface {
	// Missing returns the ids that do not exist, in input order.
	Missing(ctx context.Context, ids []int64) ([]int64, error)
}

// MissingIDs returns the ids absent from found, keeping input order.
func MissingIDs(ids []int64, found map[int64]bool) []int64 {
	var missing []int64
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
