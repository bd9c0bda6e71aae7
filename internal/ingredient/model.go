package ingredient

// Unit is a measurement unit from the closed catalog list.
type Unit string

const (
	Gram       Unit = "g"
	Kilogram   Unit = "kg"
	Milligram  Unit = "mg"
	Liter      Unit = "l"
	Milliliter Unit = "ml"
	Pieces     Unit = "pcs"
	Teaspoon   Unit = "tsp"
	Tablespoon Unit = "tbsp"
	Drop       Unit = "drop"
	Piece      Unit = "piece"
	Can        Unit = "can"
	Glass      Unit = "glass"
	Pinch      Unit = "pinch"
	Handful    Unit = "handful"
)

// Units lists every accepted unit in display order.
var Units = []Unit{
	Gram, Kilogram, Milligram,
	Liter, Milliliter,
	Pieces, Teaspoon, Tablespoon, Drop, Piece, Can, Glass, Pinch, Handful,
}

func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit Unit   `json:"measurement_unit"`
}
