package enum

// Category is the fixed, closed set of showroom product categories. It is a
// configuration constant of the client, not user-extensible.
type Category string

const (
	CategoryHardware    Category = "Hardware"
	CategoryLamination  Category = "Lamination & Highlighter"
	CategoryVeneer      Category = "Veneer"
	CategorySofaCurtain Category = "Sofa & Curtains"
	CategoryModular     Category = "Modular"
)

// Categories returns the full category list in display order.
func Categories() []Category {
	return []Category{
		CategoryHardware,
		CategoryLamination,
		CategoryVeneer,
		CategorySofaCurtain,
		CategoryModular,
	}
}

// DefaultCategory is the category pre-selected for the first line item of a
// fresh draft.
func DefaultCategory() Category {
	return CategoryHardware
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
