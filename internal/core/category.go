package core

// Category labels, in declared order. The order matters: category
// aggregates preserve it, and selection menus render it as-is.
const (
	CategoryFoodDining     = "Food & Dining"
	CategoryTransportation = "Transportation"
	CategoryShopping       = "Shopping"
	CategoryEntertainment  = "Entertainment"
	CategoryBills          = "Bills & Utilities"
	CategoryHealthcare     = "Healthcare"
	CategoryTravel         = "Travel"
	CategoryEducation      = "Education"
	CategoryPersonal       = "Personal"
	CategoryOther          = "Other"
)

var categories = []string{
	CategoryFoodDining,
	CategoryTransportation,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryHealthcare,
	CategoryTravel,
	CategoryEducation,
	CategoryPersonal,
	CategoryOther,
}

// Categories returns the fixed 10-label enumeration in declared order.
// The returned slice is a copy.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// IsCategory reports whether label is one of the fixed categories.
func IsCategory(label string) bool {
	for _, c := range categories {
		if c == label {
			return true
		}
	}
	return false
}
