package core

import "time"

// SeedExpenses returns the built-in sample set used to populate an empty
// store on first load, so a fresh install never starts with a blank
// dashboard. The returned slice is a fresh copy on every call.
func SeedExpenses() []Expense {
	return []Expense{
		{
			ID:          "1",
			Amount:      Money{Cents: 2550},
			Description: "Lunch at cafe",
			Category:    CategoryFoodDining,
			Date:        NewDate(2024, 6, 8),
			CreatedAt:   time.Date(2024, 6, 8, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			Amount:      Money{Cents: 6000},
			Description: "Gas station",
			Category:    CategoryTransportation,
			Date:        NewDate(2024, 6, 7),
			CreatedAt:   time.Date(2024, 6, 7, 8, 15, 0, 0, time.UTC),
		},
		{
			ID:          "3",
			Amount:      Money{Cents: 12000},
			Description: "Grocery shopping",
			Category:    CategoryShopping,
			Date:        NewDate(2024, 6, 6),
			CreatedAt:   time.Date(2024, 6, 6, 18, 45, 0, 0, time.UTC),
		},
		{
			ID:          "4",
			Amount:      Money{Cents: 1599},
			Description: "Netflix subscription",
			Category:    CategoryEntertainment,
			Date:        NewDate(2024, 6, 5),
			CreatedAt:   time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          "5",
			Amount:      Money{Cents: 8500},
			Description: "Electricity bill",
			Category:    CategoryBills,
			Date:        NewDate(2024, 6, 4),
			CreatedAt:   time.Date(2024, 6, 4, 14, 20, 0, 0, time.UTC),
		},
		{
			ID:          "6",
			Amount:      Money{Cents: 4500},
			Description: "Doctor visit",
			Category:    CategoryHealthcare,
			Date:        NewDate(2024, 6, 3),
			CreatedAt:   time.Date(2024, 6, 3, 10, 30, 0, 0, time.UTC),
		},
	}
}
