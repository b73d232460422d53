package core

import "testing"

func TestCategories(t *testing.T) {
	got := Categories()
	if len(got) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(got))
	}
	if got[0] != CategoryFoodDining || got[9] != CategoryOther {
		t.Fatalf("order changed: first=%q last=%q", got[0], got[9])
	}

	// Returned slice is a copy; mutating it must not leak back.
	got[0] = "mutated"
	if Categories()[0] != CategoryFoodDining {
		t.Fatal("Categories returned shared backing slice")
	}
}

func TestIsCategory(t *testing.T) {
	for _, c := range Categories() {
		if !IsCategory(c) {
			t.Fatalf("%q not recognized", c)
		}
	}
	for _, bad := range []string{"", "food & dining", "Groceries"} {
		if IsCategory(bad) {
			t.Fatalf("%q unexpectedly recognized", bad)
		}
	}
}

func TestSeedExpenses(t *testing.T) {
	seed := SeedExpenses()
	if len(seed) != 6 {
		t.Fatalf("expected 6 seed records, got %d", len(seed))
	}
	var total Money
	for _, e := range seed {
		if err := e.Validate(); err != nil {
			t.Fatalf("seed %s invalid: %v", e.ID, err)
		}
		total = total.Add(e.Amount)
	}
	if total.Cents != 35149 {
		t.Fatalf("seed total=%d cents, want 35149", total.Cents)
	}

	// Fresh copy every call.
	seed[0].Description = "mutated"
	if SeedExpenses()[0].Description != "Lunch at cafe" {
		t.Fatal("SeedExpenses returned shared records")
	}
}
