package core

import "testing"

func sampleReceipts() []Receipt {
	return []Receipt{
		{ID: 1, Date: NewDate(2023, 1, 15), Category: "食費", Amount: 3500},
		{ID: 2, Date: NewDate(2023, 1, 20), Category: "交通費", Amount: 1200},
		{ID: 3, Date: NewDate(2023, 2, 5), Category: "食費", Amount: 800},
		{ID: 4, Date: NewDate(2023, 3, 1), Category: "光熱費", Amount: 7200},
	}
}

func TestFilterNoPredicates(t *testing.T) {
	items := sampleReceipts()
	got := Filter{}.Apply(items)
	if len(got) != len(items) {
		t.Fatalf("expected full snapshot, got %d items", len(got))
	}
	for i := range got {
		if got[i].ID != items[i].ID {
			t.Fatalf("order changed at %d: %d", i, got[i].ID)
		}
	}
}

func TestFilterDateRange(t *testing.T) {
	items := sampleReceipts()

	got := Filter{From: NewDate(2023, 1, 20), To: NewDate(2023, 2, 5)}.Apply(items)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("inclusive bounds wrong: %+v", got)
	}

	// Open-ended on either side.
	if got := (Filter{From: NewDate(2023, 2, 1)}).Apply(items); len(got) != 2 {
		t.Fatalf("open To: got %d items", len(got))
	}
	if got := (Filter{To: NewDate(2023, 1, 31)}).Apply(items); len(got) != 2 {
		t.Fatalf("open From: got %d items", len(got))
	}
}

func TestFilterInvertedRangeIsEmpty(t *testing.T) {
	got := Filter{From: NewDate(2023, 2, 1), To: NewDate(2023, 1, 1)}.Apply(sampleReceipts())
	if len(got) != 0 {
		t.Fatalf("inverted range should match nothing, got %d", len(got))
	}
}

func TestFilterCategoryExactMatch(t *testing.T) {
	items := sampleReceipts()

	got := Filter{Category: "食費"}.Apply(items)
	if len(got) != 2 {
		t.Fatalf("expected 2 食費 items, got %d", len(got))
	}

	// No partial matching.
	if got := (Filter{Category: "食"}).Apply(items); len(got) != 0 {
		t.Fatalf("substring must not match, got %d", len(got))
	}

	// Combined with date range (AND).
	got = Filter{Category: "食費", From: NewDate(2023, 2, 1)}.Apply(items)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("combined predicates wrong: %+v", got)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	items := sampleReceipts()
	_ = Filter{Category: "食費"}.Apply(items)
	if items[1].Category != "交通費" {
		t.Fatal("input snapshot mutated")
	}
}

func TestCategoryTotalsAndTotalAmount(t *testing.T) {
	items := sampleReceipts()
	totals := CategoryTotals(items)
	if totals["食費"] != 4300 || totals["交通費"] != 1200 || totals["光熱費"] != 7200 {
		t.Fatalf("category totals wrong: %v", totals)
	}
	if got := TotalAmount(items); got != 12700 {
		t.Fatalf("total = %d", got)
	}
}
