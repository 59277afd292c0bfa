package ledger

import (
	"errors"
	"sync"
	"testing"

	"kakeibo/internal/core"
)

func validRaw(date, category, amount string) core.RawReceipt {
	return core.RawReceipt{Date: date, Category: category, Description: "d", Amount: amount}
}

func TestInsertOneRoundTrip(t *testing.T) {
	s := New(0)
	rec, err := s.InsertOne(core.RawReceipt{
		Date:        "2023-04-01",
		Category:    "食費",
		Description: "スーパー",
		Amount:      "2500",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if rec.ID != 1 {
		t.Errorf("first ID = %d", rec.ID)
	}

	snap := s.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("snapshot len = %d", len(snap))
	}
	got := snap[0]
	if got.Date.String() != "2023-04-01" || got.Category != "食費" ||
		got.Description != "スーパー" || got.Amount != 2500 {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}

func TestInsertOneInvalid(t *testing.T) {
	s := New(0)
	_, err := s.InsertOne(validRaw("bad", "c", "1"))
	if !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if s.Count() != 0 {
		t.Fatal("failed insert must not mutate the store")
	}
}

func TestInsertManyPartialSuccess(t *testing.T) {
	s := New(0)
	raws := []core.RawReceipt{
		validRaw("2023-01-01", "a", "100"),
		validRaw("2023-01-02", "", "100"),    // empty category
		validRaw("2023-01-03", "b", "200"),
		validRaw("2023-01-04", "c", "oops"),  // bad amount
		validRaw("2023-99-05", "d", "300"),   // bad date
	}

	inserted, rejected := s.InsertMany(raws)
	if len(inserted) != 2 {
		t.Fatalf("inserted = %d, want 2", len(inserted))
	}
	if len(rejected) != 3 {
		t.Fatalf("rejected = %d, want 3", len(rejected))
	}
	if s.Count() != 2 {
		t.Fatalf("stored = %d, want 2", s.Count())
	}

	wantIdx := []int{1, 3, 4}
	wantErr := []error{core.ErrEmptyCategory, core.ErrInvalidAmount, core.ErrInvalidDate}
	for i, rej := range rejected {
		if rej.Index != wantIdx[i] {
			t.Errorf("rejection %d index = %d, want %d", i, rej.Index, wantIdx[i])
		}
		if !errors.Is(rej.Err, wantErr[i]) {
			t.Errorf("rejection %d error = %v, want %v", i, rej.Err, wantErr[i])
		}
	}

	// IDs stay monotonic over the accepted subset.
	if inserted[0].ID != 1 || inserted[1].ID != 2 {
		t.Errorf("IDs = %d, %d", inserted[0].ID, inserted[1].ID)
	}
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	s := New(0)
	_, _ = s.InsertOne(validRaw("2023-01-01", "a", "100"))

	snap := s.Snapshot()
	snap[0].Category = "mutated"

	if got := s.Snapshot()[0].Category; got != "a" {
		t.Fatalf("store observed snapshot mutation: %q", got)
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	s := New(0)
	_, _ = s.InsertOne(validRaw("2023-01-01", "a", "100"))

	if _, err := s.Clear(false); !errors.Is(err, core.ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if s.Count() != 1 {
		t.Fatal("unconfirmed clear must not change the store")
	}

	removed, err := s.Clear(true)
	if err != nil || removed != 1 {
		t.Fatalf("confirmed clear = %d, %v", removed, err)
	}
	if s.Count() != 0 {
		t.Fatal("store not empty after clear")
	}

	// IDs are never reused after a clear.
	rec, _ := s.InsertOne(validRaw("2023-01-02", "b", "100"))
	if rec.ID != 2 {
		t.Fatalf("ID after clear = %d, want 2", rec.ID)
	}
}

func TestGet(t *testing.T) {
	s := New(0)
	rec, _ := s.InsertOne(validRaw("2023-01-01", "a", "100"))

	got, err := s.Get(rec.ID)
	if err != nil || got.ID != rec.ID {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if _, err := s.Get(999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRetentionCap(t *testing.T) {
	s := New(3)
	for i := 1; i <= 5; i++ {
		_, _ = s.InsertOne(validRaw("2023-01-01", "a", "100"))
	}
	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("capped len = %d, want 3", len(snap))
	}
	// The oldest were dropped; IDs keep climbing.
	if snap[0].ID != 3 || snap[2].ID != 5 {
		t.Fatalf("kept IDs = %d..%d, want 3..5", snap[0].ID, snap[2].ID)
	}
}

func TestSeed(t *testing.T) {
	s := New(0)
	inserted := s.Seed()
	if len(inserted) != 9 {
		t.Fatalf("seed inserted %d, want 9", len(inserted))
	}
	if s.Count() != 9 {
		t.Fatalf("stored = %d", s.Count())
	}

	summary := core.Summarize(s.Snapshot(), "2023-01")
	jan := summary["2023-01"]
	if jan == nil || jan.Total != 9500 || jan.Count != 3 {
		t.Fatalf("seed january totals wrong: %+v", jan)
	}
}

func TestConcurrentInsertAndSnapshot(t *testing.T) {
	s := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = s.InsertOne(validRaw("2023-01-01", "a", "1"))
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()
	if s.Count() != 400 {
		t.Fatalf("count = %d, want 400", s.Count())
	}
	// Every ID unique and non-decreasing in insertion order.
	snap := s.Snapshot()
	for i := 1; i < len(snap); i++ {
		if snap[i].ID <= snap[i-1].ID {
			t.Fatalf("IDs not increasing at %d: %d <= %d", i, snap[i].ID, snap[i-1].ID)
		}
	}
}
