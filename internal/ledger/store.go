// Package ledger owns the authoritative in-memory collection of
// receipts for the life of the process.
package ledger

import (
	"errors"
	"sync"

	"kakeibo/internal/core"
)

// Store holds the live receipt collection. A single mutex serializes
// mutations and snapshots, so a snapshot never observes a partially
// applied insert or a clear in progress. No I/O happens under the lock.
type Store struct {
	mu         sync.Mutex
	items      []core.Receipt
	nextID     int64
	maxRecords int
}

// Rejection reports one item of a bulk insert that failed validation.
type Rejection struct {
	Index int
	Err   *core.ValidationError
}

// New returns an empty store. maxRecords caps retention: once the
// collection grows past it, the oldest receipts are dropped. Zero
// disables the cap.
func New(maxRecords int) *Store {
	return &Store{nextID: 1, maxRecords: maxRecords}
}

// InsertOne validates raw, assigns the next ID and appends the receipt.
func (s *Store) InsertOne(raw core.RawReceipt) (core.Receipt, error) {
	rec, err := core.ValidateAndNormalize(raw)
	if err != nil {
		return core.Receipt{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(rec), nil
}

// InsertMany processes each item independently and never aborts on a
// bad one: valid items are stored, invalid ones reported per index so
// the caller can surface partial failure precisely.
func (s *Store) InsertMany(raws []core.RawReceipt) ([]core.Receipt, []Rejection) {
	validated := make([]core.Receipt, 0, len(raws))
	var rejected []Rejection
	for i, raw := range raws {
		rec, err := core.ValidateAndNormalize(raw)
		if err != nil {
			var verr *core.ValidationError
			errors.As(err, &verr)
			rejected = append(rejected, Rejection{Index: i, Err: verr})
			continue
		}
		validated = append(validated, rec)
	}

	inserted := make([]core.Receipt, 0, len(validated))
	s.mu.Lock()
	for _, rec := range validated {
		inserted = append(inserted, s.appendLocked(rec))
	}
	s.mu.Unlock()

	return inserted, rejected
}

// Snapshot returns a defensive copy of all receipts in insertion order.
func (s *Store) Snapshot() []core.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Receipt, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the number of stored receipts.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the receipt with the given ID, or core.ErrNotFound.
func (s *Store) Get(id int64) (core.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.ID == id {
			return r, nil
		}
	}
	return core.Receipt{}, core.ErrNotFound
}

// Clear erases all receipts and returns how many were removed. Without
// confirm it fails with core.ErrConfirmationRequired and changes
// nothing. IDs are never reused after a clear.
func (s *Store) Clear(confirm bool) (int, error) {
	if !confirm {
		return 0, core.ErrConfirmationRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := len(s.items)
	s.items = nil
	return removed, nil
}

// appendLocked assigns the next ID, stores rec and enforces the
// retention cap. Caller holds s.mu.
func (s *Store) appendLocked(rec core.Receipt) core.Receipt {
	rec.ID = s.nextID
	s.nextID++
	s.items = append(s.items, rec)
	if s.maxRecords > 0 && len(s.items) > s.maxRecords {
		overflow := len(s.items) - s.maxRecords
		n := copy(s.items, s.items[overflow:])
		s.items = s.items[:n]
	}
	return rec
}
